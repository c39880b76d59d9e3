package nlp

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Gazetteer recognizes organizations, certifications and regulations, and
// events by phrase lookup. Phrases are matched case-insensitively on word
// boundaries and the longest phrase wins when two overlap.
type Gazetteer struct {
	entries []gazetteerEntry
}

type gazetteerEntry struct {
	phrase string
	label  string
}

// GazetteerFile is the YAML layout of a gazetteer file.
type GazetteerFile struct {
	Organizations []string `yaml:"organizations"`
	Laws          []string `yaml:"laws"`
	Events        []string `yaml:"events"`
}

var defaultGazetteer = GazetteerFile{
	Organizations: []string{
		"aws", "amazon web services", "amazon", "google", "google cloud", "gcp",
		"microsoft", "azure", "oracle", "ibm", "cisco", "red hat", "vmware",
		"salesforce", "sap", "comptia", "isc2", "isaca", "pmi", "ieee", "acm",
		"linux foundation", "cncf", "hashicorp", "databricks", "snowflake",
		"mongodb", "elastic", "confluent", "nvidia", "meta", "apple", "netflix",
		"github", "gitlab", "atlassian", "scrum alliance", "scrum.org", "coursera",
		"udacity", "mit", "stanford", "harvard", "cfa institute", "aicpa",
	},
	Laws: []string{
		"gdpr", "hipaa", "sox", "sarbanes-oxley", "pci dss", "pci-dss", "ccpa",
		"ferpa", "fisma", "fedramp", "iso 27001", "iso 9001", "soc 2", "nist",
		"cissp", "cism", "cisa", "ceh", "oscp", "security+", "network+", "a+",
		"ccna", "ccnp", "ccie", "pmp", "capm", "csm", "psm", "itil", "cpa", "cfa",
		"six sigma", "lean six sigma", "rhce", "rhcsa", "cka", "ckad",
		"aws certified solutions architect", "aws certified developer",
		"aws certification", "azure fundamentals", "terraform associate",
	},
	Events: []string{
		"hackathon", "google summer of code", "hacktoberfest", "kaggle",
		"pycon", "gophercon", "kubecon", "re:invent", "defcon", "icpc",
		"code jam", "advent of code",
	},
}

// DefaultGazetteer returns the built-in gazetteer.
func DefaultGazetteer() *Gazetteer {
	return NewGazetteer(defaultGazetteer)
}

// NewGazetteer builds a gazetteer from phrase lists.
func NewGazetteer(f GazetteerFile) *Gazetteer {
	g := &Gazetteer{}
	seen := make(map[string]struct{})
	add := func(label string, phrases []string) {
		for _, p := range phrases {
			p = strings.Join(strings.Fields(strings.ToLower(p)), " ")
			if p == "" {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			g.entries = append(g.entries, gazetteerEntry{phrase: p, label: label})
		}
	}
	add(LabelOrganization, f.Organizations)
	add(LabelLaw, f.Laws)
	add(LabelEvent, f.Events)
	return g
}

// ParseGazetteer decodes a YAML gazetteer.
func ParseGazetteer(data []byte) (*Gazetteer, error) {
	var f GazetteerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse gazetteer: %w", err)
	}
	g := NewGazetteer(f)
	if g.Len() == 0 {
		return nil, fmt.Errorf("gazetteer has no entries")
	}
	return g, nil
}

// LoadGazetteer reads a YAML gazetteer from path.
func LoadGazetteer(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gazetteer: %w", err)
	}
	return ParseGazetteer(data)
}

// Len returns the number of phrases.
func (g *Gazetteer) Len() int {
	if g == nil {
		return 0
	}
	return len(g.entries)
}

type span struct {
	start, end int
	label      string
}

// Find returns the entities in text in order of appearance. Entity text is
// the surface text as it appears in the input.
func (g *Gazetteer) Find(text string) []Entity {
	if g.Len() == 0 || text == "" {
		return nil
	}

	// Match on a lowercased copy; offsets are only reused for the surface
	// text when lowercasing kept the byte length.
	lower := strings.ToLower(text)
	surface := text
	if len(lower) != len(text) {
		surface = lower
	}

	var spans []span
	for _, e := range g.entries {
		for from := 0; from < len(lower); {
			i := strings.Index(lower[from:], e.phrase)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(e.phrase)
			if atBoundary(lower, start, end) {
				spans = append(spans, span{start: start, end: end, label: e.label})
			}
			_, size := utf8.DecodeRuneInString(lower[start:])
			from = start + size
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	var entities []Entity
	lastEnd := -1
	for _, s := range spans {
		if s.start < lastEnd {
			continue
		}
		entities = append(entities, Entity{Text: surface[s.start:s.end], Label: s.label})
		lastEnd = s.end
	}
	return entities
}

func atBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
