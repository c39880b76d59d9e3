// Package nlp provides the linguistic annotation engine: tokenization with
// part-of-speech tags, lemmas and stop-word flags, named entities, and a
// vector-space similarity between annotated documents.
package nlp

import "context"

// POS is a coarse part-of-speech category.
type POS string

const (
	POSNoun         POS = "NOUN"
	POSProperNoun   POS = "PROPN"
	POSVerb         POS = "VERB"
	POSAdjective    POS = "ADJ"
	POSAdverb       POS = "ADV"
	POSPronoun      POS = "PRON"
	POSDeterminer   POS = "DET"
	POSAdposition   POS = "ADP"
	POSAuxiliary    POS = "AUX"
	POSConjunction  POS = "CCONJ"
	POSNumber       POS = "NUM"
	POSParticle     POS = "PART"
	POSInterjection POS = "INTJ"
	POSPunctuation  POS = "PUNCT"
	POSSymbol       POS = "SYM"
	POSOther        POS = "X"
)

// Entity labels.
const (
	LabelOrganization = "ORG"
	LabelLaw          = "LAW"
	LabelEvent        = "EVENT"
	LabelPerson       = "PERSON"
	LabelGeoPolitical = "GPE"
)

// Token is a single annotated token.
type Token struct {
	Text   string `json:"text"`
	Lemma  string `json:"lemma"`
	POS    POS    `json:"pos"`
	IsStop bool   `json:"is_stop"`
}

// IsNoun reports whether the token is a common or proper noun.
func (t Token) IsNoun() bool {
	return t.POS == POSNoun || t.POS == POSProperNoun
}

// Entity is a named entity span.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Document is the annotation of one text. It is built once by an Annotator
// and must not be modified afterwards.
type Document struct {
	Text     string   `json:"text"`
	Tokens   []Token  `json:"tokens"`
	Entities []Entity `json:"entities"`
}

// Empty reports whether the document has no tokens.
func (d *Document) Empty() bool {
	return d == nil || len(d.Tokens) == 0
}

// Annotator turns raw text into a Document.
type Annotator interface {
	Annotate(ctx context.Context, text string) (*Document, error)
}

// SimilarityScorer computes a vector-space similarity between two documents.
// The value is raw: it is usually in [0, 1] but callers must not rely on it.
type SimilarityScorer interface {
	Similarity(ctx context.Context, a, b *Document) (float64, error)
}

// Engine is the full annotation service consumed by the matcher. It is
// created once at startup and shared read-only between requests.
type Engine interface {
	Annotator
	SimilarityScorer
	Backend() string
}

type engine struct {
	Annotator
	SimilarityScorer
	backend string
}

// NewEngine combines an annotator and a similarity scorer into an Engine.
func NewEngine(annotator Annotator, scorer SimilarityScorer, backend string) Engine {
	return &engine{
		Annotator:        annotator,
		SimilarityScorer: scorer,
		backend:          backend,
	}
}

func (e *engine) Backend() string {
	return e.backend
}
