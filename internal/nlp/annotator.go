package nlp

import (
	"context"
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
)

// TaggedToken is a token with its tagger tag, before lemmatization.
type TaggedToken struct {
	Text string
	Tag  string
}

// Tagger tokenizes and part-of-speech tags text, and returns any named
// entities its own model recognizes.
type Tagger interface {
	Tag(text string) ([]TaggedToken, []Entity, error)
}

// Lemmatizer returns the dictionary base form of a word.
type Lemmatizer interface {
	Lemma(word string) string
}

type proseTagger struct {
	model *prose.Model
}

// NewProseTagger loads prose's averaged perceptron tagger and entity
// extractor once. The model is only read while tagging, so the Tagger is
// safe for concurrent use.
func NewProseTagger() (Tagger, error) {
	doc, err := prose.NewDocument("", prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("failed to load tagging model: %w", err)
	}
	return &proseTagger{model: doc.Model}, nil
}

// Tag implements Tagger.
func (t *proseTagger) Tag(text string) ([]TaggedToken, []Entity, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false), prose.UsingModel(t.model))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to tag text: %w", err)
	}

	tokens := doc.Tokens()
	tagged := make([]TaggedToken, 0, len(tokens))
	for _, tok := range tokens {
		tagged = append(tagged, TaggedToken{Text: tok.Text, Tag: tok.Tag})
	}

	var entities []Entity
	for _, ent := range doc.Entities() {
		entities = append(entities, Entity{Text: ent.Text, Label: ent.Label})
	}

	return tagged, entities, nil
}

// NewEnglishLemmatizer loads the English golem dictionary.
func NewEnglishLemmatizer() (Lemmatizer, error) {
	l, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load english lemmatizer: %w", err)
	}
	return l, nil
}

type annotator struct {
	tagger     Tagger
	lemmatizer Lemmatizer
	gazetteer  *Gazetteer
	chunkSize  int
}

// NewAnnotator builds an Annotator. A nil gazetteer disables phrase-based
// entities; chunkSize <= 0 uses DefaultChunkSize.
func NewAnnotator(tagger Tagger, lemmatizer Lemmatizer, gazetteer *Gazetteer, chunkSize int) Annotator {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &annotator{
		tagger:     tagger,
		lemmatizer: lemmatizer,
		gazetteer:  gazetteer,
		chunkSize:  chunkSize,
	}
}

// Annotate implements Annotator.
func (a *annotator) Annotate(ctx context.Context, text string) (*Document, error) {
	doc := &Document{Text: text}
	if strings.TrimSpace(text) == "" {
		return doc, nil
	}

	for _, chunk := range ChunkText(text, a.chunkSize) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tagged, entities, err := a.tagger.Tag(chunk)
		if err != nil {
			return nil, err
		}

		for _, t := range tagged {
			doc.Tokens = append(doc.Tokens, a.token(t))
		}
		doc.Entities = append(doc.Entities, a.gazetteer.Find(chunk)...)
		doc.Entities = append(doc.Entities, entities...)
	}

	return doc, nil
}

func (a *annotator) token(t TaggedToken) Token {
	pos := coarsePOS(t.Tag, t.Text)
	lemma := t.Text
	switch pos {
	case POSPunctuation, POSSymbol, POSNumber:
	default:
		if l := a.lemmatizer.Lemma(t.Text); l != "" {
			lemma = l
		}
	}
	return Token{
		Text:   t.Text,
		Lemma:  lemma,
		POS:    pos,
		IsStop: IsStopWord(t.Text),
	}
}
