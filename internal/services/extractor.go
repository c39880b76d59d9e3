package services

import (
	"context"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"alfredoptarigan/resume-matcher/internal/nlp"
)

// qualificationLabels are the entity labels kept as qualifications.
var qualificationLabels = map[string]struct{}{
	nlp.LabelOrganization: {},
	nlp.LabelLaw:          {},
	nlp.LabelEvent:        {},
}

type SubstanceExtractor interface {
	Extract(ctx context.Context, text string) (*SubstanceSet, *nlp.Document, error)
}

type substanceExtractor struct {
	annotator nlp.Annotator
}

func NewSubstanceExtractor(annotator nlp.Annotator) SubstanceExtractor {
	return &substanceExtractor{annotator: annotator}
}

// Extract lowercases text, annotates it and collects its substance: the
// lemma of every non-stop noun or proper noun, then the surface text of every
// organization, law/certification or event entity.
func (e *substanceExtractor) Extract(ctx context.Context, text string) (*SubstanceSet, *nlp.Document, error) {
	// Caser keeps state between calls, so it is never shared.
	lowered := cases.Lower(language.Und).String(text)

	doc, err := e.annotator.Annotate(ctx, lowered)
	if err != nil {
		return nil, nil, err
	}

	return Substance(doc), doc, nil
}

// Substance collects the substance terms of an annotated document.
func Substance(doc *nlp.Document) *SubstanceSet {
	set := NewSubstanceSet()
	if doc == nil {
		return set
	}

	for _, tok := range doc.Tokens {
		if tok.IsNoun() && !tok.IsStop {
			set.Add(tok.Lemma)
		}
	}

	for _, ent := range doc.Entities {
		if _, ok := qualificationLabels[ent.Label]; ok {
			set.Add(ent.Text)
		}
	}

	return set
}
