package services

import (
	"context"
	"strings"

	"alfredoptarigan/resume-matcher/internal/nlp"
)

// stubTagger splits on whitespace, peels trailing commas and periods into
// their own tokens and tags words from a small table, defaulting to NN.
type stubTagger struct {
	entities map[string]string
	err      error
}

var stubTags = map[string]string{
	"looking":     "VBG",
	"for":         "IN",
	"a":           "DT",
	"the":         "DT",
	"with":        "IN",
	"in":          "IN",
	"and":         "CC",
	"experienced": "JJ",
	"certified":   "VBN",
	"strong":      "JJ",
	",":           ",",
	".":           ".",
}

func (s stubTagger) Tag(text string) ([]nlp.TaggedToken, []nlp.Entity, error) {
	if s.err != nil {
		return nil, nil, s.err
	}

	var tokens []nlp.TaggedToken
	var entities []nlp.Entity
	for _, field := range strings.Fields(text) {
		var tail []string
		for len(field) > 1 && strings.ContainsAny(field[len(field)-1:], ",.") {
			tail = append([]string{field[len(field)-1:]}, tail...)
			field = field[:len(field)-1]
		}
		for _, w := range append([]string{field}, tail...) {
			tag, ok := stubTags[w]
			if !ok {
				tag = "NN"
			}
			tokens = append(tokens, nlp.TaggedToken{Text: w, Tag: tag})
			if label, ok := s.entities[w]; ok {
				entities = append(entities, nlp.Entity{Text: w, Label: label})
			}
		}
	}
	return tokens, entities, nil
}

type stubLemmatizer map[string]string

func (m stubLemmatizer) Lemma(word string) string {
	if l, ok := m[word]; ok {
		return l
	}
	return word
}

var testLemmas = stubLemmatizer{
	"developers": "developer",
	"degrees":    "degree",
	"solutions":  "solution",
	"certified":  "certify",
	"looking":    "look",
	"engineers":  "engineer",
}

func newTestAnnotator(tagger nlp.Tagger) nlp.Annotator {
	return nlp.NewAnnotator(tagger, testLemmas, nlp.DefaultGazetteer(), 0)
}

// fixedSimilarity returns the same similarity for any pair of documents.
type fixedSimilarity struct {
	value float64
	err   error
	calls int
}

func (f *fixedSimilarity) Similarity(_ context.Context, _, _ *nlp.Document) (float64, error) {
	f.calls++
	return f.value, f.err
}

func newTestEngine(sim nlp.SimilarityScorer) nlp.Engine {
	return nlp.NewEngine(newTestAnnotator(stubTagger{}), sim, "stub")
}
