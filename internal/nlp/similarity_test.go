package nlp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docOf(lemmas ...string) *Document {
	d := &Document{}
	for _, l := range lemmas {
		d.Text += l + " "
		d.Tokens = append(d.Tokens, Token{Text: l, Lemma: l, POS: POSNoun})
	}
	return d
}

func TestLexicalSimilarity(t *testing.T) {
	ctx := context.Background()
	var s LexicalSimilarity

	got, err := s.Similarity(ctx, docOf("python", "aws"), docOf("aws", "python"))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)

	got, err = s.Similarity(ctx, docOf("python"), docOf("python", "aws", "sql", "go"))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-9)

	got, err = s.Similarity(ctx, docOf("python"), docOf("java"))
	require.NoError(t, err)
	assert.Zero(t, got)

	got, err = s.Similarity(ctx, &Document{}, docOf("java"))
	require.NoError(t, err)
	assert.Zero(t, got)

	punct := &Document{Tokens: []Token{{Text: ".", Lemma: ".", POS: POSPunctuation}}}
	got, err = s.Similarity(ctx, punct, punct)
	require.NoError(t, err)
	assert.Zero(t, got)
}

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[text], nil
}

func TestEmbeddingSimilarity(t *testing.T) {
	ctx := context.Background()
	a := &Document{Text: "a", Tokens: []Token{{Text: "a"}}}
	b := &Document{Text: "b", Tokens: []Token{{Text: "b"}}}

	s := NewEmbeddingSimilarity(&stubEmbedder{vectors: map[string][]float32{
		"a": {1, 0},
		"b": {1, 1},
	}})
	got, err := s.Similarity(ctx, a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.7071, got, 1e-4)

	got, err = s.Similarity(ctx, &Document{}, b)
	require.NoError(t, err)
	assert.Zero(t, got)

	boom := errors.New("boom")
	_, err = NewEmbeddingSimilarity(&stubEmbedder{err: boom}).Similarity(ctx, a, b)
	assert.ErrorIs(t, err, boom)
}

func TestCosine32(t *testing.T) {
	got, err := Cosine32([]float32{1, 2}, []float32{-1, -2})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, got, 1e-9)

	got, err = Cosine32([]float32{0, 0}, []float32{1, 2})
	require.NoError(t, err)
	assert.Zero(t, got)

	_, err = Cosine32([]float32{1}, []float32{1, 2})
	assert.Error(t, err)
}
