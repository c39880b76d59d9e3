package nlp

import (
	"context"
	"fmt"
	"math"
)

// Similarity backends.
const (
	BackendLexical = "lexical"
	BackendGemini  = "gemini"
)

// LexicalSimilarity is the cosine of lemma frequency vectors. It needs no
// model and is used when no embedding backend is configured.
type LexicalSimilarity struct{}

// Similarity implements SimilarityScorer.
func (LexicalSimilarity) Similarity(ctx context.Context, a, b *Document) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return cosineCounts(lemmaCounts(a), lemmaCounts(b)), nil
}

func lemmaCounts(d *Document) map[string]float64 {
	counts := make(map[string]float64)
	if d == nil {
		return counts
	}
	for _, t := range d.Tokens {
		if t.POS == POSPunctuation || t.POS == POSSymbol {
			continue
		}
		counts[t.Lemma]++
	}
	return counts
}

func cosineCounts(a, b map[string]float64) float64 {
	var dot, na, nb float64
	for k, av := range a {
		na += av * av
		dot += av * b[k]
	}
	for _, bv := range b {
		nb += bv * bv
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Embedder turns text into a dense vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type embeddingSimilarity struct {
	embedder Embedder
}

// NewEmbeddingSimilarity returns a SimilarityScorer that compares document
// embeddings by cosine.
func NewEmbeddingSimilarity(embedder Embedder) SimilarityScorer {
	return &embeddingSimilarity{embedder: embedder}
}

// Similarity implements SimilarityScorer.
func (s *embeddingSimilarity) Similarity(ctx context.Context, a, b *Document) (float64, error) {
	if a.Empty() || b.Empty() {
		return 0, nil
	}

	va, err := s.embedder.GenerateEmbedding(ctx, a.Text)
	if err != nil {
		return 0, err
	}
	vb, err := s.embedder.GenerateEmbedding(ctx, b.Text)
	if err != nil {
		return 0, err
	}

	return Cosine32(va, vb)
}

// Cosine32 is the cosine similarity of two vectors. A zero vector yields 0.
func Cosine32(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimensions differ: %d != %d", len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		af, bf := float64(a[i]), float64(b[i])
		dot += af * bf
		na += af * af
		nb += bf * bf
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}
