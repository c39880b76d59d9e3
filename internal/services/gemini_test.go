package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewGeminiServiceRequiresKey(t *testing.T) {
	_, err := NewGeminiService(context.Background(), GeminiOptions{}, zap.NewNop())
	assert.Error(t, err)
}

func TestGeminiGenerateEmbedding(t *testing.T) {
	var gotModel, gotText string
	embed := func(_ context.Context, model, text string) ([]float32, error) {
		gotModel, gotText = model, text
		return []float32{0.1, 0.2}, nil
	}

	g := newGeminiService(embed, GeminiOptions{}, zap.NewNop())

	vec, err := g.GenerateEmbedding(context.Background(), strings.Repeat("a", maxEmbedChars+10))
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, vec)
	assert.Equal(t, DefaultEmbedModel, gotModel)
	assert.Len(t, gotText, maxEmbedChars)
}

func TestGeminiTruncatesByRune(t *testing.T) {
	var gotText string
	embed := func(_ context.Context, _, text string) ([]float32, error) {
		gotText = text
		return []float32{1}, nil
	}
	g := newGeminiService(embed, GeminiOptions{}, zap.NewNop())

	_, err := g.GenerateEmbedding(context.Background(), "a"+strings.Repeat("é", maxEmbedChars))
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(gotText))
	assert.Equal(t, maxEmbedChars, utf8.RuneCountInString(gotText))
}

func TestGeminiBreakerOpens(t *testing.T) {
	calls := 0
	boom := errors.New("unavailable")
	embed := func(context.Context, string, string) ([]float32, error) {
		calls++
		return nil, boom
	}

	g := newGeminiService(embed, GeminiOptions{BreakerFailures: 2, BreakerTimeout: time.Minute}, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := g.GenerateEmbedding(ctx, "python")
		assert.ErrorIs(t, err, boom)
	}

	_, err := g.GenerateEmbedding(ctx, "python")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, calls, "open circuit does not call the API")
}

func TestGeminiRateLimitHonoursContext(t *testing.T) {
	embed := func(context.Context, string, string) ([]float32, error) {
		return []float32{1}, nil
	}
	g := newGeminiService(embed, GeminiOptions{RequestsPerSecond: 0.001}, zap.NewNop())

	_, err := g.GenerateEmbedding(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = g.GenerateEmbedding(ctx, "second")
	assert.Error(t, err)
}
