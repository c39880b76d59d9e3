package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"alfredoptarigan/resume-matcher/internal/logger"
)

const (
	DefaultEmbedModel = "text-embedding-004"

	// maxEmbedChars keeps requests under the embedding model's input limit.
	// It counts runes.
	maxEmbedChars = 40000
)

// GeminiService produces text embeddings. It satisfies nlp.Embedder.
type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type GeminiOptions struct {
	APIKey            string
	EmbedModel        string
	RequestsPerSecond float64
	// BreakerFailures consecutive failures open the circuit for BreakerTimeout.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

type embedFunc func(ctx context.Context, model, text string) ([]float32, error)

type geminiService struct {
	embed      embedFunc
	embedModel string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	log        *zap.Logger
}

func NewGeminiService(ctx context.Context, opts GeminiOptions, log *zap.Logger) (GeminiService, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	embed := func(ctx context.Context, model, text string) ([]float32, error) {
		result, err := client.Models.EmbedContent(ctx, model, genai.Text(text), nil)
		if err != nil {
			return nil, err
		}
		if result == nil || len(result.Embeddings) == 0 {
			return nil, fmt.Errorf("empty embedding result")
		}
		return result.Embeddings[0].Values, nil
	}

	return newGeminiService(embed, opts, log), nil
}

func newGeminiService(embed embedFunc, opts GeminiOptions, log *zap.Logger) *geminiService {
	log = logger.Component(log, "gemini")

	if opts.EmbedModel == "" {
		opts.EmbedModel = DefaultEmbedModel
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 5
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	failures := opts.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "gemini-embed",
		Timeout: opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &geminiService{
		embed:      embed,
		embedModel: opts.EmbedModel,
		limiter:    rate.NewLimiter(limit, 1),
		breaker:    breaker,
		log:        log,
	}
}

// GenerateEmbedding implements GeminiService. While the circuit is open calls
// fail immediately with gobreaker.ErrOpenState.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = truncateRunes(text, maxEmbedChars)

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("embedding rate limit: %w", err)
	}

	out, err := g.breaker.Execute(func() (interface{}, error) {
		return g.embed(ctx, g.embedModel, text)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	return out.([]float32), nil
}
