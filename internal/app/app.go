// Package app wires the configured services together for the binaries.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/nlp"
	"alfredoptarigan/resume-matcher/internal/services"
)

// Core holds the services every entry point needs to score résumés.
type Core struct {
	Engine   nlp.Engine
	Analyzer services.Analyzer
	Loader   services.DocumentLoader
	// Gemini is nil when no API key is configured.
	Gemini services.GeminiService
}

// NewCore loads the annotation engine once and builds the analyzer on top of
// it. The engine is read-only afterwards and shared by all requests.
func NewCore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Core, error) {
	var gemini services.GeminiService
	if cfg.Gemini.APIKey != "" {
		var err error
		gemini, err = services.NewGeminiService(ctx, services.GeminiOptions{
			APIKey:            cfg.Gemini.APIKey,
			EmbedModel:        cfg.Gemini.EmbedModel,
			RequestsPerSecond: cfg.Gemini.RequestsPerSecond,
			BreakerFailures:   cfg.Gemini.BreakerFailures,
			BreakerTimeout:    cfg.Gemini.BreakerTimeout,
		}, log)
		if err != nil {
			return nil, err
		}
	}

	engine, err := NewEngine(cfg.NLP, gemini)
	if err != nil {
		return nil, err
	}
	log.Info("annotation engine loaded", zap.String("similarity", engine.Backend()))

	analyzer := services.NewAnalyzer(
		services.NewSubstanceExtractor(engine),
		services.NewMatchScorer(engine, services.DefaultScoringConfig(), log),
		log,
	)

	return &Core{
		Engine:   engine,
		Analyzer: analyzer,
		Loader:   services.NewDocumentLoader(),
		Gemini:   gemini,
	}, nil
}

// NewEngine builds the annotation engine. The gemini backend needs an
// embedder; embedder may be nil for the lexical backend.
func NewEngine(cfg config.NLPConfig, embedder nlp.Embedder) (nlp.Engine, error) {
	gazetteer := nlp.DefaultGazetteer()
	if cfg.GazetteerPath != "" {
		var err error
		gazetteer, err = nlp.LoadGazetteer(cfg.GazetteerPath)
		if err != nil {
			return nil, err
		}
	}

	lemmatizer, err := nlp.NewEnglishLemmatizer()
	if err != nil {
		return nil, err
	}

	tagger, err := nlp.NewProseTagger()
	if err != nil {
		return nil, err
	}

	annotator := nlp.NewAnnotator(tagger, lemmatizer, gazetteer, cfg.ChunkSize)

	var scorer nlp.SimilarityScorer
	switch cfg.SimilarityBackend {
	case nlp.BackendLexical:
		scorer = nlp.LexicalSimilarity{}
	case nlp.BackendGemini:
		if embedder == nil {
			return nil, fmt.Errorf("similarity backend %q needs GEMINI_API_KEY", cfg.SimilarityBackend)
		}
		scorer = nlp.NewEmbeddingSimilarity(embedder)
	default:
		return nil, fmt.Errorf("unknown similarity backend %q", cfg.SimilarityBackend)
	}

	return nlp.NewEngine(annotator, scorer, cfg.SimilarityBackend), nil
}

// NewHistoryIndex connects to Qdrant when configured. It returns nil without
// error when the index is disabled.
func NewHistoryIndex(ctx context.Context, cfg *config.Config, log *zap.Logger) (services.HistoryIndex, error) {
	if !cfg.HistoryIndexEnabled() {
		return nil, nil
	}

	index, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		cfg.Qdrant.VectorSize,
		log,
	)
	if err != nil {
		return nil, err
	}

	if err := index.InitCollection(ctx); err != nil {
		return nil, err
	}
	return index, nil
}
