package services

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/nlp"
)

const (
	// KeywordWeight and SemanticWeight blend lexical overlap with semantic
	// relevance in the final score.
	KeywordWeight  = 0.6
	SemanticWeight = 0.4

	// MaxListedTerms caps the matched and missing lists of a MatchResult.
	MaxListedTerms = 15

	// MaxPercent caps the reported percentage. A similarity above 1 can push
	// the blended score past 100; the cap is intentional.
	MaxPercent = 100.0
)

type ScoringConfig struct {
	KeywordWeight  float64
	SemanticWeight float64
	MaxListedTerms int
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		KeywordWeight:  KeywordWeight,
		SemanticWeight: SemanticWeight,
		MaxListedTerms: MaxListedTerms,
	}
}

type MatchScorer interface {
	Score(ctx context.Context, jobSubstance *SubstanceSet, jobDoc *nlp.Document, resumeSubstance *SubstanceSet, resumeDoc *nlp.Document) (*models.MatchResult, error)
}

type matchScorer struct {
	engine nlp.Engine
	cfg    ScoringConfig
	log    *zap.Logger
}

func NewMatchScorer(engine nlp.Engine, cfg ScoringConfig, log *zap.Logger) MatchScorer {
	return &matchScorer{
		engine: engine,
		cfg:    cfg,
		log:    logger.Component(log, "scorer"),
	}
}

// Score compares the résumé substance against the job substance. Only job
// terms are ever matched or missing; extra résumé terms are ignored. The
// documents are the ones Extract returned alongside each set.
func (s *matchScorer) Score(ctx context.Context, jobSubstance *SubstanceSet, jobDoc *nlp.Document, resumeSubstance *SubstanceSet, resumeDoc *nlp.Document) (*models.MatchResult, error) {
	matched := jobSubstance.Intersect(resumeSubstance)
	missing := jobSubstance.Difference(resumeSubstance)

	keyword := KeywordScore(matched.Len(), jobSubstance.Len())

	semantic := 0.0
	if matched.Len() > 0 {
		var err error
		semantic, err = s.semanticScore(ctx, matched, jobSubstance)
		if err != nil {
			return nil, err
		}
	}

	final := keyword*s.cfg.KeywordWeight + semantic*s.cfg.SemanticWeight
	percent := Percent(final)

	s.log.Debug("scored",
		zap.Int("job_tokens", len(docTokens(jobDoc))),
		zap.Int("resume_tokens", len(docTokens(resumeDoc))),
		zap.Int("job_terms", jobSubstance.Len()),
		zap.Int("matched", matched.Len()),
		zap.Float64("keyword_score", keyword),
		zap.Float64("semantic_score", semantic),
		zap.Float64("match_percent", percent),
	)

	return &models.MatchResult{
		MatchPercent:  percent,
		Found:         matched.Head(s.cfg.MaxListedTerms),
		Missing:       missing.Head(s.cfg.MaxListedTerms),
		Status:        models.StatusAnalysisComplete,
		KeywordScore:  keyword,
		SemanticScore: semantic,
		MatchedTotal:  matched.Len(),
		MissingTotal:  missing.Len(),
	}, nil
}

// semanticScore compares the matched terms with all job terms, each joined
// into a synthetic text and annotated the same way as the inputs.
func (s *matchScorer) semanticScore(ctx context.Context, matched, job *SubstanceSet) (float64, error) {
	foundDoc, err := s.engine.Annotate(ctx, matched.Join(" "))
	if err != nil {
		return 0, processingError("annotate matched terms", err)
	}
	jobDoc, err := s.engine.Annotate(ctx, job.Join(" "))
	if err != nil {
		return 0, processingError("annotate job terms", err)
	}

	sim, err := s.engine.Similarity(ctx, foundDoc, jobDoc)
	if err != nil {
		return 0, processingError("similarity", err)
	}
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0, processingError("similarity", fmt.Errorf("non-finite similarity %v", sim))
	}
	return sim, nil
}

// KeywordScore is the fraction of job terms found in the résumé, or 0 when
// the job has no terms.
func KeywordScore(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}

// Percent converts a blended score to a percentage rounded to two decimals
// and clamped into [0, MaxPercent].
func Percent(score float64) float64 {
	p := math.Round(score*100*100) / 100
	if p > MaxPercent {
		return MaxPercent
	}
	if p < 0 {
		return 0
	}
	return p
}

func docTokens(d *nlp.Document) []nlp.Token {
	if d == nil {
		return nil
	}
	return d.Tokens
}
