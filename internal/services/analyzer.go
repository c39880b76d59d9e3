package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
)

// Analyzer is the single entry point for scoring a résumé against a job
// description.
type Analyzer interface {
	Analyze(ctx context.Context, jobDescription, resumeText string) (*models.MatchResult, error)
}

type analyzer struct {
	extractor SubstanceExtractor
	scorer    MatchScorer
	log       *zap.Logger
}

func NewAnalyzer(extractor SubstanceExtractor, scorer MatchScorer, log *zap.Logger) Analyzer {
	return &analyzer{
		extractor: extractor,
		scorer:    scorer,
		log:       logger.Component(log, "analyzer"),
	}
}

// Analyze extracts the substance of both texts and scores the résumé against
// the job description. An empty résumé is valid and scores 0.
func (a *analyzer) Analyze(ctx context.Context, jobDescription, resumeText string) (*models.MatchResult, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, NewInputError("job description text is required")
	}

	jobSubstance, jobDoc, err := a.extractor.Extract(ctx, jobDescription)
	if err != nil {
		return nil, processingError("extract job description", err)
	}

	resumeSubstance, resumeDoc, err := a.extractor.Extract(ctx, resumeText)
	if err != nil {
		return nil, processingError("extract resume", err)
	}

	result, err := a.scorer.Score(ctx, jobSubstance, jobDoc, resumeSubstance, resumeDoc)
	if err != nil {
		return nil, err
	}

	a.log.Info("analysis complete",
		zap.Int("job_chars", len(jobDescription)),
		zap.Int("resume_chars", len(resumeText)),
		zap.Int("job_terms", jobSubstance.Len()),
		zap.Int("resume_terms", resumeSubstance.Len()),
		zap.Float64("match_percent", result.MatchPercent),
	)

	return result, nil
}
