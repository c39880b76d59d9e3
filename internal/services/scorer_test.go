package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/models"
)

func score(t *testing.T, sim *fixedSimilarity, job, resume *SubstanceSet) *models.MatchResult {
	t.Helper()
	s := NewMatchScorer(newTestEngine(sim), DefaultScoringConfig(), zap.NewNop())
	result, err := s.Score(context.Background(), job, nil, resume, nil)
	require.NoError(t, err)
	return result
}

func TestScoreMatchedAndMissingPartitionJob(t *testing.T) {
	tests := []struct {
		name   string
		job    []string
		resume []string
	}{
		{name: "partial", job: []string{"python", "aws", "sql"}, resume: []string{"python", "java"}},
		{name: "disjoint", job: []string{"python"}, resume: []string{"java"}},
		{name: "superset resume", job: []string{"go"}, resume: []string{"go", "rust", "c"}},
		{name: "empty resume", job: []string{"go", "sql"}, resume: nil},
		{name: "empty job", job: nil, resume: []string{"go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := NewSubstanceSet(tt.job...)
			result := score(t, &fixedSimilarity{value: 0.5}, job, NewSubstanceSet(tt.resume...))

			union := NewSubstanceSet(result.Found...)
			for _, m := range result.Missing {
				assert.False(t, union.Has(m), "term %q both matched and missing", m)
				union.Add(m)
			}
			assert.True(t, union.Equal(job))
		})
	}
}

func TestScoreIdenticalSets(t *testing.T) {
	set := NewSubstanceSet("python", "developer", "aws")
	result := score(t, &fixedSimilarity{value: 1}, set, set)

	assert.Equal(t, 1.0, result.KeywordScore)
	assert.Equal(t, 100.0, result.MatchPercent)
	assert.Equal(t, []string{"python", "developer", "aws"}, result.Found)
	assert.Empty(t, result.Missing)
	assert.Equal(t, models.StatusAnalysisComplete, result.Status)
}

func TestScoreEmptyJob(t *testing.T) {
	sim := &fixedSimilarity{value: 1}
	result := score(t, sim, NewSubstanceSet(), NewSubstanceSet("python"))

	assert.Zero(t, result.KeywordScore)
	assert.Zero(t, result.SemanticScore)
	assert.Equal(t, 0.0, result.MatchPercent)
	assert.Zero(t, sim.calls)
	assert.NotNil(t, result.Found)
	assert.NotNil(t, result.Missing)
}

func TestScoreNoOverlap(t *testing.T) {
	sim := &fixedSimilarity{value: 0.9}
	job := NewSubstanceSet("python", "aws")
	result := score(t, sim, job, NewSubstanceSet("cooking", "gardening"))

	assert.Equal(t, 0.0, result.MatchPercent)
	assert.Zero(t, result.SemanticScore)
	assert.Empty(t, result.Found)
	assert.Equal(t, []string{"python", "aws"}, result.Missing)
	assert.Zero(t, sim.calls, "similarity is skipped without matches")
}

func TestScoreEmptyResume(t *testing.T) {
	job := NewSubstanceSet("python", "aws", "sql")
	result := score(t, &fixedSimilarity{value: 1}, job, NewSubstanceSet())

	assert.Empty(t, result.Found)
	assert.Equal(t, job.Terms(), result.Missing)
	assert.Zero(t, result.KeywordScore)
	assert.Zero(t, result.SemanticScore)
	assert.Equal(t, 0.0, result.MatchPercent)
}

func TestScoreBlend(t *testing.T) {
	job := NewSubstanceSet("python", "aws", "sql", "docker")
	resume := NewSubstanceSet("python", "aws")
	result := score(t, &fixedSimilarity{value: 0.8}, job, resume)

	// 0.5*0.6 + 0.8*0.4 = 0.62
	assert.Equal(t, 0.5, result.KeywordScore)
	assert.Equal(t, 0.8, result.SemanticScore)
	assert.InDelta(t, 62.0, result.MatchPercent, 1e-9)
}

func TestScoreCustomWeights(t *testing.T) {
	job := NewSubstanceSet("python", "aws")
	resume := NewSubstanceSet("python")
	s := NewMatchScorer(newTestEngine(&fixedSimilarity{value: 1}), ScoringConfig{
		KeywordWeight:  1,
		SemanticWeight: 0,
		MaxListedTerms: 1,
	}, nil)

	result, err := s.Score(context.Background(), job, nil, resume, nil)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, result.MatchPercent, 1e-9)
	assert.Len(t, result.Missing, 1)
}

func TestScoreClampsPercent(t *testing.T) {
	set := NewSubstanceSet("python", "aws")

	high := score(t, &fixedSimilarity{value: 3.5}, set, set)
	assert.Equal(t, 100.0, high.MatchPercent)
	assert.Equal(t, 3.5, high.SemanticScore)

	low := score(t, &fixedSimilarity{value: -5}, set, set)
	assert.Equal(t, 0.0, low.MatchPercent)
}

func TestScoreTruncatesListsButScoresFullSets(t *testing.T) {
	var terms []string
	for i := 0; i < 20; i++ {
		terms = append(terms, fmt.Sprintf("skill%02d", i))
	}
	job := NewSubstanceSet(terms...)
	resume := NewSubstanceSet(terms[:18]...)

	result := score(t, &fixedSimilarity{value: 0}, job, resume)

	assert.Equal(t, terms[:MaxListedTerms], result.Found)
	assert.Equal(t, terms[18:], result.Missing)
	assert.Equal(t, 18, result.MatchedTotal)
	assert.Equal(t, 2, result.MissingTotal)
	assert.InDelta(t, 0.9, result.KeywordScore, 1e-9)
	assert.InDelta(t, 54.0, result.MatchPercent, 1e-9)
}

func TestScoreSimilarityFailures(t *testing.T) {
	set := NewSubstanceSet("python")
	boom := errors.New("boom")

	for name, sim := range map[string]*fixedSimilarity{
		"error": {err: boom},
		"nan":   {value: math.NaN()},
		"inf":   {value: math.Inf(1)},
	} {
		t.Run(name, func(t *testing.T) {
			s := NewMatchScorer(newTestEngine(sim), DefaultScoringConfig(), zap.NewNop())
			_, err := s.Score(context.Background(), set, nil, set, nil)
			assert.ErrorIs(t, err, ErrProcessingFailed)
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0, want: 0},
		{in: 0.123456, want: 12.35},
		{in: 0.5, want: 50},
		{in: 1, want: 100},
		{in: 1.4, want: 100},
		{in: -0.2, want: 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percent(tt.in), 1e-9, "Percent(%v)", tt.in)
	}
}

func TestKeywordScore(t *testing.T) {
	assert.Zero(t, KeywordScore(0, 0))
	assert.Equal(t, 0.25, KeywordScore(1, 4))
	assert.Equal(t, 1.0, KeywordScore(3, 3))
}
