package models

import "time"

// StatusAnalysisComplete is the fixed status label of every MatchResult.
const StatusAnalysisComplete = "Targeted Skills & Qualifications Analysis Complete"

// MatchResult is the answer to one résumé/job description comparison.
type MatchResult struct {
	MatchPercent float64  `json:"match_percent"`
	Found        []string `json:"found"`
	Missing      []string `json:"missing"`
	Status       string   `json:"status"`

	// Scoring details, not part of the response body.
	KeywordScore  float64 `json:"-"`
	SemanticScore float64 `json:"-"`
	MatchedTotal  int     `json:"-"`
	MissingTotal  int     `json:"-"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HistoryEntry struct {
	ID            string    `json:"id"`
	MatchPercent  float64   `json:"match_percent"`
	MatchedSkills []string  `json:"matched_skills"`
	MissingSkills []string  `json:"missing_skills"`
	MatchedCount  int       `json:"matched_count"`
	MissingCount  int       `json:"missing_count"`
	Status        string    `json:"status"`
	FileName      string    `json:"file_name"`
	JobTitle      string    `json:"job_title"`
	CreatedAt     time.Time `json:"created_at"`
}

type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
	Count   int            `json:"count"`
}

type SimilarHistoryEntry struct {
	HistoryEntry
	Score float32 `json:"score"`
}

type SimilarHistoryResponse struct {
	History []SimilarHistoryEntry `json:"history"`
	Count   int                   `json:"count"`
}

// NewHistoryEntry flattens an analysis and its relations for the history
// endpoints.
func NewHistoryEntry(a *AnalysisResult) HistoryEntry {
	entry := HistoryEntry{
		ID:            a.ID.String(),
		MatchPercent:  a.MatchPercent,
		MatchedSkills: nonNil(a.MatchedSkills),
		MissingSkills: nonNil(a.MissingSkills),
		MatchedCount:  a.MatchedCount,
		MissingCount:  a.MissingCount,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
	}
	if a.Resume != nil {
		entry.FileName = a.Resume.FileName
	}
	if a.JobDescription != nil {
		entry.JobTitle = a.JobDescription.Title
	}
	return entry
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
