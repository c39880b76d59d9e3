package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalysisStatus string

const (
	AnalysisStatusCompleted AnalysisStatus = "completed"
)

// AnalysisResult is one stored analysis. Matched and missing lists hold the
// terms as they were reported to the caller.
type AnalysisResult struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ResumeID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"resume_id"`
	JobDescriptionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"job_description_id"`
	MatchPercent     float64        `gorm:"not null" json:"match_percent"`
	MatchedSkills    []string       `gorm:"type:text;serializer:json" json:"matched_skills"`
	MissingSkills    []string       `gorm:"type:text;serializer:json" json:"missing_skills"`
	MatchedCount     int            `json:"matched_count"`
	MissingCount     int            `json:"missing_count"`
	Status           AnalysisStatus `gorm:"type:text;not null;default:'completed'" json:"status"`
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`

	// Relations
	Resume         *Resume         `gorm:"foreignKey:ResumeID" json:"-"`
	JobDescription *JobDescription `gorm:"foreignKey:JobDescriptionID" json:"-"`
}

func (AnalysisResult) TableName() string {
	return "analysis_results"
}

func (a *AnalysisResult) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
