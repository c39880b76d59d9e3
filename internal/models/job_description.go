package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultJobTitle      = "Backend Analysis"
	InputModeDescription = "description"
)

type JobDescription struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	InputMode   string    `gorm:"type:text;not null;default:'description'" json:"input_mode"`
	CreatedAt   time.Time `json:"created_at"`
}

func (JobDescription) TableName() string {
	return "job_descriptions"
}

func (j *JobDescription) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
