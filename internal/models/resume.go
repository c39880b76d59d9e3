package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Resume struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FileName      string    `gorm:"type:text;not null" json:"file_name"`
	ExtractedText string    `gorm:"type:text" json:"extracted_text,omitempty"`
	FileSizeKB    int       `json:"file_size_kb"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Resume) TableName() string {
	return "resumes"
}

func (r *Resume) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
