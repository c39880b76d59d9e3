package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-matcher/internal/models"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

type AnalysisRepository interface {
	Save(ctx context.Context, resume *models.Resume, job *models.JobDescription, result *models.AnalysisResult) error
	ListRecent(ctx context.Context, limit int) ([]models.AnalysisResult, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.AnalysisResult, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.AnalysisResult, error)
	ListAll(ctx context.Context, batchSize int, fn func([]models.AnalysisResult) error) error
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// Save stores the résumé, the job description and the analysis that links
// them in one transaction.
func (r *analysisRepository) Save(ctx context.Context, resume *models.Resume, job *models.JobDescription, result *models.AnalysisResult) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(resume).Error; err != nil {
			return fmt.Errorf("failed to create resume: %w", err)
		}
		if err := tx.Create(job).Error; err != nil {
			return fmt.Errorf("failed to create job description: %w", err)
		}

		result.ResumeID = resume.ID
		result.JobDescriptionID = job.ID
		if err := tx.Omit("Resume", "JobDescription").Create(result).Error; err != nil {
			return fmt.Errorf("failed to create analysis result: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	result.Resume = resume
	result.JobDescription = job
	return nil
}

func (r *analysisRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Resume", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "file_name", "file_size_kb", "created_at")
		}).
		Preload("JobDescription")
}

func (r *analysisRepository) ListRecent(ctx context.Context, limit int) ([]models.AnalysisResult, error) {
	var results []models.AnalysisResult
	err := r.withRelations(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return results, nil
}

func (r *analysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := r.withRelations(ctx).Where("id = ?", id).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &result, nil
}

// FindByIDs returns the analyses in the order of ids. Unknown ids are skipped.
func (r *analysisRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.AnalysisResult, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []models.AnalysisResult
	if err := r.withRelations(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to find analyses: %w", err)
	}

	byID := make(map[uuid.UUID]models.AnalysisResult, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}

	results := make([]models.AnalysisResult, 0, len(found))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			results = append(results, a)
		}
	}
	return results, nil
}

// ListAll walks every stored analysis in primary key order, batchSize at a
// time.
func (r *analysisRepository) ListAll(ctx context.Context, batchSize int, fn func([]models.AnalysisResult) error) error {
	if batchSize <= 0 {
		batchSize = 100
	}

	var batch []models.AnalysisResult
	err := r.db.WithContext(ctx).
		Preload("JobDescription").
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			return fn(batch)
		}).Error
	if err != nil {
		return fmt.Errorf("failed to walk analyses: %w", err)
	}
	return nil
}
