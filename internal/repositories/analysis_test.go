package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-matcher/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "history.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Resume{}, &models.JobDescription{}, &models.AnalysisResult{}))

	return db
}

func saveAnalysis(t *testing.T, repo AnalysisRepository, fileName string, percent float64, createdAt time.Time) *models.AnalysisResult {
	t.Helper()

	result := &models.AnalysisResult{
		MatchPercent:  percent,
		MatchedSkills: []string{"python"},
		MissingSkills: []string{"aws"},
		MatchedCount:  1,
		MissingCount:  1,
		Status:        models.AnalysisStatusCompleted,
		CreatedAt:     createdAt,
	}
	err := repo.Save(context.Background(),
		&models.Resume{FileName: fileName, ExtractedText: "python developer", FileSizeKB: 1},
		&models.JobDescription{Title: models.DefaultJobTitle, Description: "python and aws", InputMode: models.InputModeDescription},
		result,
	)
	require.NoError(t, err)
	return result
}

func TestAnalysisRepositorySaveAndFind(t *testing.T) {
	repo := NewAnalysisRepository(newTestDB(t))
	ctx := context.Background()

	saved := saveAnalysis(t, repo, "cv.pdf", 55.5, time.Now())
	require.NotEqual(t, uuid.Nil, saved.ID)
	require.NotEqual(t, uuid.Nil, saved.ResumeID)
	require.NotEqual(t, uuid.Nil, saved.JobDescriptionID)

	got, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 55.5, got.MatchPercent)
	assert.Equal(t, []string{"python"}, got.MatchedSkills)
	assert.Equal(t, []string{"aws"}, got.MissingSkills)
	require.NotNil(t, got.Resume)
	assert.Equal(t, "cv.pdf", got.Resume.FileName)
	assert.Empty(t, got.Resume.ExtractedText)
	require.NotNil(t, got.JobDescription)
	assert.Equal(t, models.DefaultJobTitle, got.JobDescription.Title)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrAnalysisNotFound)
}

func TestAnalysisRepositoryListRecent(t *testing.T) {
	repo := NewAnalysisRepository(newTestDB(t))
	base := time.Now().Add(-time.Hour)

	for i, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		saveAnalysis(t, repo, name, float64(i), base.Add(time.Duration(i)*time.Minute))
	}

	recent, err := repo.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c.pdf", recent[0].Resume.FileName)
	assert.Equal(t, "b.pdf", recent[1].Resume.FileName)
}

func TestAnalysisRepositoryFindByIDs(t *testing.T) {
	repo := NewAnalysisRepository(newTestDB(t))
	ctx := context.Background()

	a := saveAnalysis(t, repo, "a.pdf", 10, time.Now())
	b := saveAnalysis(t, repo, "b.pdf", 20, time.Now())

	got, err := repo.FindByIDs(ctx, []uuid.UUID{b.ID, uuid.New(), a.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)

	got, err = repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAnalysisRepositoryListAll(t *testing.T) {
	repo := NewAnalysisRepository(newTestDB(t))
	for i := 0; i < 5; i++ {
		saveAnalysis(t, repo, "cv.pdf", float64(i), time.Now())
	}

	var batches, total int
	err := repo.ListAll(context.Background(), 2, func(batch []models.AnalysisResult) error {
		batches++
		total += len(batch)
		for _, a := range batch {
			assert.NotNil(t, a.JobDescription)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, batches)
	assert.Equal(t, 5, total)
}
