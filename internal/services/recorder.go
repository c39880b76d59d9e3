package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/nlp"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

const (
	maxStoredResumeChars = 5000
	maxStoredJobChars    = 1000

	jobPreviewChars = 80
	pruneBatchSize  = 500
)

// HistoryRecord is one finished analysis waiting to be persisted.
type HistoryRecord struct {
	FileName       string
	FileSizeKB     int
	ResumeText     string
	JobDescription string
	JobTitle       string
	Result         models.MatchResult
}

// SaveResult reports the outcome of persisting one record. Callers log a
// failure and move on; it never reaches the client.
type SaveResult struct {
	AnalysisID uuid.UUID
	Err        error
}

func (r SaveResult) OK() bool {
	return r.Err == nil
}

// Recorder persists analyses in the background.
type Recorder interface {
	Start(ctx context.Context)
	Stop()
	Submit(rec HistoryRecord) bool
	Record(ctx context.Context, rec HistoryRecord) SaveResult
}

type recorder struct {
	repo        repositories.AnalysisRepository
	index       HistoryIndex
	embedder    nlp.Embedder
	queue       chan HistoryRecord
	concurrency int
	wg          sync.WaitGroup
	mu          sync.RWMutex
	stopped     bool
	log         *zap.Logger
}

// NewRecorder creates a Recorder. index and embedder may be nil, which
// disables history indexing.
func NewRecorder(
	repo repositories.AnalysisRepository,
	index HistoryIndex,
	embedder nlp.Embedder,
	concurrency int,
	queueSize int,
	log *zap.Logger,
) Recorder {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	return &recorder{
		repo:        repo,
		index:       index,
		embedder:    embedder,
		queue:       make(chan HistoryRecord, queueSize),
		concurrency: concurrency,
		log:         logger.Component(log, "recorder"),
	}
}

// Start implements Recorder.
func (r *recorder) Start(ctx context.Context) {
	r.log.Info("starting recorder", zap.Int("workers", r.concurrency))

	for i := 0; i < r.concurrency; i++ {
		r.wg.Add(1)
		go r.processRecords(ctx, i+1)
	}
}

// Stop implements Recorder. Records already queued are still written.
func (r *recorder) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	close(r.queue)
	r.mu.Unlock()

	r.wg.Wait()
	r.log.Info("recorder stopped")
}

// Submit implements Recorder. It never blocks: when the queue is full or the
// recorder is stopped the record is dropped.
func (r *recorder) Submit(rec HistoryRecord) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stopped {
		r.log.Warn("recorder stopped, dropping analysis", zap.String("file", rec.FileName))
		return false
	}

	select {
	case r.queue <- rec:
		return true
	default:
		r.log.Warn("recorder queue full, dropping analysis", zap.String("file", rec.FileName))
		return false
	}
}

func (r *recorder) processRecords(ctx context.Context, workerID int) {
	defer r.wg.Done()

	for rec := range r.queue {
		res := r.Record(ctx, rec)
		if !res.OK() {
			r.log.Error("failed to save analysis",
				zap.Int("worker", workerID),
				zap.String("file", rec.FileName),
				zap.String("job_preview", logger.TruncateForLog(rec.JobDescription, jobPreviewChars)),
				zap.Error(res.Err),
			)
			continue
		}
		r.log.Debug("analysis saved",
			zap.Int("worker", workerID),
			zap.String("analysis_id", res.AnalysisID.String()),
		)
	}
}

// Record implements Recorder. It saves synchronously and, when an index is
// configured, indexes the saved analysis. Indexing failures are logged and do
// not change the result.
func (r *recorder) Record(ctx context.Context, rec HistoryRecord) SaveResult {
	title := rec.JobTitle
	if title == "" {
		title = models.DefaultJobTitle
	}

	resume := &models.Resume{
		FileName:      rec.FileName,
		ExtractedText: truncateRunes(rec.ResumeText, maxStoredResumeChars),
		FileSizeKB:    rec.FileSizeKB,
	}
	job := &models.JobDescription{
		Title:       title,
		Description: truncateRunes(rec.JobDescription, maxStoredJobChars),
		InputMode:   models.InputModeDescription,
	}
	analysis := &models.AnalysisResult{
		MatchPercent:  rec.Result.MatchPercent,
		MatchedSkills: rec.Result.Found,
		MissingSkills: rec.Result.Missing,
		MatchedCount:  len(rec.Result.Found),
		MissingCount:  len(rec.Result.Missing),
		Status:        models.AnalysisStatusCompleted,
	}

	if err := r.repo.Save(ctx, resume, job, analysis); err != nil {
		return SaveResult{Err: err}
	}

	// The stored description is embedded so reindexing reproduces the vector.
	if err := IndexAnalysis(ctx, r.index, r.embedder, analysis.ID.String(), title, job.Description, analysis.MatchPercent); err != nil {
		r.log.Warn("failed to index analysis",
			zap.String("analysis_id", analysis.ID.String()),
			zap.Error(err),
		)
	}

	return SaveResult{AnalysisID: analysis.ID}
}

// IndexAnalysis embeds a job description and stores it in the history index.
// It does nothing when index or embedder is nil.
func IndexAnalysis(ctx context.Context, index HistoryIndex, embedder nlp.Embedder, analysisID, title, jobDescription string, percent float64) error {
	if index == nil || embedder == nil {
		return nil
	}

	embedding, err := embedder.GenerateEmbedding(ctx, jobDescription)
	if err != nil {
		return err
	}

	return index.IndexAnalysis(ctx, IndexedAnalysis{
		AnalysisID:   analysisID,
		JobTitle:     title,
		MatchPercent: percent,
	}, embedding)
}

// PruneHistoryIndex deletes indexed analyses that are no longer stored,
// including points whose analysis id is not a UUID. It returns the number of
// deleted points.
func PruneHistoryIndex(ctx context.Context, index HistoryIndex, repo repositories.AnalysisRepository) (int, error) {
	ids, err := index.ListAnalysisIDs(ctx)
	if err != nil {
		return 0, err
	}

	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if u, err := uuid.Parse(id); err == nil {
			parsed = append(parsed, u)
		}
	}

	stored := make(map[uuid.UUID]struct{}, len(parsed))
	for start := 0; start < len(parsed); start += pruneBatchSize {
		end := min(start+pruneBatchSize, len(parsed))
		found, err := repo.FindByIDs(ctx, parsed[start:end])
		if err != nil {
			return 0, err
		}
		for _, a := range found {
			stored[a.ID] = struct{}{}
		}
	}

	pruned := 0
	for _, id := range ids {
		if u, err := uuid.Parse(id); err == nil {
			if _, ok := stored[u]; ok {
				continue
			}
		}
		if err := index.DeleteAnalysis(ctx, id); err != nil {
			return pruned, err
		}
		pruned++
	}
	return pruned, nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
