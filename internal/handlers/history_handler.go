package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/nlp"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

const maxHistoryLimit = 100

type HistoryHandler struct {
	repo         repositories.AnalysisRepository
	index        services.HistoryIndex
	embedder     nlp.Embedder
	defaultLimit int
	log          *zap.Logger
}

// NewHistoryHandler creates the history handler. index and embedder may be
// nil, which disables the similar-analyses endpoint.
func NewHistoryHandler(
	repo repositories.AnalysisRepository,
	index services.HistoryIndex,
	embedder nlp.Embedder,
	defaultLimit int,
	log *zap.Logger,
) *HistoryHandler {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &HistoryHandler{
		repo:         repo,
		index:        index,
		embedder:     embedder,
		defaultLimit: defaultLimit,
		log:          logger.Component(log, "history_handler"),
	}
}

func (h *HistoryHandler) limit(c *fiber.Ctx) (int, bool) {
	limit := c.QueryInt("limit", h.defaultLimit)
	if limit <= 0 || limit > maxHistoryLimit {
		return 0, false
	}
	return limit, true
}

// HandleList handles GET /history
func (h *HistoryHandler) HandleList(c *fiber.Ctx) error {
	limit, ok := h.limit(c)
	if !ok {
		return badRequest(c, "limit must be between 1 and 100")
	}

	analyses, err := h.repo.ListRecent(c.UserContext(), limit)
	if err != nil {
		h.log.Error("failed to list history", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "failed to load history")
	}

	entries := make([]models.HistoryEntry, 0, len(analyses))
	for i := range analyses {
		entries = append(entries, models.NewHistoryEntry(&analyses[i]))
	}

	return c.JSON(models.HistoryResponse{
		History: entries,
		Count:   len(entries),
	})
}

// HandleGet handles GET /history/:id
func (h *HistoryHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid analysis ID format")
	}

	analysis, err := h.repo.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrAnalysisNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Analysis not found")
		}
		h.log.Error("failed to load analysis", zap.String("analysis_id", id.String()), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "failed to load analysis")
	}

	return c.JSON(models.NewHistoryEntry(analysis))
}

// HandleSimilar handles GET /history/similar
func (h *HistoryHandler) HandleSimilar(c *fiber.Ctx) error {
	if h.index == nil || h.embedder == nil {
		return errorJSON(c, fiber.StatusNotFound, "history index is not enabled")
	}

	jobDesc := c.Query("job_desc")
	if isBlank(jobDesc) {
		return badRequest(c, "job_desc is required")
	}

	limit, ok := h.limit(c)
	if !ok {
		return badRequest(c, "limit must be between 1 and 100")
	}

	ctx := c.UserContext()

	embedding, err := h.embedder.GenerateEmbedding(ctx, jobDesc)
	if err != nil {
		h.log.Error("failed to embed job description", zap.Error(err))
		return processingFailed(c)
	}

	hits, err := h.index.SearchSimilar(ctx, embedding, limit)
	if err != nil {
		h.log.Error("failed to search history index", zap.Error(err))
		return processingFailed(c)
	}

	scores := make(map[uuid.UUID]float32, len(hits))
	ids := make([]uuid.UUID, 0, len(hits))
	for _, hit := range hits {
		id, err := uuid.Parse(hit.AnalysisID)
		if err != nil {
			h.log.Warn("skipping malformed index entry", zap.String("analysis_id", hit.AnalysisID))
			continue
		}
		scores[id] = hit.Score
		ids = append(ids, id)
	}

	analyses, err := h.repo.FindByIDs(ctx, ids)
	if err != nil {
		h.log.Error("failed to load similar analyses", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "failed to load history")
	}

	entries := make([]models.SimilarHistoryEntry, 0, len(analyses))
	for i := range analyses {
		entries = append(entries, models.SimilarHistoryEntry{
			HistoryEntry: models.NewHistoryEntry(&analyses[i]),
			Score:        scores[analyses[i].ID],
		})
	}

	return c.JSON(models.SimilarHistoryResponse{
		History: entries,
		Count:   len(entries),
	})
}
