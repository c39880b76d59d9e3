package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/services"
)

type MatchHandler struct {
	analyzer       services.Analyzer
	loader         services.DocumentLoader
	storageService services.StorageService
	recorder       services.Recorder
	maxFileSize    int64
	keepUploads    bool
	log            *zap.Logger
}

type MatchHandlerOptions struct {
	MaxFileSize int64
	KeepUploads bool
}

// NewMatchHandler creates the match handler. recorder may be nil, in which
// case results are not persisted.
func NewMatchHandler(
	analyzer services.Analyzer,
	loader services.DocumentLoader,
	storageService services.StorageService,
	recorder services.Recorder,
	opts MatchHandlerOptions,
	log *zap.Logger,
) *MatchHandler {
	return &MatchHandler{
		analyzer:       analyzer,
		loader:         loader,
		storageService: storageService,
		recorder:       recorder,
		maxFileSize:    opts.MaxFileSize,
		keepUploads:    opts.KeepUploads,
		log:            logger.Component(log, "match_handler"),
	}
}

// HandleMatch handles POST /match
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	jobDesc := c.FormValue("job_desc")
	if isBlank(jobDesc) {
		return badRequest(c, "job_desc is required")
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return badRequest(c, "resume file is required")
	}

	if h.maxFileSize > 0 && file.Size > h.maxFileSize {
		return badRequest(c, fmt.Sprintf("resume file too large. Max size: %d bytes", h.maxFileSize))
	}

	// Save file
	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		if services.IsInputError(err) {
			return badRequest(c, err.Error())
		}
		h.log.Error("failed to save upload", zap.Error(err))
		return processingFailed(c)
	}

	if !h.keepUploads {
		defer func() {
			if err := h.storageService.DeleteFile(filename); err != nil {
				h.log.Warn("failed to delete upload", zap.String("file", filename), zap.Error(err))
			}
		}()
	}

	// Extract résumé text
	resumeText, err := h.loader.LoadText(filePath)
	if err != nil {
		if services.IsInputError(err) {
			h.log.Info("rejected resume", zap.String("file", file.Filename), zap.Error(err))
			return badRequest(c, err.Error())
		}
		h.log.Error("failed to load resume", zap.Error(err))
		return processingFailed(c)
	}

	result, err := h.analyzer.Analyze(c.UserContext(), jobDesc, resumeText)
	if err != nil {
		var inputErr *services.InputError
		if errors.As(err, &inputErr) {
			return badRequest(c, inputErr.Message)
		}
		h.log.Error("analysis failed", zap.Error(err))
		return processingFailed(c)
	}

	// Persisting is best effort and never changes the response.
	if h.recorder != nil {
		h.recorder.Submit(services.HistoryRecord{
			FileName:       file.Filename,
			FileSizeKB:     len(resumeText) / 1024,
			ResumeText:     resumeText,
			JobDescription: jobDesc,
			Result:         *result,
		})
	}

	return c.JSON(result)
}
