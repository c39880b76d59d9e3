package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/app"
	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/nlp"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the similar-history index from stored analyses",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runReindex(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)

	reindexCmd.Flags().Int("batch-size", 100, "analyses loaded per database query")
	reindexCmd.Flags().Bool("prune", false, "also delete indexed analyses that are no longer stored")
}

type reindexStats struct {
	indexed int
	failed  int
	pruned  int
}

func runReindex(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	if !cfg.HistoryIndexEnabled() {
		return errors.New("history index needs QDRANT_URL and GEMINI_API_KEY")
	}

	batchSize, _ := cmd.Flags().GetInt("batch-size")
	prune, _ := cmd.Flags().GetBool("prune")

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		return err
	}
	repo := repositories.NewAnalysisRepository(db)

	core, err := app.NewCore(ctx, cfg, log)
	if err != nil {
		return err
	}

	index, err := app.NewHistoryIndex(ctx, cfg, log)
	if err != nil {
		return err
	}

	log.Info("starting history reindex", zap.String("collection", cfg.Qdrant.Collection), zap.Bool("prune", prune))

	stats, err := reindexHistory(ctx, repo, index, core.Gemini, batchSize, prune, log)
	if err != nil {
		return err
	}

	log.Info("reindex summary",
		zap.Int("indexed", stats.indexed),
		zap.Int("failed", stats.failed),
		zap.Int("pruned", stats.pruned),
	)

	if stats.failed > 0 {
		return errors.New("some analyses failed to index, check the logs above")
	}
	return nil
}

// reindexHistory embeds every stored analysis into index. Analyses that fail
// are counted and skipped. With prune, points of deleted analyses are removed
// afterwards.
func reindexHistory(
	ctx context.Context,
	repo repositories.AnalysisRepository,
	index services.HistoryIndex,
	embedder nlp.Embedder,
	batchSize int,
	prune bool,
	log *zap.Logger,
) (reindexStats, error) {
	var stats reindexStats

	err := repo.ListAll(ctx, batchSize, func(batch []models.AnalysisResult) error {
		for _, a := range batch {
			if a.JobDescription == nil {
				log.Warn("analysis without job description, skipping", zap.String("analysis_id", a.ID.String()))
				stats.failed++
				continue
			}

			err := services.IndexAnalysis(ctx, index, embedder,
				a.ID.String(), a.JobDescription.Title, a.JobDescription.Description, a.MatchPercent)
			if err != nil {
				log.Warn("failed to index analysis", zap.String("analysis_id", a.ID.String()), zap.Error(err))
				stats.failed++
				continue
			}
			stats.indexed++
		}

		log.Info("progress", zap.Int("indexed", stats.indexed), zap.Int("failed", stats.failed))
		return ctx.Err()
	})
	if err != nil {
		return stats, err
	}

	if prune {
		stats.pruned, err = services.PruneHistoryIndex(ctx, index, repo)
		if err != nil {
			return stats, err
		}
	}

	return stats, nil
}
