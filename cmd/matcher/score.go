package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/app"
	"alfredoptarigan/resume-matcher/internal/models"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a résumé file against a job description",
	Example: `  matcher score --resume cv.pdf --job job.txt
  cat job.txt | matcher score --resume cv.docx --job - --json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runScore(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resume", "r", "", "résumé file (.pdf, .txt or .docx)")
	scoreCmd.Flags().StringP("job", "j", "", "job description text file, or - for stdin")
	scoreCmd.Flags().Bool("json", false, "print the result as JSON")

	scoreCmd.MarkFlagRequired("resume")
	scoreCmd.MarkFlagRequired("job")
}

func runScore(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	resumePath, _ := cmd.Flags().GetString("resume")
	jobPath, _ := cmd.Flags().GetString("job")
	asJSON, _ := cmd.Flags().GetBool("json")

	jobDesc, err := readJob(jobPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	core, err := app.NewCore(ctx, cfg, log)
	if err != nil {
		return err
	}

	resumeText, err := core.Loader.LoadText(resumePath)
	if err != nil {
		return err
	}

	result, err := core.Analyzer.Analyze(ctx, jobDesc, resumeText)
	if err != nil {
		return err
	}

	log.Debug("scored", zap.String("resume", resumePath), zap.Float64("match_percent", result.MatchPercent))

	return printResult(cmd.OutOrStdout(), result, asJSON)
}

func readJob(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading job description: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.New("job description is empty")
	}
	return string(data), nil
}

func printResult(w io.Writer, result *models.MatchResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(w, "Match:   %.2f%%\n", result.MatchPercent)
	fmt.Fprintf(w, "Found:   %s\n", joinOrDash(result.Found))
	fmt.Fprintf(w, "Missing: %s\n", joinOrDash(result.Missing))
	fmt.Fprintf(w, "Status:  %s\n", result.Status)
	return nil
}

func joinOrDash(terms []string) string {
	if len(terms) == 0 {
		return "-"
	}
	return strings.Join(terms, ", ")
}
