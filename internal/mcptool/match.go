// Package mcptool exposes the analyzer as MCP tools.
package mcptool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

const ToolMatchResume = "match_resume"

type MatchInput struct {
	JobDescription string `json:"job_description" jsonschema:"full job description text"`
	Resume         string `json:"resume" jsonschema:"plain résumé text"`
}

// Register adds the match_resume tool to server.
func Register(server *mcp.Server, analyzer services.Analyzer) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolMatchResume,
		Description: "Score a résumé against a job description. Extracts skills (nouns) and qualifications (organizations, certifications, events) from both texts and blends keyword overlap (60%) with semantic similarity (40%). Returns match_percent (0–100), found and missing job terms (up to 15 each).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input MatchInput) (*mcp.CallToolResult, models.MatchResult, error) {
		result, err := analyzer.Analyze(ctx, input.JobDescription, input.Resume)
		if err != nil {
			if services.IsInputError(err) {
				return nil, models.MatchResult{}, err
			}
			return nil, models.MatchResult{}, services.ErrProcessingFailed
		}
		return nil, *result, nil
	})
}
