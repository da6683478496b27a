package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/manualqa-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the indexed manuals"`
	Sources  int    `json:"sources,omitempty" jsonschema:"number of manual excerpts to retrieve (0 = configured default)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Sources []SourceOutput `json:"sources"`
}

// SourceOutput cites one manual excerpt the answer was grounded on.
type SourceOutput struct {
	File    string  `json:"file"`
	Page    int     `json:"page"`
	Excerpt string  `json:"excerpt"`
	Score   float64 `json:"score"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question from the indexed PDF manuals, citing file and page",
	}, s.handleAsk)
}

// handleAsk handles the ask tool invocation. The first call in a fresh
// process may take a while when the vector index has to be built.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Answer.Answer(ctx, input.Question, input.Sources)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer.Text,
		Sources: make([]SourceOutput, len(answer.Sources)),
	}

	for i := range answer.Sources {
		src := answer.Sources[i]
		output.Sources[i] = SourceOutput{
			File:    src.Chunk.SourceBase(),
			Page:    src.Chunk.Page,
			Excerpt: src.Chunk.Excerpt(domain.ExcerptLength),
			Score:   src.Score,
		}
	}

	return nil, output, nil
}
