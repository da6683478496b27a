package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for ManualQA resources.
	uriScheme = "manualqa://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource listing the indexed manuals.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "manuals",
		Name:        "manuals",
		Description: "List of all indexed PDF manuals",
		MIMEType:    "application/json",
	}, s.handleManualsResource)

	// Static resource summarising the vector index.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index",
		Name:        "index",
		Description: "Vector index totals and on-disk location",
		MIMEType:    "application/json",
	}, s.handleIndexResource)
}

// handleManualsResource returns a list of all indexed manuals.
func (s *Server) handleManualsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Library == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	manuals, err := s.ports.Library.Manuals(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing manuals: %w", err)
	}

	// Build simplified manual list.
	type manualInfo struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		File      string `json:"file"`
		Pages     int    `json:"pages"`
		IndexedAt string `json:"indexed_at"`
	}

	infos := make([]manualInfo, len(manuals))
	for i, manual := range manuals {
		infos[i] = manualInfo{
			ID:        manual.ID,
			Title:     manual.Title,
			File:      manual.Basename(),
			Pages:     manual.Pages,
			IndexedAt: manual.IngestedAt.UTC().Format(time.RFC3339),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling manuals: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleIndexResource returns totals for the vector index.
func (s *Server) handleIndexResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Library == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "{}",
			}},
		}, nil
	}

	info, err := s.ports.Library.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading index stats: %w", err)
	}

	type indexInfo struct {
		Manuals int    `json:"manuals"`
		Pages   int    `json:"pages"`
		Chunks  int    `json:"chunks"`
		Path    string `json:"path"`
	}

	data, err := json.MarshalIndent(indexInfo{
		Manuals: info.Documents,
		Pages:   info.Pages,
		Chunks:  info.Chunks,
		Path:    info.Path,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling index stats: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
