// Package mcp provides an MCP (Model Context Protocol) server adapter for
// ManualQA. It enables AI assistants like Claude to answer questions from
// the locally indexed PDF manuals.
package mcp

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")
