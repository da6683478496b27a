// Package domain defines the core business entities for manualqa.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: One PDF manual in the indexed library
//   - Page: One page of text extracted from a manual
//   - Chunk: A retrievable text segment with provenance metadata
//   - Answer: A synthesized response with its cited sources
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
