// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentLoader: Reads manuals from the documents directory
//   - Chunker: Splits page text into retrieval-sized chunks
//   - EmbeddingService: Generates vector embeddings (Gemini)
//   - LLMService: Generates grounded answers (Gemini)
//   - VectorStore: Chunk and embedding persistence plus similarity search (SQLite)
//   - ConfigStore: Application configuration
//   - PromptStore: LLM prompt templates
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
