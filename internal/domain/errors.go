package domain

import "errors"

// Sentinel errors for the answering pipeline. Callers match them with
// errors.Is; the serving layer maps each to a distinct user-visible failure.
var (
	// ErrInvalidInput indicates an empty or malformed question.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBadChunkConfig indicates unusable chunking parameters
	// (overlap not strictly smaller than chunk size). Fatal at startup.
	ErrBadChunkConfig = errors.New("bad chunking configuration")

	// ErrExtraction indicates a source file could not be read or parsed.
	// Per-document: the rest of an ingestion batch continues.
	ErrExtraction = errors.New("text extraction failed")

	// ErrEmbeddingUnavailable indicates the embedding model could not be
	// reached. Fatal for the affected ingestion document; retried once for
	// queries before surfacing.
	ErrEmbeddingUnavailable = errors.New("embedding model unavailable")

	// ErrIndexUnavailable indicates the vector store is unreachable or
	// rejected the connection. Never silently turned into an empty result.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrModelsUnavailable indicates every configured completion provider
	// failed for one question, the fallback included.
	ErrModelsUnavailable = errors.New("all completion models unavailable")
)
