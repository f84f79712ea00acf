package domain

import "context"

// Extractor pulls plain text out of a source file.
type Extractor interface {
	ExtractText(path string) (string, error)
}

// Chunker splits extracted document text into retrievable chunks.
type Chunker interface {
	Chunk(doc SourceDocument) ([]Chunk, error)
}

// Embedder converts free text into a fixed-length dense vector. The
// dimension must be identical for every chunk and every query in a
// deployment; a mismatch means the index is corrupt, not that a call failed.
type Embedder interface {
	Name() string
	Dimension() int
	// Embed embeds a single query text.
	Embed(ctx context.Context, text string) ([]float64, error)
	// EmbedBatch embeds document chunks, preserving input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// VectorStore persists embedded chunks and answers top-k cosine similarity
// queries. Implementations must return an empty slice, not an error, when
// nothing clears the threshold: callers need to tell "no matches" apart from
// "store unreachable".
type VectorStore interface {
	Init(ctx context.Context, dimension int) error
	// Upsert writes or replaces a document's chunk set in one call,
	// idempotent on (source filename, sequence index).
	Upsert(ctx context.Context, chunks []Chunk) error
	// Search returns at most topK matches with similarity strictly above
	// threshold, descending.
	Search(ctx context.Context, vector []float64, threshold float64, topK int) ([]RetrievedMatch, error)
	// DeleteSource removes every chunk derived from the named source file,
	// so re-ingestion is a full replace.
	DeleteSource(ctx context.Context, filename string) error
}
