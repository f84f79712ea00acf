package domain

import "time"

// SourceDocument is a single input file loaded during ingestion. It exists
// only long enough to produce chunks and is never stored itself.
type SourceDocument struct {
	Filename string
	Text     string
}

// Chunk is the atomic retrievable unit: a run of words cut from a source
// document, together with the metadata needed to cite it back.
type Chunk struct {
	Content             string
	SourceFilename      string
	SequenceIndex       int
	TotalChunksInSource int
	Embedding           []float64
	CreatedAt           time.Time
}

// Citation identifies a chunk for display alongside an answer.
type Citation struct {
	SourceFilename      string `json:"source_filename"`
	SequenceIndex       int    `json:"sequence_index"`
	TotalChunksInSource int    `json:"total_chunks_in_source"`
}

// Citation returns the chunk's citation metadata.
func (c Chunk) Citation() Citation {
	return Citation{
		SourceFilename:      c.SourceFilename,
		SequenceIndex:       c.SequenceIndex,
		TotalChunksInSource: c.TotalChunksInSource,
	}
}

// RetrievedMatch is a chunk returned by a similarity search, scoped to a
// single query. Similarity is cosine, in [-1, 1]. Rank is zero-based and
// ascends with decreasing similarity.
type RetrievedMatch struct {
	Chunk      Chunk
	Similarity float64
	Rank       int
}

// Answer is the result of one answered question: the generated text, the
// citations for the context the model was shown, and which model produced it.
type Answer struct {
	Text      string     `json:"answer"`
	Citations []Citation `json:"citations"`
	ModelUsed string     `json:"model_used"`
}
