// Package chunker splits extracted document text into overlapping
// word-bounded chunks.
package chunker

import (
	"fmt"
	"strings"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
)

// DefaultChunkSize is the target number of words per chunk.
const DefaultChunkSize = 500

// DefaultOverlap is the number of words consecutive chunks share.
const DefaultOverlap = 50

// WordChunker cuts text into fixed-size word windows with overlap. Chunk i
// starts at word offset i*(chunkSize-overlap); the last chunk may be shorter.
type WordChunker struct {
	chunkSize int
	overlap   int
}

// NewWordChunker validates the parameters once at construction so a bad
// configuration fails at startup rather than mid-ingestion.
func NewWordChunker(chunkSize, overlap int) (*WordChunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive", domain.ErrBadChunkConfig, chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap %d must not be negative", domain.ErrBadChunkConfig, overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", domain.ErrBadChunkConfig, overlap, chunkSize)
	}
	return &WordChunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// Chunk splits the document on whitespace and windows the resulting word
// sequence. A document no longer than the chunk size yields exactly one
// chunk; an empty document yields none. Every chunk carries its sequence
// index and the document's total chunk count for citation display.
func (c *WordChunker) Chunk(doc domain.SourceDocument) ([]domain.Chunk, error) {
	words := strings.Fields(doc.Text)
	if len(words) == 0 {
		return nil, nil
	}

	var chunks []domain.Chunk
	if len(words) <= c.chunkSize {
		chunks = []domain.Chunk{{
			Content:        strings.Join(words, " "),
			SourceFilename: doc.Filename,
			SequenceIndex:  0,
		}}
	} else {
		stride := c.chunkSize - c.overlap
		for start := 0; ; start += stride {
			end := start + c.chunkSize
			if end > len(words) {
				end = len(words)
			}
			chunks = append(chunks, domain.Chunk{
				Content:        strings.Join(words[start:end], " "),
				SourceFilename: doc.Filename,
				SequenceIndex:  len(chunks),
			})
			if end == len(words) {
				break
			}
		}
	}

	for i := range chunks {
		chunks[i].TotalChunksInSource = len(chunks)
	}
	return chunks, nil
}
