// Package ingest runs the offline pipeline that turns source files into
// searchable chunks: extract, chunk, embed, index.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/logger"
)

// DefaultWorkers bounds how many documents are processed concurrently.
// Embedding throughput, not CPU, is the limiting factor.
const DefaultWorkers = 4

// Failure records one document the pipeline could not ingest.
type Failure struct {
	Filename string
	Err      error
}

// Summary is the outcome of one ingestion run. A run with failures is not
// an error: every other document has still been indexed.
type Summary struct {
	DocumentsProcessed int
	ChunksWritten      int
	Failures           []Failure
}

// ProgressFunc is called after each document finishes, successfully or not.
type ProgressFunc func(filename string, done, total int)

// Pipeline ingests documents into a vector store.
type Pipeline struct {
	extractor domain.Extractor
	chunker   domain.Chunker
	embedder  domain.Embedder
	store     domain.VectorStore
	workers   int
	progress  ProgressFunc
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkers sets how many documents are processed concurrently.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithProgress registers a callback invoked as each document completes.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pipeline) { p.progress = fn }
}

// NewPipeline wires the four ingestion stages together.
func NewPipeline(extractor domain.Extractor, chunker domain.Chunker, embedder domain.Embedder, store domain.VectorStore, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
		workers:   DefaultWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run ingests the given files. Documents are independent: a failure in one
// is recorded in the summary and the rest continue. The index is prepared
// for the embedder's dimension before any document is processed; if that
// fails nothing is ingested.
func (p *Pipeline) Run(ctx context.Context, paths []string) (Summary, error) {
	if err := p.store.Init(ctx, p.embedder.Dimension()); err != nil {
		return Summary{}, err
	}

	var (
		mu      sync.Mutex
		summary Summary
		done    int
	)

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup
	for _, path := range paths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			written, err := p.ingestFile(ctx, path)

			mu.Lock()
			done++
			if err != nil {
				logger.Warn("ingestion of %s failed: %v", path, err)
				summary.Failures = append(summary.Failures, Failure{Filename: filepath.Base(path), Err: err})
			} else {
				summary.DocumentsProcessed++
				summary.ChunksWritten += written
			}
			progress, current := p.progress, done
			mu.Unlock()

			if progress != nil {
				progress(filepath.Base(path), current, len(paths))
			}
		}(path)
	}
	wg.Wait()

	sort.Slice(summary.Failures, func(i, j int) bool {
		return summary.Failures[i].Filename < summary.Failures[j].Filename
	})
	logger.Info("ingestion finished: %d documents, %d chunks, %d failures",
		summary.DocumentsProcessed, summary.ChunksWritten, len(summary.Failures))
	return summary, nil
}

// ingestFile runs one document through the full pipeline and returns the
// number of chunks written.
func (p *Pipeline) ingestFile(ctx context.Context, path string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	text, err := p.extractor.ExtractText(path)
	if err != nil {
		return 0, err
	}

	filename := filepath.Base(path)
	chunks, err := p.chunker.Chunk(domain.SourceDocument{Filename: filename, Text: text})
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%w: %s contains no extractable text", domain.ErrExtraction, filename)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, err
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	now := time.Now().UTC()
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
		chunks[i].CreatedAt = now
	}

	if err := p.writeChunks(ctx, filename, chunks); err != nil {
		return 0, err
	}
	logger.Debug("ingested %s: %d chunks", filename, len(chunks))
	return len(chunks), nil
}

// writeChunks replaces the document's chunk set in the store, retrying the
// whole replace once if the index is unavailable.
func (p *Pipeline) writeChunks(ctx context.Context, filename string, chunks []domain.Chunk) error {
	err := p.replaceChunks(ctx, filename, chunks)
	if err == nil || !errors.Is(err, domain.ErrIndexUnavailable) {
		return err
	}
	logger.Warn("index write for %s failed, retrying once: %v", filename, err)
	return p.replaceChunks(ctx, filename, chunks)
}

func (p *Pipeline) replaceChunks(ctx context.Context, filename string, chunks []domain.Chunk) error {
	if err := p.store.DeleteSource(ctx, filename); err != nil {
		return err
	}
	return p.store.Upsert(ctx, chunks)
}
