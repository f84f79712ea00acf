package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
)

func chunk(filename string, seq int, embedding []float64) domain.Chunk {
	return domain.Chunk{
		Content:             "chunk content",
		SourceFilename:      filename,
		SequenceIndex:       seq,
		TotalChunksInSource: 1,
		Embedding:           embedding,
	}
}

func TestSearchThresholdAndTopK(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Init(ctx, 2))

	require.NoError(t, s.Upsert(ctx, []domain.Chunk{
		chunk("a.pdf", 0, []float64{1, 0}),       // sim 1.0 against query
		chunk("a.pdf", 1, []float64{1, 0.2}),     // high
		chunk("a.pdf", 2, []float64{1, 0.5}),     // medium
		chunk("a.pdf", 3, []float64{0.8, 0.6}),   // lower
		chunk("a.pdf", 4, []float64{0, 1}),       // orthogonal, below threshold
		chunk("a.pdf", 5, []float64{-1, 0}),      // opposite
	}))

	matches, err := s.Search(ctx, []float64{1, 0}, 0.5, 3)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	for i, m := range matches {
		assert.Greater(t, m.Similarity, 0.5)
		assert.Equal(t, i, m.Rank)
		if i > 0 {
			assert.LessOrEqual(t, m.Similarity, matches[i-1].Similarity)
		}
	}
	assert.InDelta(t, 1.0, matches[0].Similarity, 1e-9)
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Init(ctx, 2))

	matches, err := s.Search(ctx, []float64{1, 0}, 0.5, 3)
	require.NoError(t, err)
	assert.Empty(t, matches)

	// Populated index where nothing clears the threshold.
	require.NoError(t, s.Upsert(ctx, []domain.Chunk{chunk("a.pdf", 0, []float64{0, 1})}))
	matches, err = s.Search(ctx, []float64{1, 0}, 0.5, 3)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestUpsertRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Init(ctx, 3))

	ch := domain.Chunk{
		Content:             "section 73 committee",
		SourceFilename:      "mcs-act.pdf",
		SequenceIndex:       2,
		TotalChunksInSource: 7,
		Embedding:           []float64{0.3, 0.4, 0.5},
	}
	require.NoError(t, s.Upsert(ctx, []domain.Chunk{ch}))

	matches, err := s.Search(ctx, ch.Embedding, 0.5, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.InDelta(t, 1.0, matches[0].Similarity, 1e-9)
	assert.Equal(t, ch.Content, matches[0].Chunk.Content)
	assert.Equal(t, ch.Citation(), matches[0].Chunk.Citation())
	assert.False(t, matches[0].Chunk.CreatedAt.IsZero())
}

func TestUpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Init(ctx, 2))

	require.NoError(t, s.Upsert(ctx, []domain.Chunk{chunk("a.pdf", 0, []float64{1, 0})}))
	require.NoError(t, s.Upsert(ctx, []domain.Chunk{chunk("a.pdf", 0, []float64{0.9, 0.1})}))
	assert.Equal(t, 1, s.Len())
}

func TestUpsertDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Init(ctx, 3))

	err := s.Upsert(ctx, []domain.Chunk{chunk("a.pdf", 0, []float64{1, 0})})
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestDeleteSource(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Init(ctx, 2))

	require.NoError(t, s.Upsert(ctx, []domain.Chunk{
		chunk("a.pdf", 0, []float64{1, 0}),
		chunk("a.pdf", 1, []float64{1, 0}),
		chunk("b.pdf", 0, []float64{1, 0}),
	}))
	require.NoError(t, s.DeleteSource(ctx, "a.pdf"))

	assert.Equal(t, 1, s.Len())
	matches, err := s.Search(ctx, []float64{1, 0}, 0.5, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "b.pdf", matches[0].Chunk.SourceFilename)
}
