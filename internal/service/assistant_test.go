package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/answer"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/llm"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/retrieval"
)

type countingEmbedder struct {
	calls int
}

func (c *countingEmbedder) Name() string   { return "counting" }
func (c *countingEmbedder) Dimension() int { return 2 }

func (c *countingEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	c.calls++
	return []float64{1, 0}, nil
}

func (c *countingEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{1, 0}
	}
	return out, nil
}

type cannedStore struct {
	matches  []domain.RetrievedMatch
	err      error
	lastTopK int
}

func (c *cannedStore) Init(context.Context, int) error              { return nil }
func (c *cannedStore) Upsert(context.Context, []domain.Chunk) error { return nil }
func (c *cannedStore) DeleteSource(context.Context, string) error   { return nil }

func (c *cannedStore) Search(_ context.Context, _ []float64, _ float64, topK int) ([]domain.RetrievedMatch, error) {
	c.lastTopK = topK
	return c.matches, c.err
}

type cannedProvider struct {
	text string
	err  error
}

func (c *cannedProvider) Name() string { return "canned" }

func (c *cannedProvider) Complete(context.Context, string, string, llm.Options) (string, error) {
	return c.text, c.err
}

func newAssistant(t *testing.T, emb *countingEmbedder, store *cannedStore, provider llm.Provider) *Assistant {
	t.Helper()
	gen, err := answer.NewGenerator(provider)
	require.NoError(t, err)
	return NewAssistant(retrieval.NewRetriever(emb, store), gen)
}

func auditMatch() domain.RetrievedMatch {
	return domain.RetrievedMatch{
		Chunk: domain.Chunk{
			Content:             "The auditor shall audit the accounts of every society at least once a year.",
			SourceFilename:      "mcs-act.pdf",
			SequenceIndex:       7,
			TotalChunksInSource: 20,
		},
		Similarity: 0.88,
		Rank:       0,
	}
}

func TestAnswerQuestion(t *testing.T) {
	emb := &countingEmbedder{}
	store := &cannedStore{matches: []domain.RetrievedMatch{auditMatch()}}
	a := newAssistant(t, emb, store, &cannedProvider{text: "Accounts are audited yearly."})

	res, err := a.AnswerQuestion(context.Background(), "how often are accounts audited?")
	require.NoError(t, err)
	assert.Equal(t, "Accounts are audited yearly.", res.Text)
	assert.Equal(t, "canned", res.ModelUsed)
	require.Len(t, res.Citations, 1)
	assert.Equal(t, "mcs-act.pdf", res.Citations[0].SourceFilename)

	require.NotEmpty(t, res.RelatedLinks)
	assert.Equal(t, "Audit & Compliance", res.RelatedLinks[0].Title)
}

func TestAnswerQuestionRejectsBlankQuestionBeforeAnyCall(t *testing.T) {
	emb := &countingEmbedder{}
	store := &cannedStore{}
	a := newAssistant(t, emb, store, &cannedProvider{text: "unused"})

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := a.AnswerQuestion(context.Background(), q)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Zero(t, emb.calls, "no network call for invalid input")
}

func TestAnswerQuestionNoMatches(t *testing.T) {
	emb := &countingEmbedder{}
	store := &cannedStore{}
	a := newAssistant(t, emb, store, &cannedProvider{text: "I don't have this specific information."})

	res, err := a.AnswerQuestion(context.Background(), "something unrelated")
	require.NoError(t, err)
	assert.Empty(t, res.Citations)
	require.Len(t, res.RelatedLinks, 1)
	assert.Equal(t, "General Information", res.RelatedLinks[0].Title)
}

func TestAnswerQuestionPropagatesFailures(t *testing.T) {
	emb := &countingEmbedder{}
	store := &cannedStore{err: fmt.Errorf("%w: refused", domain.ErrIndexUnavailable)}
	a := newAssistant(t, emb, store, &cannedProvider{text: "unused"})

	_, err := a.AnswerQuestion(context.Background(), "q")
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)

	store.err = nil
	a = newAssistant(t, emb, store, &cannedProvider{err: fmt.Errorf("down")})
	_, err = a.AnswerQuestion(context.Background(), "q")
	assert.ErrorIs(t, err, domain.ErrModelsUnavailable)
}

func TestSelectExportChunks(t *testing.T) {
	emb := &countingEmbedder{}
	store := &cannedStore{matches: []domain.RetrievedMatch{auditMatch()}}
	a := newAssistant(t, emb, store, &cannedProvider{text: "unused"})

	matches, err := a.SelectExportChunks(context.Background(), "audit rules")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.Equal(t, ExportTopK, store.lastTopK)

	_, err = a.SelectExportChunks(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
