// Package service is the query-side orchestrator: the single entry point
// serving layers use to get a grounded, cited answer for a question.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/answer"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/resources"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/retrieval"
)

// ExportTopK is how many passages the cited-sections export pulls, wider
// than the answering default so the export has fuller context.
const ExportTopK = 5

// Result is one answered question together with the related official links.
type Result struct {
	domain.Answer
	RelatedLinks []resources.Group `json:"related_links"`
}

// Assistant answers questions about the indexed documents.
type Assistant struct {
	retriever *retrieval.Retriever
	generator *answer.Generator
}

// NewAssistant wires a retriever and an answer generator together.
func NewAssistant(retriever *retrieval.Retriever, generator *answer.Generator) *Assistant {
	return &Assistant{retriever: retriever, generator: generator}
}

// AnswerQuestion retrieves context for the question and generates a cited
// answer. A blank question fails with ErrInvalidInput before any network
// call is made. No retrieved context is not an error: the model is told to
// admit the gap and the answer carries no citations.
func (a *Assistant) AnswerQuestion(ctx context.Context, question string) (Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Result{}, fmt.Errorf("%w: question must not be empty", domain.ErrInvalidInput)
	}

	matches, err := a.retriever.Retrieve(ctx, question)
	if err != nil {
		return Result{}, err
	}

	ans, err := a.generator.Generate(ctx, question, matches)
	if err != nil {
		return Result{}, err
	}

	var contexts []string
	for _, m := range matches {
		contexts = append(contexts, m.Chunk.Content)
	}
	return Result{
		Answer:       ans,
		RelatedLinks: resources.RelevantLinks(question, strings.Join(contexts, " ")),
	}, nil
}

// SelectExportChunks returns the passages an export of cited sections should
// include, ranked by similarity. The same threshold applies as for
// answering; only the limit is wider.
func (a *Assistant) SelectExportChunks(ctx context.Context, question string) ([]domain.RetrievedMatch, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question must not be empty", domain.ErrInvalidInput)
	}
	return a.retriever.RetrieveTopK(ctx, question, ExportTopK)
}
