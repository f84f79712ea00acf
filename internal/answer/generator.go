package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/llm"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/logger"
)

// Default generation options, matching the original deployment.
const (
	DefaultMaxTokens   = 1024
	DefaultTemperature = 0.3
)

// Generator produces grounded answers by walking an ordered list of
// completion providers: each is tried exactly once, the first success wins.
// There are no per-provider retries; the next provider is the retry.
type Generator struct {
	providers []llm.Provider
	opts      llm.Options
}

// NewGenerator creates a generator over the given providers, in failover
// order. At least one provider is required.
func NewGenerator(providers ...llm.Provider) (*Generator, error) {
	if len(providers) == 0 {
		return nil, errors.New("answer: at least one completion provider is required")
	}
	return &Generator{
		providers: providers,
		opts:      llm.Options{MaxTokens: DefaultMaxTokens, Temperature: DefaultTemperature},
	}, nil
}

// Generate builds a grounded prompt from the matches and the question and
// obtains a completion. An empty match set still reaches the model: the
// prompt then tells it to admit the information is unavailable. When every
// provider fails, no partial answer is returned.
func (g *Generator) Generate(ctx context.Context, question string, matches []domain.RetrievedMatch) (domain.Answer, error) {
	system, user := BuildPrompt(question, matches)

	var failures []string
	for _, p := range g.providers {
		text, err := p.Complete(ctx, system, user, g.opts)
		if err != nil {
			logger.Warn("completion via %s failed: %v", p.Name(), err)
			failures = append(failures, fmt.Sprintf("%s: %v", p.Name(), err))
			continue
		}

		citations := make([]domain.Citation, len(matches))
		for i, m := range matches {
			citations[i] = m.Chunk.Citation()
		}
		logger.Debug("answer generated by %s with %d citations", p.Name(), len(citations))
		return domain.Answer{
			Text:      SimplifyLegalTerms(strings.TrimSpace(text)),
			Citations: citations,
			ModelUsed: p.Name(),
		}, nil
	}

	return domain.Answer{}, fmt.Errorf("%w: %s", domain.ErrModelsUnavailable, strings.Join(failures, "; "))
}
