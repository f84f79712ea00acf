// Package answer turns retrieved chunks and a question into a grounded,
// cited answer, failing over across an ordered list of completion models.
package answer

import (
	"fmt"
	"strings"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/domain"
)

// systemPrompt instructs the model to answer only from the supplied context
// in language a society member without legal training can follow.
const systemPrompt = `You are a helpful legal assistant for the Maharashtra Cooperative Societies Act, speaking to regular society members (not lawyers).

IMPORTANT INSTRUCTIONS:
1. Use SIMPLE, everyday language - avoid legal jargon
2. If you must use legal terms, explain them in brackets like: "mutation (transfer of property rights)"
3. Give practical examples from daily society life
4. Break complex answers into numbered steps
5. Always cite the specific Act section number
6. Answer ONLY from the context provided. If the information is not in the context, say "I don't have this specific information in the MCS Act documents I have access to." Do not invent or guess.
7. Be empathetic and helpful - remember users may be stressed about society issues

RESPONSE FORMAT:
- Start with a brief, clear answer (2-3 sentences)
- Then provide detailed explanation
- End with "Relevant Act: Section X of MCS Act"`

// noContextNotice is inserted in place of retrieved passages when the
// search produced nothing; together with instruction 6 above it steers the
// model towards admitting the gap instead of hallucinating.
const noContextNotice = `No supporting passages were found in the MCS Act documents for this question. State that you do not have this information in the documents you have access to, and suggest the user rephrase the question.`

// BuildPrompt assembles the system instruction and the user prompt from the
// retrieved matches and the verbatim question. Each passage is labelled with
// its citation metadata so the model can reference its sources.
func BuildPrompt(question string, matches []domain.RetrievedMatch) (system, user string) {
	var context string
	if len(matches) == 0 {
		context = noContextNotice
	} else {
		parts := make([]string, len(matches))
		for i, m := range matches {
			parts[i] = fmt.Sprintf("[Document %d] (source: %s, part %d of %d)\n%s",
				i+1, m.Chunk.SourceFilename, m.Chunk.SequenceIndex+1, m.Chunk.TotalChunksInSource, m.Chunk.Content)
		}
		context = strings.Join(parts, "\n\n")
	}

	user = fmt.Sprintf(`Context from MCS Act:

%s

Question: %s

Provide a detailed answer with act section references if applicable. Use simple language and explain any legal terms.`, context, question)

	return systemPrompt, user
}
