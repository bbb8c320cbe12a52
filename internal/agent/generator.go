package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/tkonda/AgentAPI/internal/domain/agentModel"
	"github.com/tkonda/AgentAPI/internal/domain/chatModel"
	"github.com/tkonda/AgentAPI/internal/rag/llm"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
)

// RefusalMessage is returned when the gathered context cannot answer the
// question. The generator is instructed to emit it verbatim so callers and
// tests can detect a refusal.
const RefusalMessage = "I don't have enough information in the provided context to answer that."

const generatorSystemTemplate = `You are a helpful assistant. Answer the user's question using ONLY the context below.

Context (%s):
%s

Rules:
- Ground every claim in the context. Do not use outside knowledge.
- For weather questions, answer concisely with the facts from the context.
- Greet the user warmly if they are only greeting you.
- For questions outside weather and the uploaded documents, or when the
  context does not contain the answer, reply exactly: %s
- If the context is an error message, relay it to the user in plain language.`

// Generator synthesizes the final grounded answer from fetched context and
// conversation history.
type Generator struct {
	llm    llm.Provider
	logger *logger_i.Logger
}

func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{
		llm:    provider,
		logger: logger_i.NewLogger("Generator"),
	}
}

func (g *Generator) Generate(ctx context.Context, state agentModel.TurnState, history []chatModel.Message) (string, error) {
	system := fmt.Sprintf(generatorSystemTemplate, state.Source, strings.Join(state.Context, "\n\n"), RefusalMessage)
	answer, err := g.llm.Chat(ctx, system, history, state.Question)
	if err != nil {
		g.logger.Error("Answer generation failed", "error", err)
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
