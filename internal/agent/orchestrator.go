package agent

import (
	"context"
	"fmt"

	"github.com/tkonda/AgentAPI/internal/domain/agentModel"
	"github.com/tkonda/AgentAPI/internal/domain/chatModel"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
)

// EmptyIndexMessage is the context handed to the generator when the document
// path is chosen but retrieval returns nothing.
const EmptyIndexMessage = "No documents have been uploaded yet."

// WeatherLookup fetches live weather context for a question. Implementations
// report failures as human-readable strings, never as errors.
type WeatherLookup interface {
	Lookup(ctx context.Context, question string) string
}

// ContextRetriever fetches document context for a question. Failures surface
// as a nil slice.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string) []string
}

// EmitFunc receives a step event as the turn progresses. A nil emit is valid.
type EmitFunc func(agentModel.StepEvent)

// Orchestrator drives a single conversational turn: classify, fetch context
// over exactly one path, generate a grounded answer, persist the turn.
type Orchestrator struct {
	router    *Router
	weather   WeatherLookup
	retriever ContextRetriever
	generator *Generator
	sessions  chatModel.SessionStore
	logger    *logger_i.Logger
}

func NewOrchestrator(router *Router, weather WeatherLookup, retriever ContextRetriever, generator *Generator, sessions chatModel.SessionStore) *Orchestrator {
	return &Orchestrator{
		router:    router,
		weather:   weather,
		retriever: retriever,
		generator: generator,
		sessions:  sessions,
		logger:    logger_i.NewLogger("Orchestrator"),
	}
}

// Run executes one turn. The answer is returned and also appended to the
// session history together with the question, but only after generation
// succeeds: a cancelled or failed turn leaves the history untouched.
func (o *Orchestrator) Run(ctx context.Context, sessionId string, question string, emit EmitFunc) (string, error) {
	send := func(node string, state agentModel.TurnState) {
		if emit == nil {
			return
		}
		emit(agentModel.StepEvent{
			Node:      node,
			SessionId: sessionId,
			Source:    state.Source,
			Context:   state.Context,
			Answer:    state.Answer,
		})
	}

	history, err := o.sessions.GetHistory(ctx, sessionId)
	if err != nil {
		o.logger.Warn("History load failed, continuing without it", "sessionId", sessionId, "error", err)
		history = nil
	}

	state := agentModel.TurnState{Question: question}
	state.Source = o.router.Classify(ctx, question)
	send(agentModel.StepRouter, state)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch state.Source {
	case agentModel.SourceWeather:
		state.Context = []string{o.weather.Lookup(ctx, question)}
		send(agentModel.StepWeather, state)
	default:
		chunks := o.retriever.Retrieve(ctx, question)
		if len(chunks) == 0 {
			chunks = []string{EmptyIndexMessage}
		}
		state.Context = chunks
		send(agentModel.StepRag, state)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	answer, err := o.generator.Generate(ctx, state, history)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}
	state.Answer = answer
	send(agentModel.StepGenerate, state)

	if err := o.sessions.AppendTurn(ctx, sessionId, question, answer); err != nil {
		o.logger.Error("Failed to persist turn", "sessionId", sessionId, "error", err)
	}
	return answer, nil
}
