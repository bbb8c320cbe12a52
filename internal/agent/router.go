package agent

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tkonda/AgentAPI/internal/domain/agentModel"
	"github.com/tkonda/AgentAPI/internal/metrics"
	"github.com/tkonda/AgentAPI/internal/rag/llm"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
)

const routerSystem = `You are a router. Classify the user's query.
Use "weather" for questions about current weather conditions at a location.
Use "document" for everything else, including greetings and questions about uploaded documents.`

const routerFallbackSystem = "Classify the user's query. Reply with a single word: weather or document."

// Router decides which fetch path serves a question. Classification is
// side-effect-free and always produces a decision: any provider failure or
// unparseable output defaults to the document path, never toward fabricating
// weather data.
type Router struct {
	llm    llm.Provider
	logger *logger_i.Logger
}

func NewRouter(provider llm.Provider) *Router {
	return &Router{
		llm:    provider,
		logger: logger_i.NewLogger("Router"),
	}
}

func (r *Router) Classify(ctx context.Context, question string) agentModel.Source {
	source := r.classify(ctx, question)
	metrics.CountRouterDecision(string(source))
	return source
}

func (r *Router) classify(ctx context.Context, question string) agentModel.Source {
	// Preferred: schema-constrained output, no parsing ambiguity.
	raw, err := r.llm.ChatStructured(ctx, routerSystem, question, llm.Schema{
		Fields: []llm.Field{{
			Name: "source",
			Enum: []string{string(agentModel.SourceWeather), string(agentModel.SourceDocument)},
		}},
	})
	if err == nil {
		var out struct {
			Source string `json:"source"`
		}
		if err := json.Unmarshal([]byte(llm.StripCodeFences(raw)), &out); err == nil {
			switch out.Source {
			case string(agentModel.SourceWeather):
				return agentModel.SourceWeather
			case string(agentModel.SourceDocument):
				return agentModel.SourceDocument
			}
		}
		r.logger.Warn("Unrecognized structured route, trying free-text", "raw", raw)
	}

	// Fallback: free-text label with substring matching.
	label, err := r.llm.Chat(ctx, routerFallbackSystem, nil, question)
	if err != nil {
		r.logger.Error("Routing failed, defaulting to document path", "error", err)
		return agentModel.SourceDocument
	}
	if strings.Contains(strings.ToLower(label), string(agentModel.SourceWeather)) {
		return agentModel.SourceWeather
	}
	return agentModel.SourceDocument
}
