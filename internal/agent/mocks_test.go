package agent_test

import (
	"context"
	"sync/atomic"

	"github.com/tkonda/AgentAPI/internal/domain/chatModel"
	"github.com/tkonda/AgentAPI/internal/rag/llm"
)

// MockLLM implements llm.Provider
type MockLLM struct {
	OnChat           func(ctx context.Context, system string, history []chatModel.Message, user string) (string, error)
	OnChatStructured func(ctx context.Context, system string, user string, schema llm.Schema) (string, error)
}

func (m *MockLLM) Chat(ctx context.Context, system string, history []chatModel.Message, user string) (string, error) {
	if m.OnChat != nil {
		return m.OnChat(ctx, system, history, user)
	}
	return "mocked llm response", nil
}

func (m *MockLLM) ChatStructured(ctx context.Context, system string, user string, schema llm.Schema) (string, error) {
	if m.OnChatStructured != nil {
		return m.OnChatStructured(ctx, system, user, schema)
	}
	return `{"source":"document"}`, nil
}

type MockWeather struct {
	CallCount int32
	OnLookup  func(ctx context.Context, question string) string
}

func (m *MockWeather) Lookup(ctx context.Context, question string) string {
	atomic.AddInt32(&m.CallCount, 1)
	if m.OnLookup != nil {
		return m.OnLookup(ctx, question)
	}
	return "Weather in TestCity: clear sky. Temperature: 20.0°C (Feels like: 19.0°C). Humidity: 40%. Wind Speed: 3.0 m/s."
}

type MockRetriever struct {
	CallCount  int32
	OnRetrieve func(ctx context.Context, query string) []string
}

func (m *MockRetriever) Retrieve(ctx context.Context, query string) []string {
	atomic.AddInt32(&m.CallCount, 1)
	if m.OnRetrieve != nil {
		return m.OnRetrieve(ctx, query)
	}
	return []string{"default context"}
}
