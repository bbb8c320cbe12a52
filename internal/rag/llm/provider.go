package llm

import (
	"context"
	"strings"

	"github.com/tkonda/AgentAPI/internal/domain/chatModel"
)

// Field is one required string property of a structured output object.
// A non-empty Enum constrains the value to the listed labels.
type Field struct {
	Name string
	Enum []string
}

// Schema declares the JSON object a ChatStructured call must return.
type Schema struct {
	Fields []Field
}

// Provider abstracts the generation backend. ChatStructured returns the raw
// model text; callers own parsing and the fallback when parsing fails.
type Provider interface {
	Chat(ctx context.Context, system string, history []chatModel.Message, user string) (string, error)
	ChatStructured(ctx context.Context, system string, user string, schema Schema) (string, error)
}

// StripCodeFences removes the markdown fencing some models wrap around JSON
// output even when asked not to.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
