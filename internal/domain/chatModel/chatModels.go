package chatModel

import "context"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a session's conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SessionStore keeps per-session conversation history. A turn (user question
// plus assistant answer) is appended as a unit so a failed turn never leaves
// a half-written history behind.
type SessionStore interface {
	GetHistory(ctx context.Context, sessionId string) ([]Message, error)
	AppendTurn(ctx context.Context, sessionId string, question string, answer string) error
	Delete(ctx context.Context, sessionId string) error
}
