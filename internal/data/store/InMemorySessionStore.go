package store

import (
	"context"
	"sync"

	"github.com/tkonda/AgentAPI/internal/config"
	"github.com/tkonda/AgentAPI/internal/domain/chatModel"
)

type InMemorySessionStore struct {
	sessionLock *sync.RWMutex
	sessionMap  map[string][]chatModel.Message
}

func InitInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessionLock: new(sync.RWMutex),
		sessionMap:  make(map[string][]chatModel.Message),
	}
}

func (store *InMemorySessionStore) GetHistory(ctx context.Context, sessionId string) ([]chatModel.Message, error) {
	store.sessionLock.RLock()
	defer store.sessionLock.RUnlock()
	history := store.sessionMap[sessionId]
	out := make([]chatModel.Message, len(history))
	copy(out, history)
	return out, nil
}

func (store *InMemorySessionStore) AppendTurn(ctx context.Context, sessionId string, question string, answer string) error {
	store.sessionLock.Lock()
	defer store.sessionLock.Unlock()
	history := append(store.sessionMap[sessionId],
		chatModel.Message{Role: chatModel.RoleUser, Content: question},
		chatModel.Message{Role: chatModel.RoleAssistant, Content: answer},
	)
	if len(history) > config.MaxHistoryMessages {
		history = history[len(history)-config.MaxHistoryMessages:]
	}
	store.sessionMap[sessionId] = history
	return nil
}

func (store *InMemorySessionStore) Delete(ctx context.Context, sessionId string) error {
	store.sessionLock.Lock()
	defer store.sessionLock.Unlock()
	delete(store.sessionMap, sessionId)
	return nil
}
