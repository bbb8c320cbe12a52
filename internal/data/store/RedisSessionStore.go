package store

import (
	"context"
	"encoding/json"

	"github.com/tkonda/AgentAPI/internal/config"
	"github.com/tkonda/AgentAPI/internal/data/redisStore"
	"github.com/tkonda/AgentAPI/internal/domain/chatModel"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
)

type RedisSessionStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisSessionStore(ctx context.Context) *RedisSessionStore {
	backing := redisStore.GetRedisStore(ctx, config.RedisSessionStore)
	if backing == nil {
		return nil
	}
	return &RedisSessionStore{
		store:  backing,
		logger: logger_i.NewLogger("SessionStore"),
	}
}

func (s *RedisSessionStore) GetHistory(ctx context.Context, sessionId string) ([]chatModel.Message, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", sessionId)
	log.Debug("Getting session history")

	raw, err := s.store.ListGetAll(ctx, sessionId)
	if err != nil {
		log.Error("Error getting history", "error", err)
		return nil, err
	}

	messages := make([]chatModel.Message, 0, len(raw))
	for _, entry := range raw {
		var msg chatModel.Message
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			log.Error("Skipping unreadable history entry", "error", err)
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// AppendTurn stores the question and answer as one push so a crash between
// the two can never leave an unanswered question in the history.
func (s *RedisSessionStore) AppendTurn(ctx context.Context, sessionId string, question string, answer string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", sessionId)

	userMsg, err := json.Marshal(chatModel.Message{Role: chatModel.RoleUser, Content: question})
	if err != nil {
		return err
	}
	assistantMsg, err := json.Marshal(chatModel.Message{Role: chatModel.RoleAssistant, Content: answer})
	if err != nil {
		return err
	}

	if err := s.store.ListPush(ctx, sessionId, userMsg, assistantMsg); err != nil {
		log.Error("error saving turn", "error", err)
		return err
	}
	if err := s.store.ListTrimToLastN(ctx, sessionId, config.MaxHistoryMessages); err != nil {
		log.Error("error trimming history", "error", err)
	}
	if err := s.store.Expire(ctx, sessionId, config.RedisSessionStoreTTL); err != nil {
		log.Error("error refreshing session TTL", "error", err)
	}
	log.Debug("Saved turn successfully")
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionId string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", sessionId)
	log.Debug("Deleting session")
	return s.store.Del(ctx, sessionId)
}

func TestSessionStore(store *redisStore.Store) *RedisSessionStore {
	return &RedisSessionStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
