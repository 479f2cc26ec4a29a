package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Moeabdelaziz007/amrikyyai/internal/domain"
)

const historyKey = "amrikyyai:chat_history"

// HistoryRepository stores the chat-history blob under a single Redis key.
// Writes are last-writer-wins; no TTL, history lives until overwritten.
type HistoryRepository struct {
	client *Client
}

// NewHistoryRepository creates a Redis-backed history repository
func NewHistoryRepository(client *Client) *HistoryRepository {
	return &HistoryRepository{client: client}
}

// Load returns the stored history, or nil when nothing was saved yet.
func (r *HistoryRepository) Load(ctx context.Context) ([]domain.Conversation, error) {
	data, err := r.client.rdb.Get(ctx, historyKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	var chats []domain.Conversation
	if err := json.Unmarshal(data, &chats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat history: %w", err)
	}
	return chats, nil
}

// Save replaces the stored history.
func (r *HistoryRepository) Save(ctx context.Context, chats []domain.Conversation) error {
	data, err := json.Marshal(chats)
	if err != nil {
		return fmt.Errorf("failed to marshal chat history: %w", err)
	}
	return r.client.rdb.Set(ctx, historyKey, data, 0).Err()
}
