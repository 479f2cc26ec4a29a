package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Moeabdelaziz007/amrikyyai/internal/domain"
)

// HistoryRepository keeps the chat-history blob in process memory. It is the
// zero-dependency default and the test double for the persistent backends;
// the JSON round trip keeps its behavior identical to theirs.
type HistoryRepository struct {
	mu   sync.RWMutex
	data []byte
}

// NewHistoryRepository creates an empty in-memory history repository
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

// Load returns the stored history, or nil when nothing was saved yet.
func (r *HistoryRepository) Load(_ context.Context) ([]domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.data == nil {
		return nil, nil
	}

	var chats []domain.Conversation
	if err := json.Unmarshal(r.data, &chats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat history: %w", err)
	}
	return chats, nil
}

// Save replaces the stored history.
func (r *HistoryRepository) Save(_ context.Context, chats []domain.Conversation) error {
	data, err := json.Marshal(chats)
	if err != nil {
		return fmt.Errorf("failed to marshal chat history: %w", err)
	}

	r.mu.Lock()
	r.data = data
	r.mu.Unlock()
	return nil
}
