package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Moeabdelaziz007/amrikyyai/internal/domain"
)

// historyKey mirrors the local-storage key of the browser variant.
const historyKey = "amrikyyAI_chatHistory"

// HistoryRepository stores the chat-history blob in an embedded SQLite file.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository opens (and bootstraps) the history database at path
func NewHistoryRepository(ctx context.Context, path string) (*HistoryRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("history database path is required")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS chat_history (
			key        TEXT PRIMARY KEY,
			data       BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}

	return &HistoryRepository{db: db}, nil
}

// Load returns the stored history, or nil when nothing was saved yet.
func (r *HistoryRepository) Load(ctx context.Context) ([]domain.Conversation, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM chat_history WHERE key = ?`, historyKey,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
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

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO chat_history (key, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, historyKey, data)
	if err != nil {
		return fmt.Errorf("failed to save chat history: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (r *HistoryRepository) Close() error {
	return r.db.Close()
}
