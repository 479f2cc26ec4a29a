package domain

import (
	"context"
	"time"
)

// DefaultTitle is the placeholder every new conversation starts with.
// It is overwritten exactly once, by the first user message.
const DefaultTitle = "محادثة جديدة"

const maxTitleRunes = 50

// Conversation is a titled, ordered thread of messages. Messages are
// append-only and chronological.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TitleFromMessage derives a conversation title from its first user message:
// at most 50 runes, with an ellipsis when truncated. Runes, not bytes, since
// most titles are Arabic.
func TitleFromMessage(content string) string {
	runes := []rune(content)
	if len(runes) <= maxTitleRunes {
		return content
	}
	return string(runes[:maxTitleRunes]) + "..."
}

// HistoryRepository persists the demo chat history as a single keyed JSON
// blob, the way the browser variant uses local storage. Save receives the
// full capped list; Load returns nil with no error when nothing was saved yet.
type HistoryRepository interface {
	Load(ctx context.Context) ([]Conversation, error)
	Save(ctx context.Context, chats []Conversation) error
}
