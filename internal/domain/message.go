package domain

import "time"

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// MessageStatus tracks the lifecycle of a message. Only StatusCompleted is
// reached today; the streaming states are reserved for the backend contract.
type MessageStatus string

const (
	StatusPending   MessageStatus = "pending"
	StatusStreaming MessageStatus = "streaming"
	StatusCompleted MessageStatus = "completed"
	StatusError     MessageStatus = "error"
)

// Message represents one turn in a conversation. User turns carry a
// client-generated ID, assistant turns carry the server-assigned one.
type Message struct {
	ID        string        `json:"id"`
	Role      MessageRole   `json:"role"`
	Content   string        `json:"content"`
	Timestamp time.Time     `json:"timestamp"`
	Sources   []Source      `json:"sources,omitempty"`
	Status    MessageStatus `json:"status,omitempty"`
}

// Source is a citation backing an assistant message.
// Confidence is a pointer: absence means "unknown", not zero.
type Source struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Snippet    string          `json:"snippet"`
	URL        string          `json:"url,omitempty"`
	Timestamp  *time.Time      `json:"timestamp,omitempty"`
	Confidence *float64        `json:"confidence,omitempty"`
	Metadata   *SourceMetadata `json:"metadata,omitempty"`
}

// SourceMetadata locates a citation inside an indexed document.
type SourceMetadata struct {
	DocID      string `json:"docId,omitempty"`
	ChunkID    string `json:"chunkId,omitempty"`
	PageNumber int    `json:"pageNumber,omitempty"`
	Section    string `json:"section,omitempty"`
}
