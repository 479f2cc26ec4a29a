package domain

import "time"

// QueryOptions tunes a single backend query.
type QueryOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty"`
	Sources     bool    `json:"sources,omitempty"`
	Model       string  `json:"model,omitempty"`
}

// QueryRequest is the body of POST /api/v1/chat/query. ConversationID is
// omitted on the first turn of a new conversation; the backend assigns one.
type QueryRequest struct {
	Message        string        `json:"message" validate:"required,max=10000"`
	ConversationID string        `json:"conversationId,omitempty"`
	Options        *QueryOptions `json:"options,omitempty"`
}

// QueryResponse is one assistant turn as returned by the backend.
type QueryResponse struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	Sources        []Source  `json:"sources,omitempty"`
	ConversationID string    `json:"conversationId"`
	Timestamp      time.Time `json:"timestamp"`
}

// DocumentUpload acknowledges an accepted document.
type DocumentUpload struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Document describes an indexed document.
type Document struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
