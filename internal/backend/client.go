package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/Moeabdelaziz007/amrikyyai/internal/config"
	"github.com/Moeabdelaziz007/amrikyyai/internal/domain"
)

const defaultBaseURL = "http://localhost:8000"

// Client talks to the chat backend over its REST contract. It performs no
// retries; every method issues exactly one request.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a backend client from configuration
func NewClient(cfg config.APIConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Query sends one user message and returns the assistant turn.
func (c *Client) Query(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	var resp domain.QueryResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/chat/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListConversations returns all known conversations, backend order.
func (c *Client) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/chat/conversations", nil, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// GetConversation fetches a single conversation with its messages.
func (c *Client) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	var conversation domain.Conversation
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/chat/conversations/"+id, nil, &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// DeleteConversation removes a conversation.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/v1/chat/conversations/"+id, nil, nil)
}

// ListDocuments returns the indexed documents.
func (c *Client) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	var documents []domain.Document
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/documents", nil, &documents); err != nil {
		return nil, err
	}
	return documents, nil
}

// UploadDocument streams a file to the backend as a multipart "file" field.
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader) (*domain.DocumentUpload, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/documents/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upload failed: backend returned status %d", resp.StatusCode)
	}

	var upload domain.DocumentUpload
	if err := json.NewDecoder(resp.Body).Decode(&upload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &upload, nil
}

// doJSON issues one JSON request and decodes the response into out when out
// is non-nil. Any non-2xx status is an error.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
