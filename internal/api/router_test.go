package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Moeabdelaziz007/amrikyyai/internal/api"
	"github.com/Moeabdelaziz007/amrikyyai/internal/config"
	"github.com/Moeabdelaziz007/amrikyyai/internal/domain"
	"github.com/Moeabdelaziz007/amrikyyai/internal/engine"
	"github.com/Moeabdelaziz007/amrikyyai/internal/repository/memory"
)

func newTestRouter(t *testing.T) (http.Handler, *engine.Engine) {
	t.Helper()
	eng := engine.New(context.Background(), memory.NewHistoryRepository(),
		engine.WithDelay(func() time.Duration { return 0 }),
	)
	cfg := &config.Config{}
	cfg.Server.UploadDir = t.TempDir()
	return api.NewRouter(cfg, eng), eng
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_Query(t *testing.T) {
	t.Run("returns the routed reply", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/v1/chat/query", map[string]any{
			"message": "اشرح مبادئ SOLID",
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp domain.QueryResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotEmpty(t, resp.ConversationID)
		assert.Contains(t, resp.Content, "SOLID")
		assert.Len(t, resp.Sources, 1)
	})

	t.Run("rejects a missing message", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/v1/chat/query", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.NotEmpty(t, body["detail"])
	})

	t.Run("rejects an over-long message", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/v1/chat/query", map[string]any{
			"message": strings.Repeat("a", 10001),
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown conversation id", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/v1/chat/query", map[string]any{
			"message":        "hello",
			"conversationId": "no-such-chat",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouter_Conversations(t *testing.T) {
	router, eng := newTestRouter(t)

	resp, err := eng.Ask(context.Background(), "", "hello")
	assert.NoError(t, err)

	t.Run("list", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/chat/conversations", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var conversations []domain.Conversation
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&conversations))
		assert.Len(t, conversations, 1)
		assert.Equal(t, "hello", conversations[0].Title)
	})

	t.Run("get", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/chat/conversations/"+resp.ConversationID, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var conversation domain.Conversation
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&conversation))
		assert.Len(t, conversation.Messages, 2)
	})

	t.Run("get missing", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/chat/conversations/no-such-id", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/api/v1/chat/conversations/"+resp.ConversationID, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, router, http.MethodDelete, "/api/v1/chat/conversations/"+resp.ConversationID, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouter_Documents(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("upload", func(t *testing.T) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("file", "notes.txt")
		assert.NoError(t, err)
		_, err = part.Write([]byte("file body"))
		assert.NoError(t, err)
		assert.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var upload domain.DocumentUpload
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&upload))
		assert.NotEmpty(t, upload.ID)
		assert.Equal(t, "completed", upload.Status)
	})

	t.Run("upload without a file", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/documents/upload", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/documents", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var documents []domain.Document
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&documents))
		assert.Len(t, documents, 1)
		assert.Equal(t, "notes.txt", documents[0].Filename)
	})
}
