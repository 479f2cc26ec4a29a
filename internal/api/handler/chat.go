package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Moeabdelaziz007/amrikyyai/internal/api/response"
	"github.com/Moeabdelaziz007/amrikyyai/internal/domain"
	"github.com/Moeabdelaziz007/amrikyyai/internal/engine"
)

var validate = validator.New()

// ChatHandler serves the chat endpoints from the canned-response engine.
type ChatHandler struct {
	engine *engine.Engine
}

// NewChatHandler creates a new chat handler
func NewChatHandler(eng *engine.Engine) *ChatHandler {
	return &ChatHandler{engine: eng}
}

// Query handles POST /api/v1/chat/query
func (h *ChatHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req domain.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	resp, err := h.engine.Ask(r.Context(), req.ConversationID, req.Message)
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		response.BadRequest(w, "Message cannot be empty")
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "Conversation not found")
	case errors.Is(err, domain.ErrBusy):
		response.Error(w, http.StatusTooManyRequests, "A reply is already being generated")
	case err != nil:
		response.InternalError(w, "Failed to process query")
	default:
		response.OK(w, resp)
	}
}

// ListConversations handles GET /api/v1/chat/conversations
func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.engine.Chats())
}

// GetConversation handles GET /api/v1/chat/conversations/{conversationID}
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationID")

	chat, err := h.engine.Chat(id)
	if err != nil {
		response.NotFound(w, "Conversation not found")
		return
	}
	response.OK(w, chat)
}

// DeleteConversation handles DELETE /api/v1/chat/conversations/{conversationID}
func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationID")

	if err := h.engine.DeleteChat(r.Context(), id); err != nil {
		response.NotFound(w, "Conversation not found")
		return
	}
	response.NoContent(w)
}
