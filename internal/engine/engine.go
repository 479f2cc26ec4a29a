package engine

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Moeabdelaziz007/amrikyyai/internal/domain"
)

// maxChats caps the persisted history at the most-recently-touched chats.
const maxChats = 20

// Engine is the backend-free chat responder: it classifies a user message by
// keyword, answers from the fixed knowledge base after a short "typing"
// delay, and keeps an MRU chat history persisted through a HistoryRepository.
//
// One reply is generated at a time; Ask returns ErrBusy while another reply
// is outstanding. Persistence is best-effort: a failed write is logged and
// the in-memory state stands.
type Engine struct {
	mu        sync.Mutex
	repo      domain.HistoryRepository
	history   []domain.Conversation // most-recently-touched first
	documents []domain.Document
	typing    bool

	delay func() time.Duration
	now   func() time.Time
	newID func() string
}

// Option configures an Engine
type Option func(*Engine)

// WithDelay overrides the typing delay, for tests.
func WithDelay(delay func() time.Duration) Option {
	return func(e *Engine) { e.delay = delay }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides id generation, for tests.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New creates an engine and loads any persisted history. A failed load is
// logged and the engine starts with an empty history.
func New(ctx context.Context, repo domain.HistoryRepository, opts ...Option) *Engine {
	e := &Engine{
		repo: repo,
		delay: func() time.Duration {
			return time.Second + time.Duration(rand.Int63n(int64(2*time.Second)))
		},
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}

	if chats, err := repo.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to load chat history")
	} else {
		if len(chats) > maxChats {
			chats = chats[:maxChats]
		}
		e.history = chats
	}
	return e
}

// NewChat creates an empty chat with the placeholder title and makes it the
// most recent one.
func (e *Engine) NewChat(ctx context.Context) domain.Conversation {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	chat := domain.Conversation{
		ID:        e.newID(),
		Title:     domain.DefaultTitle,
		Messages:  []domain.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.history = append([]domain.Conversation{chat}, e.history...)
	if len(e.history) > maxChats {
		e.history = e.history[:maxChats]
	}
	e.persistLocked(ctx)
	return chat
}

// Ask processes one user message: appends it to the chat (creating one when
// conversationID is empty), waits out the typing delay, and appends the
// keyword-routed reply. The user message stays even when ctx is cancelled
// during the delay.
func (e *Engine) Ask(ctx context.Context, conversationID, message string) (*domain.QueryResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}

	e.mu.Lock()
	if e.typing {
		e.mu.Unlock()
		return nil, domain.ErrBusy
	}
	e.typing = true

	idx := -1
	if conversationID == "" {
		now := e.now()
		e.history = append([]domain.Conversation{{
			ID:        e.newID(),
			Title:     domain.DefaultTitle,
			Messages:  []domain.Message{},
			CreatedAt: now,
			UpdatedAt: now,
		}}, e.history...)
		idx = 0
	} else {
		for i := range e.history {
			if e.history[i].ID == conversationID {
				idx = i
				break
			}
		}
		if idx < 0 {
			e.typing = false
			e.mu.Unlock()
			return nil, domain.ErrNotFound
		}
	}

	chat := e.touchLocked(idx)
	chat.Messages = append(chat.Messages, domain.Message{
		ID:        e.newID(),
		Role:      domain.RoleUser,
		Content:   message,
		Timestamp: e.now(),
		Status:    domain.StatusCompleted,
	})
	if len(chat.Messages) == 1 {
		chat.Title = domain.TitleFromMessage(message)
	}
	chat.UpdatedAt = e.now()
	chatID := chat.ID
	e.persistLocked(ctx)
	e.mu.Unlock()

	if delay := e.delay(); delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			e.mu.Lock()
			e.typing = false
			e.mu.Unlock()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	reply := Classify(message)

	e.mu.Lock()
	defer func() {
		e.typing = false
		e.mu.Unlock()
	}()

	assistant := domain.Message{
		ID:        e.newID(),
		Role:      domain.RoleAssistant,
		Content:   reply.Content,
		Timestamp: e.now(),
		Status:    domain.StatusCompleted,
	}
	if reply.Source != "" {
		assistant.Sources = []domain.Source{{
			ID:    e.newID(),
			Title: reply.Source,
		}}
	}

	for i := range e.history {
		if e.history[i].ID == chatID {
			chat := e.touchLocked(i)
			chat.Messages = append(chat.Messages, assistant)
			chat.UpdatedAt = assistant.Timestamp
			break
		}
	}
	e.persistLocked(ctx)

	return &domain.QueryResponse{
		ID:             assistant.ID,
		Content:        assistant.Content,
		Sources:        assistant.Sources,
		ConversationID: chatID,
		Timestamp:      assistant.Timestamp,
	}, nil
}

// Chats returns the history, most recent first.
func (e *Engine) Chats() []domain.Conversation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyChats(e.history)
}

// Chat returns one chat by id.
func (e *Engine) Chat(id string) (*domain.Conversation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.history {
		if e.history[i].ID == id {
			chat := copyChat(e.history[i])
			return &chat, nil
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteChat removes a chat from the history.
func (e *Engine) DeleteChat(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.history {
		if e.history[i].ID == id {
			e.history = append(e.history[:i], e.history[i+1:]...)
			e.persistLocked(ctx)
			return nil
		}
	}
	return domain.ErrNotFound
}

// RecordUpload registers an uploaded document and acknowledges it. The demo
// does not index anything; documents only exist so the contract holds up.
func (e *Engine) RecordUpload(filename string) *domain.DocumentUpload {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc := domain.Document{
		ID:        e.newID(),
		Filename:  filename,
		Status:    "completed",
		CreatedAt: e.now(),
	}
	e.documents = append(e.documents, doc)
	return &domain.DocumentUpload{ID: doc.ID, Status: doc.Status}
}

// AcknowledgeUpload appends the upload confirmation as an assistant message
// to the given chat, creating one when conversationID is empty.
func (e *Engine) AcknowledgeUpload(ctx context.Context, conversationID, filename string) (*domain.QueryResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	if conversationID == "" {
		now := e.now()
		e.history = append([]domain.Conversation{{
			ID:        e.newID(),
			Title:     domain.DefaultTitle,
			Messages:  []domain.Message{},
			CreatedAt: now,
			UpdatedAt: now,
		}}, e.history...)
		idx = 0
	} else {
		for i := range e.history {
			if e.history[i].ID == conversationID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, domain.ErrNotFound
		}
	}

	chat := e.touchLocked(idx)
	ack := domain.Message{
		ID:        e.newID(),
		Role:      domain.RoleAssistant,
		Content:   fmt.Sprintf(uploadAckFormat, filename),
		Timestamp: e.now(),
		Status:    domain.StatusCompleted,
		Sources: []domain.Source{{
			ID:    e.newID(),
			Title: "Uploaded Document: " + filename,
		}},
	}
	chat.Messages = append(chat.Messages, ack)
	chat.UpdatedAt = ack.Timestamp
	e.persistLocked(ctx)

	return &domain.QueryResponse{
		ID:             ack.ID,
		Content:        ack.Content,
		Sources:        ack.Sources,
		ConversationID: chat.ID,
		Timestamp:      ack.Timestamp,
	}, nil
}

// Documents returns the recorded uploads.
func (e *Engine) Documents() []domain.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Document(nil), e.documents...)
}

// touchLocked moves the chat at idx to the front, re-applies the cap and
// returns a pointer into the history slice. Caller holds the lock.
func (e *Engine) touchLocked(idx int) *domain.Conversation {
	if idx != 0 {
		chat := e.history[idx]
		e.history = append(e.history[:idx], e.history[idx+1:]...)
		e.history = append([]domain.Conversation{chat}, e.history...)
	}
	if len(e.history) > maxChats {
		e.history = e.history[:maxChats]
	}
	return &e.history[0]
}

// persistLocked writes the full history. Failures are logged, never surfaced.
func (e *Engine) persistLocked(ctx context.Context) {
	if err := e.repo.Save(ctx, copyChats(e.history)); err != nil {
		log.Warn().Err(err).Msg("failed to save chat history")
	}
}

func copyChats(chats []domain.Conversation) []domain.Conversation {
	out := make([]domain.Conversation, len(chats))
	for i, c := range chats {
		out[i] = copyChat(c)
	}
	return out
}

func copyChat(c domain.Conversation) domain.Conversation {
	c.Messages = append([]domain.Message(nil), c.Messages...)
	return c
}
