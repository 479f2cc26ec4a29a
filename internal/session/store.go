package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Moeabdelaziz007/amrikyyai/internal/domain"
)

// Error strings surfaced to the user. The UI is Arabic-facing.
const (
	errSendFailed = "حدث خطأ أثناء إرسال الرسالة"
	errLoadFailed = "فشل في تحميل المحادثات"
)

// QueryClient is the backend surface the store depends on.
type QueryClient interface {
	Query(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error)
	ListConversations(ctx context.Context) ([]domain.Conversation, error)
}

// Snapshot is an immutable view of the store state, safe to retain.
type Snapshot struct {
	Conversations        []domain.Conversation
	ActiveConversationID string
	Messages             []domain.Message
	IsLoading            bool
	Error                string
}

// Store is the authoritative state container for the active conversation and
// the list of known conversations. All mutation goes through its operations;
// consumers observe state through Snapshot or a subscription.
//
// SendMessage holds the internal lock only while mutating state, never across
// the network call: overlapping sends are allowed, each appends its user
// message immediately and replies land in completion order. That matches the
// original UI behavior and is deliberate.
type Store struct {
	mu     sync.Mutex
	client QueryClient
	opts   domain.QueryOptions
	now    func() time.Time
	newID  func() string

	conversations []domain.Conversation
	activeID      string
	messages      []domain.Message
	loading       bool
	lastError     string

	subscribers []func(Snapshot)
}

// Option configures a Store
type Option func(*Store)

// WithOptions sets the fixed options block sent with every query.
func WithOptions(opts domain.QueryOptions) Option {
	return func(s *Store) { s.opts = opts }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides client-side id generation, for tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates a session store backed by the given client
func New(client QueryClient, opts ...Option) *Store {
	s := &Store{
		client: client,
		opts:   domain.QueryOptions{Sources: true, Temperature: 0.1},
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to be called with a fresh snapshot after every state
// change. Subscribers must not block.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Conversations:        append([]domain.Conversation(nil), s.conversations...),
		ActiveConversationID: s.activeID,
		Messages:             append([]domain.Message(nil), s.messages...),
		IsLoading:            s.loading,
		Error:                s.lastError,
	}
}

// publish notifies subscribers with the current state. Must be called
// without holding the lock.
func (s *Store) publish() {
	s.mu.Lock()
	snap := s.snapshotLocked()
	subs := append([](func(Snapshot))(nil), s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// SendMessage sends one user message to the backend. The user message is
// appended optimistically before any network activity and is never rolled
// back: a failed round trip leaves it visible and sets the error string.
// Empty or whitespace-only content is a no-op.
func (s *Store) SendMessage(ctx context.Context, content string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}

	s.mu.Lock()
	previousActiveID := s.activeID
	userMessage := domain.Message{
		ID:        s.newID(),
		Role:      domain.RoleUser,
		Content:   content,
		Timestamp: s.now(),
		Status:    domain.StatusCompleted,
	}
	s.messages = append(s.messages, userMessage)
	s.loading = true
	s.lastError = ""
	opts := s.opts
	s.mu.Unlock()
	s.publish()

	req := domain.QueryRequest{
		Message: content,
		Options: &opts,
	}
	if previousActiveID != "" {
		req.ConversationID = previousActiveID
	}

	resp, err := s.client.Query(ctx, req)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		log.Error().Err(err).Msg("failed to send message")
		s.lastError = errSendFailed
		s.mu.Unlock()
		s.publish()
		return
	}

	assistantMessage := domain.Message{
		ID:        resp.ID,
		Role:      domain.RoleAssistant,
		Content:   resp.Content,
		Timestamp: resp.Timestamp,
		Sources:   resp.Sources,
		Status:    domain.StatusCompleted,
	}
	s.messages = append(s.messages, assistantMessage)
	s.activeID = resp.ConversationID

	// Title back-fill: first turn of a conversation that still carries the
	// placeholder title takes the user's message as its title.
	if previousActiveID == "" {
		for i := range s.conversations {
			c := &s.conversations[i]
			if c.ID == resp.ConversationID && c.Title == domain.DefaultTitle {
				c.Title = domain.TitleFromMessage(content)
				c.UpdatedAt = s.now()
				break
			}
		}
	}
	s.mu.Unlock()
	s.publish()
}

// NewConversation synchronously creates an empty conversation, prepends it to
// the known list and makes it active. No network call is made.
func (s *Store) NewConversation() domain.Conversation {
	s.mu.Lock()
	now := s.now()
	conversation := domain.Conversation{
		ID:        s.newID(),
		Title:     domain.DefaultTitle,
		Messages:  []domain.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.conversations = append([]domain.Conversation{conversation}, s.conversations...)
	s.activeID = conversation.ID
	s.messages = nil
	s.lastError = ""
	s.mu.Unlock()
	s.publish()
	return conversation
}

// SetActiveConversation switches the displayed conversation. An unknown id
// leaves the state unchanged.
func (s *Store) SetActiveConversation(id string) {
	s.mu.Lock()
	var found bool
	for i := range s.conversations {
		if s.conversations[i].ID == id {
			s.activeID = id
			s.messages = append([]domain.Message(nil), s.conversations[i].Messages...)
			s.lastError = ""
			found = true
			break
		}
	}
	s.mu.Unlock()
	if found {
		s.publish()
	}
}

// LoadConversations replaces the known-conversations list with the backend's.
// On failure the previous list is kept and the error string is set.
func (s *Store) LoadConversations(ctx context.Context) {
	conversations, err := s.client.ListConversations(ctx)

	s.mu.Lock()
	if err != nil {
		log.Error().Err(err).Msg("failed to load conversations")
		s.lastError = errLoadFailed
	} else {
		s.conversations = conversations
	}
	s.mu.Unlock()
	s.publish()
}

// ClearError clears the last error. Idempotent.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
	s.publish()
}
