package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Moeabdelaziz007/amrikyyai/internal/domain"
)

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(client QueryClient) *Store {
	return New(client,
		WithClock(func() time.Time { return fixedTime }),
	)
}

func TestStore_SendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("appends user message before the network call", func(t *testing.T) {
		client := new(MockQueryClient)
		store := newTestStore(client)

		var duringQuery Snapshot
		client.On("Query", ctx, mock.AnythingOfType("domain.QueryRequest")).
			Run(func(args mock.Arguments) {
				duringQuery = store.Snapshot()
			}).
			Return(&domain.QueryResponse{
				ID:             "resp-1",
				Content:        "answer",
				ConversationID: "conv-1",
				Timestamp:      fixedTime,
			}, nil)

		store.SendMessage(ctx, "سؤال")

		assert.Len(t, duringQuery.Messages, 1)
		assert.Equal(t, domain.RoleUser, duringQuery.Messages[0].Role)
		assert.Equal(t, "سؤال", duringQuery.Messages[0].Content)
		assert.True(t, duringQuery.IsLoading)
	})

	t.Run("success appends assistant reply and adopts the conversation id", func(t *testing.T) {
		client := new(MockQueryClient)
		store := newTestStore(client)

		client.On("Query", ctx, mock.AnythingOfType("domain.QueryRequest")).
			Return(&domain.QueryResponse{
				ID:             "resp-1",
				Content:        "answer",
				Sources:        []domain.Source{{ID: "src-1", Title: "Doc"}},
				ConversationID: "conv-1",
				Timestamp:      fixedTime,
			}, nil)

		store.SendMessage(ctx, "hello")

		snap := store.Snapshot()
		assert.Len(t, snap.Messages, 2)
		assert.Equal(t, domain.RoleAssistant, snap.Messages[1].Role)
		assert.Equal(t, "answer", snap.Messages[1].Content)
		assert.Len(t, snap.Messages[1].Sources, 1)
		assert.Equal(t, "conv-1", snap.ActiveConversationID)
		assert.False(t, snap.IsLoading)
		assert.Empty(t, snap.Error)
	})

	t.Run("first turn back-fills the placeholder title", func(t *testing.T) {
		client := new(MockQueryClient)
		store := newTestStore(client)

		client.On("ListConversations", ctx).Return([]domain.Conversation{
			{ID: "conv-1", Title: domain.DefaultTitle},
		}, nil)
		store.LoadConversations(ctx)

		client.On("Query", ctx, mock.MatchedBy(func(req domain.QueryRequest) bool {
			return req.ConversationID == ""
		})).Return(&domain.QueryResponse{
			ID:             "resp-1",
			Content:        "answer",
			ConversationID: "conv-1",
			Timestamp:      fixedTime,
		}, nil)

		store.SendMessage(ctx, "اشرح مبادئ SOLID")

		snap := store.Snapshot()
		assert.Equal(t, "اشرح مبادئ SOLID", snap.Conversations[0].Title)
	})

	t.Run("active conversation id is sent with the request", func(t *testing.T) {
		client := new(MockQueryClient)
		store := newTestStore(client)

		client.On("ListConversations", ctx).Return([]domain.Conversation{
			{ID: "conv-1", Title: "some chat"},
		}, nil)
		store.LoadConversations(ctx)
		store.SetActiveConversation("conv-1")

		client.On("Query", ctx, mock.MatchedBy(func(req domain.QueryRequest) bool {
			return req.ConversationID == "conv-1"
		})).Return(&domain.QueryResponse{
			ID:             "resp-2",
			Content:        "answer",
			ConversationID: "conv-1",
			Timestamp:      fixedTime,
		}, nil)

		store.SendMessage(ctx, "follow up")

		client.AssertExpectations(t)
		// Title of an existing conversation stays untouched.
		assert.Equal(t, "some chat", store.Snapshot().Conversations[0].Title)
	})

	t.Run("failure keeps the user message and sets the error", func(t *testing.T) {
		client := new(MockQueryClient)
		store := newTestStore(client)

		client.On("Query", ctx, mock.AnythingOfType("domain.QueryRequest")).
			Return(nil, errors.New("connection refused"))

		store.SendMessage(ctx, "hello")

		snap := store.Snapshot()
		assert.Len(t, snap.Messages, 1)
		assert.Equal(t, domain.RoleUser, snap.Messages[0].Role)
		assert.False(t, snap.IsLoading)
		assert.Equal(t, errSendFailed, snap.Error)
	})

	t.Run("whitespace-only message is a no-op", func(t *testing.T) {
		client := new(MockQueryClient)
		store := newTestStore(client)

		store.SendMessage(ctx, "   \n\t ")

		snap := store.Snapshot()
		assert.Empty(t, snap.Messages)
		assert.False(t, snap.IsLoading)
		client.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
	})
}

func TestStore_NewConversation(t *testing.T) {
	client := new(MockQueryClient)
	store := newTestStore(client)

	first := store.NewConversation()
	second := store.NewConversation()

	snap := store.Snapshot()
	assert.Len(t, snap.Conversations, 2)
	assert.Equal(t, second.ID, snap.Conversations[0].ID)
	assert.Equal(t, first.ID, snap.Conversations[1].ID)
	assert.Equal(t, domain.DefaultTitle, second.Title)
	assert.Equal(t, second.ID, snap.ActiveConversationID)
	assert.Empty(t, snap.Messages)
}

func TestStore_SetActiveConversation(t *testing.T) {
	ctx := context.Background()
	client := new(MockQueryClient)
	store := newTestStore(client)

	client.On("ListConversations", ctx).Return([]domain.Conversation{
		{ID: "conv-1", Title: "first", Messages: []domain.Message{
			{ID: "m1", Role: domain.RoleUser, Content: "hi"},
		}},
		{ID: "conv-2", Title: "second"},
	}, nil)
	store.LoadConversations(ctx)

	t.Run("known id loads its messages", func(t *testing.T) {
		store.SetActiveConversation("conv-1")
		snap := store.Snapshot()
		assert.Equal(t, "conv-1", snap.ActiveConversationID)
		assert.Len(t, snap.Messages, 1)
		assert.Equal(t, "hi", snap.Messages[0].Content)
	})

	t.Run("unknown id leaves the state unchanged", func(t *testing.T) {
		store.SetActiveConversation("no-such-id")
		snap := store.Snapshot()
		assert.Equal(t, "conv-1", snap.ActiveConversationID)
		assert.Len(t, snap.Messages, 1)
	})
}

func TestStore_LoadConversations(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the list", func(t *testing.T) {
		client := new(MockQueryClient)
		store := newTestStore(client)

		client.On("ListConversations", ctx).Return([]domain.Conversation{
			{ID: "conv-1"}, {ID: "conv-2"},
		}, nil)

		store.LoadConversations(ctx)
		assert.Len(t, store.Snapshot().Conversations, 2)
	})

	t.Run("failure keeps the previous list and sets the error", func(t *testing.T) {
		client := new(MockQueryClient)
		store := newTestStore(client)
		existing := store.NewConversation()

		client.On("ListConversations", ctx).Return(nil, errors.New("boom"))

		store.LoadConversations(ctx)

		snap := store.Snapshot()
		assert.Len(t, snap.Conversations, 1)
		assert.Equal(t, existing.ID, snap.Conversations[0].ID)
		assert.Equal(t, errLoadFailed, snap.Error)
	})
}

func TestStore_ClearError(t *testing.T) {
	ctx := context.Background()
	client := new(MockQueryClient)
	store := newTestStore(client)

	client.On("ListConversations", ctx).Return(nil, errors.New("boom"))
	store.LoadConversations(ctx)
	assert.NotEmpty(t, store.Snapshot().Error)

	store.ClearError()
	assert.Empty(t, store.Snapshot().Error)

	store.ClearError()
	assert.Empty(t, store.Snapshot().Error)
}

func TestStore_Subscribe(t *testing.T) {
	client := new(MockQueryClient)
	store := newTestStore(client)

	var seen []Snapshot
	store.Subscribe(func(snap Snapshot) { seen = append(seen, snap) })

	store.NewConversation()

	assert.Len(t, seen, 1)
	assert.Len(t, seen[0].Conversations, 1)
}
