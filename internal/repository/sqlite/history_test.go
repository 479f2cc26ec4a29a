package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Moeabdelaziz007/amrikyyai/internal/domain"
)

func TestHistoryRepository(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	repo, err := NewHistoryRepository(ctx, path)
	if err != nil {
		t.Fatalf("failed to open history database: %v", err)
	}
	defer repo.Close()

	t.Run("load before any save returns nothing", func(t *testing.T) {
		chats, err := repo.Load(ctx)
		assert.NoError(t, err)
		assert.Nil(t, chats)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		saved := []domain.Conversation{
			{
				ID:    "conv-1",
				Title: "محادثة عن SOLID",
				Messages: []domain.Message{
					{ID: "m1", Role: domain.RoleUser, Content: "اشرح SOLID", Timestamp: now, Status: domain.StatusCompleted},
					{ID: "m2", Role: domain.RoleAssistant, Content: "answer", Timestamp: now, Status: domain.StatusCompleted},
				},
				CreatedAt: now,
				UpdatedAt: now,
			},
		}

		assert.NoError(t, repo.Save(ctx, saved))

		loaded, err := repo.Load(ctx)
		assert.NoError(t, err)
		assert.Equal(t, saved, loaded)
	})

	t.Run("save replaces the previous history", func(t *testing.T) {
		assert.NoError(t, repo.Save(ctx, []domain.Conversation{{ID: "conv-2", Title: "other"}}))

		loaded, err := repo.Load(ctx)
		assert.NoError(t, err)
		if assert.Len(t, loaded, 1) {
			assert.Equal(t, "conv-2", loaded[0].ID)
		}
	})

	t.Run("survives reopening", func(t *testing.T) {
		reopened, err := NewHistoryRepository(ctx, path)
		if err != nil {
			t.Fatalf("failed to reopen history database: %v", err)
		}
		defer reopened.Close()

		loaded, err := reopened.Load(ctx)
		assert.NoError(t, err)
		if assert.Len(t, loaded, 1) {
			assert.Equal(t, "conv-2", loaded[0].ID)
		}
	})
}

func TestNewHistoryRepository_EmptyPath(t *testing.T) {
	_, err := NewHistoryRepository(context.Background(), "")
	assert.Error(t, err)
}
