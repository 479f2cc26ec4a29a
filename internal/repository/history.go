package repository

import (
	"context"
	"fmt"

	"github.com/Moeabdelaziz007/amrikyyai/internal/config"
	"github.com/Moeabdelaziz007/amrikyyai/internal/domain"
	"github.com/Moeabdelaziz007/amrikyyai/internal/repository/memory"
	"github.com/Moeabdelaziz007/amrikyyai/internal/repository/redis"
	"github.com/Moeabdelaziz007/amrikyyai/internal/repository/sqlite"
)

// NewHistory builds the configured HistoryRepository. The returned closer is
// never nil.
func NewHistory(ctx context.Context, cfg *config.Config) (domain.HistoryRepository, func() error, error) {
	switch cfg.History.Backend {
	case "", "memory":
		return memory.NewHistoryRepository(), func() error { return nil }, nil

	case "sqlite":
		repo, err := sqlite.NewHistoryRepository(ctx, cfg.History.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil

	case "redis":
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewHistoryRepository(client), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown history backend: %s", cfg.History.Backend)
	}
}
