// Package store persists the whole application state after every mutation.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/finfree/internal/config"
	"github.com/rgehrsitz/finfree/internal/domain"
)

// ErrNotFound is returned by Load when nothing has been saved yet
var ErrNotFound = errors.New("state not found")

// Store loads and saves a full state snapshot. Implementations never persist the derived summary.
type Store interface {
	Load(ctx context.Context) (*domain.AppState, error)
	Save(ctx context.Context, state *domain.AppState) error
	// Location describes where the state lives, for logs and reports
	Location() string
	Close() error
}

// New opens the store selected by the settings
func New(s config.StoreSettings) (Store, error) {
	switch s.Driver {
	case config.StoreFile, "":
		return NewFileStore(s.Path), nil
	case config.StoreRedis:
		return NewRedisStore(RedisOptions{
			Addr:     s.RedisAddr,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
			Key:      s.RedisKey,
		}), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", s.Driver)
	}
}

// LoadOrDefault loads the stored state, or returns an empty state when none exists
func LoadOrDefault(ctx context.Context, st Store) (*domain.AppState, error) {
	state, err := st.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return domain.NewAppState(), nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}
