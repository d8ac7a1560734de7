package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rgehrsitz/finfree/internal/config"
	"github.com/rgehrsitz/finfree/internal/domain"
)

// RedisOptions configures a RedisStore
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// RedisStore keeps the state as a JSON document under a single key
type RedisStore struct {
	Client *redis.Client
	Key    string
	parser *config.InputParser
}

// NewRedisStore creates a store with its own client
func NewRedisStore(opts RedisOptions) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return NewRedisStoreWithClient(rdb, opts.Key)
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client *redis.Client, key string) *RedisStore {
	return &RedisStore{Client: client, Key: key, parser: config.NewInputParser()}
}

func (r *RedisStore) Location() string {
	return fmt.Sprintf("redis://%s/%s", r.Client.Options().Addr, r.Key)
}

// Ping tests the Redis connection
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Load reads the state document and validates it like a ledger file
func (r *RedisStore) Load(ctx context.Context) (*domain.AppState, error) {
	val, err := r.Client.Get(ctx, r.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.Key, err)
	}

	state := domain.NewAppState()
	if err := json.Unmarshal(val, state); err != nil {
		return nil, fmt.Errorf("failed to decode state from %s: %w", r.Key, err)
	}
	state.Summary = nil
	if err := r.parser.ValidateState(state); err != nil {
		return nil, fmt.Errorf("state validation failed: %w", err)
	}
	state.Normalize()
	return state, nil
}

// Save writes the ledgers without the derived summary
func (r *RedisStore) Save(ctx context.Context, state *domain.AppState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	snapshot := *state
	snapshot.Summary = nil

	data, err := json.Marshal(&snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := r.Client.Set(ctx, r.Key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.Key, err)
	}
	return nil
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}
