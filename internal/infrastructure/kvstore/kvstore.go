package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a key has never been written. Callers fall
// back to their own default instead of treating this as a failure.
var ErrNotFound = errors.New("kvstore: key not found")

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

const opTimeout = 3 * time.Second

// Store is a typed JSON get/set over the device key/value database. Each
// owning store writes a disjoint key or key-per-entity namespace; no
// multi-key transaction is provided.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// NewStoreFromAddr builds a Store with its own client.
func NewStoreFromAddr(addr, password string) *Store {
	return NewStore(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	}))
}

func (s *Store) GetJSON(ctx context.Context, key string, dest interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), dest)
}

func (s *Store) SetJSON(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return s.client.Set(ctx, key, raw, 0).Err()
}

func (s *Store) GetString(ctx context.Context, key, fallback string) string {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		return fallback
	}
	return val
}

func (s *Store) SetString(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
