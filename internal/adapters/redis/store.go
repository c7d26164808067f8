// Package redis provides a redis-backed discovery store, for sharing a
// device cache between lab machines.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/ports"
)

// Store implements ports.DiscoveryStore using Redis. Each device record is a
// JSON value under <prefix><serial>, with a set of serials as the index.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

var _ ports.DiscoveryStore = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithTTL sets the expiration for device records. Expired records fall out
// of Load; List prunes them from the index lazily.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for device records.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "patchbay:device:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(serial string) string {
	return s.prefix + serial
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the device record and adds it to the index.
func (s *Store) Save(ctx context.Context, info domain.DeviceInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal device record: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(info.Serial), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), info.Serial)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves a device record by serial.
func (s *Store) Load(ctx context.Context, serial string) (domain.DeviceInfo, error) {
	val, err := s.client.Get(ctx, s.key(serial)).Result()
	if err != nil {
		if err == backend.Nil {
			return domain.DeviceInfo{}, fmt.Errorf("%w: %q", domain.ErrDeviceNotFound, serial)
		}
		return domain.DeviceInfo{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var info domain.DeviceInfo
	if err := json.Unmarshal([]byte(val), &info); err != nil {
		return domain.DeviceInfo{}, fmt.Errorf("failed to unmarshal device record: %w", err)
	}
	return info, nil
}

// List returns every indexed, still-live device record.
func (s *Store) List(ctx context.Context) ([]domain.DeviceInfo, error) {
	serials, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read device index: %w", err)
	}

	var devices []domain.DeviceInfo
	for _, serial := range serials {
		info, err := s.Load(ctx, serial)
		if err != nil {
			// Expired record: drop it from the index.
			_ = s.client.SRem(ctx, s.indexKey(), serial).Err()
			continue
		}
		devices = append(devices, info)
	}
	return devices, nil
}

// Delete removes the device record and its index entry.
func (s *Store) Delete(ctx context.Context, serial string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(serial))
	pipe.SRem(ctx, s.indexKey(), serial)
	_, err := pipe.Exec(ctx)
	return err
}
