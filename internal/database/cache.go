package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"
)

const defaultCacheTTL = 1 * time.Hour

// CacheBuilder is a small fluent wrapper over a single key: JSON in, JSON out.
type CacheBuilder struct {
	client CacheClient
	key    string
	ttl    time.Duration
}

func NewCacheBuilder(client CacheClient, key string) *CacheBuilder {
	return &CacheBuilder{
		client: client,
		key:    key,
		ttl:    defaultCacheTTL,
	}
}

func (b *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	b.ttl = ttl
	return b
}

// Get unmarshals the cached value into dest; found is false on a miss.
func (b *CacheBuilder) Get(ctx context.Context, dest any) (bool, error) {
	raw, err := b.client.Do(ctx, b.client.B().Get().Key(b.key).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}

	return true, nil
}

func (b *CacheBuilder) Set(ctx context.Context, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return b.client.Do(ctx, b.client.B().Set().Key(b.key).Value(string(raw)).
		Ex(b.ttl).Build()).Error()
}

func (b *CacheBuilder) Delete() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return b.client.Do(ctx, b.client.B().Del().Key(b.key).Build()).Error()
}
