package utils

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const (
	// Redis only has string type, there is no boolean or int, so we use "1" to represent true
	RedisTrue = "1"

	DefaultProcessedEventTTL = 7 * 24 * time.Hour
)

// ProcessedEventStore remembers which webhook deliveries were handled, so a
// redelivered event is acknowledged without applying it twice.
type ProcessedEventStore interface {
	// MarkProcessed returns true when the id was not seen before.
	MarkProcessed(ctx context.Context, source string, eventId string) (bool, error)
	// Forget drops the mark, used when handling the event failed and the
	// provider should be allowed to retry.
	Forget(ctx context.Context, source string, eventId string) error
}

type RedisKeyParser struct {
	delimiter string
}

func (r RedisKeyParser) ValidateId(id string) bool {
	return id != "" && !strings.Contains(id, r.delimiter)
}

func (r RedisKeyParser) EncodeEventKey(source string, eventId string) (string, error) {
	if !r.ValidateId(source) || !r.ValidateId(eventId) {
		return "", fmt.Errorf("invalid source or eventId: %s, %s", source, eventId)
	}
	return fmt.Sprintf("%s%s%s", source, r.delimiter, eventId), nil
}

type RedisEventStore struct {
	inner     *redis.Client
	keyParser RedisKeyParser
	ttl       time.Duration
}

func GetRedisEventStore(ctx context.Context) (*RedisEventStore, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, errors.Wrap(err, "fail to connect to redis")
	}
	return NewRedisEventStore(redisClient, DefaultProcessedEventTTL), nil
}

func NewRedisEventStore(client *redis.Client, ttl time.Duration) *RedisEventStore {
	return &RedisEventStore{
		inner:     client,
		keyParser: RedisKeyParser{delimiter: "__"},
		ttl:       ttl,
	}
}

func (r *RedisEventStore) MarkProcessed(ctx context.Context, source string, eventId string) (bool, error) {
	key, err := r.keyParser.EncodeEventKey(source, eventId)
	if err != nil {
		return false, err
	}
	ok, err := r.inner.SetNX(ctx, key, RedisTrue, r.ttl).Result()
	return ok, errors.Wrap(err, "fail to mark event processed")
}

func (r *RedisEventStore) Forget(ctx context.Context, source string, eventId string) error {
	key, err := r.keyParser.EncodeEventKey(source, eventId)
	if err != nil {
		return err
	}
	return errors.Wrap(r.inner.Del(ctx, key).Err(), "fail to forget event")
}

// MemoryEventStore is a process local ProcessedEventStore for development
// and tests.
type MemoryEventStore struct {
	mu        sync.Mutex
	seen      map[string]bool
	keyParser RedisKeyParser
}

func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{seen: map[string]bool{}, keyParser: RedisKeyParser{delimiter: "__"}}
}

func (m *MemoryEventStore) MarkProcessed(ctx context.Context, source string, eventId string) (bool, error) {
	key, err := m.keyParser.EncodeEventKey(source, eventId)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	return true, nil
}

func (m *MemoryEventStore) Forget(ctx context.Context, source string, eventId string) error {
	key, err := m.keyParser.EncodeEventKey(source, eventId)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.seen, key)
	return nil
}

var (
	_ ProcessedEventStore = (*RedisEventStore)(nil)
	_ ProcessedEventStore = (*MemoryEventStore)(nil)
)
