package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"

	"github.com/redis/go-redis/v9"
)

const recordVersionPrefix = "record:version:"

// RedisRecordVersions bumps a version counter per record on every refresh signal so that
// clients polling the versions endpoint can detect stale caches.
type RedisRecordVersions struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisClient parses url and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(strings.TrimSpace(url))
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := client.Ping(pingCtx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewRedisRecordVersions(client redis.Cmdable, ttl time.Duration) *RedisRecordVersions {
	return &RedisRecordVersions{client: client, ttl: ttl}
}

func recordVersionKey(recordID string) string {
	return recordVersionPrefix + strings.TrimSpace(recordID)
}

func (r *RedisRecordVersions) Refresh(ctx context.Context, refs []domain.RecordRef) error {
	if len(refs) == 0 {
		return nil
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, ref := range refs {
			if strings.TrimSpace(ref.RecordID) == "" {
				continue
			}
			key := recordVersionKey(ref.RecordID)
			pipe.Incr(ctx, key)
			if r.ttl > 0 {
				pipe.Expire(ctx, key, r.ttl)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("bump record versions: %w", err)
	}
	return nil
}

// Versions returns the current counter of each id. Unknown records are at version 0.
func (r *RedisRecordVersions) Versions(ctx context.Context, recordIDs []string) (map[string]int64, error) {
	versions := make(map[string]int64, len(recordIDs))
	if len(recordIDs) == 0 {
		return versions, nil
	}
	keys := make([]string, len(recordIDs))
	for i, id := range recordIDs {
		keys[i] = recordVersionKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("read record versions: %w", err)
	}
	for i, id := range recordIDs {
		versions[id] = 0
		if i >= len(values) || values[i] == nil {
			continue
		}
		raw, ok := values[i].(string)
		if !ok {
			continue
		}
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			versions[id] = parsed
		}
	}
	return versions, nil
}

var _ port.RecordRefresher = (*RedisRecordVersions)(nil)

// MemoryRecordVersions is the in-process version store used when no Redis URL is configured.
type MemoryRecordVersions struct {
	mu       sync.Mutex
	versions map[string]int64
}

func NewMemoryRecordVersions() *MemoryRecordVersions {
	return &MemoryRecordVersions{versions: make(map[string]int64)}
}

func (m *MemoryRecordVersions) Refresh(_ context.Context, refs []domain.RecordRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ref := range refs {
		if id := strings.TrimSpace(ref.RecordID); id != "" {
			m.versions[id]++
		}
	}
	return nil
}

func (m *MemoryRecordVersions) Versions(_ context.Context, recordIDs []string) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	versions := make(map[string]int64, len(recordIDs))
	for _, id := range recordIDs {
		versions[id] = m.versions[strings.TrimSpace(id)]
	}
	return versions, nil
}

var (
	_ port.RecordVersionReader = (*RedisRecordVersions)(nil)
	_ port.RecordVersionReader = (*MemoryRecordVersions)(nil)
	_ port.RecordRefresher     = (*MemoryRecordVersions)(nil)
)
