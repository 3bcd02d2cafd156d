package infrastructure

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"
)

const defaultFieldInfoTTL = 10 * time.Minute

type fieldInfoEntry struct {
	infos     map[string]domain.FieldInfo
	fetchedAt time.Time
}

// CachedFieldInfos keeps object metadata per object name for ttl. Every form mount asks for
// labels, while the platform metadata only changes on deployment.
type CachedFieldInfos struct {
	next    port.FieldInfoProvider
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]fieldInfoEntry
}

func NewCachedFieldInfos(next port.FieldInfoProvider, ttl time.Duration) *CachedFieldInfos {
	if ttl <= 0 {
		ttl = defaultFieldInfoTTL
	}
	return &CachedFieldInfos{next: next, ttl: ttl, now: time.Now, entries: make(map[string]fieldInfoEntry)}
}

func (c *CachedFieldInfos) FieldInfos(ctx context.Context, objectName string) (map[string]domain.FieldInfo, error) {
	key := strings.TrimSpace(objectName)
	if infos, ok := c.get(key); ok {
		return infos, nil
	}
	infos, err := c.next.FieldInfos(ctx, key)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[key] = fieldInfoEntry{infos: infos, fetchedAt: c.now()}
	c.mu.Unlock()
	slog.Debug("field infos cached", slog.String("objectName", key), slog.Int("fields", len(infos)))
	return cloneFieldInfos(infos), nil
}

func (c *CachedFieldInfos) get(key string) (map[string]domain.FieldInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || c.now().Sub(entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	return cloneFieldInfos(entry.infos), true
}

// Invalidate drops the cached metadata of objectName.
func (c *CachedFieldInfos) Invalidate(objectName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, strings.TrimSpace(objectName))
}

func cloneFieldInfos(infos map[string]domain.FieldInfo) map[string]domain.FieldInfo {
	out := make(map[string]domain.FieldInfo, len(infos))
	for name, info := range infos {
		out[name] = info
	}
	return out
}

var _ port.FieldInfoProvider = (*CachedFieldInfos)(nil)
