package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nikhilbhutani/sitehost/internal/models"
)

const keyPrefix = "site:v1:"

// Policy holds the entry lifetime for each resolution mode.
type Policy struct {
	Live     time.Duration
	Preview  time.Duration
	Platform time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Live: 5 * time.Minute, Preview: time.Minute, Platform: 10 * time.Minute}
}

func (p Policy) TTL(mode models.Mode) time.Duration {
	switch mode {
	case models.ModeLiveTenant:
		return p.Live
	case models.ModePlatform:
		return p.Platform
	default:
		return p.Preview
	}
}

// Key builds the store key for a resolution. The platform site has a single
// key regardless of identifier.
func Key(mode models.Mode, id string) string {
	if mode == models.ModePlatform {
		return keyPrefix + string(models.ModePlatform)
	}
	return keyPrefix + string(mode) + ":" + id
}

// Entry is a composed config with the context it was composed under.
type Entry struct {
	Config  models.SiteConfig        `json:"config"`
	Context models.ResolutionContext `json:"context"`
}

// ContextCache stores composed entries. Store failures never reach the
// caller on the read path: they are logged and treated as a miss.
type ContextCache struct {
	store  Store
	policy Policy
	logger *slog.Logger
}

func NewContextCache(store Store, policy Policy, logger *slog.Logger) *ContextCache {
	if store == nil {
		store = NoopStore{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ContextCache{store: store, policy: policy, logger: logger}
}

func (c *ContextCache) Get(ctx context.Context, mode models.Mode, id string) (Entry, bool) {
	key := Key(mode, id)
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("site cache read failed", "key", key, "error", err)
		return Entry{}, false
	}
	if !ok {
		return Entry{}, false
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.logger.Warn("site cache entry corrupt", "key", key, "error", err)
		return Entry{}, false
	}
	return e, true
}

func (c *ContextCache) Put(ctx context.Context, mode models.Mode, id string, e Entry) {
	ttl := c.policy.TTL(mode)
	if ttl <= 0 {
		return
	}
	key := Key(mode, id)
	data, err := json.Marshal(e)
	if err != nil {
		c.logger.Warn("site cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, data, ttl); err != nil {
		c.logger.Warn("site cache write failed", "key", key, "error", err)
	}
}

// Invalidate removes an entry. Unlike reads, the error is returned so the
// caller can schedule a retry.
func (c *ContextCache) Invalidate(ctx context.Context, mode models.Mode, id string) error {
	key := Key(mode, id)
	if err := c.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("invalidate %s: %w", key, err)
	}
	return nil
}
