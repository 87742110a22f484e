// Package workers holds asynq task handlers run by cmd/worker.
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/nikhilbhutani/sitehost/internal/models"
	"github.com/nikhilbhutani/sitehost/internal/queue"
)

type Invalidator interface {
	Invalidate(ctx context.Context, mode models.Mode, id string) error
}

type CacheInvalidateWorker struct {
	cache  Invalidator
	logger *slog.Logger
}

func NewCacheInvalidateWorker(cache Invalidator, logger *slog.Logger) *CacheInvalidateWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &CacheInvalidateWorker{cache: cache, logger: logger}
}

// ProcessTask returns the store error so asynq retries with backoff. A
// malformed payload is skipped since retrying cannot fix it.
func (w *CacheInvalidateWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.CacheInvalidatePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}
	mode := models.Mode(payload.Mode)
	if !mode.Valid() {
		return fmt.Errorf("unknown mode %q: %w", payload.Mode, asynq.SkipRetry)
	}

	if err := w.cache.Invalidate(ctx, mode, payload.Identifier); err != nil {
		w.logger.Warn("cache invalidation retry failed", "mode", mode, "identifier", payload.Identifier, "error", err)
		return err
	}

	w.logger.Info("cache entry invalidated", "mode", mode, "identifier", payload.Identifier)
	return nil
}
