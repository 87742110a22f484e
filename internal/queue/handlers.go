package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// HandlersRegistry maps task types to handlers. Every task runs through a
// logging middleware so retries and failures show up next to the API logs.
type HandlersRegistry struct {
	mux    *asynq.ServeMux
	logger *slog.Logger
	types  []string
}

func NewHandlersRegistry(logger *slog.Logger) *HandlersRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &HandlersRegistry{
		mux:    asynq.NewServeMux(),
		logger: logger,
	}
	r.mux.Use(r.logTasks)
	return r
}

func (r *HandlersRegistry) Register(taskType string, handler asynq.Handler) {
	r.mux.Handle(taskType, handler)
	r.types = append(r.types, taskType)
}

// Types lists the registered task types in registration order.
func (r *HandlersRegistry) Types() []string {
	return append([]string(nil), r.types...)
}

func (r *HandlersRegistry) Mux() *asynq.ServeMux {
	return r.mux
}

func (r *HandlersRegistry) logTasks(next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
		start := time.Now()
		retried, _ := asynq.GetRetryCount(ctx)

		err := next.ProcessTask(ctx, t)

		attrs := []any{
			"type", t.Type(),
			"retry", retried,
			"duration", time.Since(start),
		}
		if err != nil {
			r.logger.Warn("task failed", append(attrs, "error", err)...)
			return err
		}
		r.logger.Info("task done", attrs...)
		return nil
	})
}
