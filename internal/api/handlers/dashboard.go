package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/nikhilbhutani/sitehost/internal/audit"
	"github.com/nikhilbhutani/sitehost/internal/auth"
	"github.com/nikhilbhutani/sitehost/internal/models"
	"github.com/nikhilbhutani/sitehost/internal/queue"
	"github.com/nikhilbhutani/sitehost/internal/tenant"
)

type ContentStore interface {
	UpdateContent(ctx context.Context, slug string, overrides models.ContentOverrides) error
}

type Invalidator interface {
	Invalidate(ctx context.Context, mode models.Mode, id string) error
}

type InvalidationQueue interface {
	EnqueueCacheInvalidate(payload queue.CacheInvalidatePayload) error
}

type AuditLog interface {
	Log(ctx context.Context, entry audit.LogEntry) error
	List(ctx context.Context, slug string, q audit.Query) ([]models.AuditEntry, error)
}

// DashboardHandler serves authenticated tenant edits.
type DashboardHandler struct {
	store  ContentStore
	cache  Invalidator
	retry  InvalidationQueue
	audit  AuditLog
	logger *slog.Logger
}

// NewDashboardHandler takes optional retry and audit collaborators; nil
// disables them.
func NewDashboardHandler(store ContentStore, cache Invalidator, retry InvalidationQueue, auditLog AuditLog, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{store: store, cache: cache, retry: retry, audit: auditLog, logger: logger}
}

// UpdateContent saves the overrides, then drops the cached site so the next
// view recomposes. A failed invalidation never fails the save: it is queued
// for retry and the entry expires on its TTL regardless.
func (h *DashboardHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	slug := tenant.SlugFromContext(r.Context())
	if slug == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var overrides models.ContentOverrides
	if !decodeBody(w, r, &overrides) {
		return
	}

	if err := h.store.UpdateContent(r.Context(), slug, overrides); err != nil {
		if errors.Is(err, models.ErrTenantNotFound) {
			writeError(w, http.StatusNotFound, "tenant_not_found", "tenant not found")
			return
		}
		h.logger.Error("save content failed", "tenant", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not save content")
		return
	}

	if err := h.cache.Invalidate(r.Context(), models.ModeLiveTenant, slug); err != nil {
		h.logger.Warn("cache invalidation failed, scheduling retry", "tenant", slug, "error", err)
		h.scheduleRetry(slug)
	}

	h.record(r, slug, overrides)
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// record never fails the request; the edit is already saved.
func (h *DashboardHandler) record(r *http.Request, slug string, overrides models.ContentOverrides) {
	if h.audit == nil {
		return
	}
	var actor string
	if c := auth.ClaimsFromContext(r.Context()); c != nil {
		actor = c.Email
		if actor == "" {
			actor = c.Subject
		}
	}
	err := h.audit.Log(r.Context(), audit.LogEntry{
		TenantSlug: slug,
		Actor:      actor,
		Action:     audit.ActionContentUpdated,
		Details:    map[string]interface{}{"groups": audit.ChangedGroups(overrides)},
		IPAddress:  remoteIP(r),
	})
	if err != nil {
		h.logger.Warn("audit log failed", "tenant", slug, "error", err)
	}
}

// History lists the tenant's recent dashboard edits.
func (h *DashboardHandler) History(w http.ResponseWriter, r *http.Request) {
	slug := tenant.SlugFromContext(r.Context())
	if slug == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	if h.audit == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"entries": []models.AuditEntry{}})
		return
	}

	q := audit.Query{Action: r.URL.Query().Get("action")}
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	q.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	entries, err := h.audit.List(r.Context(), slug, q)
	if err != nil {
		h.logger.Error("list audit log failed", "tenant", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not load history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func remoteIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (h *DashboardHandler) scheduleRetry(slug string) {
	if h.retry == nil {
		return
	}
	err := h.retry.EnqueueCacheInvalidate(queue.CacheInvalidatePayload{
		Mode:       string(models.ModeLiveTenant),
		Identifier: slug,
	})
	if err != nil {
		h.logger.Error("enqueue cache invalidation failed", "tenant", slug, "error", err)
	}
}
