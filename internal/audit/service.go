// Package audit keeps the history of dashboard edits per tenant.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/netip"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nikhilbhutani/sitehost/internal/models"
)

const (
	ActionContentUpdated = "content.updated"

	defaultLimit = 50
	maxLimit     = 200
)

type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Service struct {
	db DB
}

func NewService(db DB) *Service {
	return &Service{db: db}
}

type LogEntry struct {
	TenantSlug string
	Actor      string
	Action     string
	Details    map[string]interface{}
	IPAddress  string
}

func (s *Service) Log(ctx context.Context, entry LogEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("encode audit details: %w", err)
	}
	if entry.Details == nil {
		details = []byte("{}")
	}

	var ip *netip.Addr
	if entry.IPAddress != "" {
		if parsed, err := netip.ParseAddr(entry.IPAddress); err == nil {
			ip = &parsed
		}
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO audit_logs (tenant_slug, actor, action, details, ip_address)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.TenantSlug, entry.Actor, entry.Action, details, ip,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

type Query struct {
	Action string
	Limit  int
	Offset int
}

// List returns a tenant's entries, newest first.
func (s *Service) List(ctx context.Context, slug string, q Query) ([]models.AuditEntry, error) {
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	query := `SELECT id, tenant_slug, actor, action, details, ip_address, created_at
			  FROM audit_logs WHERE tenant_slug = $1`
	args := []interface{}{slug}
	argIdx := 2

	if q.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", argIdx)
		args = append(args, q.Action)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, q.Limit, q.Offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	logs := []models.AuditEntry{}
	for rows.Next() {
		var (
			l       models.AuditEntry
			details []byte
		)
		if err := rows.Scan(&l.ID, &l.TenantSlug, &l.Actor, &l.Action, &details, &l.IPAddress, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		l.Details = details
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit logs: %w", err)
	}
	return logs, nil
}

// ChangedGroups names the override groups an edit sets, for the details of a
// content.updated entry.
func ChangedGroups(o models.ContentOverrides) []string {
	var out []string
	if o.Brand != "" {
		out = append(out, "brand")
	}
	if o.Logo != (models.Logo{}) {
		out = append(out, "logo")
	}
	if o.Hero != (models.Hero{}) {
		out = append(out, "hero")
	}
	if o.SEO.Title != "" || o.SEO.Description != "" || o.SEO.OGImage != "" || len(o.SEO.Keywords) > 0 {
		out = append(out, "seo")
	}
	if len(o.Services) > 0 {
		out = append(out, "services")
	}
	if len(o.FAQs) > 0 {
		out = append(out, "faqs")
	}
	if o.ThemeName != "" {
		out = append(out, "theme")
	}
	return out
}
