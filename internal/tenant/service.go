// Package tenant is the data gateway for tenant records.
package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nikhilbhutani/sitehost/internal/models"
)

// DB is the subset of *pgxpool.Pool the gateway uses.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Service struct {
	db DB
}

func NewService(db DB) *Service {
	return &Service{db: db}
}

const selectTenant = `SELECT id, slug, industry, business_name, phone, email,
	service_areas, content, status, COALESCE(custom_domain, ''), created_at, updated_at
	FROM tenants`

// GetBySlug returns the tenant record or models.ErrTenantNotFound. Status is
// not checked here; the composer decides what a status means.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	var (
		t       models.Tenant
		status  string
		areas   []byte
		content []byte
	)
	err := s.db.QueryRow(ctx, selectTenant+" WHERE slug = $1", slug).Scan(
		&t.ID, &t.Slug, &t.Industry, &t.BusinessName, &t.Phone, &t.Email,
		&areas, &content, &status, &t.CustomDomain, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant by slug: %w", err)
	}
	t.Status = models.TenantStatus(status)

	if len(areas) > 0 {
		if err := json.Unmarshal(areas, &t.ServiceAreas); err != nil {
			return nil, fmt.Errorf("decode service areas for %s: %w", slug, err)
		}
	}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &t.Content); err != nil {
			return nil, fmt.Errorf("decode content for %s: %w", slug, err)
		}
	}
	return &t, nil
}

// UpdateContent replaces the tenant's content overrides. It is the only write
// the site path performs and is reachable only from the dashboard.
func (s *Service) UpdateContent(ctx context.Context, slug string, overrides models.ContentOverrides) error {
	data, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("encode content: %w", err)
	}
	tag, err := s.db.Exec(ctx,
		"UPDATE tenants SET content = $2, updated_at = now() WHERE slug = $1",
		slug, data,
	)
	if err != nil {
		return fmt.Errorf("update tenant content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrTenantNotFound
	}
	return nil
}

// CustomDomains maps each live tenant's custom domain to its slug.
func (s *Service) CustomDomains(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT custom_domain, slug FROM tenants
		 WHERE custom_domain IS NOT NULL AND custom_domain <> ''
		   AND status IN ('approved', 'active')`,
	)
	if err != nil {
		return nil, fmt.Errorf("list custom domains: %w", err)
	}
	defer rows.Close()

	domains := map[string]string{}
	for rows.Next() {
		var domain, slug string
		if err := rows.Scan(&domain, &slug); err != nil {
			return nil, fmt.Errorf("scan custom domain: %w", err)
		}
		domains[strings.ToLower(domain)] = slug
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate custom domains: %w", err)
	}
	return domains, nil
}
