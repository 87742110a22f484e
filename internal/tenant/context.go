package tenant

import (
	"context"

	"github.com/nikhilbhutani/sitehost/internal/models"
)

type contextKey string

const (
	resolutionKey contextKey = "resolution"
	siteKey       contextKey = "site"
	slugKey       contextKey = "tenant_slug"
)

func WithResolution(ctx context.Context, rc models.ResolutionContext) context.Context {
	return context.WithValue(ctx, resolutionKey, rc)
}

func ResolutionFromContext(ctx context.Context) (models.ResolutionContext, bool) {
	rc, ok := ctx.Value(resolutionKey).(models.ResolutionContext)
	return rc, ok
}

// IsPreview reports whether the request was resolved in a preview mode. A
// request that was never resolved counts as a preview so callers fail safe.
func IsPreview(ctx context.Context) bool {
	rc, ok := ResolutionFromContext(ctx)
	return !ok || rc.IsPreview
}

func WithSite(ctx context.Context, cfg *models.SiteConfig) context.Context {
	return context.WithValue(ctx, siteKey, cfg)
}

func SiteFromContext(ctx context.Context) *models.SiteConfig {
	cfg, _ := ctx.Value(siteKey).(*models.SiteConfig)
	return cfg
}

// WithSlug records the tenant an authenticated dashboard session belongs to.
func WithSlug(ctx context.Context, slug string) context.Context {
	return context.WithValue(ctx, slugKey, slug)
}

func SlugFromContext(ctx context.Context) string {
	s, _ := ctx.Value(slugKey).(string)
	return s
}
