package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nikhilbhutani/sitehost/internal/api/handlers"
	"github.com/nikhilbhutani/sitehost/internal/api/middleware"
	"github.com/nikhilbhutani/sitehost/internal/auth"
	"github.com/nikhilbhutani/sitehost/internal/classifier"
	"github.com/nikhilbhutani/sitehost/internal/config"
)

// Deps are the services the HTTP surface is built on. Nil optional entries
// are tolerated: the matching routes are simply not mounted.
type Deps struct {
	Config       *config.Config
	Logger       *slog.Logger
	Classifier   *classifier.Classifier
	Resolver     handlers.SiteResolver
	Quotes       handlers.QuoteSubmitter
	Previews     handlers.PreviewEncoder
	Content      handlers.ContentStore
	Invalidator  handlers.Invalidator
	Retry        handlers.InvalidationQueue
	Audit        handlers.AuditLog
	HealthChecks map[string]handlers.Pinger
}

type Router struct {
	mux      *chi.Mux
	deps     Deps
	jwt      *auth.JWTMiddleware
	adminKey *auth.AdminKeyMiddleware
	limiter  *middleware.RateLimiter
}

func NewRouter(d Deps) *Router {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	cfg := d.Config
	return &Router{
		mux:      chi.NewRouter(),
		deps:     d,
		jwt:      auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
		adminKey: auth.NewAdminKeyMiddleware(cfg.Auth.AdminKeyHeader, cfg.Auth.AdminKeyHash),
		limiter:  middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
	}
}

// Limiter is exposed so the caller can run its cleanup loop.
func (rt *Router) Limiter() *middleware.RateLimiter {
	return rt.limiter
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux
	d := rt.deps

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(d.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(d.Config.Site.CORSOrigins))

	// Health endpoints (no rate limit)
	health := handlers.NewHealthHandler(d.HealthChecks)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	site := handlers.NewSiteHandler(d.Resolver, d.Classifier, d.Logger)

	r.Group(func(r chi.Router) {
		r.Use(rt.limiter.Limit)

		r.Get("/robots.txt", site.Robots)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/site", site.Get)

			if d.Quotes != nil {
				quoteH := handlers.NewQuoteHandler(d.Quotes, d.Logger)
				r.With(site.WithSite).Post("/quotes", quoteH.Submit)
			}

			// Admin routes
			if d.Previews != nil {
				adminH := handlers.NewAdminHandler(d.Previews, d.Config.Site.PublicURL, d.Config.Preview.DefaultTTL, d.Logger)
				r.Route("/admin", func(r chi.Router) {
					r.Use(rt.adminKey.Authenticate)
					r.Post("/previews", adminH.CreatePreview)
				})
			}

			// Tenant dashboard routes
			if d.Content != nil && d.Invalidator != nil {
				dashH := handlers.NewDashboardHandler(d.Content, d.Invalidator, d.Retry, d.Audit, d.Logger)
				r.Route("/dashboard", func(r chi.Router) {
					r.Use(rt.jwt.Authenticate)
					r.With(auth.RequirePermission(auth.PermContentWrite)).Put("/content", dashH.UpdateContent)
					r.With(auth.RequirePermission(auth.PermContentRead)).Get("/history", dashH.History)
				})
			}
		})
	})

	return r
}
