package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/nikhilbhutani/sitehost/internal/classifier"
	"github.com/nikhilbhutani/sitehost/internal/resolver"
	"github.com/nikhilbhutani/sitehost/internal/tenant"
)

type SiteResolver interface {
	Resolve(ctx context.Context, req *http.Request) (resolver.Result, error)
}

type SiteHandler struct {
	resolver   SiteResolver
	classifier *classifier.Classifier
	logger     *slog.Logger
}

func NewSiteHandler(res SiteResolver, cl *classifier.Classifier, logger *slog.Logger) *SiteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SiteHandler{resolver: res, classifier: cl, logger: logger}
}

// Get returns the composed config and resolution context for the request's
// host and query.
func (h *SiteHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.resolver.Resolve(r.Context(), r)
	if err != nil {
		writeResolveError(w, h.logger, res.Context, err)
		return
	}
	markPreview(w, res.Context)
	if !res.Context.IsPreview {
		w.Header().Set("Cache-Control", "public, max-age=60")
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}
	writeJSON(w, http.StatusOK, res)
}

// WithSite resolves the request and stores the result on the context for
// form handlers. Resolution errors end the request.
func (h *SiteHandler) WithSite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := h.resolver.Resolve(r.Context(), r)
		if err != nil {
			writeResolveError(w, h.logger, res.Context, err)
			return
		}
		markPreview(w, res.Context)
		ctx := tenant.WithResolution(r.Context(), res.Context)
		ctx = tenant.WithSite(ctx, &res.Config)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

const (
	robotsDisallowAll     = "User-agent: *\nDisallow: /\n"
	robotsDisallowPreview = "User-agent: *\nDisallow: /preview\nDisallow: /api/\n"
)

// Robots never needs the tenant record: only classification matters.
func (h *SiteHandler) Robots(w http.ResponseWriter, r *http.Request) {
	in := resolver.InputFromRequest(r)
	cl := h.classifier.Classify(in)

	body := robotsDisallowPreview
	if cl.Mode.IsPreview() || classifier.IsLocalHost(in.Host) {
		body = robotsDisallowAll
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
