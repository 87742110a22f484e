// Package resolver turns an incoming request into a composed site config and
// the context it was resolved under.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nikhilbhutani/sitehost/internal/cache"
	"github.com/nikhilbhutani/sitehost/internal/classifier"
	"github.com/nikhilbhutani/sitehost/internal/compose"
	"github.com/nikhilbhutani/sitehost/internal/models"
)

const DefaultGatewayTimeout = 3 * time.Second

// Gateway is the read side of the tenant data store.
type Gateway interface {
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
}

// TokenDecoder verifies preview tokens.
type TokenDecoder interface {
	Decode(token, expectedTenantID string) (models.PreviewPayload, error)
}

type SiteCache interface {
	Get(ctx context.Context, mode models.Mode, id string) (cache.Entry, bool)
	Put(ctx context.Context, mode models.Mode, id string, e cache.Entry)
}

// Result is returned on error too; Context then carries whatever was known
// from classification so callers can tell preview failures apart.
type Result struct {
	Config  models.SiteConfig        `json:"config"`
	Context models.ResolutionContext `json:"context"`
}

type Deps struct {
	Classifier     *classifier.Classifier
	Composer       *compose.Composer
	Gateway        Gateway
	Tokens         TokenDecoder
	Cache          SiteCache
	GatewayTimeout time.Duration
	Logger         *slog.Logger
}

type Resolver struct {
	classifier *classifier.Classifier
	composer   *compose.Composer
	gateway    Gateway
	tokens     TokenDecoder
	cache      SiteCache
	timeout    time.Duration
	logger     *slog.Logger
	flight     singleflight.Group
}

func New(d Deps) *Resolver {
	if d.Composer == nil {
		d.Composer = compose.New(nil)
	}
	if d.Cache == nil {
		d.Cache = cache.NewContextCache(cache.NoopStore{}, cache.DefaultPolicy(), d.Logger)
	}
	if d.GatewayTimeout <= 0 {
		d.GatewayTimeout = DefaultGatewayTimeout
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &Resolver{
		classifier: d.Classifier,
		composer:   d.Composer,
		gateway:    d.Gateway,
		tokens:     d.Tokens,
		cache:      d.Cache,
		timeout:    d.GatewayTimeout,
		logger:     d.Logger,
	}
}

// Resolve classifies req by host, path and query and resolves it.
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) (Result, error) {
	return r.ResolveInput(ctx, InputFromRequest(req))
}

// InputFromRequest prefers the first X-Forwarded-Host entry over Host so the
// service works behind a proxy.
func InputFromRequest(req *http.Request) classifier.Input {
	host := req.Host
	if fwd := req.Header.Get("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return classifier.Input{Host: host, Path: req.URL.Path, Query: req.URL.Query()}
}

func (r *Resolver) ResolveInput(ctx context.Context, in classifier.Input) (Result, error) {
	cl := r.classifier.Classify(in)

	switch cl.Mode {
	case models.ModeLiveTenant:
		return r.live(ctx, cl)
	case models.ModeTokenPreview:
		return r.tokenPreview(ctx, cl)
	case models.ModeParamPreview:
		return r.cached(ctx, cl, compose.Source{
			Mode:       cl.Mode,
			Identifier: cl.Identifier,
			Params:     cl.Params,
		})
	default:
		res, err := r.cached(ctx, cl, compose.Source{Mode: models.ModePlatform})
		res.Context.Admin = cl.Admin
		return res, err
	}
}

// baseContext is what is known before any lookup.
func baseContext(cl classifier.Classification) models.ResolutionContext {
	return models.ResolutionContext{
		Mode:       cl.Mode,
		Identifier: cl.Identifier,
		IsPreview:  cl.Mode.IsPreview(),
		Admin:      cl.Admin,
	}
}

// cached serves modes whose composition needs no I/O.
func (r *Resolver) cached(ctx context.Context, cl classifier.Classification, src compose.Source) (Result, error) {
	if e, ok := r.cache.Get(ctx, src.Mode, src.Identifier); ok {
		return Result(e), nil
	}

	cfg, rc, err := r.composer.Compose(src)
	if err != nil {
		if rc.Mode == "" {
			rc = baseContext(cl)
		}
		return Result{Context: rc}, err
	}
	// Admin is a property of the request host, not of the cached entry.
	stored := rc
	stored.Admin = false
	r.cache.Put(ctx, src.Mode, src.Identifier, cache.Entry{Config: cfg, Context: stored})
	return Result{Config: cfg, Context: rc}, nil
}

// tokenPreview verifies the token on every view, so an entry cached before
// expiry is never served after it.
func (r *Resolver) tokenPreview(ctx context.Context, cl classifier.Classification) (Result, error) {
	if r.tokens == nil {
		return Result{Context: baseContext(cl)}, models.ErrInvalidSignature
	}
	p, err := r.tokens.Decode(cl.Token, cl.ExpectedTenantID)
	if err != nil {
		return Result{Context: baseContext(cl)}, err
	}
	return r.cached(ctx, cl, compose.Source{
		Mode:       models.ModeTokenPreview,
		Identifier: p.Subject,
		Preview:    &p,
	})
}

// live reads through the cache. Concurrent misses for one slug share a single
// gateway read, which runs detached from the caller so an abandoned request
// still fills the cache.
func (r *Resolver) live(ctx context.Context, cl classifier.Classification) (Result, error) {
	slug := cl.Identifier
	if e, ok := r.cache.Get(ctx, models.ModeLiveTenant, slug); ok {
		return Result(e), nil
	}

	ch := r.flight.DoChan(slug, func() (any, error) {
		return r.load(context.WithoutCancel(ctx), cl)
	})

	select {
	case res := <-ch:
		e, _ := res.Val.(cache.Entry)
		if res.Err != nil {
			if e.Context.Mode == "" {
				e.Context = baseContext(cl)
			}
			return Result{Context: e.Context}, res.Err
		}
		return Result(e), nil
	case <-ctx.Done():
		return Result{Context: baseContext(cl)}, ctx.Err()
	}
}

func (r *Resolver) load(ctx context.Context, cl classifier.Classification) (cache.Entry, error) {
	slug := cl.Identifier
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	t, err := r.gateway.GetBySlug(ctx, slug)
	switch {
	case errors.Is(err, models.ErrTenantNotFound):
		t = nil
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded):
		r.logger.Error("tenant gateway timed out",
			"slug", slug,
			"timeout", r.timeout,
			"elapsed", time.Since(start),
		)
		return cache.Entry{}, fmt.Errorf("%w: %s", models.ErrGatewayTimeout, slug)
	case err != nil:
		return cache.Entry{}, fmt.Errorf("load tenant %s: %w", slug, err)
	}

	cfg, rc, err := r.composer.Compose(compose.Source{
		Mode:       models.ModeLiveTenant,
		Identifier: slug,
		Tenant:     t,
	})
	if err != nil {
		return cache.Entry{Context: rc}, err
	}

	e := cache.Entry{Config: cfg, Context: rc}
	r.cache.Put(ctx, models.ModeLiveTenant, slug, e)
	return e, nil
}
