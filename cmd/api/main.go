package main

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/sitehost/internal/api"
	"github.com/nikhilbhutani/sitehost/internal/api/handlers"
	"github.com/nikhilbhutani/sitehost/internal/audit"
	"github.com/nikhilbhutani/sitehost/internal/booking"
	"github.com/nikhilbhutani/sitehost/internal/cache"
	"github.com/nikhilbhutani/sitehost/internal/classifier"
	"github.com/nikhilbhutani/sitehost/internal/compose"
	"github.com/nikhilbhutani/sitehost/internal/config"
	"github.com/nikhilbhutani/sitehost/internal/database"
	"github.com/nikhilbhutani/sitehost/internal/preview"
	"github.com/nikhilbhutani/sitehost/internal/queue"
	"github.com/nikhilbhutani/sitehost/internal/resolver"
	"github.com/nikhilbhutani/sitehost/internal/tenant"
)

// l1Expire bounds how long one instance may serve an entry another instance
// has already invalidated in redis.
const l1Expire = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := database.RunMigrations(ctx, db); err != nil {
			slog.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	health := map[string]handlers.Pinger{"postgres": db}

	// Site cache: ristretto in process, backed by redis when reachable.
	local, err := cache.NewLocalStore(cfg.Cache.L1MaxBytes)
	if err != nil {
		slog.Error("failed to create local cache", "error", err)
		os.Exit(1)
	}
	defer local.Close()

	var store cache.Store = local
	var retry handlers.InvalidationQueue
	if cfg.Cache.UseRedis {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		remote := cache.NewRedisStore(rdb)
		if err := remote.Ping(ctx); err != nil {
			slog.Warn("redis unavailable, using local cache only", "error", err)
		} else {
			store = cache.NewTieredStore(local, remote, l1Expire)
			health["redis"] = remote

			qc := queue.NewClient(cfg.Redis)
			defer qc.Close()
			retry = qc
		}
	}

	siteCache := cache.NewContextCache(store, cache.Policy{
		Live:     cfg.Cache.LiveTTL,
		Preview:  cfg.Cache.PreviewTTL,
		Platform: cfg.Cache.PlatformTTL,
	}, logger)

	tenants := tenant.NewService(db)

	domains := maps.Clone(cfg.Site.CustomDomains)
	if domains == nil {
		domains = map[string]string{}
	}
	fromDB, err := tenants.CustomDomains(ctx)
	if err != nil {
		slog.Warn("could not load tenant custom domains", "error", err)
	}
	maps.Copy(domains, fromDB)

	cl := classifier.New(classifier.Options{
		BaseDomain:    cfg.Site.BaseDomain,
		Reserved:      cfg.Site.ReservedSubdomains,
		CustomDomains: domains,
	})
	codec := preview.NewCodec(cfg.Preview.Secret, cfg.Preview.Issuer, preview.WithMaxTTL(cfg.Preview.MaxTTL))

	res := resolver.New(resolver.Deps{
		Classifier:     cl,
		Composer:       compose.New(nil),
		Gateway:        tenants,
		Tokens:         codec,
		Cache:          siteCache,
		GatewayTimeout: cfg.Gateway.Timeout,
		Logger:         logger,
	})

	router := api.NewRouter(api.Deps{
		Config:       cfg,
		Logger:       logger,
		Classifier:   cl,
		Resolver:     res,
		Quotes:       booking.NewService(booking.NewPGQuoteStore(db), logger),
		Previews:     codec,
		Content:      tenants,
		Invalidator:  siteCache,
		Retry:        retry,
		Audit:        audit.NewService(db),
		HealthChecks: health,
	})
	handler := router.Setup()

	stop := make(chan struct{})
	defer close(stop)
	go router.Limiter().Cleanup(time.Minute, 3*time.Minute, stop)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting site server",
			"addr", cfg.Addr(),
			"base_domain", cfg.Site.BaseDomain,
			"custom_domains", len(domains),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
