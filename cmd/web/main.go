// cmd/web/main.go
//
// Niche blog platform – HTTP entry point.
//
// Request life-cycle
// ------------------
//
//  1. Load env vars (server-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load typed config (conf/global.yaml + BLOG_* env overrides).
//
//  4. Open the content database and log active-tenant count.
//
//  5. Wire the resolver: host normalizer → tenant cache → redirect
//     store/fetcher/refresher/coordinator.  The redirect store is
//     process-local memory, or shared Redis when resolver.redis_addr is set.
//
//  6. Build the chi router: /metrics and /healthz outside tenant scope;
//     everything else runs through tenant resolution, redirect rewriting,
//     and security headers, then lands on a JSON echo of the resolved
//     tenant config (the rendering layer's stand-in).
//
//  7. Serve with hardened timeouts; SIGINT/SIGTERM drains in-flight
//     requests and stops all background refreshers.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/steef2323/niche-blog-platform-sub001/internal/config"
	"github.com/steef2323/niche-blog-platform-sub001/internal/content"
	"github.com/steef2323/niche-blog-platform-sub001/internal/database"
	"github.com/steef2323/niche-blog-platform-sub001/internal/hostkey"
	"github.com/steef2323/niche-blog-platform-sub001/internal/logger"
	"github.com/steef2323/niche-blog-platform-sub001/internal/middleware"
	"github.com/steef2323/niche-blog-platform-sub001/internal/redirect"
	"github.com/steef2323/niche-blog-platform-sub001/internal/resolver"
	"github.com/steef2323/niche-blog-platform-sub001/internal/server"
	"github.com/steef2323/niche-blog-platform-sub001/internal/tenant"
)

const serverEnvPath = "/usr/local/etc/niche-blog/global.env"

// loadEnv prefers the server-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	zlog, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Config ──────────────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatalw("load config", "err", err)
	}

	//
	// ── 2.  Content database ────────────────────────────────────────────
	//
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		zlog.Fatalw("connect content DB", "err", err)
	}
	defer db.Close()
	zlog.Infow("content DB online")

	// Log active-tenant count as an early sanity check.
	var active int
	_ = db.Get(&active, `
	    SELECT COUNT(*) FROM tenant
	    WHERE suspended_at IS NULL AND deleted_at IS NULL`)
	zlog.Infow("active tenants", "count", active)

	//
	// ── 3.  Resolver wiring ─────────────────────────────────────────────
	//
	backend := content.NewSQL(db)
	norm := hostkey.New(cfg.Development(), cfg.Resolver.DevPortAliases)
	tenants := tenant.NewCache(backend, norm, cfg.Tenants, cfg.Resolver.TenantTTL)

	var store redirect.Store = redirect.NewMemoryStore()
	if addr := cfg.Resolver.RedisAddr; addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		defer rdb.Close()
		store = redirect.NewRedisStore(rdb)
		zlog.Infow("redirect store on redis", "addr", addr)
	}

	fetcher := redirect.NewFetcher(backend, cfg.Resolver.MaxRecords)
	refresher := redirect.NewRefresher(fetcher, store, cfg.Resolver.RefreshInterval)
	coord := redirect.NewCoordinator(store, fetcher, cfg.Resolver.RefreshInterval, cfg.Resolver.FetchTimeout)
	res := resolver.New(tenants, coord, refresher)
	defer res.Close()

	//
	// ── 4.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Resolve(res))
		r.Use(middleware.Redirects(res))
		r.Use(middleware.Security)

		// Stand-in for the rendering layer: echo the resolved tenant
		// config so downstream services (and curl) can see what a host
		// maps to.
		r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
			cfg, _ := middleware.TenantFrom(req.Context())
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			if err := json.NewEncoder(w).Encode(cfg); err != nil {
				zlog.Warnw("encode tenant config", "err", err)
			}
		})
	})

	//
	// ── 5.  Serve until signalled ───────────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, r)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatalw("http server", "err", err)
		}
	}()

	<-ctx.Done()
	zlog.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Warnw("shutdown", "err", err)
	}
}
