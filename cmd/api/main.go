package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventlyhq/evently/internal/auth"
	"github.com/eventlyhq/evently/internal/cache"
	"github.com/eventlyhq/evently/internal/config"
	"github.com/eventlyhq/evently/internal/db"
	httpx "github.com/eventlyhq/evently/internal/http"
	"github.com/eventlyhq/evently/internal/http/handlers"
	"github.com/eventlyhq/evently/internal/notifications"
	"github.com/eventlyhq/evently/internal/observability"
	"github.com/eventlyhq/evently/internal/repo/memory"
	"github.com/eventlyhq/evently/internal/repo/postgres"
	"github.com/eventlyhq/evently/internal/security"
	"github.com/eventlyhq/evently/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	// tracing is optional; without an endpoint the exporter would just retry
	if cfg.OTelEndpoint != "" {
		shutdown, err := observability.InitTracer(context.Background(), "evently", cfg.OTelEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(3 * time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(promReg)

	// session persistence backend

	var storage session.Storage
	var ping func() error

	switch cfg.SessionBackend {
	case "redis":
		rs := session.NewRedisStorage(session.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rs.Close()

		storage = rs
		ping = func() error {
			ctx, cancel := config.WithTimeout(1 * time.Second)
			defer cancel()
			return rs.Ping(ctx)
		}
	case "file":
		storage = session.NewFileStorage(cfg.SessionFile)
	default:
		storage = session.NewMemoryStorage()
	}

	// repositories: in-memory fixtures by default, Postgres when configured.
	// The verifier matches the backend: plaintext fixture parity in memory,
	// bcrypt hashes in the database.

	var users session.UserDirectory
	var events httpx.CatalogRepository
	var bookings handlers.BookingsRepository
	var verifier security.CredentialVerifier

	if cfg.DBURL != "" {
		pool, err := db.NewPool(cfg.DBURL)

		if err != nil {
			log.Error("db connect failed", "err", err)
			os.Exit(1)
		}

		defer pool.Close()

		verifier = security.BcryptVerifier{}

		seedCtx, cancel := config.WithTimeout(5 * time.Second)
		err = db.EnsureSeedData(seedCtx, pool, verifier)
		cancel()

		if err != nil {
			log.Error("seed failed", "err", err)
			os.Exit(1)
		}

		users = postgres.NewUsersRepo(pool)
		events = postgres.NewEventsRepo(pool, prom)
		bookings = postgres.NewBookingsRepo(pool, prom)

		dbPing := ping
		ping = func() error {
			ctx, cancel := config.WithTimeout(1 * time.Second)
			defer cancel()

			if err := pool.Ping(ctx); err != nil {
				return err
			}

			if dbPing != nil {
				return dbPing()
			}

			return nil
		}
	} else {
		verifier = security.PlaintextVerifier{}
		users = memory.NewUsersRepo(memory.SeedUsers()...)
		events = memory.NewEventsRepo(memory.SeedEvents()...)
		bookings = memory.NewBookingsRepo()
	}

	sessions := session.NewStore(users, verifier, storage)

	restoreCtx, cancel := config.WithTimeout(2 * time.Second)
	err := sessions.Restore(restoreCtx)
	cancel()

	if err != nil {
		log.Error("session restore failed", "err", err)
		os.Exit(1)
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL)

	router := httpx.NewRouter(httpx.Deps{
		Env:            cfg.Env,
		Log:            log,
		Sessions:       sessions,
		JWT:            jwtManager,
		Events:         events,
		Bookings:       bookings,
		Notifier:       notifications.NewLogNotifier(log),
		Prom:           prom,
		PromReg:        promReg,
		ListCache:      cache.New(5 * time.Second),
		Ping:           ping,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimit,
		RateWindow:     cfg.RateWindow,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "session_backend", cfg.SessionBackend)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
