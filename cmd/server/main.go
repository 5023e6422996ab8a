package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"walletmap/internal/audit"
	"walletmap/internal/jwttoken"
	"walletmap/internal/platform/config"
	"walletmap/internal/platform/httpserver"
	"walletmap/internal/platform/logger"
	"walletmap/internal/platform/middleware"
	platformredis "walletmap/internal/platform/redis"
	"walletmap/internal/signer"
	"walletmap/internal/wallet/handler"
	"walletmap/internal/wallet/kv"
	"walletmap/internal/wallet/metrics"
	"walletmap/internal/wallet/repository"
	"walletmap/internal/wallet/service"
	derrors "walletmap/pkg/domain-errors"
	"walletmap/pkg/platform/httputil"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	store, closeStore, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Error("store setup failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	repo, err := repository.New(store)
	if err != nil {
		log.Error("repository setup failed", "error", err)
		os.Exit(1)
	}

	issuer, err := buildIssuer(cfg, log)
	if err != nil {
		log.Error("issuer setup failed", "error", err)
		os.Exit(1)
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := audit.NewKafkaPublisher(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("audit publisher setup failed", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		opts = append(opts, service.WithAuditPublisher(publisher))
		log.Info("audit events publishing to kafka", "topic", cfg.Kafka.Topic)
	}

	walletService, err := service.New(repo, issuer, opts...)
	if err != nil {
		log.Error("service setup failed", "error", err)
		os.Exit(1)
	}

	jwtService := jwttoken.NewJWTService(cfg.Server.AdminSigningKey, "walletmap", "walletmap-admin")
	walletHandler := handler.New(walletService, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	walletHandler.Register(router)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(jwtService, log))
		walletHandler.RegisterAdmin(r)
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", healthz(store))

	srv := httpserver.New(cfg.Server.Addr, router)

	log.Info("starting walletmap", "addr", cfg.Server.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// buildStore picks the mapping store backend: Redis when configured, then
// Postgres, falling back to process memory for local development.
func buildStore(ctx context.Context, cfg config.Config, log *slog.Logger) (kv.Store, func(), error) {
	if cfg.Redis.URL != "" {
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		log.Info("mapping store backend: redis")
		return kv.NewRedisStore(client.Client), func() { _ = client.Close() }, nil
	}

	if cfg.Pg.DSN != "" {
		db, err := sql.Open("postgres", cfg.Pg.DSN)
		if err != nil {
			return nil, nil, err
		}
		store := kv.NewPostgresStore(db)
		if err := store.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("mapping store backend: postgres")
		return store, func() { _ = db.Close() }, nil
	}

	log.Warn("mapping store backend: memory, mappings will not survive restarts")
	return kv.NewMemoryStore(), func() {}, nil
}

// buildIssuer uses the CubeSigner CLI when configured, otherwise the dev
// issuer.
func buildIssuer(cfg config.Config, log *slog.Logger) (signer.Issuer, error) {
	if cfg.Signer.Binary != "" {
		log.Info("address issuer: cubesigner", "binary", cfg.Signer.Binary)
		return signer.NewCubeSigner(cfg.Signer.Binary, signer.WithTimeout(cfg.Signer.Timeout))
	}
	log.Warn("address issuer: dev, minted addresses have no backing keys")
	return signer.NewDevIssuer(), nil
}

func healthz(store kv.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker, ok := store.(kv.HealthChecker); ok {
			if err := checker.Health(r.Context()); err != nil {
				httputil.WriteError(w, derrors.Wrap(err, derrors.CodeUnavailable, "mapping store unhealthy"))
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
