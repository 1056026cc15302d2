package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	redisv9 "github.com/redis/go-redis/v9"

	"shop_backend/internal/app/di"
	"shop_backend/internal/app/router"
	authhandler "shop_backend/internal/feature/auth/transport/handler"
	authusecase "shop_backend/internal/feature/auth/usecase"
	"shop_backend/internal/platform/cache"
	platformdb "shop_backend/internal/platform/db"
	jwtmw "shop_backend/internal/platform/jwt"
	"shop_backend/internal/platform/logger"
	"shop_backend/internal/platform/metrics"
	"shop_backend/internal/platform/password"
	"shop_backend/internal/platform/ratelimit"
	platformredis "shop_backend/internal/platform/redis"
	"shop_backend/internal/platform/tracing"
)

const (
	revocationSweepInterval = 30 * time.Minute
	limiterPruneInterval    = 5 * time.Minute
	shutdownTimeout         = 10 * time.Second
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	log := logger.Init()

	traceCfg := tracing.LoadConfigFromEnv()
	shutdownTracer, err := tracing.InitTracer(context.Background(), traceCfg)
	if err != nil {
		fatal(log, "failed to init tracer", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			log.Error("failed to flush traces", "error", err)
		}
	}()

	jwtCfg, err := jwtmw.LoadConfig()
	if err != nil {
		fatal(log, "invalid JWT configuration", err)
	}
	issuer, err := jwtmw.NewIssuer(jwtCfg)
	if err != nil {
		fatal(log, "failed to create token issuer", err)
	}
	verifier, err := jwtmw.NewVerifier(jwtCfg)
	if err != nil {
		fatal(log, "failed to create token verifier", err)
	}

	// db
	db, err := platformdb.OpenDB()
	if err != nil {
		fatal(log, "database unavailable", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		fatal(log, "database handle unavailable", err)
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis
	var rdb *redisv9.Client
	if redisCfg := platformredis.LoadConfigFromEnv(); redisCfg.Enabled() {
		if tmp, err := platformredis.NewRedisClient(redisCfg); err != nil {
			log.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repository
	userRepo := di.NewUserRepository(rdb, db, cache.LoadTTLFromEnv())
	revocationRepo := di.NewRevocationRepository(rdb, db)

	// Usecase
	hasher := password.NewBcryptHasher(password.LoadCostFromEnv())
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, issuer, revocationRepo)
	userUC := authusecase.NewUserUsecase(userRepo, hasher, issuer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seedAdmin(ctx, log, authUC)

	limiter := ratelimit.NewLimiter(ratelimit.LoadConfigFromEnv())
	go limiter.Run(ctx, limiterPruneInterval)
	go sweepRevocations(ctx, log, revocationRepo)

	r := router.NewRouter(router.Deps{
		Auth:           authhandler.NewAuthHandler(authUC),
		Users:          authhandler.NewUserHandler(userUC),
		Verifier:       verifier,
		Revocations:    revocationRepo,
		LoginLimiter:   limiter,
		DB:             sqlDB,
		Metrics:        metrics.NewProm(prometheus.NewRegistry()),
		ServiceName:    tracingServiceName(traceCfg),
		Logger:         log,
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	})

	srv := &http.Server{
		Addr:              ":" + getEnv("PORT", "8080"),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(log, "server failed", err)
		}
	}()

	<-ctx.Done()
	log.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		return
	}
	log.Info("shutdown complete")
}

type adminSeeder interface {
	EnsureAdmin(ctx context.Context, in authusecase.SignupInput) (bool, error)
}

// seedAdmin creates the bootstrap admin from ADMIN_FULL_NAME / ADMIN_PASSWORD when both are set.
func seedAdmin(ctx context.Context, log *slog.Logger, authUC adminSeeder) {
	name, pass := os.Getenv("ADMIN_FULL_NAME"), os.Getenv("ADMIN_PASSWORD")
	if name == "" || pass == "" {
		return
	}
	created, err := authUC.EnsureAdmin(ctx, authusecase.SignupInput{
		FullName: name,
		Email:    getEnv("ADMIN_EMAIL", "admin@localhost.localdomain"),
		Password: pass,
	})
	if err != nil {
		log.Error("failed to seed admin account", "error", err)
		return
	}
	if created {
		log.Info("admin account created", "full_name", name)
	}
}

// sweepRevocations purges expired revocation entries until ctx is done.
func sweepRevocations(ctx context.Context, log *slog.Logger, repo authusecase.RevocationRepository) {
	ticker := time.NewTicker(revocationSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx)
			if err != nil {
				log.Warn("revocation sweep failed", "error", err)
				continue
			}
			if n > 0 {
				log.Info("revocation sweep", "deleted", n)
			}
		}
	}
}

// tracingServiceName returns "" when export is disabled so the router skips span creation.
func tracingServiceName(cfg tracing.Config) string {
	if !cfg.Enabled() {
		return ""
	}
	return cfg.ServiceName
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
