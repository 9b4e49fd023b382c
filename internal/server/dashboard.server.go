package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"dashboard-service/internal/config"
	"dashboard-service/internal/guard"
	"dashboard-service/internal/handler"
	"dashboard-service/internal/router"
	"dashboard-service/internal/session"
	"dashboard-service/internal/upstream"
)

// NewServer assembles the dashboard: Redis-backed sessions, the platform API
// client, per-role guards and the page handlers behind one chi router.
func NewServer(cfg config.AppConfig, logger *zap.Logger) (*http.Server, error) {
	// --- Init Redis ---
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	sessions := session.NewRedisStore(rdb)

	// --- Init Clients ---
	api := upstream.NewClient(cfg.APIBaseURL)

	// --- Rendering ---
	render, err := handler.NewRenderer(sessions, logger)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	holding := render.Holding()

	// --- Guards ---
	guards := router.Guards{
		User:      guard.New(guard.UserRole(), sessions, api, logger, holding),
		Admin:     guard.New(guard.AdminRole(), sessions, api, logger, holding),
		Therapist: guard.New(guard.TherapistRole(), sessions, api, logger, holding),
	}

	// --- Handlers ---
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(api, sessions, render, logger),
		User:       handler.NewUserHandler(api, sessions, render, logger),
		Admin:      handler.NewAdminHandler(api, sessions, render, logger),
		Therapist:  handler.NewTherapistHandler(api, sessions, render, logger),
		Onboarding: handler.NewOnboardingHandler(api, sessions, render, logger, cfg.RazorpayKeyID),
	}

	// --- Router ---
	r := chi.NewRouter()
	router.SetupRoutes(r, handlers, guards, rdb, logger)

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(r, "dashboard"),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}
