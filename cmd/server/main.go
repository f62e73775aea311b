package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/tarefista/tarefista-backend/internal/config"
	"github.com/tarefista/tarefista-backend/internal/database"
	"github.com/tarefista/tarefista-backend/internal/handlers"
	"github.com/tarefista/tarefista-backend/internal/middleware"
	"github.com/tarefista/tarefista-backend/internal/routes"
	"github.com/tarefista/tarefista-backend/internal/secrets"
	"github.com/tarefista/tarefista-backend/internal/services"
	"github.com/tarefista/tarefista-backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	ctx := context.Background()

	tokens, err := services.NewTokenService(cfg.JWTSecret)
	if err != nil {
		slog.Error("server misconfigured", "error", err)
		os.Exit(1)
	}

	// Blacklist: in-process by default; Redis-backed when configured so
	// revocations are shared across instances.
	var blacklist services.TokenBlacklist = services.NewMemoryBlacklist()
	if cfg.RedisURI != "" {
		redisClient, err := database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			slog.Error("failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		blacklist = services.NewRedisBlacklist(redisClient)
	}

	mongoURI, err := secrets.ResolveMongoURI(ctx, cfg)
	if err != nil {
		slog.Error("failed to resolve Mongo credentials", "error", err)
		os.Exit(1)
	}

	client, db, err := database.Connect(ctx, mongoURI, cfg.MongoDatabase)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer database.Disconnect(client)

	if err := database.EnsureIndexes(ctx, db); err != nil {
		slog.Warn("failed to ensure indexes", "error", err)
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Debug-Errors"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Recoverer(middleware.AllowDebug(cfg.IsDevelopment(), cfg.DebugErrors)))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.Setup(r, routes.Handlers{
		Auth:    handlers.NewAuthHandler(store.NewMongoUserStore(db), tokens, blacklist),
		Tasks:   handlers.NewTasksHandler(store.NewMongoTaskStore(db)),
		Goals:   handlers.NewGoalsHandler(store.NewMongoGoalStore(db)),
		Phrases: handlers.NewPhrasesHandler(cfg.Phrases),
	})

	slog.Info("tarefista backend running", "port", cfg.Port, "env", cfg.Environment)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
