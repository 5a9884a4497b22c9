package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Momin-Abdurrehman/HandCricket/internal/auth"
	"github.com/Momin-Abdurrehman/HandCricket/internal/config"
	"github.com/Momin-Abdurrehman/HandCricket/internal/handler"
	"github.com/Momin-Abdurrehman/HandCricket/internal/logger"
	"github.com/Momin-Abdurrehman/HandCricket/internal/middleware"
	"github.com/Momin-Abdurrehman/HandCricket/internal/repository/postgres"
	redisrepo "github.com/Momin-Abdurrehman/HandCricket/internal/repository/redis"
	"github.com/Momin-Abdurrehman/HandCricket/internal/service"
)

func main() {
	logger.Init()
	cfg := config.Load()
	log.Info().Str("databaseURL", cfg.DatabaseURL).Msg("Config loaded")

	// Database
	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer db.Close()
	matchRepo := postgres.NewMatchRepo(db)

	// Redis
	redisClient, err := redisrepo.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis connection failed")
	}
	defer redisClient.Close()

	// Auth
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret)

	// Services
	matchSvc := service.NewMatchService(matchRepo, redisClient)

	// Handlers
	authHandler := handler.NewAuthHandler(jwtMgr)
	matchHandler := handler.NewMatchHandler(matchSvc)
	wsHandler := handler.NewWSHandler(matchSvc, jwtMgr)

	// Router
	mux := http.NewServeMux()
	authMw := auth.Middleware(jwtMgr)

	mux.HandleFunc("GET /healthz", matchHandler.Health)

	// Auth (public)
	mux.HandleFunc("POST /auth/guest", authHandler.GuestLogin)

	// Protected API routes
	api := http.NewServeMux()
	api.HandleFunc("POST /matches", matchHandler.CreateMatch)
	api.HandleFunc("GET /matches", matchHandler.ListMatches)
	api.HandleFunc("GET /matches/{id}", matchHandler.GetMatch)
	api.HandleFunc("POST /matches/{id}/moves", matchHandler.PlayMove)
	api.HandleFunc("GET /matches/{id}/stats", matchHandler.GetStatistics)
	api.HandleFunc("POST /matches/{id}/rematch", matchHandler.Rematch)
	api.HandleFunc("GET /stats/summary", matchHandler.Summary)
	api.HandleFunc("GET /stats/leaderboard", matchHandler.Leaderboard)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", authMw(api)))

	// WebSocket (auth via query param, not middleware)
	mux.HandleFunc("GET /api/v1/ws", wsHandler.ServeWS)

	// Apply global middleware
	root := middleware.Chain(mux, middleware.Logger, middleware.CORS(cfg.AllowedOrigins), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
