// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"swinglab/internal/config"
	"swinglab/internal/handlers"
	"swinglab/internal/middleware"
	"swinglab/internal/repository"
	"swinglab/internal/service"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	// Configを読み込み
	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	// 2. Initialize Database Connection (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// 3. Dependency Injection
	coachRepo := repository.NewGormCoachRepository()
	playerRepo := repository.NewGormPlayerRepository()
	sessionRepo := repository.NewGormSessionRepository()
	goalRepo := repository.NewGormGoalRepository()

	mailer := service.NewMailer(&config.Cfg)

	authService := service.NewAuthService(db, coachRepo, &config.Cfg)
	playerService := service.NewPlayerService(db, playerRepo)
	sessionService := service.NewSessionService(db, playerRepo, sessionRepo, goalRepo, coachRepo, mailer)
	reportService := service.NewReportService(db, playerRepo, sessionRepo, config.Cfg.App.ProgressionLimit)
	goalService := service.NewGoalService(db, playerRepo, goalRepo)

	authHandler := handlers.NewAuthHandler(authService, logger)
	playerHandler := handlers.NewPlayerHandler(playerService, logger)
	sessionHandler := handlers.NewSessionHandler(sessionService, logger)
	reportHandler := handlers.NewReportHandler(reportService, logger)
	goalHandler := handlers.NewGoalHandler(goalService, logger)

	// 4. Setup Router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			if config.Cfg.Auth.Enabled {
				slog.Info("Applying JWT authentication middleware")
				r.Use(middleware.JWTAuthMiddleware(&config.Cfg))
			} else {
				// 開発時はヘッダー指定のみでコーチを特定する
				slog.Warn("Auth disabled, applying DEV coach-header middleware")
				r.Use(middleware.DevCoachContextMiddleware)
			}

			r.Get("/auth/me", authHandler.Me)

			r.Route("/players", func(r chi.Router) {
				r.Post("/", playerHandler.PostPlayer)
				r.Get("/", playerHandler.GetPlayers)
				r.Route("/{player_id}", func(r chi.Router) {
					r.Get("/", playerHandler.GetPlayer)
					r.Patch("/", playerHandler.PatchPlayer)
					r.Delete("/", playerHandler.DeletePlayer)

					r.Route("/sessions", func(r chi.Router) {
						r.Post("/", sessionHandler.PostSession)
						r.Route("/{session_id}", func(r chi.Router) {
							r.Get("/", sessionHandler.GetSession)
							r.Delete("/", sessionHandler.DeleteSession)
							r.Get("/report", reportHandler.GetSessionReport)
						})
					})

					r.Get("/progression", reportHandler.GetProgressionReport)

					r.Route("/goals", func(r chi.Router) {
						r.Post("/", goalHandler.PostGoal)
						r.Get("/", goalHandler.GetGoals)
						r.Get("/{goal_id}", goalHandler.GetGoal)
						r.Delete("/{goal_id}", goalHandler.CancelGoal)
					})
				})
			})
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sqlDB, err := db.DB()
		if err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus Metrics
	if config.Cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// 期限切れ目標の掃引を定期実行する
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go runGoalSweep(sweepCtx, goalService, time.Duration(config.Cfg.App.GoalSweepIntervalMin)*time.Minute)

	// 5. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

// runGoalSweep は期限切れ目標の掃引ループです。起動直後に1回、以後は一定間隔で実行します。
func runGoalSweep(ctx context.Context, goals service.GoalService, interval time.Duration) {
	if interval <= 0 {
		interval = time.Duration(config.DefaultGoalSweepIntervalMin) * time.Minute
	}

	sweep := func() {
		expired, err := goals.ExpireOverdueGoals(ctx, time.Now().UTC())
		if err != nil {
			slog.Error("Goal sweep failed", slog.Any("error", err))
			return
		}
		slog.Debug("Goal sweep completed", slog.Int("expired", expired))
	}

	sweep()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("Goal sweep stopped")
			return
		case <-ticker.C:
			sweep()
		}
	}
}
