// Package main runs the session scheduler HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/madrasa-live/backend/config"
	"github.com/madrasa-live/backend/internal/courses"
	"github.com/madrasa-live/backend/internal/middleware"
	"github.com/madrasa-live/backend/internal/scheduler"
	"github.com/madrasa-live/backend/internal/sessions"
	"github.com/madrasa-live/backend/internal/worker"
	"github.com/madrasa-live/backend/pkg/database"
	"github.com/madrasa-live/backend/pkg/queue"
	"github.com/madrasa-live/backend/pkg/redis"
	"github.com/madrasa-live/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	loc, err := cfg.Scheduler.Location()
	if err != nil {
		logger.Fatal("scheduler timezone", zap.Error(err))
	}

	// Courses
	courseRepo := courses.NewRepository(pool)
	courseHandler := courses.NewHandler(courseRepo)

	// Sessions
	sessionRepo := sessions.NewRepository(pool)
	sched := scheduler.New(courseRepo, sessionRepo, nil, loc, logger)
	jobQueue := queue.NewQueue(rdb.Client, logger)
	sessionHandler := sessions.NewHandler(sessionRepo, sched, jobQueue, logger)

	// Background scheduler (periodic pass + on-demand jobs)
	runLock := rdb.NewLock(worker.LockKey, cfg.Scheduler.LockTTL)
	runner := worker.NewRunner(sched, jobQueue, runLock, cfg.Scheduler.Interval, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Courses
	router.POST("/courses", courseHandler.Create)
	router.GET("/courses/:id", courseHandler.GetByID)
	router.POST("/courses/:id/schedule", courseHandler.AddScheduleEntry)

	// Sessions
	router.POST("/courses/:id/sessions/generate", sessionHandler.GenerateForCourse)
	router.GET("/courses/:id/sessions", sessionHandler.ListByCourse)
	router.POST("/sessions/generate", sessionHandler.GenerateAll)
	router.POST("/sessions/activate", sessionHandler.Activate)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	runnerCtx, runnerCancel := context.WithCancel(context.Background())
	defer runnerCancel()
	go runner.Run(runnerCtx)
	go runner.ProcessJobs(runnerCtx)
	logger.Info("scheduler runner started", zap.Duration("interval", cfg.Scheduler.Interval))

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	runnerCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
