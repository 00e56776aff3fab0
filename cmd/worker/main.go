// Package main runs the background session worker (periodic generation pass
// plus on-demand generation jobs from the queue).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/madrasa-live/backend/config"
	"github.com/madrasa-live/backend/internal/courses"
	"github.com/madrasa-live/backend/internal/scheduler"
	"github.com/madrasa-live/backend/internal/sessions"
	"github.com/madrasa-live/backend/internal/worker"
	"github.com/madrasa-live/backend/pkg/database"
	"github.com/madrasa-live/backend/pkg/queue"
	"github.com/madrasa-live/backend/pkg/redis"
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

	courseRepo := courses.NewRepository(pool)
	sessionRepo := sessions.NewRepository(pool)
	sched := scheduler.New(courseRepo, sessionRepo, nil, loc, logger)
	jobQueue := queue.NewQueue(rdb.Client, logger)
	runLock := rdb.NewLock(worker.LockKey, cfg.Scheduler.LockTTL)
	runner := worker.NewRunner(sched, jobQueue, runLock, cfg.Scheduler.Interval, logger)

	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runner.Run(workerCtx)
	go runner.ProcessJobs(workerCtx)
	logger.Info("worker started", zap.Duration("interval", cfg.Scheduler.Interval))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	time.Sleep(2 * time.Second)
	logger.Info("worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
