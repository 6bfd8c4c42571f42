package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	appnotification "github.com/thriftwise/thriftwise/internal/application/notification"
	"github.com/thriftwise/thriftwise/internal/infrastructure/config"
	"github.com/thriftwise/thriftwise/internal/infrastructure/email"
	"github.com/thriftwise/thriftwise/internal/infrastructure/notification"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
	}); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger().With("component", "notification.worker")
	log.Infow("starting notification worker", "environment", env)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Errorw("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	outbox := notification.NewRedisOutbox(redisClient, cfg.Notification.QueueKey, cfg.Notification.ProcessingKey)

	// Messages left in the processing list by a crashed worker go back on the queue.
	recovered, err := outbox.Recover(ctx)
	if err != nil {
		log.Errorw("failed to recover in-flight notifications", "error", err)
		os.Exit(1)
	}
	if recovered > 0 {
		log.Infow("recovered in-flight notifications", "count", recovered)
	}

	worker := appnotification.NewWorker(
		outbox,
		email.NewSMTPSender(email.SMTPConfigFrom(cfg.Email)),
		time.Duration(cfg.Notification.PollTimeoutSecond)*time.Second,
		cfg.Notification.MaxAttempts,
		log,
	)

	if err := worker.Run(ctx); err != nil {
		log.Errorw("notification worker failed", "error", err)
		os.Exit(1)
	}
	log.Infow("notification worker stopped")
}
