package http

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	notificationApp "github.com/thriftwise/thriftwise/internal/application/notification"
	"github.com/thriftwise/thriftwise/internal/domain/shared/events"
	"github.com/thriftwise/thriftwise/internal/infrastructure/auth"
	"github.com/thriftwise/thriftwise/internal/infrastructure/metrics"
	"github.com/thriftwise/thriftwise/internal/infrastructure/notification"
	"github.com/thriftwise/thriftwise/internal/infrastructure/payment"
	"github.com/thriftwise/thriftwise/internal/infrastructure/ratelimit"
	"github.com/thriftwise/thriftwise/internal/interfaces/http/middleware"
	"github.com/thriftwise/thriftwise/internal/shared/db"
)

const eventBufferSize = 256

// initInfrastructure creates the transaction manager, auth, metrics, payment gateway,
// event dispatcher and the Redis-backed outbox and rate limiter.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	c.txMgr = db.NewTransactionManager(c.db)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)

	c.registry = prometheus.NewRegistry()
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.metrics = metrics.New(c.registry)

	gateway, err := payment.NewGateway(cfg.Gateway, c.metrics, log)
	if err != nil {
		return fmt.Errorf("failed to create payment gateway: %w", err)
	}
	c.gateway = gateway

	c.dispatcher = events.NewInMemoryEventDispatcher(eventBufferSize, log)

	if c.redis == nil {
		log.Warnw("redis not configured, notifications and admission rate limiting are disabled")
		return nil
	}
	c.outbox = notification.NewRedisOutbox(c.redis, cfg.Notification.QueueKey, cfg.Notification.ProcessingKey)
	c.rateLimiter = ratelimit.NewRedisRateLimiter(c.redis)
	return nil
}

// initNotifications subscribes the notification service to domain events so they are
// queued for the worker.
func (c *Container) initNotifications() error {
	if c.outbox == nil {
		return nil
	}
	svc := notificationApp.NewService(c.outbox, c.repos.directory, c.log)
	if err := svc.Register(c.dispatcher); err != nil {
		return fmt.Errorf("failed to register notification subscriber: %w", err)
	}
	return nil
}

func (c *Container) admissionRule() ratelimit.Rule {
	if !c.cfg.RateLimit.Enabled {
		return ratelimit.Rule{}
	}
	return ratelimit.Rule{Limit: c.cfg.RateLimit.Limit, Window: c.cfg.RateLimit.Window()}
}
