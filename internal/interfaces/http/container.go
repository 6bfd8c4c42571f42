package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/thriftwise/thriftwise/internal/application/payment/paymentgateway"
	"github.com/thriftwise/thriftwise/internal/domain/shared/events"
	"github.com/thriftwise/thriftwise/internal/infrastructure/auth"
	"github.com/thriftwise/thriftwise/internal/infrastructure/config"
	"github.com/thriftwise/thriftwise/internal/infrastructure/metrics"
	"github.com/thriftwise/thriftwise/internal/infrastructure/notification"
	"github.com/thriftwise/thriftwise/internal/infrastructure/ratelimit"
	"github.com/thriftwise/thriftwise/internal/interfaces/http/middleware"
	"github.com/thriftwise/thriftwise/internal/shared/db"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

// Container holds infrastructure components, repositories, use cases and handlers, and
// owns their shutdown.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	txMgr       *db.TransactionManager
	jwtSvc      *auth.JWTService
	metrics     *metrics.Metrics
	registry    *prometheus.Registry
	gateway     paymentgateway.Gateway
	dispatcher  *events.InMemoryEventDispatcher
	outbox      *notification.RedisOutbox
	rateLimiter ratelimit.RateLimiter

	authMiddleware *middleware.AuthMiddleware
}

// NewContainer wires every dependency. The Redis client is optional: when nil, notifications
// are dropped with a warning and admission rate limiting is disabled.
func NewContainer(gdb *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.repos = newRepositories(gdb, log)
	c.ucs = c.newUseCases()
	c.hdlrs = c.newHandlers()

	if err := c.initNotifications(); err != nil {
		return nil, err
	}
	if err := c.dispatcher.Start(); err != nil {
		return nil, fmt.Errorf("failed to start event dispatcher: %w", err)
	}

	return c, nil
}

// Engine returns the gin engine with routes registered by SetupRoutes.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown drains the event dispatcher so queued notifications reach the outbox.
func (c *Container) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- c.dispatcher.Stop() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to stop event dispatcher: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

