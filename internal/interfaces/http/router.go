package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thriftwise/thriftwise/internal/interfaces/http/middleware"
	"github.com/thriftwise/thriftwise/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.CustomLogger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.Metrics(c.metrics))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.healthCheck)
	c.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})))

	rule := c.admissionRule()
	routes.SetupThriftRoutes(c.engine, &routes.ThriftRouteConfig{
		PackageHandler:    c.hdlrs.packageHandler,
		MembershipHandler: c.hdlrs.membershipHandler,
		WalletHandler:     c.hdlrs.walletHandler,
		AuthMiddleware:    c.authMiddleware,
		ApplyLimit:        middleware.PrincipalRateLimit(c.rateLimiter, rule, "apply", c.log),
		InviteLimit:       middleware.PrincipalRateLimit(c.rateLimiter, rule, "invite", c.log),
	})
	routes.SetupWalletRoutes(c.engine, &routes.WalletRouteConfig{
		WalletHandler:  c.hdlrs.walletHandler,
		AuthMiddleware: c.authMiddleware,
	})
}

func (c *Container) healthCheck(ctx *gin.Context) {
	status := gin.H{"status": "ok", "time": time.Now().UTC()}
	code := http.StatusOK

	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request.Context())
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		code = http.StatusServiceUnavailable
	}
	if c.redis != nil {
		if err := c.redis.Ping(ctx.Request.Context()).Err(); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
			code = http.StatusServiceUnavailable
		}
	}

	ctx.JSON(code, status)
}
