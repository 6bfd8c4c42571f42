package routes

import (
	"github.com/gin-gonic/gin"

	wallethandlers "github.com/thriftwise/thriftwise/internal/interfaces/http/handlers/wallet"
	"github.com/thriftwise/thriftwise/internal/interfaces/http/middleware"
)

type WalletRouteConfig struct {
	WalletHandler  *wallethandlers.Handler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupWalletRoutes(engine *gin.Engine, config *WalletRouteConfig) {
	wallet := engine.Group("/wallet")
	wallet.Use(config.AuthMiddleware.RequireAuth())
	{
		wallet.GET("/transactions", config.WalletHandler.ListWalletTransactions)
		wallet.GET("/transactions/:ref", config.WalletHandler.ShowWalletTransaction)
	}

	// Gateway redirect target; the reference itself is the credential.
	payments := engine.Group("/payments")
	{
		payments.GET("/verify", config.WalletHandler.VerifyContribution)
		payments.GET("/verify/:reference", config.WalletHandler.VerifyContribution)
	}
}
