package routes

import (
	"github.com/gin-gonic/gin"

	thrifthandlers "github.com/thriftwise/thriftwise/internal/interfaces/http/handlers/thrift"
	wallethandlers "github.com/thriftwise/thriftwise/internal/interfaces/http/handlers/wallet"
	"github.com/thriftwise/thriftwise/internal/interfaces/http/middleware"
)

type ThriftRouteConfig struct {
	PackageHandler    *thrifthandlers.PackageHandler
	MembershipHandler *thrifthandlers.MembershipHandler
	WalletHandler     *wallethandlers.Handler
	AuthMiddleware    *middleware.AuthMiddleware
	ApplyLimit        gin.HandlerFunc
	InviteLimit       gin.HandlerFunc
}

func SetupThriftRoutes(engine *gin.Engine, config *ThriftRouteConfig) {
	// Public catalogue
	public := engine.Group("/thrift-packages/public")
	{
		public.GET("", config.PackageHandler.ListPublicPackages)
		public.GET("/:sid", config.PackageHandler.GetPublicPackage)
	}

	packages := engine.Group("/thrift-packages")
	packages.Use(config.AuthMiddleware.RequireAuth())
	{
		packages.POST("", config.PackageHandler.CreatePackage)
		packages.GET("", config.PackageHandler.ListPackages)
		packages.POST("/progress", config.PackageHandler.SaveProgress)

		packages.PUT("/:id/progress", config.PackageHandler.SaveProgress)
		packages.PATCH("/:id/status", config.PackageHandler.UpdateStatus)
		packages.POST("/:id/terms", config.PackageHandler.AcceptTerms)
		packages.POST("/:id/admins", config.PackageHandler.AddAdmin)
		packages.POST("/:id/slots", config.PackageHandler.GenerateSlots)

		packages.GET("/:id/contributors", config.MembershipHandler.ListContributors)
		packages.POST("/:id/contributors", config.MembershipHandler.AddContributors)
		packages.POST("/:id/contributors/confirm", config.MembershipHandler.ConfirmContributors)
		packages.POST("/:id/contributors/reject", config.MembershipHandler.RejectContributors)
		packages.POST("/:id/invites", config.InviteLimit, config.MembershipHandler.InviteUser)
		packages.GET("/:id/applications", config.MembershipHandler.ListApplications)
		packages.POST("/:id/applications", config.ApplyLimit, config.MembershipHandler.Apply)

		packages.POST("/:id/contributions", config.WalletHandler.InitializeContribution)
		packages.POST("/:id/payouts", config.WalletHandler.Payout)
		packages.GET("/:id/transactions", config.WalletHandler.ListPackageTransactions)

		packages.GET("/:id", config.PackageHandler.GetPackage)
	}

	invites := engine.Group("/thrift-invites")
	invites.Use(config.AuthMiddleware.RequireAuth())
	{
		invites.POST("/:id/respond", config.MembershipHandler.RespondToInvite)
	}

	applications := engine.Group("/thrift-applications")
	applications.Use(config.AuthMiddleware.RequireAuth())
	{
		applications.POST("/:id/respond", config.MembershipHandler.RespondToApplication)
	}

	me := engine.Group("/users/me")
	me.Use(config.AuthMiddleware.RequireAuth())
	{
		me.GET("/invites", config.MembershipHandler.ListUserInvites)
		me.GET("/applications", config.MembershipHandler.ListUserApplications)
		me.GET("/rejected-packages", config.PackageHandler.ListRejectedPackages)
	}
}
