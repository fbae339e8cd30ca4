package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"coinedge/internal/api/handlers"
	"coinedge/internal/api/middleware"
	"coinedge/internal/service"
)

// SetupRouter настраивает и возвращает роутер со всеми эндпоинтами
func SetupRouter(
	walletService *service.WalletService,
	jwtMiddleware *middleware.JWTMiddleware,
	tokenTTL time.Duration,
	marketTopCount int,
	logger *logrus.Logger,
	ginMode string,
) *gin.Engine {
	// Установка режима Gin
	gin.SetMode(ginMode)

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Инициализация handlers
	authHandler := handlers.NewAuthHandler(walletService, jwtMiddleware, tokenTTL, logger)
	dashboardHandler := handlers.NewDashboardHandler(walletService, logger)
	withdrawHandler := handlers.NewWithdrawHandler(walletService, logger)
	depositHandler := handlers.NewDepositHandler(walletService, logger)
	marketHandler := handlers.NewMarketHandler(walletService, marketTopCount, logger)
	contactHandler := handlers.NewContactHandler(walletService, logger)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (без авторизации)
		v1.POST("/register", authHandler.Register)
		v1.POST("/login", authHandler.Login)
		v1.POST("/firebase/verify", authHandler.FirebaseLogin)
		v1.POST("/forgot-password", authHandler.ForgotPassword)
		v1.POST("/reset-password", authHandler.ResetPassword)
		v1.GET("/market/top10", marketHandler.GetTopCoins)
		v1.POST("/contact", contactHandler.SubmitMessage)

		// Protected routes (требуют авторизации)
		authorized := v1.Group("")
		authorized.Use(jwtMiddleware.Auth())
		{
			// Auth
			authorized.POST("/validate-token", authHandler.ValidateToken)

			// Dashboard
			authorized.GET("/dashboard", dashboardHandler.GetDashboard)
			authorized.GET("/profile", dashboardHandler.GetProfile)
			authorized.GET("/transactions", dashboardHandler.GetTransactions)
			authorized.PUT("/today-report", dashboardHandler.UpdateTodayReport)
			authorized.PUT("/holdings", dashboardHandler.UpdateHoldings)

			// Withdrawals
			authorized.GET("/balance", withdrawHandler.GetBalance)
			authorized.POST("/withdrawals", withdrawHandler.CreateWithdrawal)
			authorized.GET("/withdrawals", withdrawHandler.GetWithdrawals)
			authorized.PUT("/withdrawals/:id/status", withdrawHandler.UpdateWithdrawalStatus)

			// Deposits
			authorized.POST("/deposits", depositHandler.CreateDeposit)
			authorized.GET("/deposits", depositHandler.GetDeposits)
			authorized.GET("/deposits/addresses", depositHandler.GetDepositAddresses)
		}
	}

	return router
}
