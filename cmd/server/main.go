package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gamearena/backend/internal/auth"
	"gamearena/backend/internal/config"
	"gamearena/backend/internal/database"
	"gamearena/backend/internal/handler"
	"gamearena/backend/internal/ledger"
	"gamearena/backend/internal/metrics"
	"gamearena/backend/internal/service"
	"gamearena/backend/pkg/logger"

	// Swagger imports
	_ "gamearena/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           GameArena API
// @version         1.0
// @description     This is the API for the GameArena tournament platform.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New("gamearena-backend", cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Info("Database connection established and migrated")

	m := metrics.New(prometheus.DefaultRegisterer)
	points := ledger.New(m)

	tournamentSvc := service.NewTournamentService(db, points)
	rewardSvc := service.NewRewardService(db, points, m)
	gameSvc := service.NewGameService(db, points)
	dashboardSvc := service.NewDashboardService(db)

	authHandler := handler.NewAuthHandler(db, cfg)
	tournamentHandler := handler.NewTournamentHandler(db, tournamentSvc)
	rewardHandler := handler.NewRewardHandler(db, rewardSvc)
	gameHandler := handler.NewGameHandler(db, gameSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, tournamentHandler)

	router := gin.New()
	router.Use(gin.Recovery(), log.Middleware())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	requireAuth := auth.Middleware(cfg)
	optionalAuth := auth.OptionalMiddleware(cfg)
	requireAdmin := auth.AdminMiddleware(db)

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", requireAuth, authHandler.Logout)
			authRoutes.GET("/user", requireAuth, authHandler.CurrentUser)
		}

		// Tournament routes
		tournamentRoutes := apiV1.Group("/tournaments")
		{
			tournamentRoutes.GET("", optionalAuth, tournamentHandler.List)
			tournamentRoutes.GET("/user", requireAuth, tournamentHandler.MyTournaments) // Must be before /:id
			tournamentRoutes.GET("/:id", optionalAuth, tournamentHandler.GetByID)
			tournamentRoutes.POST("", requireAuth, tournamentHandler.Create)
			tournamentRoutes.POST("/:id/join", requireAuth, tournamentHandler.Join)
			tournamentRoutes.DELETE("/:id/leave", requireAuth, tournamentHandler.Leave)
		}

		// Reward routes
		rewardRoutes := apiV1.Group("/rewards")
		{
			rewardRoutes.GET("", optionalAuth, rewardHandler.List)
			rewardRoutes.POST("/claim", requireAuth, rewardHandler.Claim)
			rewardRoutes.GET("/user", requireAuth, rewardHandler.MyRewards)
		}

		// Game submission routes
		gameRoutes := apiV1.Group("/games")
		gameRoutes.Use(requireAuth)
		{
			gameRoutes.GET("", gameHandler.List)
			gameRoutes.POST("", gameHandler.Create)
			gameRoutes.PUT("/:id/status", requireAdmin, gameHandler.UpdateStatus)
		}

		// Dashboard
		apiV1.GET("/dashboard", requireAuth, dashboardHandler.Get)

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(requireAuth, requireAdmin)
		{
			rewards := adminRoutes.Group("/rewards")
			{
				rewards.POST("", rewardHandler.CreateReward)
				rewards.PUT("/:id", rewardHandler.UpdateReward)
				rewards.DELETE("/:id", rewardHandler.DeleteReward)
			}
		}
	}

	// SPA static assets with an index.html fallback for client-side routes.
	router.Static("/assets", filepath.Join(cfg.StaticDir, "assets"))
	indexFile := filepath.Join(cfg.StaticDir, "index.html")
	router.NoRoute(func(c *gin.Context) {
		if _, err := os.Stat(indexFile); err != nil {
			c.String(http.StatusNotImplemented, "Frontend build not found. Run `npm run build` in the frontend directory.")
			return
		}
		c.File(indexFile)
	})

	log.Infof("Server is running on %s", cfg.ServerAddr)
	log.Infof("Swagger UI is available at http://localhost%s/swagger/index.html", cfg.ServerAddr)
	if err := router.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
