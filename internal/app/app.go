package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sparkzHTTP "sparkz/internal/controller/http"
	"sparkz/internal/entity"
	"sparkz/internal/repo/memory"
	"sparkz/internal/repo/persistent"
	"sparkz/internal/usecase"
	"sparkz/pkg/ai"
	"sparkz/pkg/config"
	"sparkz/pkg/jwt"
	"sparkz/pkg/logger"
	"sparkz/pkg/middleware"
	"sparkz/pkg/queue"
	"sparkz/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "sparkz/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, redisClient *redis.Client, s3Client *s3.Client, queueClient *queue.Client, describer *ai.Describer) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	projectRepo := memory.NewProjectRepository()
	sessionRepo := persistent.NewSessionRepository(redisClient)

	// Initialize use cases
	catalogUseCase := usecase.NewCatalogUseCase(projectRepo, queueClient, log)
	identityUseCase := usecase.NewIdentityUseCase(sessionRepo, jwtService, log)
	donationUseCase := usecase.NewDonationUseCase(
		catalogUseCase,
		usecase.TimerScheduler{},
		time.Duration(cfg.DonationProcessingDelayMS)*time.Millisecond,
		time.Duration(cfg.DonationSuccessDelayMS)*time.Millisecond,
		log,
	)

	seedCatalog(catalogUseCase, log)
	startNotificationWorker(queueClient, log)

	// Initialize HTTP handlers
	identityHandler := sparkzHTTP.NewIdentityHandler(identityUseCase, log)
	catalogHandler := sparkzHTTP.NewCatalogHandler(catalogUseCase, identityUseCase, s3Client, cfg.PageSize, log)
	donationHandler := sparkzHTTP.NewDonationHandler(donationUseCase, catalogUseCase, log)
	aiHandler := sparkzHTTP.NewAIHandler(describer, identityUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	{
		api.POST("/auth/login", identityHandler.Login)
		api.POST("/auth/register", identityHandler.Register)

		api.GET("/projects", catalogHandler.ListProjects)
		api.GET("/projects/:id", catalogHandler.GetProject)
		api.POST("/projects", catalogHandler.PublishProject)
		api.POST("/projects/:id/like", catalogHandler.LikeProject)

		api.POST("/projects/:id/donations", donationHandler.OpenProjectDonation)
		api.POST("/platform/donations", donationHandler.OpenPlatformDonation)
		api.GET("/donations/:id", donationHandler.GetDonation)
		api.POST("/donations/:id/confirm", donationHandler.ConfirmDonation)
		api.DELETE("/donations/:id", donationHandler.CancelDonation)

		api.POST("/ai/describe", aiHandler.Describe)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(jwtService))

	{
		authed.POST("/auth/logout", identityHandler.Logout)
		authed.POST("/auth/upgrade", identityHandler.Upgrade)
		authed.GET("/auth/me", identityHandler.Me)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Sparkz starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down sparkz...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Sparkz exited")
}

// seedCatalog loads the initial project set so the storefront is never empty.
func seedCatalog(catalog usecase.CatalogUseCase, log *logger.Logger) {
	seeds := []usecase.AddProjectInput{
		{
			Title:         "Nébula Engine",
			Description:   "Un motor de juegos 2D ligero para creadores independientes.",
			Category:      entity.CategoryApp,
			Author:        "Carlos Vega",
			DonationGoal:  500,
			RepositoryURL: "https://github.com/carlosvega/nebula-engine",
		},
		{
			Title:        "Crónicas de Atlas",
			Description:  "Una novela interactiva de ciencia ficción en episodios.",
			Category:     entity.CategoryBook,
			Author:       "María Sol",
			DonationGoal: 300,
		},
		{
			Title:         "Pixel Dungeon Redux",
			Description:   "Un roguelike retro con mazmorras generadas proceduralmente.",
			Category:      entity.CategoryGame,
			Author:        "Indie Works",
			DonationGoal:  800,
			RepositoryURL: "https://github.com/indieworks/pixel-dungeon-redux",
		},
	}

	for _, seed := range seeds {
		if _, err := catalog.AddProject(seed); err != nil {
			log.Warn("Failed to seed project %q: %v", seed.Title, err)
		}
	}
	log.Info("Seeded catalog with %d projects", len(seeds))
}
