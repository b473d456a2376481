package main

import (
	"sparkz/internal/app"
	"sparkz/pkg/ai"
	"sparkz/pkg/cache"
	"sparkz/pkg/config"
	"sparkz/pkg/logger"
	"sparkz/pkg/queue"
	"sparkz/pkg/s3"

	_ "sparkz/docs" // Swagger docs
)

// @title           SPARKZ API
// @version         1.0
// @description     Storefront for publishing and supporting indie software, games and books.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	// Cover upload is optional; without S3 the placeholder image URL is used
	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Warn("S3 unavailable, cover uploads disabled: %v", err)
		s3Client = nil
	}

	// Notification tasks are fire-and-forget; without a broker nothing blocks
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, notifications disabled: %v", err)
		queueClient = nil
	}

	describer := ai.NewDescriber(cfg, log)

	app.Run(cfg, log, redisClient, s3Client, queueClient, describer)
}
