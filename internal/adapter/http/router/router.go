package router

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AintAsh/Churn-Prediction/internal/adapter/client"
	"github.com/AintAsh/Churn-Prediction/internal/adapter/http/handler"
	"github.com/AintAsh/Churn-Prediction/internal/adapter/http/middleware"
	"github.com/AintAsh/Churn-Prediction/internal/adapter/repository/memory"
	"github.com/AintAsh/Churn-Prediction/internal/adapter/repository/postgres"
	"github.com/AintAsh/Churn-Prediction/internal/domain/repository"
	"github.com/AintAsh/Churn-Prediction/internal/infrastructure/config"
	"github.com/AintAsh/Churn-Prediction/internal/usecase"
)

// Setup creates and configures the Gin router. db and redisClient may
// be nil; the user directory then lives in process memory and
// predictions are not cached.
func Setup(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, modelClient *client.ModelClient, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Liveness banner and health endpoints
	router.GET("/", handler.Welcome)
	healthHandler := handler.NewHealthHandler(db, redisClient, modelClient)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// User directory: postgres when configured, in-memory otherwise
	var userRepo repository.UserRepository
	if db != nil {
		userRepo = postgres.NewUserRepository(db)
	} else {
		userRepo = memory.NewUserRepository()
	}

	// Initialize usecases
	authUC := usecase.NewAuthUsecase(userRepo, []byte(cfg.Auth.Secret), cfg.Auth.TokenTTL())
	predictionUC := usecase.NewPredictionUsecase(client.NewModelScorer(modelClient), redisClient)

	// Seed configured accounts through the normal registration path
	for _, seed := range cfg.Auth.SeedUsers {
		parts := strings.SplitN(seed, ":", 2)
		if len(parts) != 2 {
			logger.Warn("skipping malformed seed user entry")
			continue
		}
		if _, err := authUC.Register(context.Background(), parts[0], parts[1]); err != nil && !errors.Is(err, usecase.ErrDuplicateUser) {
			logger.Warn("failed to seed user", zap.String("username", parts[0]), zap.Error(err))
		}
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUC)
	predictionHandler := handler.NewPredictionHandler(predictionUC, logger)

	// Auth routes
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	// Prediction routes
	router.POST("/predict_churn", predictionHandler.PredictChurn)
	router.POST("/predict/auth", middleware.BearerAuth(authUC), predictionHandler.PredictAuthenticated)

	return router
}
