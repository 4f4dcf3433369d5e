package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/unsa-memon/quiz-app-backend/config"
	"github.com/unsa-memon/quiz-app-backend/database"
	_ "github.com/unsa-memon/quiz-app-backend/docs" // Swagger docs
	"github.com/unsa-memon/quiz-app-backend/internal/controller"
	"github.com/unsa-memon/quiz-app-backend/internal/logger"
	"github.com/unsa-memon/quiz-app-backend/internal/middleware"
	"github.com/unsa-memon/quiz-app-backend/internal/model"
	"github.com/unsa-memon/quiz-app-backend/internal/repository"
	"github.com/unsa-memon/quiz-app-backend/internal/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Quiz App Backend API
// @version 1.0
// @description Quiz authoring, attempt grading and analytics service.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewQuizRepository,
			repository.NewAttemptRepository,
		),

		fx.Provide(
			service.NewQuizService,
			service.NewAttemptService,
			service.NewAnalyticsService,
		),

		fx.Provide(
			controller.NewQuizController,
			controller.NewAttemptController,
			controller.NewAnalyticsController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	quizCtrl *controller.QuizController,
	attemptCtrl *controller.AttemptController,
	analyticsCtrl *controller.AnalyticsController,
) {
	api := router.Group("/api/v1")
	api.Use(middleware.Identity(cfg.JWTSecret))
	{
		quizzes := api.Group("/quizzes")
		quizzes.GET("", quizCtrl.ListQuizzes)
		quizzes.GET("/:quiz_id", quizCtrl.GetQuiz)
		quizzes.POST("", middleware.RequireAuth(), quizCtrl.CreateQuiz)
		quizzes.PUT("/:quiz_id", middleware.RequireAuth(), quizCtrl.UpdateQuiz)
		quizzes.DELETE("/:quiz_id", middleware.RequireAuth(), quizCtrl.DeleteQuiz)

		// Attempt submission stays open: anonymous attempts get a
		// synthesized identity in the service layer.
		quizzes.POST("/:quiz_id/attempts", attemptCtrl.SubmitAttempt)

		attempts := api.Group("/attempts")
		attempts.GET("", attemptCtrl.GetMyAttempts)
		attempts.GET("/:attempt_id", attemptCtrl.GetAttemptResult)

		api.GET("/analytics", analyticsCtrl.GetMyAnalytics)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quiz App Backend starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Quiz{},
		&model.Question{},
		&model.Attempt{},
		&model.Response{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
