package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lmnhat/Goldcrest/config"
	"github.com/lmnhat/Goldcrest/database"
	"github.com/lmnhat/Goldcrest/internal/controller"
	"github.com/lmnhat/Goldcrest/internal/logger"
	"github.com/lmnhat/Goldcrest/internal/model"
	"github.com/lmnhat/Goldcrest/internal/repository"
	"github.com/lmnhat/Goldcrest/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Goldcrest Adaptive Assessment API
// @version 1.0
// @description Adaptive assessment engine: AI-generated pretests and weekly quizzes, topic-level grading analysis, mastery tracking and remediation gating.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewCurriculumRepository,
			repository.NewPretestRepository,
			repository.NewQuizRepository,
			repository.NewQuizAttemptRepository,
			repository.NewPerformanceRepository,
		),

		fx.Provide(
			service.NewGeminiGenerator,
			service.NewCurriculumService,
			service.NewMasteryService,
			service.NewRecommendationService,
			service.NewPretestService,
			service.NewQuizService,
		),

		fx.Provide(
			controller.NewCurriculumController,
			controller.NewPretestController,
			controller.NewQuizController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
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

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	curriculumCtrl *controller.CurriculumController,
	pretestCtrl *controller.PretestController,
	quizCtrl *controller.QuizController,
) {
	api := router.Group("/api/v1")
	{
		courses := api.Group("/courses/:course_id")
		courses.PUT("/curriculum", curriculumCtrl.UploadCurriculum)
		courses.GET("/curriculum", curriculumCtrl.GetCurriculum)

		courses.POST("/pretest", pretestCtrl.GeneratePretest)
		courses.GET("/pretest", pretestCtrl.GetPretest)
		courses.GET("/pretest/result", pretestCtrl.GetPretestResult)

		courses.POST("/weeks/:week/quizzes/:kind", quizCtrl.GenerateQuiz)
		courses.GET("/weeks/:week/quizzes/:kind", quizCtrl.GetQuiz)
		courses.GET("/weeks/:week/availability", quizCtrl.GetAvailability)
		courses.GET("/weeks/:week/lock-status", quizCtrl.GetLockStatus)
		courses.GET("/performance", quizCtrl.GetPerformance)

		api.POST("/pretest/submit", pretestCtrl.SubmitPretest)
		api.POST("/quizzes/submit", quizCtrl.SubmitQuiz)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Goldcrest assessment API starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
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
		&model.Curriculum{},
		&model.Pretest{},
		&model.PretestQuestion{},
		&model.PretestAttempt{},
		&model.WeeklyQuiz{},
		&model.QuizQuestion{},
		&model.WeeklyQuizAttempt{},
		&model.StudentPerformance{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
