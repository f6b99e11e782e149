package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement/config"
	"github.com/lshigami/placement/database"
	"github.com/lshigami/placement/internal/controller"
	adminctrl "github.com/lshigami/placement/internal/controller/admin"
	userctrl "github.com/lshigami/placement/internal/controller/user"
	"github.com/lshigami/placement/internal/logger"
	"github.com/lshigami/placement/internal/repository"
	"github.com/lshigami/placement/internal/router"
	"github.com/lshigami/placement/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title CEFR Placement Quiz API
// @version 1.0
// @description Stores multiple-choice questions, grades finished quizzes and maps the score to a CEFR level.
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			router.NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewResultRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewQuestionCache,
			service.NewLevelService,
			service.NewQuestionService,
			service.NewGradeService,
			service.NewSeedService,
		),

		// API Controllers Layer
		fx.Provide(
			controller.NewSystemController,
			adminctrl.NewQuestionController,
			userctrl.NewQuizController,
		),

		// Invoked in order: schema, seed data, then the HTTP server.
		fx.Invoke(ApplyLogLevel),
		fx.Invoke(database.AutoMigrate),
		fx.Invoke(SeedQuestions),
		fx.Invoke(CloseQuestionCache),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Error during shutdown")
	}
}

func ApplyLogLevel(cfg *config.Config) {
	logger.SetLevel(cfg.LogLevel)
}

// SeedQuestions fills an empty question store from the seed file. Bad lines
// are skipped by the seeder; only I/O and database errors abort startup.
func SeedQuestions(seeder service.SeedService, cfg *config.Config) error {
	_, err := seeder.SeedIfEmpty(cfg.SeedFile)
	return err
}

func CloseQuestionCache(lc fx.Lifecycle, cache service.QuestionCache) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return cache.Close()
		},
	})
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	engine *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	systemCtrl *controller.SystemController,
	adminCtrl *adminctrl.QuestionController,
	quizCtrl *userctrl.QuizController,
) {
	router.RegisterRoutes(engine, systemCtrl, adminCtrl, quizCtrl)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Placement quiz server starting on port %s", cfg.Server.Port)
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
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
}
