package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/openlearnlab/practice-engine/config"
	"github.com/openlearnlab/practice-engine/database"
	"github.com/openlearnlab/practice-engine/internal/catalog"
	"github.com/openlearnlab/practice-engine/internal/controller"
	"github.com/openlearnlab/practice-engine/internal/generator"
	"github.com/openlearnlab/practice-engine/internal/logger"
	"github.com/openlearnlab/practice-engine/internal/model"
	"github.com/openlearnlab/practice-engine/internal/policy"
	"github.com/openlearnlab/practice-engine/internal/repository"
	"github.com/openlearnlab/practice-engine/internal/service"
	"github.com/openlearnlab/practice-engine/internal/token"
	"github.com/openlearnlab/practice-engine/internal/validator"
)

// @title Adaptive Practice Engine API
// @version 1.0
// @description Deterministic exercise generation, answer validation and session progress tracking.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			NewCatalog,
			NewTokenCodec,
			NewPolicy,
			NewAssignmentSource,
			generator.New,
			validator.NewRegistry,
		),

		// Repositories layer
		fx.Provide(
			repository.NewInstanceRepository,
			repository.NewAttemptRepository,
			repository.NewSessionRepository,
			repository.NewProgressStore,
		),

		// Services layer
		fx.Provide(
			service.NewExerciseService,
			service.NewSubmissionService,
			service.NewSessionService,
		),

		// API controllers layer
		fx.Provide(
			controller.NewPracticeController,
			controller.NewSessionController,
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

func NewCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	return catalog.LoadDir(cfg.CatalogDir)
}

func NewTokenCodec(cfg *config.Config) *token.Codec {
	return token.New(cfg.Signing.Secret, time.Duration(cfg.Signing.TTLMinutes)*time.Minute)
}

func NewPolicy(cfg *config.Config) *policy.Policy {
	return policy.New(policy.Defaults{
		Assignment: cfg.Attempts.Assignment,
		Session:    cfg.Attempts.Session,
		Practice:   cfg.Attempts.Practice,
	})
}

// NewAssignmentSource loads per-assignment overrides from the configured
// YAML file. Running without one is fine: every assignment then gets the
// mode defaults and no reveal.
func NewAssignmentSource(cfg *config.Config) (service.AssignmentSource, error) {
	configs := make(map[string]service.AssignmentConfig)
	if cfg.AssignmentsFile != "" {
		v := viper.New()
		v.SetConfigFile(cfg.AssignmentsFile)
		if err := v.ReadInConfig(); err != nil {
			log.Error().Err(err).Str("file", cfg.AssignmentsFile).Msg("Failed to read assignments file")
			return nil, err
		}
		if err := v.UnmarshalKey("assignments", &configs); err != nil {
			return nil, err
		}
		log.Info().Int("assignments", len(configs)).Msg("Loaded assignment overrides")
	}
	return service.NewStaticAssignmentSource(configs), nil
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

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
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	practiceCtrl *controller.PracticeController,
	sessionCtrl *controller.SessionController,
) {
	api := router.Group("/api/v1")
	api.Use(controller.ActorMiddleware())
	{
		api.POST("/exercises", practiceCtrl.FetchExercise)
		api.POST("/submissions", practiceCtrl.SubmitAnswer)

		api.POST("/sessions", sessionCtrl.StartSession)
		api.GET("/sessions/:session_id", sessionCtrl.GetSession)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Practice engine starting on port %s", cfg.Server.Port)
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
		&model.ExerciseInstance{},
		&model.Attempt{},
		&model.PracticeSession{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
