package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/vidcert/config"
	"github.com/lshigami/vidcert/database"
	_ "github.com/lshigami/vidcert/docs"
	"github.com/lshigami/vidcert/internal/client"
	"github.com/lshigami/vidcert/internal/controller/api"
	"github.com/lshigami/vidcert/internal/controller/web"
	"github.com/lshigami/vidcert/internal/identity"
	"github.com/lshigami/vidcert/internal/logger"
	"github.com/lshigami/vidcert/internal/model"
	"github.com/lshigami/vidcert/internal/repository"
	"github.com/lshigami/vidcert/internal/service"
	"github.com/lshigami/vidcert/internal/session"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title VidCert API
// @version 1.0
// @description Generate quizzes from video links, earn certificates at 80% and verify them publicly.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			database.NewRedisClient,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewCertificateRepository,
			NewQuizSessionRepository,
		),

		// External clients
		fx.Provide(
			client.NewTranscriptFetcher,
			client.NewMetadataFetcher,
			identity.NewGoTrueProvider,
			service.NewTextGenerator,
		),

		// Services
		fx.Provide(
			func(t client.TranscriptFetcher, m client.MetadataFetcher, g service.TextGenerator, cfg *config.Config) service.QuizGeneratorService {
				return service.NewQuizGeneratorService(t, m, g, cfg.AI.Timeout)
			},
			service.NewScoringService,
			service.NewCertificateService,
			service.NewQuizService,
			service.NewAuthService,
			session.NewManager,
		),

		// Controllers
		fx.Provide(
			api.NewAuthController,
			api.NewQuizController,
			api.NewCertificateController,
			api.NewTranscriptController,
			web.NewPageController,
		),

		fx.Invoke(AutoMigrateDB),
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
		log.Error().Err(err).Msg("Application did not stop cleanly")
	}
}

func NewGinEngine(cfg *config.Config) (*gin.Engine, error) {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if err := web.LoadTemplates(r); err != nil {
		return nil, err
	}

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r, nil
}

// NewQuizSessionRepository prefers Redis and falls back to process memory
// when no Redis client was configured.
func NewQuizSessionRepository(lc fx.Lifecycle, cfg *config.Config, rdb *redis.Client) repository.QuizSessionRepository {
	if rdb == nil {
		return repository.NewMemoryQuizSessionRepository(cfg.Redis.QuizTTL)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return rdb.Close()
		},
	})
	return repository.NewRedisQuizSessionRepository(rdb, cfg.Redis.QuizTTL)
}

// RegisterRoutesAndStartServer configures routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	sessions *session.Manager,
	authCtrl *api.AuthController,
	quizCtrl *api.QuizController,
	certCtrl *api.CertificateController,
	transcriptCtrl *api.TranscriptController,
	pageCtrl *web.PageController,
) {
	(&api.Routes{
		Sessions:     sessions,
		Auth:         authCtrl,
		Quizzes:      quizCtrl,
		Certificates: certCtrl,
		Transcript:   transcriptCtrl,
	}).Register(router)
	pageCtrl.Register(router)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("VidCert server starting on port %s", cfg.Server.Port)
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
	if err := db.AutoMigrate(&model.Certificate{}); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
