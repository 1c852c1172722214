package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/innoforms/admission-portal/config"
	"github.com/innoforms/admission-portal/database"
	_ "github.com/innoforms/admission-portal/docs" // Swagger docs - auto-generated
	"github.com/innoforms/admission-portal/internal/controller"
	adminctrl "github.com/innoforms/admission-portal/internal/controller/admin"
	authctrl "github.com/innoforms/admission-portal/internal/controller/auth"
	userctrl "github.com/innoforms/admission-portal/internal/controller/user"
	"github.com/innoforms/admission-portal/internal/logger"
	"github.com/innoforms/admission-portal/internal/middleware"
	"github.com/innoforms/admission-portal/internal/model"
	"github.com/innoforms/admission-portal/internal/repository"
	"github.com/innoforms/admission-portal/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Admission Portal API
// @version 1.0
// @description Backend for the admission portal: accounts, tests, timed submissions and grading.
// @contact.name API Support
// @contact.email support@innoforms.example
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewTokenRepository,
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewSubmissionRepository,
			repository.NewAnswerRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewTokenService,
			service.NewAuthService,
			service.NewAccountService,
			service.NewTestService,
			service.NewSubmissionService,
			service.NewGradingService,
		),

		// API Controllers Layer and Middleware
		fx.Provide(
			middleware.NewAuthMiddleware,
			authctrl.NewAuthController,
			userctrl.NewUserController,
			adminctrl.NewAdminController,
		),

		// Invokers - Functions that are executed by Fx
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
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	// Zerolog-backed request logging instead of Gin's default logger
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

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
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
	auth *middleware.AuthMiddleware,
	authCtrl *authctrl.AuthController,
	userCtrl *userctrl.UserController,
	adminCtrl *adminctrl.AdminController,
) {
	api := router.Group("/api/v1")

	// Open endpoints
	api.GET("/status", controller.Status)
	api.GET("/server", controller.Server)
	api.POST("/auth/login", authCtrl.Login)
	api.POST("/profile/register", authCtrl.Register)

	// The refresh endpoint is the only one taking a refresh token.
	api.POST("/auth/refresh", auth.RequireRefresh(), authCtrl.Refresh)

	// Any valid access token
	authed := api.Group("")
	authed.Use(auth.RequireAuth())
	{
		authed.POST("/auth/logout", authCtrl.Logout)

		authed.GET("/profile", userCtrl.GetProfile)
		authed.PUT("/profile", userCtrl.UpdateProfile)

		authed.GET("/tests/:test_id", userCtrl.GetTest)

		// Ownership inside: candidates only reach their own submissions,
		// staff and managers see everything.
		authed.GET("/submissions/:submission_id", userCtrl.GetSubmission)
		authed.PUT("/submissions/:submission_id/checkpoint", userCtrl.Checkpoint)
		authed.POST("/submissions/:submission_id/complete", userCtrl.Complete)
	}

	// Candidate-only
	candidate := api.Group("")
	candidate.Use(auth.RequireAuth(), auth.RequireRoles(model.RoleCandidate))
	{
		candidate.GET("/tests", userCtrl.ListTests)
		candidate.POST("/tests/:test_id/start", userCtrl.StartTest)
	}

	// Staff and manager
	admin := api.Group("/admin")
	admin.Use(auth.RequireAuth(), auth.RequireRoles(model.RoleStaff, model.RoleManager))
	{
		admin.POST("/tests", adminCtrl.CreateTest)
		admin.PUT("/tests/:test_id", adminCtrl.UpdateTest)
		admin.DELETE("/tests/:test_id", adminCtrl.DeleteTest)
		admin.POST("/tests/:test_id/questions", adminCtrl.AddQuestion)
		admin.PUT("/questions/:question_id", adminCtrl.UpdateQuestion)
		admin.GET("/tests/:test_id/submissions", adminCtrl.ListSubmissions)
		admin.GET("/submissions/:submission_id/score", adminCtrl.ScoreSubmission)
		admin.POST("/submissions/:submission_id/grade", adminCtrl.RecordManualGrade)
		admin.PUT("/users/:user_id/status", adminCtrl.UpdateUserStatus)
	}

	// Manager-only
	manager := api.Group("/admin")
	manager.Use(auth.RequireAuth(), auth.RequireRoles(model.RoleManager))
	{
		manager.DELETE("/users/:user_id", adminCtrl.DeleteUser)
	}

	// HTTP Server Setup and Lifecycle
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Admission portal API starting on port %s", cfg.Server.Port)
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
		&model.User{},
		&model.Authorization{},
		&model.TokenRecord{},
		&model.CandidateInfo{},
		&model.CandidateDocuments{},
		&model.CandidateStatus{},
		&model.Test{},
		&model.Question{},
		&model.QuestionTest{},
		&model.Submission{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
