package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/sigesco/sigesco/internal/app/controllers"
	appMigrations "github.com/sigesco/sigesco/internal/app/migrations"
	appRepos "github.com/sigesco/sigesco/internal/app/repositories"
	appRoutes "github.com/sigesco/sigesco/internal/app/routes"
	appServices "github.com/sigesco/sigesco/internal/app/services"
	"github.com/sigesco/sigesco/internal/config"
	"github.com/sigesco/sigesco/internal/db"
	appMiddleware "github.com/sigesco/sigesco/internal/middleware"
	pkgAuth "github.com/sigesco/sigesco/internal/pkg/auth"
	"github.com/sigesco/sigesco/internal/pkg/logger"
	"github.com/sigesco/sigesco/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	AuthService          *appServices.AuthService
	RegistrationService  *appServices.RegistrationService
	AllocationService    *appServices.AllocationService
	GradeService         *appServices.GradeService
	AuthController       *appControllers.AuthController
	StudentController    *appControllers.StudentController
	EnrollmentController *appControllers.EnrollmentController
	GradeController      *appControllers.GradeController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	tokenTTL, err := cfg.AccessTokenDuration()
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: tokenTTL,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.Users, deps.JWTService)
	deps.RegistrationService = appServices.NewRegistrationService(deps.Repos.Tx)
	deps.AllocationService = appServices.NewAllocationService(deps.Repos.Tx)
	deps.GradeService = appServices.NewGradeService(deps.Repos.Tx)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, int64(tokenTTL/time.Second))
	deps.StudentController = appControllers.NewStudentController(deps.RegistrationService, cfg.School.AcademicYear)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.AllocationService, cfg.School.AcademicYear)
	deps.GradeController = appControllers.NewGradeController(deps.GradeService)

	// Default data after the dependency graph is ready
	if err := seed.CreateDefaultAdmin(context.Background(), deps.Repos, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	}

	router := gin.New()
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.StudentController,
		deps.EnrollmentController,
		deps.GradeController,
		deps.AuthMiddleware,
	)

	return router
}
