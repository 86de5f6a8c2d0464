package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/tadreeb/academy/internal/app/controllers"
	appMigrations "github.com/tadreeb/academy/internal/app/migrations"
	appRepos "github.com/tadreeb/academy/internal/app/repositories"
	appRoutes "github.com/tadreeb/academy/internal/app/routes"
	appServices "github.com/tadreeb/academy/internal/app/services"
	"github.com/tadreeb/academy/internal/config"
	"github.com/tadreeb/academy/internal/db"
	appMiddleware "github.com/tadreeb/academy/internal/middleware"
	pkgAuth "github.com/tadreeb/academy/internal/pkg/auth"
	"github.com/tadreeb/academy/internal/pkg/authclient"
	"github.com/tadreeb/academy/internal/pkg/email"
	"github.com/tadreeb/academy/internal/pkg/filestorage"
	"github.com/tadreeb/academy/internal/pkg/helpers"
	"github.com/tadreeb/academy/internal/pkg/i18n"
	"github.com/tadreeb/academy/internal/pkg/logger"
	"github.com/tadreeb/academy/internal/pkg/metrics"
	"github.com/tadreeb/academy/internal/pkg/ratelimit"
	"github.com/tadreeb/academy/internal/pkg/validation"
	"github.com/tadreeb/academy/internal/seed"
)

// UploadsPath is the URL prefix uploaded files are served under
const UploadsPath = "/uploads"

// Dependencies holds all the application dependencies
type Dependencies struct {
	CatalogService   appServices.CatalogService
	FormService      appServices.FormService
	AuthProxyService appServices.AuthProxyService
	AdminAuthService appServices.AdminAuthService
	AdminService     appServices.AdminService
	Controllers      *appRoutes.Controllers
	AuthMiddleware   *appMiddleware.AuthMiddleware
	Repos            *appRepos.Repositories
	JWTService       *pkgAuth.JWTService
	AuthClient       *authclient.Client
	Notifier         *email.SMTPNotifier
	Metrics          *metrics.Metrics
	FormLimiter      *ratelimit.Limiter
	FileStorage      *filestorage.LocalStorage
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath, envFile string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath, envFile)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
		File: logger.FileConfig{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
		},
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Str("logFile", cfg.Logging.File).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// RunMigrations applies the embedded migrations.
func RunMigrations(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	applied, err := appMigrations.NewMigrator(database.Pool).Up(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")
	return nil
}

// SeedCatalog inserts the static catalog. Existing rows are left alone.
func SeedCatalog(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) (seed.Result, error) {
	return seed.FromRepositories(appRepos.NewRepositories(database.Pool), lgr).CreateDefaultData(ctx)
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.UploadDir, uploadsBaseURL(cfg))
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.AuthClient, err = authclient.New(authclient.Config{
		BaseURL: cfg.AuthBackend.BaseURL,
		Timeout: helpers.ParseDuration(cfg.AuthBackend.Timeout, 15*time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth backend client: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 15*time.Minute),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 168*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Metrics = metrics.New()
	deps.FormLimiter = ratelimit.New(cfg.RateLimit.MaxRequests, helpers.ParseDuration(cfg.RateLimit.Window, time.Minute))

	deps.Notifier = email.NewSMTPNotifier(email.SMTPConfig{
		Host:      cfg.Mail.Host,
		Port:      cfg.Mail.Port,
		Username:  cfg.Mail.Username,
		Password:  cfg.Mail.Password,
		FromName:  cfg.Mail.FromName,
		FromEmail: cfg.Mail.FromEmail,
		UseTLS:    cfg.Mail.UseTLS,
		NotifyTo:  cfg.Mail.NotifyTo,
		AdminURL:  cfg.Mail.AdminURL,
	}, lgr.With().Str("component", "mail").Logger())
	if !deps.Notifier.Enabled() {
		lgr.Warn().Msg("SMTP not configured, staff notifications will only be logged")
	}

	// Initialize services
	deps.CatalogService = appServices.NewCatalogService(
		deps.Repos.CategoryRepository,
		deps.Repos.ProgramRepository,
		deps.Repos.TrackRepository,
		deps.Repos.PeopleRepository,
	)

	deps.AuthProxyService = appServices.NewAuthProxyService(
		deps.AuthClient,
		cfg.AuthBackend.TrainingPlatformURL,
		lgr.With().Str("component", "auth_proxy").Logger(),
		authclient.WithRefreshSkew(helpers.ParseDuration(cfg.AuthBackend.RefreshSkew, 30*time.Second)),
		authclient.WithRefreshObserver(deps.Metrics.UpstreamRefresh),
	)

	deps.FormService = appServices.NewFormService(
		deps.Repos.ContactRepository,
		deps.Repos.RegistrationRepository,
		deps.Repos.ConsultingRepository,
		deps.AuthProxyService,
		deps.Notifier,
		deps.Metrics,
		lgr.With().Str("component", "forms").Logger(),
	)

	deps.AdminAuthService = appServices.NewAdminAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr.With().Str("component", "admin_auth").Logger(),
	)

	deps.AdminService = appServices.NewAdminService(
		deps.Repos.ProgramRepository,
		deps.Repos.ContactRepository,
		deps.Repos.RegistrationRepository,
		deps.Repos.ConsultingRepository,
		deps.FileStorage,
		lgr.With().Str("component", "admin").Logger(),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = &appRoutes.Controllers{
		Catalog:   appControllers.NewCatalogController(deps.CatalogService, lgr),
		Forms:     appControllers.NewFormController(deps.FormService, lgr),
		I18n:      appControllers.NewI18nController(i18n.Default()),
		AuthProxy: appControllers.NewAuthProxyController(deps.AuthProxyService, lgr),
		AdminAuth: appControllers.NewAdminAuthController(deps.AdminAuthService, lgr),
		Admin:     appControllers.NewAdminController(deps.AdminService, lgr),
		Health:    appControllers.NewHealthController(database, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterWithGin(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	if !cfg.Server.TrustProxyHeaders {
		if err := router.SetTrustedProxies(nil); err != nil {
			return nil, fmt.Errorf("failed to configure trusted proxies: %w", err)
		}
	}

	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Metrics(deps.Metrics),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
		appMiddleware.Language(),
	)

	appRoutes.SetupRouter(router,
		deps.Controllers,
		deps.AuthMiddleware,
		appMiddleware.RateLimit(deps.FormLimiter, cfg.Server.TrustProxyHeaders),
	)

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
		lgr.Info().Str("path", cfg.Metrics.Path).Msg("Metrics endpoint enabled")
	}

	return router, nil
}

func uploadsBaseURL(cfg *config.Config) string {
	if cfg.Server.PublicURL == "" {
		return UploadsPath
	}
	return strings.TrimRight(cfg.Server.PublicURL, "/") + UploadsPath
}
