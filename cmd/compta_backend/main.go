package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portsrepo "github.com/plcoutant/compta_engine/internal/core/ports/repositories"
	portssvc "github.com/plcoutant/compta_engine/internal/core/ports/services"
	"github.com/plcoutant/compta_engine/internal/core/services"
	"github.com/plcoutant/compta_engine/internal/core/taxonomy"
	"github.com/plcoutant/compta_engine/internal/handlers"
	"github.com/plcoutant/compta_engine/internal/middleware"
	"github.com/plcoutant/compta_engine/internal/repositories/database/pgsql"
	"github.com/plcoutant/compta_engine/pkg/config"
	"github.com/plcoutant/compta_engine/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build the account taxonomy, optionally merged with a YAML override file.
	tax := taxonomy.Default()
	if cfg.TaxonomyFile != "" {
		tax, err = tax.WithKeywordFile(cfg.TaxonomyFile)
		if err != nil {
			logger.Error("Failed to load taxonomy file", slog.String("error", err.Error()), slog.String("path", cfg.TaxonomyFile))
			os.Exit(1)
		}
		logger.Info("Taxonomy keyword override loaded", slog.String("path", cfg.TaxonomyFile))
	}

	repos := &portsrepo.RepositoryProvider{
		LedgerRepo:   pgsql.NewPgxLedgerRepository(dbPool),
		AccountRepo:  pgsql.NewPgxAccountRepository(dbPool),
		PeriodRepo:   pgsql.NewPgxPeriodRepository(dbPool),
		DocumentRepo: pgsql.NewPgxDocumentRepository(dbPool),
	}

	periodService := services.NewPeriodService(repos.PeriodRepo)
	accountService := services.NewAccountService(repos.AccountRepo, tax)
	classifier := services.NewClassifier(tax)

	serviceContainer := &portssvc.ServiceContainer{
		Ledger:     services.NewLedgerService(repos.LedgerRepo),
		Account:    accountService,
		Period:     periodService,
		Document:   services.NewDocumentService(repos.DocumentRepo, periodService, classifier, cfg.DefaultTaxRate),
		Suggestion: services.NewSuggestionService(repos.DocumentRepo),
	}

	// Seed the chart of accounts so classification targets resolve.
	if err := accountService.SeedChartOfAccounts(context.Background()); err != nil {
		logger.Error("Failed to seed chart of accounts", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Chart of accounts seeded.")

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("error", err.Error()), slog.String("rate", cfg.RateLimit))
		os.Exit(1)
	}
	rateLimiter := limiter.New(memorystore.NewStore(), rate)

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection compatible with the pgx pool.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
