package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SiddigHope/sanfpl/external/fplapi"
	"github.com/SiddigHope/sanfpl/internal/config"
	"github.com/SiddigHope/sanfpl/internal/domain/evaluation"
	"github.com/SiddigHope/sanfpl/internal/domain/fpl"
	"github.com/SiddigHope/sanfpl/internal/domain/snapshot"
	"github.com/SiddigHope/sanfpl/internal/infrastructure/repository/memory"
	"github.com/SiddigHope/sanfpl/internal/infrastructure/repository/postgres"
	"github.com/SiddigHope/sanfpl/internal/interfaces/httpapi"
	"github.com/SiddigHope/sanfpl/internal/platform/cache"
	"github.com/SiddigHope/sanfpl/internal/platform/logging"
	"github.com/SiddigHope/sanfpl/internal/platform/resilience"
	"github.com/SiddigHope/sanfpl/internal/usecase"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	source := newDataSource(cfg, logger)

	snapshotRepo, err := newSnapshotRepository(cfg)
	if err != nil {
		return nil, err
	}

	store := cache.NewStore(cfg.CacheTTL)
	heuristics := evaluation.DefaultHeuristics()

	dataSvc := usecase.NewDataService(source, snapshotRepo, store, logger)
	playerSvc := usecase.NewPlayerService(dataSvc, heuristics, cfg.EvalWorkers, logger)
	priceSvc := usecase.NewPriceService(dataSvc, heuristics, logger)
	squadSvc := usecase.NewSquadService(dataSvc, heuristics, logger)
	transferSvc := usecase.NewTransferService(dataSvc, heuristics, logger)
	dashboardSvc := usecase.NewDashboardService(dataSvc, playerSvc, priceSvc, logger)

	handler := httpapi.NewHandler(
		dataSvc,
		playerSvc,
		priceSvc,
		squadSvc,
		transferSvc,
		dashboardSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// newDataSource picks the upstream for game data: the live Fantasy
// Premier League API, or the seeded in-memory fixture set when running
// offline.
func newDataSource(cfg config.Config, logger *slog.Logger) fpl.DataSource {
	if cfg.FPLOffline {
		logger.Info("using seeded offline data source")
		return memory.NewSeededSource()
	}

	return fplapi.NewClient(fplapi.ClientConfig{
		BaseURL:    cfg.FPLBaseURL,
		Timeout:    cfg.FPLTimeout,
		MaxRetries: cfg.FPLMaxRetries,
		Logger:     logging.Default(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})
}

// newSnapshotRepository returns the postgres-backed snapshot archive
// when DB_URL is set, otherwise an in-memory one so the service can run
// without a database.
func newSnapshotRepository(cfg config.Config) (snapshot.Repository, error) {
	if cfg.DBURL == "" {
		return memory.NewSnapshotRepository(), nil
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect snapshot db: %w", err)
	}

	return postgres.NewSnapshotRepository(db), nil
}
