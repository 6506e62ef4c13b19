package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"ChannelSnapshot/internal/config"
	"ChannelSnapshot/internal/infrastructure/parser"
	"ChannelSnapshot/internal/infrastructure/scheduler"
	"ChannelSnapshot/internal/infrastructure/storage"
	"ChannelSnapshot/internal/infrastructure/youtube"
	"ChannelSnapshot/internal/logging"
	"ChannelSnapshot/internal/ports"
	"ChannelSnapshot/internal/usecase"
)

const stopTimeout = 30 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	resolver ports.ChannelResolver
	pipeline *usecase.Pipeline
	history  *storage.PostgresRepository
	db       *sql.DB
}

// New validates cfg and builds the adapters. The database is opened lazily by
// database/sql; the schema is ensured on Run.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.YouTube.Timeout
	if timeout < 0 {
		timeout = 0
	}
	httpClient := &http.Client{Timeout: timeout}

	client, err := youtube.New(cfg.YouTube.APIKey, youtube.Options{
		BaseURL:    cfg.YouTube.BaseURL,
		HTTPClient: httpClient,
		MaxPages:   cfg.YouTube.MaxPages,
		PageSize:   cfg.YouTube.PageSize,
		Logger:     baseLogger.With("component", "youtube"),
	})
	if err != nil {
		return nil, err
	}

	application := &Application{
		cfg:      cfg,
		logger:   baseLogger,
		resolver: parser.NewChannelPageResolver(httpClient),
	}

	var history ports.SnapshotRepository
	if cfg.Database.DSN != "" {
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		application.db = db
		application.history = storage.NewPostgresRepository(db)
		history = application.history
	}

	application.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Source:         client,
		Ranks:          storage.NewMappingFile(cfg.Ordering.MappingPath),
		Writer:         storage.NewSnapshotFile(cfg.Output.Path),
		History:        history,
		Logger:         baseLogger.With("component", "pipeline"),
		Concurrency:    cfg.Pipeline.Concurrency,
		AllPlaylists:   cfg.Pipeline.AllPlaylists,
		StrictOrdering: cfg.Ordering.Strict,
		Now:            func() time.Time { return time.Now().In(cfg.Scheduler.Location()) },
	})
	return application, nil
}

// Run performs a single snapshot, or keeps re-running it on the configured
// interval until ctx is cancelled when the scheduler is enabled.
func (a *Application) Run(ctx context.Context) error {
	if a.history != nil {
		if err := a.history.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	channelID, err := a.resolver.ResolveChannelID(ctx, a.cfg.YouTube.ChannelID)
	if err != nil {
		return fmt.Errorf("resolve channel: %w", err)
	}

	if !a.cfg.Scheduler.Enabled {
		if err := a.pipeline.Run(ctx, channelID); err != nil {
			return err
		}
		a.logger.Info("snapshot written", "channel", channelID, "path", a.cfg.Output.Path)
		return nil
	}

	driver := scheduler.NewTickerScheduler(a.cfg.Scheduler.Interval)
	runner := usecase.NewScheduler(driver, a.pipeline, channelID, a.logger.With("component", "scheduler"))
	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler started", "channel", channelID, "interval", a.cfg.Scheduler.Interval.String())

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := runner.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	a.logger.Info("scheduler stopped")
	return nil
}

// Close releases the database handle, if any.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
