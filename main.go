package main

import (
	"context"
	"log" // Use standard log only for initial fatal errors before logger is set up

	"monthlyBars/config"
	"monthlyBars/internal/adapters/csvsink"
	"monthlyBars/internal/adapters/csvsource"
	"monthlyBars/internal/adapters/logger"
	"monthlyBars/internal/adapters/sqlite"
	"monthlyBars/internal/app"
	"monthlyBars/internal/ports"
)

func newLogger(cfg *config.Config) ports.Logger {
	if cfg.LogFormat == config.LogFormatJSON {
		return logger.NewZerologLogger(cfg.LogLevel)
	}
	return logger.NewStdLogger(cfg.LogLevel)
}

func main() {
	ctx := context.Background()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := newLogger(cfg)
	appLogger.Info(ctx, "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String(), "format": cfg.LogFormat})

	// 3. Initialize Loader
	source, err := csvsource.New(csvsource.Config{Path: cfg.InputPath, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize CSV source: %v", err)
	}

	// 4. Initialize Sinks in configured order
	var sinks []ports.MonthlyWriter
	for _, name := range cfg.Sinks {
		switch name {
		case config.SinkCSV:
			sink, err := csvsink.New(csvsink.Config{Dir: cfg.OutputDir, Logger: appLogger})
			if err != nil {
				log.Fatalf("FATAL: Failed to initialize CSV sink: %v", err)
			}
			sinks = append(sinks, sink)
		case config.SinkSQLite:
			repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
			if err != nil {
				log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
			}
			defer func() {
				if err := repo.Close(); err != nil {
					appLogger.Error(ctx, err, "Error closing database repository")
				}
			}()
			sinks = append(sinks, repo)
		}
	}

	// 5. Initialize Pipeline
	pipeline, err := app.NewPipeline(cfg, appLogger, source, sinks...)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize pipeline: %v", err)
	}

	// 6. Run
	if _, err := pipeline.Run(ctx); err != nil {
		appLogger.Error(ctx, err, "Pipeline aborted")
		log.Fatalf("FATAL: Pipeline aborted: %v", err)
	}
}
