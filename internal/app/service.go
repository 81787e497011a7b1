package app

import (
	"context"
	"fmt"
	"sort"

	"monthlyBars/config"
	"monthlyBars/internal/domain"
	"monthlyBars/internal/indicators"
	"monthlyBars/internal/ports"
	"monthlyBars/internal/resample"
)

// Summary reports what a pipeline run produced.
type Summary struct {
	Tickers int // Tickers written to every sink
	Records int // Monthly records written per sink
}

// Pipeline turns the daily price table into per-ticker monthly result sets.
type Pipeline struct {
	cfg    *config.Config
	logger ports.Logger
	source ports.DailySource
	engine *indicators.Engine
	sinks  []ports.MonthlyWriter
}

// NewPipeline creates a new application service instance.
func NewPipeline(
	cfg *config.Config,
	logger ports.Logger,
	source ports.DailySource,
	sinks ...ports.MonthlyWriter,
) (*Pipeline, error) {
	if cfg == nil || logger == nil || source == nil {
		return nil, fmt.Errorf("missing required dependencies for Pipeline")
	}
	if len(sinks) == 0 {
		return nil, fmt.Errorf("at least one sink is required: %w", ports.ErrConfigurationError)
	}
	if cfg.ExpectedPeriods < 0 {
		return nil, fmt.Errorf("configuration ExpectedPeriods cannot be negative: %w", ports.ErrConfigurationError)
	}

	return &Pipeline{
		cfg:    cfg,
		logger: logger,
		source: source,
		engine: indicators.NewEngine(),
		sinks:  sinks,
	}, nil
}

// Run loads the daily data and, ticker by ticker, aggregates, computes
// indicators, checks the period count and writes to every sink.
// The first error aborts the run; tickers written before it stay written.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	p.logger.Info(ctx, "Starting monthly pipeline", map[string]interface{}{"expectedPeriods": p.cfg.ExpectedPeriods})

	grouped, err := p.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily records: %w", err)
	}

	tickers := make([]string, 0, len(grouped))
	for t := range grouped {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	summary := &Summary{}
	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("pipeline interrupted before %s: %w: %w", ticker, ports.ErrContextCanceled, err)
		}

		series, err := p.BuildSeries(ticker, grouped[ticker])
		if err != nil {
			p.logger.Error(ctx, err, "Ticker failed", map[string]interface{}{"ticker": ticker})
			return summary, err
		}

		for _, sink := range p.sinks {
			if err := sink.Write(ctx, ticker, series); err != nil {
				return summary, fmt.Errorf("failed to write %s to %s sink: %w", ticker, sink.Name(), err)
			}
		}

		summary.Tickers++
		summary.Records += len(series)
		p.logger.Info(ctx, "Ticker written", map[string]interface{}{"ticker": ticker, "months": len(series)})
	}

	p.logger.Info(ctx, "All ticker files generated successfully", map[string]interface{}{
		"tickers": summary.Tickers,
		"records": summary.Records,
	})
	return summary, nil
}

// BuildSeries runs the aggregator and the indicator engine for one ticker
// and enforces the expected period count.
func (p *Pipeline) BuildSeries(ticker string, daily []domain.DailyRecord) ([]domain.MonthlyRecord, error) {
	series, err := resample.MonthlyOHLC(daily)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s: %w", ticker, err)
	}
	if err := p.engine.Apply(series); err != nil {
		return nil, fmt.Errorf("failed to compute indicators for %s: %w", ticker, err)
	}

	if p.cfg.ExpectedPeriods > 0 && len(series) != p.cfg.ExpectedPeriods {
		return nil, fmt.Errorf("%s has %d months, expected %d: %w",
			ticker, len(series), p.cfg.ExpectedPeriods, ports.ErrPeriodCountMismatch)
	}
	return series, nil
}
