package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/weather-telegram/internal/analyzer"
	"github.com/couchcryptid/weather-telegram/internal/domain"
	"github.com/couchcryptid/weather-telegram/internal/observability"
)

// ErrNotLoaded is returned by queries issued before Load succeeded.
var ErrNotLoaded = errors.New("reports have not been loaded yet")

// Loader supplies the full report sequence before analysis begins.
type Loader interface {
	Load(ctx context.Context) ([]domain.Report, error)
}

// Pipeline loads reports into an analyzer and runs instrumented queries on it.
type Pipeline struct {
	loader   Loader
	writer   analyzer.Writer
	messages analyzer.Messages
	logger   *slog.Logger
	metrics  *observability.Metrics

	loaded   atomic.Pointer[analyzer.Analyzer]
	loadedAt atomic.Int64
}

// New creates a Pipeline with the given loader, output writer and observability.
func New(l Loader, w analyzer.Writer, msgs analyzer.Messages, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		loader:   l,
		writer:   w,
		messages: msgs,
		logger:   logger,
		metrics:  metrics,
	}
}

// Load reads all reports and replaces the current analyzer. The pipeline
// becomes ready after the first successful load.
func (p *Pipeline) Load(ctx context.Context) error {
	start := clock.Now()
	reports, err := p.loader.Load(ctx)
	if err != nil {
		p.logger.Error("load reports failed", "error", err)
		return fmt.Errorf("load reports: %w", err)
	}

	p.loaded.Store(analyzer.New(reports, p.writer, p.messages, p.logger))
	now := clock.Now()
	p.loadedAt.Store(now.UnixNano())
	p.metrics.ReportsLoaded.Set(float64(len(reports)))
	p.metrics.LoadedTimestamp.Set(float64(now.Unix()))

	p.logger.Info("reports loaded", "reports", len(reports), "duration", clock.Since(start))
	return nil
}

// Ready reports whether reports have been loaded.
func (p *Pipeline) Ready() bool {
	return p.loaded.Load() != nil
}

// CheckReadiness returns nil once reports are loaded.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.Ready() {
		return ErrNotLoaded
	}
	return nil
}

// LoadedAt returns when reports were last loaded, or the zero time.
func (p *Pipeline) LoadedAt() time.Time {
	ns := p.loadedAt.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns).UTC()
}

func (p *Pipeline) current() (*analyzer.Analyzer, error) {
	a := p.loaded.Load()
	if a == nil {
		return nil, ErrNotLoaded
	}
	return a, nil
}

// Settlements returns the settlement codes in first-occurrence order.
func (p *Pipeline) Settlements() ([]string, error) {
	a, err := p.current()
	if err != nil {
		return nil, err
	}
	return a.Settlements(), nil
}

// LastReportTime returns the settlement's latest report time as "HH:MM".
func (p *Pipeline) LastReportTime(code string) (string, error) {
	return p.run(analyzer.QueryLastReportTime, func(a *analyzer.Analyzer) (string, error) {
		return a.LastReportTime(code)
	})
}

// LowestTemperatureReport renders the coldest report of the day.
func (p *Pipeline) LowestTemperatureReport() (string, error) {
	return p.run(analyzer.QueryLowestTemperature, (*analyzer.Analyzer).LowestTemperatureReport)
}

// HighestTemperatureReport renders the warmest report of the day.
func (p *Pipeline) HighestTemperatureReport() (string, error) {
	return p.run(analyzer.QueryHighestTemperature, (*analyzer.Analyzer).HighestTemperatureReport)
}

// CalmReportDetails lists the calm reports, or the no-calm message.
func (p *Pipeline) CalmReportDetails() (string, error) {
	return p.run(analyzer.QueryCalmReports, func(a *analyzer.Analyzer) (string, error) {
		return a.CalmReportDetails(), nil
	})
}

// TemperaturesBySettlement renders the per-settlement mean and fluctuation lines.
func (p *Pipeline) TemperaturesBySettlement() (string, error) {
	return p.run(analyzer.QueryTemperatures, func(a *analyzer.Analyzer) (string, error) {
		return a.TemperaturesBySettlement(), nil
	})
}

// WriteWindReports writes one wind report per settlement. The status message is
// returned even when some writes failed; err then joins every *domain.WriteError.
func (p *Pipeline) WriteWindReports(ctx context.Context) (string, error) {
	var settlements int
	status, err := p.run(analyzer.QueryWindReports, func(a *analyzer.Analyzer) (string, error) {
		settlements = len(a.Settlements())
		return a.WriteWindReportsBySettlements(ctx)
	})
	if errors.Is(err, ErrNotLoaded) {
		return "", err
	}

	failed := len(analyzer.FailedSettlements(err))
	p.metrics.WindFilesWritten.Add(float64(settlements - failed))
	p.metrics.WindFileErrors.Add(float64(failed))
	if failed > 0 {
		p.logger.Warn("some wind reports were not written", "failed", failed, "settlements", settlements)
	}
	return status, err
}

// run executes one query against the loaded analyzer and records its outcome.
func (p *Pipeline) run(query string, fn func(*analyzer.Analyzer) (string, error)) (string, error) {
	a, err := p.current()
	if err != nil {
		p.metrics.Queries.WithLabelValues(query, "error").Inc()
		return "", err
	}

	start := clock.Now()
	out, err := fn(a)
	p.metrics.QueryDuration.WithLabelValues(query).Observe(clock.Since(start).Seconds())

	switch {
	case err == nil:
		p.metrics.Queries.WithLabelValues(query, "success").Inc()
	case errors.Is(err, domain.ErrNoData):
		p.metrics.Queries.WithLabelValues(query, "no_data").Inc()
		p.logger.Info("query returned no data", "query", query, "error", err)
	default:
		p.metrics.Queries.WithLabelValues(query, "error").Inc()
		p.logger.Error("query failed", "query", query, "error", err)
	}
	return out, err
}
