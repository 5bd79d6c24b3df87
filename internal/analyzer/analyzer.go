// Package analyzer answers the daily report queries over a fixed set of
// weather telegrams.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/couchcryptid/weather-telegram/internal/domain"
)

// Query names, used in errors, logs and metric labels.
const (
	QueryLastReportTime     = "last_report_time"
	QueryLowestTemperature  = "lowest_temperature"
	QueryHighestTemperature = "highest_temperature"
	QueryCalmReports        = "calm_reports"
	QueryTemperatures       = "temperatures_by_settlement"
	QueryWindReports        = "wind_reports"
)

// Writer persists one wind report file. Implementations create or overwrite
// filename with lines separated by newlines.
type Writer interface {
	Write(ctx context.Context, filename string, lines []string) error
}

// Analyzer holds the day's reports in input order. Queries never mutate the
// reports and rescan them on every call.
type Analyzer struct {
	reports []domain.Report
	writer  Writer
	msgs    Messages
	logger  *slog.Logger
}

// New creates an Analyzer over a copy of reports.
func New(reports []domain.Report, w Writer, msgs Messages, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		reports: append([]domain.Report(nil), reports...),
		writer:  w,
		msgs:    msgs.WithDefaults(),
		logger:  logger,
	}
}

// Len returns the number of held reports.
func (a *Analyzer) Len() int {
	return len(a.reports)
}

// Reports returns a copy of the held reports in input order.
func (a *Analyzer) Reports() []domain.Report {
	return append([]domain.Report(nil), a.reports...)
}

// Settlements returns the distinct settlement codes in first-occurrence order.
func (a *Analyzer) Settlements() []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, r := range a.reports {
		if _, ok := seen[r.Settlement]; ok {
			continue
		}
		seen[r.Settlement] = struct{}{}
		codes = append(codes, r.Settlement)
	}
	return codes
}

// LastReportTime returns the latest report time of a settlement as "HH:MM".
func (a *Analyzer) LastReportTime(code string) (string, error) {
	var (
		last  domain.ReportTime
		found bool
	)
	for _, r := range a.reports {
		if !r.IsSettlement(code) {
			continue
		}
		if !found || last.Before(r.Time) {
			last = r.Time
			found = true
		}
	}
	if !found {
		return "", &domain.NoDataError{Query: QueryLastReportTime, Settlement: code}
	}
	return last.String(), nil
}

// LowestTemperatureReport renders the report with the lowest temperature.
// The first such report wins ties.
func (a *Analyzer) LowestTemperatureReport() (string, error) {
	r, ok := a.extreme(func(candidate, best domain.Report) bool {
		return candidate.Temperature < best.Temperature
	})
	if !ok {
		return "", &domain.NoDataError{Query: QueryLowestTemperature}
	}
	return r.String(), nil
}

// HighestTemperatureReport renders the report with the highest temperature.
// The first such report wins ties.
func (a *Analyzer) HighestTemperatureReport() (string, error) {
	r, ok := a.extreme(func(candidate, best domain.Report) bool {
		return candidate.Temperature > best.Temperature
	})
	if !ok {
		return "", &domain.NoDataError{Query: QueryHighestTemperature}
	}
	return r.String(), nil
}

func (a *Analyzer) extreme(better func(candidate, best domain.Report) bool) (domain.Report, bool) {
	if len(a.reports) == 0 {
		return domain.Report{}, false
	}
	best := a.reports[0]
	for _, r := range a.reports[1:] {
		if better(r, best) {
			best = r
		}
	}
	return best, true
}

// CalmReportDetails lists "<code> <HH:MM>" for every calm report in input
// order, one per line, or the no-calm message when there is none.
func (a *Analyzer) CalmReportDetails() string {
	var lines []string
	for _, r := range a.reports {
		if r.IsCalm() {
			lines = append(lines, r.SettlementWithTime())
		}
	}
	if len(lines) == 0 {
		return a.msgs.NoCalm
	}
	return strings.Join(lines, "\n")
}

// TemperaturesBySettlement renders one "<code> <mean>; <fluctuation>" line
// per settlement in first-occurrence order.
func (a *Analyzer) TemperaturesBySettlement() string {
	codes := a.Settlements()
	lines := make([]string, 0, len(codes))
	for _, code := range codes {
		lines = append(lines, fmt.Sprintf("%s %s; %s", code, a.averageClause(code), a.fluctuationClause(code)))
	}
	return strings.Join(lines, "\n")
}

// averageClause reports the rounded mean of every report-hour reading, or
// NotAvailable unless all report hours were sampled.
func (a *Analyzer) averageClause(code string) string {
	hours := make(map[int]struct{}, len(domain.ReportHours))
	sum, n := 0, 0
	for _, r := range a.reports {
		if !r.IsSettlement(code) || !r.IsReportHour() {
			continue
		}
		hours[r.Time.Hour] = struct{}{}
		sum += r.Temperature
		n++
	}
	if len(hours) != len(domain.ReportHours) {
		return a.msgs.NotAvailable
	}
	return fmt.Sprintf("%s: %d", a.msgs.AverageLabel, roundHalfUp(float64(sum)/float64(n)))
}

func (a *Analyzer) fluctuationClause(code string) string {
	var lowest, highest int
	found := false
	for _, r := range a.reports {
		if !r.IsSettlement(code) {
			continue
		}
		if !found {
			lowest, highest = r.Temperature, r.Temperature
			found = true
			continue
		}
		lowest = min(lowest, r.Temperature)
		highest = max(highest, r.Temperature)
	}
	return fmt.Sprintf("%s: %d", a.msgs.FluctuationLabel, highest-lowest)
}

// roundHalfUp rounds to the nearest integer with halves going towards
// positive infinity, so -2.5 becomes -2.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// WindReportLines returns the wind report file contents of a settlement:
// the code, then "<HH:MM> <#...>" per report in input order.
func (a *Analyzer) WindReportLines(code string) []string {
	lines := []string{code}
	for _, r := range a.reports {
		if r.IsSettlement(code) {
			lines = append(lines, r.WindForceByTime())
		}
	}
	return lines
}

// WindReportFilename is "<code>.txt".
func WindReportFilename(code string) string {
	return code + ".txt"
}

// WriteWindReportsBySettlements writes one wind report file per settlement.
// A failed write is logged and does not stop the remaining settlements; every
// failure is returned as a *domain.WriteError joined into err. The status
// message is returned in both cases.
func (a *Analyzer) WriteWindReportsBySettlements(ctx context.Context) (string, error) {
	var errs []error
	for _, code := range a.Settlements() {
		filename := WindReportFilename(code)
		if err := a.writer.Write(ctx, filename, a.WindReportLines(code)); err != nil {
			a.logger.Warn("write wind report failed, continuing",
				"settlement", code,
				"filename", filename,
				"error", err,
			)
			errs = append(errs, &domain.WriteError{Settlement: code, Filename: filename, Err: err})
			continue
		}
		a.logger.Debug("wind report written", "settlement", code, "filename", filename)
	}
	return a.msgs.FilesCreated, errors.Join(errs...)
}

// FailedSettlements extracts the settlement codes of every *domain.WriteError
// in err, in order.
func FailedSettlements(err error) []string {
	if err == nil {
		return nil
	}
	var codes []string
	var walk func(error)
	walk = func(e error) {
		var we *domain.WriteError
		switch x := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range x.Unwrap() {
				walk(inner)
			}
		default:
			if errors.As(e, &we) {
				codes = append(codes, we.Settlement)
			}
		}
	}
	walk(err)
	return codes
}
