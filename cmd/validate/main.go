// Command validate performs integrity checks on a telegram file and,
// optionally, on the wind report files generated from it. It verifies that
// every line parses, that reports are in time order, which settlements lack a
// report hour, and that wind report files match the telegrams.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -telegrams data/mock/tavirathu13.txt \
//	  -wind-dir out/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/couchcryptid/weather-telegram/internal/analyzer"
	"github.com/couchcryptid/weather-telegram/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	telegrams := flag.String("telegrams", "", "path to the telegram file")
	windDir := flag.String("wind-dir", "", "directory containing generated <code>.txt wind reports (optional)")
	flag.Parse()

	if *telegrams == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *telegrams, *windDir); code != 0 {
		os.Exit(code)
	}
}

func run(w io.Writer, telegramPath, windDir string) int {
	fmt.Fprintln(w, "=== Telegram Integrity Validation ===")
	fmt.Fprintln(w)

	lines, err := readLines(telegramPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load telegrams: %v\n", err)
		return 1
	}

	parsePhase, reports := validateParsing(lines)
	phases := []*phase{
		parsePhase,
		validateTimeOrder(reports),
		validateReportHours(reports),
	}
	if windDir != "" {
		phases = append(phases, validateWindReports(reports, windDir))
	}

	// ── Report results ──
	fmt.Fprintln(w)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Telegrams: %d lines, %d reports\n", len(lines), len(reports))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// ── Data loading ──

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// ── Phases ──

func validateParsing(lines []string) (*phase, []domain.Report) {
	p := &phase{name: "Telegram parsing"}
	reports := make([]domain.Report, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		r, err := domain.ParseTelegram(line)
		if err != nil {
			p.errorf("line %d: %v", i+1, err)
			continue
		}
		reports = append(reports, r)
	}
	return p, reports
}

func validateTimeOrder(reports []domain.Report) *phase {
	p := &phase{name: "Reports in time order"}
	for i := 1; i < len(reports); i++ {
		if reports[i].Time.Before(reports[i-1].Time) {
			p.errorf("report %d (%s) is earlier than report %d (%s)",
				i+1, reports[i].SettlementWithTime(), i, reports[i-1].SettlementWithTime())
		}
	}
	return p
}

func validateReportHours(reports []domain.Report) *phase {
	p := &phase{name: "Every settlement covers all report hours"}
	hours := map[string]map[int]bool{}
	var order []string
	for _, r := range reports {
		if hours[r.Settlement] == nil {
			hours[r.Settlement] = map[int]bool{}
			order = append(order, r.Settlement)
		}
		if r.IsReportHour() {
			hours[r.Settlement][r.Time.Hour] = true
		}
	}
	for _, code := range order {
		var missing []string
		for _, h := range domain.ReportHours {
			if !hours[code][h] {
				missing = append(missing, fmt.Sprintf("%02d", h))
			}
		}
		if len(missing) > 0 {
			p.errorf("%s: no report at hour(s) %s", code, strings.Join(missing, ", "))
		}
	}
	return p
}

func validateWindReports(reports []domain.Report, dir string) *phase {
	p := &phase{name: "Wind report files match telegrams"}
	a := analyzer.New(reports, nil, analyzer.DefaultMessages(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	for _, code := range a.Settlements() {
		path := filepath.Join(dir, analyzer.WindReportFilename(code))
		got, err := readLines(path)
		if err != nil {
			p.errorf("%s: %v", code, err)
			continue
		}
		want := a.WindReportLines(code)
		if !slices.Equal(got, want) {
			p.errorf("%s: %d lines on disk, %d expected; first line %q", path, len(got), len(want), firstOr(got, ""))
		}
	}
	return p
}

func firstOr(lines []string, def string) string {
	if len(lines) == 0 {
		return def
	}
	return lines[0]
}
