// Command genmock writes a synthetic day of weather telegrams for local runs
// and demos. Output is deterministic for a given seed.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out data/mock/tavirathu13.txt \
//	  -settlements BP,DC,SM,PA,SN,PR,KE,SZ,SK,BC \
//	  -seed 13
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/couchcryptid/weather-telegram/internal/analyzer"
	"github.com/couchcryptid/weather-telegram/internal/domain"
)

// generator settings for one run.
type genConfig struct {
	settlements []string
	seed        uint64
	// reportChance is the probability a settlement reports in a given hour.
	reportChance float64
	// calmChance is the probability a report carries the calm wind group.
	calmChance float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the telegram file")
	settlements := flag.String("settlements", "BP,DC,SM,PA,SN,PR,KE,SZ,SK,BC", "comma-separated settlement codes")
	seed := flag.Uint64("seed", 13, "random seed")
	reportChance := flag.Float64("report-chance", 0.8, "probability of a report per settlement and hour")
	calmChance := flag.Float64("calm-chance", 0.05, "probability of a calm wind group")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	cfg := genConfig{
		settlements:  splitCodes(*settlements),
		seed:         *seed,
		reportChance: *reportChance,
		calmChance:   *calmChance,
	}
	if len(cfg.settlements) == 0 {
		return fmt.Errorf("no settlements given")
	}

	reports := generate(cfg)
	if err := writeTelegrams(*out, reports); err != nil {
		return fmt.Errorf("writing telegrams: %w", err)
	}
	log.Printf("wrote %d telegrams for %d settlements: %s", len(reports), len(cfg.settlements), *out)

	printStats(os.Stdout, reports)
	return nil
}

func splitCodes(s string) []string {
	var codes []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

// generate emits reports in time order. Each settlement has a base temperature
// that follows a simple daily curve peaking at 14 o'clock.
func generate(cfg genConfig) []domain.Report {
	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x5eed))

	base := make(map[string]int, len(cfg.settlements))
	for _, code := range cfg.settlements {
		base[code] = 10 + rng.IntN(12)
	}

	var reports []domain.Report
	for hour := 0; hour < 24; hour++ {
		for _, code := range cfg.settlements {
			if rng.Float64() >= cfg.reportChance {
				continue
			}
			t := domain.MustReportTime(hour, rng.IntN(60))
			reports = append(reports, domain.Report{
				Settlement:  code,
				Time:        t,
				Temperature: base[code] + diurnal(hour) + rng.IntN(5) - 2,
				WindCode:    windCode(rng, cfg.calmChance),
			})
		}
	}
	slices.SortStableFunc(reports, func(a, b domain.Report) int {
		return a.Time.Compare(b.Time)
	})
	return reports
}

// diurnal is the temperature offset for the hour: coldest before dawn,
// warmest mid-afternoon.
func diurnal(hour int) int {
	d := hour - 14
	if d < 0 {
		d = -d
	}
	if d > 12 {
		d = 24 - d
	}
	return 8 - d
}

func windCode(rng *rand.Rand, calmChance float64) string {
	if rng.Float64() < calmChance {
		return domain.CalmWindCode
	}
	force := 1 + rng.IntN(15)
	if rng.IntN(10) == 0 {
		return fmt.Sprintf("VRB%02d", force)
	}
	return fmt.Sprintf("%03d%02d", rng.IntN(36)*10, force)
}

func writeTelegrams(path string, reports []domain.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, r := range reports {
		fmt.Fprintln(w, domain.FormatTelegram(r))
	}
	if err := w.Flush(); err != nil {
		f.Close() //nolint:errcheck // already failing
		return err
	}
	return f.Close()
}

// printStats runs the analyzer over the generated reports so test assertions
// can be updated from the output.
func printStats(w io.Writer, reports []domain.Report) {
	a := analyzer.New(reports, nil, analyzer.DefaultMessages(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	fmt.Fprintln(w, "\n=== Stats for updating test assertions ===")
	fmt.Fprintf(w, "Total: %d\n", a.Len())
	fmt.Fprintf(w, "Settlements: %s\n", strings.Join(a.Settlements(), " "))

	if lowest, err := a.LowestTemperatureReport(); err == nil {
		fmt.Fprintf(w, "Lowest: %s\n", lowest)
	}
	if highest, err := a.HighestTemperatureReport(); err == nil {
		fmt.Fprintf(w, "Highest: %s\n", highest)
	}

	calm := 0
	for _, r := range reports {
		if r.IsCalm() {
			calm++
		}
	}
	fmt.Fprintf(w, "Calm reports: %d\n", calm)
	fmt.Fprintf(w, "\nTemperatures:\n%s\n", a.TemperaturesBySettlement())
}
