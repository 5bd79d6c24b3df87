package analyzer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/couchcryptid/weather-telegram/internal/analyzer"
	"github.com/couchcryptid/weather-telegram/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type recordingWriter struct {
	files  map[string][]string
	order  []string
	failOn map[string]error
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{files: map[string][]string{}, failOn: map[string]error{}}
}

func (w *recordingWriter) Write(_ context.Context, filename string, lines []string) error {
	w.order = append(w.order, filename)
	if err, ok := w.failOn[filename]; ok {
		return err
	}
	w.files[filename] = append([]string(nil), lines...)
	return nil
}

func report(code string, hour, minute, temp int, wind string) domain.Report {
	return domain.Report{
		Settlement:  code,
		Time:        domain.MustReportTime(hour, minute),
		Temperature: temp,
		WindCode:    wind,
	}
}

func newAnalyzer(reports []domain.Report, w analyzer.Writer) *analyzer.Analyzer {
	if w == nil {
		w = newRecordingWriter()
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return analyzer.New(reports, w, analyzer.DefaultMessages(), logger)
}

// --- tests ---

func TestLastReportTime(t *testing.T) {
	a := newAnalyzer([]domain.Report{
		report("BP", 1, 0, 5, "00000"),
		report("BP", 23, 5, 8, "32007"),
		report("SM", 23, 55, 1, "00000"),
		report("BP", 19, 30, 3, "32007"),
	}, nil)

	got, err := a.LastReportTime("BP")
	require.NoError(t, err)
	assert.Equal(t, "23:05", got)

	got, err = a.LastReportTime("SM")
	require.NoError(t, err)
	assert.Equal(t, "23:55", got)
}

func TestLastReportTime_UnknownSettlement(t *testing.T) {
	a := newAnalyzer([]domain.Report{report("BP", 1, 0, 5, "00000")}, nil)

	_, err := a.LastReportTime("XX")

	require.ErrorIs(t, err, domain.ErrNoData)
	var nd *domain.NoDataError
	require.ErrorAs(t, err, &nd)
	assert.Equal(t, analyzer.QueryLastReportTime, nd.Query)
	assert.Equal(t, "XX", nd.Settlement)
}

func TestTemperatureExtremes(t *testing.T) {
	reports := []domain.Report{
		report("BP", 1, 0, 5, "00000"),
		report("SM", 7, 15, -4, "00000"),
		report("PA", 13, 0, 27, "18003"),
		report("BP", 13, 30, 27, "18003"),
		report("PA", 19, 0, -4, "00000"),
	}
	a := newAnalyzer(reports, nil)

	lowest, err := a.LowestTemperatureReport()
	require.NoError(t, err)
	assert.Equal(t, "SM 07:15 -4 fok", lowest)

	highest, err := a.HighestTemperatureReport()
	require.NoError(t, err)
	assert.Equal(t, "PA 13:00 27 fok", highest)
}

func TestTemperatureExtremes_BoundEveryReport(t *testing.T) {
	reports := []domain.Report{
		report("A", 0, 10, 3, "00000"),
		report("B", 2, 20, -11, "00000"),
		report("C", 4, 30, 14, "00000"),
		report("A", 6, 40, 0, "00000"),
		report("B", 8, 50, 14, "00000"),
	}
	a := newAnalyzer(reports, nil)

	lowest, err := a.LowestTemperatureReport()
	require.NoError(t, err)
	highest, err := a.HighestTemperatureReport()
	require.NoError(t, err)

	lowTemp := temperatureOf(t, lowest)
	highTemp := temperatureOf(t, highest)
	for _, r := range reports {
		assert.LessOrEqual(t, lowTemp, r.Temperature)
		assert.GreaterOrEqual(t, highTemp, r.Temperature)
	}
}

// temperatureOf extracts the temperature from "<code> <HH:MM> <temp> fok".
func temperatureOf(t *testing.T, rendered string) int {
	t.Helper()
	fields := strings.Fields(rendered)
	require.Len(t, fields, 4)
	n, err := strconv.Atoi(fields[2])
	require.NoError(t, err)
	return n
}

func TestTemperatureExtremes_EmptyInput(t *testing.T) {
	a := newAnalyzer(nil, nil)

	_, err := a.LowestTemperatureReport()
	assert.ErrorIs(t, err, domain.ErrNoData)

	_, err = a.HighestTemperatureReport()
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestCalmReportDetails_NoCalm(t *testing.T) {
	a := newAnalyzer([]domain.Report{
		report("BP", 1, 0, 5, "32007"),
		report("SM", 7, 0, 5, "VRB01"),
	}, nil)

	assert.Equal(t, "Nem volt szélcsend a mérések idején.", a.CalmReportDetails())
}

func TestCalmReportDetails_ListsEveryCalmReportInOrder(t *testing.T) {
	a := newAnalyzer([]domain.Report{
		report("SM", 7, 0, 5, "00000"),
		report("BP", 1, 0, 5, "32007"),
		report("BP", 3, 15, 5, "00000"),
		report("SM", 9, 0, 5, "00000"),
	}, nil)

	got := a.CalmReportDetails()

	if diff := cmp.Diff([]string{"SM 07:00", "BP 03:15", "SM 09:00"}, strings.Split(got, "\n")); diff != "" {
		t.Errorf("calm reports mismatch (-want +got):\n%s", diff)
	}
}

func TestSettlements_FirstOccurrenceOrder(t *testing.T) {
	a := newAnalyzer([]domain.Report{
		report("B", 1, 0, 0, "00000"),
		report("A", 1, 0, 0, "00000"),
		report("B", 7, 0, 0, "00000"),
		report("C", 1, 0, 0, "00000"),
	}, nil)

	assert.Equal(t, []string{"B", "A", "C"}, a.Settlements())

	lines := strings.Split(a.TemperaturesBySettlement(), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "B "))
	assert.True(t, strings.HasPrefix(lines[1], "A "))
	assert.True(t, strings.HasPrefix(lines[2], "C "))
}

func TestTemperaturesBySettlement_Example(t *testing.T) {
	a := newAnalyzer([]domain.Report{
		report("X", 7, 0, 5, "00000"),
		report("X", 13, 0, 9, "00010"),
		report("X", 19, 0, 3, "00000"),
		report("X", 1, 0, 7, "00000"),
	}, nil)

	assert.Equal(t, "X Középhőmérséklet: 6; Hőmérséklet-ingadozás: 6", a.TemperaturesBySettlement())
}

func TestTemperaturesBySettlement_NotAvailable(t *testing.T) {
	var reports []domain.Report
	// Many readings, but never at 19 o'clock.
	for _, h := range []int{1, 1, 7, 7, 13, 13, 2, 20, 21} {
		reports = append(reports, report("PA", h, 0, h, "00000"))
	}
	a := newAnalyzer(reports, nil)

	assert.Equal(t, "PA NA; Hőmérséklet-ingadozás: 20", a.TemperaturesBySettlement())
}

func TestTemperaturesBySettlement_Rounding(t *testing.T) {
	tests := []struct {
		name  string
		temps [4]int
		extra []domain.Report
		want  string
	}{
		{
			name:  "half rounds up",
			temps: [4]int{10, 11, 10, 11},
			want:  "Középhőmérséklet: 11",
		},
		{
			name:  "negative half rounds towards positive",
			temps: [4]int{-2, -3, -2, -3},
			want:  "Középhőmérséklet: -2",
		},
		{
			name:  "every report-hour reading has equal weight",
			temps: [4]int{0, 0, 0, 0},
			extra: []domain.Report{report("K", 13, 30, 10, "00000")},
			want:  "Középhőmérséklet: 2",
		},
		{
			name:  "off-hour readings are ignored",
			temps: [4]int{4, 4, 4, 4},
			extra: []domain.Report{report("K", 12, 0, 40, "00000")},
			want:  "Középhőmérséklet: 4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reports []domain.Report
			for i, h := range domain.ReportHours {
				reports = append(reports, report("K", h, 0, tt.temps[i], "00000"))
			}
			reports = append(reports, tt.extra...)
			a := newAnalyzer(reports, nil)

			assert.Contains(t, a.TemperaturesBySettlement(), "K "+tt.want+"; ")
		})
	}
}

func TestWriteWindReportsBySettlements(t *testing.T) {
	w := newRecordingWriter()
	a := newAnalyzer([]domain.Report{
		report("X", 7, 0, 5, "27003"),
		report("Y", 8, 0, 5, "VRB01"),
		report("X", 13, 0, 9, "00000"),
	}, w)

	status, err := a.WriteWindReportsBySettlements(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "A fájlok elkészültek.", status)
	assert.Equal(t, []string{"X.txt", "Y.txt"}, w.order)
	assert.Equal(t, []string{"X", "07:00 ###", "13:00 "}, w.files["X.txt"])
	assert.Equal(t, []string{"Y", "08:00 #"}, w.files["Y.txt"])
}

func TestWriteWindReportsBySettlements_ContinuesAfterFailure(t *testing.T) {
	w := newRecordingWriter()
	w.failOn["A.txt"] = errors.New("permission denied")
	a := newAnalyzer([]domain.Report{
		report("A", 1, 0, 0, "00000"),
		report("B", 1, 0, 0, "00000"),
		report("C", 1, 0, 0, "00000"),
	}, w)

	status, err := a.WriteWindReportsBySettlements(context.Background())

	require.Error(t, err)
	assert.Equal(t, "A fájlok elkészültek.", status)
	assert.Equal(t, []string{"A.txt", "B.txt", "C.txt"}, w.order)
	assert.Contains(t, w.files, "B.txt")
	assert.Contains(t, w.files, "C.txt")

	var we *domain.WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "A", we.Settlement)
	assert.Equal(t, []string{"A"}, analyzer.FailedSettlements(err))
}

func TestFailedSettlements_Nil(t *testing.T) {
	assert.Nil(t, analyzer.FailedSettlements(nil))
}

func TestQueries_Idempotent(t *testing.T) {
	a := newAnalyzer([]domain.Report{
		report("BP", 1, 0, 5, "00000"),
		report("BP", 7, 0, 6, "32007"),
		report("BP", 13, 0, 9, "32007"),
		report("BP", 19, 0, 4, "00000"),
		report("SM", 13, 0, -1, "18002"),
	}, nil)

	first := []string{a.CalmReportDetails(), a.TemperaturesBySettlement()}
	second := []string{a.CalmReportDetails(), a.TemperaturesBySettlement()}
	assert.Equal(t, first, second)

	l1, _ := a.LowestTemperatureReport()
	l2, _ := a.LowestTemperatureReport()
	assert.Equal(t, l1, l2)
}

func TestNew_CopiesReports(t *testing.T) {
	reports := []domain.Report{report("BP", 1, 0, 5, "00000")}
	a := newAnalyzer(reports, nil)

	reports[0].Settlement = "ZZ"

	assert.Equal(t, []string{"BP"}, a.Settlements())
	assert.Equal(t, 1, a.Len())
}

func TestMessages_WithDefaults(t *testing.T) {
	m := analyzer.Messages{NoCalm: "No calm wind."}.WithDefaults()

	assert.Equal(t, "No calm wind.", m.NoCalm)
	assert.Equal(t, analyzer.DefaultMessages().FilesCreated, m.FilesCreated)
	assert.Equal(t, "NA", m.NotAvailable)
}
