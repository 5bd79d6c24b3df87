package pipeline

import (
	"context"
	"fmt"
	"io"
)

// Summary prints the daily report: the last report time of settlement,
// temperature extremes, calm reports, settlement temperatures and the wind
// report status. Wind report write failures are returned after the report is
// printed in full.
func (p *Pipeline) Summary(ctx context.Context, w io.Writer, settlement string) error {
	last, err := p.LastReportTime(settlement)
	if err != nil {
		return err
	}
	lowest, err := p.LowestTemperatureReport()
	if err != nil {
		return err
	}
	highest, err := p.HighestTemperatureReport()
	if err != nil {
		return err
	}
	calm, err := p.CalmReportDetails()
	if err != nil {
		return err
	}
	temps, err := p.TemperaturesBySettlement()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "2. feladat\nAz utolsó mérési adat a megadott településről %s-kor érkezett.\n\n", last)
	fmt.Fprintf(w, "3. feladat\nA legalacsonyabb hőmérséklet: %s.\nA legmagasabb hőmérséklet: %s.\n\n", lowest, highest)
	fmt.Fprintf(w, "4. feladat\n%s\n\n", calm)
	fmt.Fprintf(w, "5. feladat\n%s\n\n", temps)

	status, writeErr := p.WriteWindReports(ctx)
	fmt.Fprintf(w, "6. feladat\n%s\n", status)
	return writeErr
}
