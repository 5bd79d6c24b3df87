package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/couchcryptid/weather-telegram/internal/analyzer"
	"github.com/spf13/cobra"
)

type summaryCmd struct {
	cli        *CLI
	settlement string
}

func newSummaryCmd(c *CLI) *cobra.Command {
	sc := &summaryCmd{cli: c}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the full daily report and write wind report files",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}
	cmd.Flags().StringVar(&sc.settlement, "settlement", "", "settlement code for the last report time (prompted when empty)")
	return cmd
}

func (sc *summaryCmd) run(cmd *cobra.Command, _ []string) error {
	if err := sc.cli.load(cmd.Context()); err != nil {
		return err
	}

	code := sc.settlement
	if code == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Adja meg egy település kódját! Település: ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		code = strings.TrimSpace(line)
		if code == "" {
			if err != nil {
				return fmt.Errorf("read settlement code: %w", err)
			}
			return errors.New("settlement code is required")
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	return sc.cli.runtime.Pipeline.Summary(cmd.Context(), cmd.OutOrStdout(), code)
}

func newLastCmd(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "last CODE",
		Short: "Print the time of the last report from a settlement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.load(cmd.Context()); err != nil {
				return err
			}
			t, err := c.runtime.Pipeline.LastReportTime(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func newExtremesCmd(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "extremes",
		Short: "Print the lowest and highest temperature reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.load(cmd.Context()); err != nil {
				return err
			}
			p := c.runtime.Pipeline
			lowest, err := p.LowestTemperatureReport()
			if err != nil {
				return err
			}
			highest, err := p.HighestTemperatureReport()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", lowest, highest)
			return nil
		},
	}
}

func newCalmCmd(c *CLI) *cobra.Command {
	return newTextQueryCmd(c, "calm", "List calm wind reports", func() (string, error) {
		return c.runtime.Pipeline.CalmReportDetails()
	})
}

func newTemperaturesCmd(c *CLI) *cobra.Command {
	return newTextQueryCmd(c, "temperatures", "Print mean temperature and fluctuation per settlement", func() (string, error) {
		return c.runtime.Pipeline.TemperaturesBySettlement()
	})
}

func newSettlementsCmd(c *CLI) *cobra.Command {
	return newTextQueryCmd(c, "settlements", "List settlement codes in report order", func() (string, error) {
		codes, err := c.runtime.Pipeline.Settlements()
		return strings.Join(codes, "\n"), err
	})
}

func newTextQueryCmd(c *CLI, use, short string, query func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.load(cmd.Context()); err != nil {
				return err
			}
			out, err := query()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newWindCmd(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "wind",
		Short: "Write one wind report file per settlement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.load(cmd.Context()); err != nil {
				return err
			}
			status, err := c.runtime.Pipeline.WriteWindReports(cmd.Context())
			if status != "" {
				fmt.Fprintln(cmd.OutOrStdout(), status)
			}
			if failed := analyzer.FailedSettlements(err); len(failed) > 0 {
				return fmt.Errorf("wind reports failed for %s: %w", strings.Join(failed, ", "), err)
			}
			return err
		},
	}
}
