// Package cli implements the telegram command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/weather-telegram/internal/config"
	"github.com/spf13/cobra"
)

// BuildFunc wires a Runtime from the loaded configuration.
type BuildFunc func(cfg *config.Config) (*Runtime, error)

// Options contain configuration for the CLI.
type Options struct {
	Output io.Writer
	Input  io.Reader
	Build  BuildFunc
}

// CLI represents the command-line interface.
type CLI struct {
	opts    Options
	rootCmd *cobra.Command
	runtime *Runtime

	telegramFile string
	outputDir    string
	sink         string
}

// NewCLI creates a new CLI instance.
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	c := &CLI{opts: opts}
	c.rootCmd = &cobra.Command{
		Use:               "telegram",
		Short:             "Analyze a day of weather telegrams",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	c.rootCmd.SetOut(opts.Output)
	c.rootCmd.SetIn(opts.Input)

	flags := c.rootCmd.PersistentFlags()
	flags.StringVar(&c.telegramFile, "file", "", "telegram file to analyze (overrides TELEGRAM_FILE)")
	flags.StringVar(&c.outputDir, "output-dir", "", "directory for wind report files (overrides OUTPUT_DIR)")
	flags.StringVar(&c.sink, "sink", "", "wind report sink: file or kafka (overrides OUTPUT_SINK)")

	c.rootCmd.AddCommand(
		newSummaryCmd(c),
		newLastCmd(c),
		newExtremesCmd(c),
		newCalmCmd(c),
		newTemperaturesCmd(c),
		newWindCmd(c),
		newSettlementsCmd(c),
		newServeCmd(c),
	)
	return c
}

// Root returns the root command, e.g. to set arguments in tests.
func (c *CLI) Root() *cobra.Command {
	return c.rootCmd
}

// Execute runs the command selected by os.Args.
func (c *CLI) Execute() error {
	return c.rootCmd.Execute()
}

// ExecuteContext runs the command selected by os.Args with ctx.
func (c *CLI) ExecuteContext(ctx context.Context) error {
	return c.rootCmd.ExecuteContext(ctx)
}

func (c *CLI) setup(*cobra.Command, []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.telegramFile != "" {
		cfg.TelegramFile = c.telegramFile
	}
	if c.outputDir != "" {
		cfg.OutputDir = c.outputDir
	}
	if c.sink != "" {
		if c.sink != config.SinkFile && c.sink != config.SinkKafka {
			return fmt.Errorf("invalid --sink %q", c.sink)
		}
		cfg.OutputSink = c.sink
	}

	rt, err := c.opts.Build(cfg)
	if err != nil {
		return err
	}
	c.runtime = rt
	return nil
}

// Close releases whatever the executed command wired up.
func (c *CLI) Close() error {
	if c.runtime == nil {
		return nil
	}
	return c.runtime.Close()
}

// load reads the telegram file into the pipeline.
func (c *CLI) load(ctx context.Context) error {
	return c.runtime.Pipeline.Load(ctx)
}
