package main

import (
	"fmt"
	"os"

	"github.com/couchcryptid/weather-telegram/internal/cli"
	"github.com/couchcryptid/weather-telegram/internal/config"
	"github.com/couchcryptid/weather-telegram/internal/observability"
	"github.com/spf13/afero"
)

func main() {
	c := cli.NewCLI(cli.Options{
		Output: os.Stdout,
		Input:  os.Stdin,
		Build: func(cfg *config.Config) (*cli.Runtime, error) {
			logger := observability.NewLogger(cfg)
			return cli.NewRuntime(cfg, afero.NewOsFs(), logger, observability.NewMetrics())
		},
	})

	err := c.Execute()
	if closeErr := c.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Error: close: %v\n", closeErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
