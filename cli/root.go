// Package cli is the mazebot command line: run boards locally or serve the sandbox API.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/beka-birhanu/mazebot/config"
	"github.com/spf13/cobra"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitNoExit  = 2 // The run ended without reaching the end cell.
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "mazebot",
	Short: "Maze navigation sandbox",
	Long: `mazebot drives a robot through grid mazes it cannot see, one sensor
reading at a time, until it finds the exit.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the root command and exits with its status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitError)
	}
}

// loadConfig reads the shared configuration and applies the --log-level flag.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}
