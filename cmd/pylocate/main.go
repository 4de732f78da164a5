package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/quantmind-br/pylocate/internal/cmd"
	"github.com/quantmind-br/pylocate/internal/config"
	"github.com/quantmind-br/pylocate/internal/core"
	"github.com/quantmind-br/pylocate/internal/logging"
	"github.com/quantmind-br/pylocate/internal/resolver"
	"github.com/quantmind-br/pylocate/internal/ui"
)

var version = "dev"

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(core.ExitGeneral)
	}

	// Initialize logger
	log := logging.NewLogger(logging.Config{
		Level:     cfg.Logging.Level,
		FileLevel: cfg.Logging.FileLevel,
		LogFile:   cfg.Paths.LogFile,
		NoColor:   cfg.Logging.Color == "never",
		Version:   version,
	})
	ui.InitColors(cfg.Logging.Color)

	// Execute root command
	rootCmd := cmd.NewRootCmd(cfg, log, version)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Debug().Err(err).Msg("command failed")
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return core.ExitSuccess
	case errors.Is(err, resolver.ErrNotFound):
		return core.ExitNotFound
	default:
		return core.ExitGeneral
	}
}
