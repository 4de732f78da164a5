package cmd

import (
	"github.com/quantmind-br/pylocate/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd(cfg *config.Config, log *zerolog.Logger, version string) *cobra.Command {
	return newRootCmd(cfg, log, version, DefaultDeps())
}

func newRootCmd(cfg *config.Config, log *zerolog.Logger, version string, deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pylocate",
		Short: "Locate the Python runtime library",
		Long: `Locate a Python interpreter on PATH and resolve the shared library
(libpythonX.Y.so or pythonXY.dll) a host application can load.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewFindCmd(cfg, log, deps))
	cmd.AddCommand(NewPathsCmd(deps))
	cmd.AddCommand(NewExecutablesCmd(cfg, log, deps))
	cmd.AddCommand(NewProbeCmd(cfg, log, deps))
	cmd.AddCommand(NewDoctorCmd(cfg, log, deps))
	cmd.AddCommand(NewCompletionCmd(log))
	cmd.AddCommand(NewVersionCmd(version))

	return cmd
}
