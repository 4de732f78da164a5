package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quantmind-br/pylocate/internal/config"
	"github.com/quantmind-br/pylocate/internal/core"
	"github.com/quantmind-br/pylocate/internal/security"
	"github.com/quantmind-br/pylocate/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type probeResult struct {
	Interpreter string        `json:"interpreter"`
	Version     *core.Version `json:"version,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// NewProbeCmd creates the probe command
func NewProbeCmd(cfg *config.Config, log *zerolog.Logger, deps Deps) *cobra.Command {
	var (
		interpreter string
		selectOne   bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Ask a Python interpreter for its version",
		Long: `Run the version probe. Without flags this runs the configured probe
command (python by default) resolved through PATH, exactly as find does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			prober := newProber(cfg, log, deps)

			if interpreter != "" && selectOne {
				return errors.New("--interpreter and --select are mutually exclusive")
			}

			target := prober.Command()
			if interpreter != "" {
				if err := security.ValidateExecutable(interpreter); err != nil {
					return fmt.Errorf("invalid --interpreter: %w", err)
				}
				target = interpreter
			}

			if selectOne {
				res := newResolver(cfg, log, deps)
				paths, err := res.SearchPaths()
				if err != nil {
					return fmt.Errorf("cannot read search path: %w", err)
				}
				candidates, err := res.Candidates(paths)
				if err != nil {
					return fmt.Errorf("cannot list interpreters: %w", err)
				}
				if len(candidates) == 0 {
					return errors.New("no Python interpreters found on PATH")
				}
				_, chosen, err := deps.Select("Interpreter", candidates)
				if err != nil {
					return err
				}
				target = chosen
			}

			v, err := prober.ProbeInterpreter(cmd.Context(), target)

			if jsonOutput {
				result := probeResult{Interpreter: target}
				if err != nil {
					result.Error = err.Error()
				} else {
					result.Version = &v
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(result); encErr != nil {
					return encErr
				}
				return err
			}

			shown := security.SanitizeForDisplay(target)
			if err != nil {
				return fmt.Errorf("%s: %w", shown, err)
			}

			p.Success("%s: Python %s", shown, v)
			return nil
		},
	}

	cmd.Flags().StringVarP(&interpreter, "interpreter", "i", "", "probe this interpreter instead of the configured command")
	cmd.Flags().BoolVarP(&selectOne, "select", "s", false, "pick an interpreter found on PATH interactively")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	return cmd
}
