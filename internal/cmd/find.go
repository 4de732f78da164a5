package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quantmind-br/pylocate/internal/config"
	"github.com/quantmind-br/pylocate/internal/core"
	"github.com/quantmind-br/pylocate/internal/resolver"
	"github.com/quantmind-br/pylocate/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// attemptView is the JSON form of a resolver.Attempt
type attemptView struct {
	Candidate string `json:"candidate"`
	Version   string `json:"version,omitempty"`
	Library   string `json:"library,omitempty"`
	Path      string `json:"path,omitempty"`
	Skipped   string `json:"skipped,omitempty"`
}

// findResult is the JSON document printed by find --json
type findResult struct {
	Found    bool          `json:"found"`
	Library  string        `json:"library,omitempty"`
	Platform core.Platform `json:"platform"`
	Attempts []attemptView `json:"attempts"`
	Error    string        `json:"error,omitempty"`
}

func newAttemptViews(attempts []resolver.Attempt) []attemptView {
	views := make([]attemptView, 0, len(attempts))
	for _, a := range attempts {
		v := attemptView{
			Candidate: a.Candidate,
			Library:   a.Library,
			Path:      a.Path,
		}
		if a.Version.Valid() {
			v.Version = a.Version.String()
		}
		if a.Err != nil {
			v.Skipped = a.Err.Error()
		}
		views = append(views, v)
	}
	return views
}

// NewFindCmd creates the find command
func NewFindCmd(cfg *config.Config, log *zerolog.Logger, deps Deps) *cobra.Command {
	var (
		jsonOutput bool
		verbose    bool
		noSpinner  bool
	)

	cmd := &cobra.Command{
		Use:     "find",
		Aliases: []string{"lib"},
		Short:   "Resolve the Python shared library",
		Long: `Find interpreter candidates on PATH, probe the Python version and
search every PATH directory for the matching shared library. The first
match wins. Prints the absolute library path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			res := newResolver(cfg, log, deps)

			paths, err := res.SearchPaths()
			if err != nil {
				return fmt.Errorf("cannot read search path: %w", err)
			}

			spinner := ui.NewSpinner(cmd.ErrOrStderr(), "Probing Python...", !jsonOutput && !noSpinner)
			spinner.Start()
			library, attempts, err := res.Trace(cmd.Context(), paths)
			spinner.Stop()

			if jsonOutput {
				result := findResult{
					Found:    err == nil,
					Library:  library,
					Platform: res.Platform(),
					Attempts: newAttemptViews(attempts),
				}
				if err != nil {
					result.Error = err.Error()
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(result); encErr != nil {
					return encErr
				}
				return err
			}

			if verbose {
				printAttempts(p, attempts)
			}

			if errors.Is(err, resolver.ErrNotFound) {
				return fmt.Errorf("no Python library found on PATH (%d candidate(s) examined): %w", len(attempts), err)
			}
			if err != nil {
				return err
			}

			log.Debug().Str("library", library).Msg("library resolved")
			p.Line("%s", library)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show every candidate examined")
	cmd.Flags().BoolVar(&noSpinner, "no-spinner", false, "do not show a progress spinner")

	return cmd
}

func printAttempts(p *ui.Printer, attempts []resolver.Attempt) {
	if len(attempts) == 0 {
		p.Info("No interpreter candidates on PATH")
		return
	}

	items := make([]string, 0, len(attempts))
	for _, a := range attempts {
		switch {
		case a.Path != "":
			items = append(items, ui.SprintSuccess("%s (Python %s) → %s", a.Candidate, a.Version, a.Path))
		case a.Library != "":
			items = append(items, ui.SprintError("%s (Python %s): %s %v", a.Candidate, a.Version, a.Library, a.Err))
		default:
			items = append(items, ui.SprintError("%s: %v", a.Candidate, a.Err))
		}
	}
	p.List(items)
}
