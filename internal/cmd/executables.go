package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/pylocate/internal/config"
	"github.com/quantmind-br/pylocate/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type candidateView struct {
	Path      string `json:"path"`
	Directory string `json:"directory"`
	Version   string `json:"version,omitempty"`
}

// NewExecutablesCmd creates the executables command
func NewExecutablesCmd(cfg *config.Config, log *zerolog.Logger, deps Deps) *cobra.Command {
	var (
		jsonOutput bool
		withProbe  bool
	)

	cmd := &cobra.Command{
		Use:     "executables",
		Aliases: []string{"exe"},
		Short:   "List interpreter candidates found on PATH",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			res := newResolver(cfg, log, deps)

			paths, err := res.SearchPaths()
			if err != nil {
				return fmt.Errorf("cannot read search path: %w", err)
			}

			candidates, err := res.Candidates(paths)
			if err != nil {
				return fmt.Errorf("cannot list interpreters: %w", err)
			}

			views := make([]candidateView, 0, len(candidates))
			prober := newProber(cfg, log, deps)
			for _, c := range candidates {
				v := candidateView{Path: c, Directory: filepath.Dir(c)}
				if withProbe {
					if ver, err := prober.ProbeInterpreter(cmd.Context(), c); err == nil {
						v.Version = ver.String()
					}
				}
				views = append(views, v)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(views)
			}

			if len(views) == 0 {
				p.Info("No Python interpreters found on PATH")
				return nil
			}

			printCandidateTable(cmd, views, withProbe)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().BoolVar(&withProbe, "probe", false, "probe each interpreter by path for its version")

	return cmd
}

func printCandidateTable(cmd *cobra.Command, views []candidateView, withVersion bool) {
	header := []string{"#", "Interpreter", "Directory"}
	if withVersion {
		header = append(header, "Version")
	}

	table := tablewriter.NewTable(cmd.OutOrStdout(),
		tablewriter.WithHeader(header),
		tablewriter.WithAlignment(tw.MakeAlign(len(header), tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
	)

	for i, v := range views {
		row := []string{strconv.Itoa(i + 1), filepath.Base(v.Path), v.Directory}
		if withVersion {
			version := v.Version
			if version == "" {
				version = "-"
			}
			row = append(row, version)
		}
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		table.Append(cells...)
	}

	table.Render()
}
