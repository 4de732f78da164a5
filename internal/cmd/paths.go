package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/quantmind-br/pylocate/internal/fsops"
	"github.com/quantmind-br/pylocate/internal/platform"
	"github.com/quantmind-br/pylocate/internal/ui"
	"github.com/spf13/cobra"
)

type searchDirView struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// NewPathsCmd creates the paths command
func NewPathsCmd(deps Deps) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "List the directories searched, in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())

			paths, err := platform.SearchPaths(deps.Env, deps.Platform().Kind)
			if err != nil {
				return fmt.Errorf("cannot read search path: %w", err)
			}

			views := make([]searchDirView, 0, len(paths))
			for _, dir := range paths {
				views = append(views, searchDirView{Path: dir, Exists: fsops.IsDir(deps.Fs, dir)})
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(views)
			}

			if len(views) == 0 {
				p.Info("%s is not set", platform.PathVar)
				return nil
			}

			items := make([]string, 0, len(views))
			for _, v := range views {
				label := v.Path
				if label == "" {
					label = "(empty)"
				}
				if !v.Exists {
					label += " " + ui.Muted.Sprint("(missing)")
				}
				items = append(items, label)
			}
			p.NumberedList(items)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	return cmd
}
