package cmd

import (
	"fmt"

	"github.com/quantmind-br/pylocate/internal/config"
	"github.com/quantmind-br/pylocate/internal/fsops"
	"github.com/quantmind-br/pylocate/internal/platform"
	"github.com/quantmind-br/pylocate/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewDoctorCmd creates the doctor command
func NewDoctorCmd(cfg *config.Config, log *zerolog.Logger, deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose why the Python library can or cannot be found",
		Long:  `Check the platform, search path, interpreter candidates, version probe and library resolution.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			ctx := cmd.Context()
			res := newResolver(cfg, log, deps)
			plat := res.Platform()

			p.Header("Python Library Diagnostics")

			var issues []string
			var warnings []string

			// 1. Platform
			p.Subheader("Platform")
			p.KeyValue("Kind", string(plat.Kind))
			msystem, ok := deps.Env.LookupEnv(platform.HybridShellVar)
			if !ok {
				msystem = "not set"
			}
			p.KeyValue(platform.HybridShellVar, msystem)
			p.KeyValue("Hybrid shell", fmt.Sprintf("%t", plat.HybridShell))
			if !plat.Kind.Supported() {
				p.Error("unsupported platform")
				issues = append(issues, "Platform is neither Windows nor POSIX")
			}

			// 2. Search path
			p.Subheader("Search Path")
			searchPaths, err := res.SearchPaths()
			switch {
			case err != nil:
				p.Error("cannot read %s: %v", platform.PathVar, err)
			case searchPaths == nil:
				p.Error("%s is not set", platform.PathVar)
				issues = append(issues, fmt.Sprintf("%s is not set", platform.PathVar))
			default:
				missing := 0
				for _, dir := range searchPaths {
					if dir == "" || !fsops.IsDir(deps.Fs, dir) {
						missing++
					}
				}
				p.Info("%d director(ies), %d missing or empty", len(searchPaths), missing)
				if missing > 0 {
					warnings = append(warnings, fmt.Sprintf("%d %s entr(ies) missing or empty", missing, platform.PathVar))
				}
			}

			// 3. Interpreters
			p.Subheader("Interpreters")
			if plat.Kind.Supported() {
				candidates, err := res.Candidates(searchPaths)
				if err != nil {
					p.Error("cannot list interpreters: %v", err)
				} else if len(candidates) == 0 {
					p.Error("no interpreter candidates on %s", platform.PathVar)
					issues = append(issues, "No Python interpreter on PATH")
				} else {
					p.Success("%d candidate(s)", len(candidates))
					p.List(candidates)
				}
			}

			// 4. Version probe
			p.Subheader("Version Probe")
			prober := newProber(cfg, log, deps)
			if resolved, err := deps.Runner.LookPath(prober.Command()); err == nil {
				p.KeyValue("Command", fmt.Sprintf("%s (%s)", prober.Command(), resolved))
			} else {
				p.KeyValue("Command", prober.Command())
				p.Warning("%s does not resolve through PATH", prober.Command())
			}
			p.KeyValue("Timeout", prober.Timeout().String())
			p.KeyValue("Per-candidate", fmt.Sprintf("%t", cfg.Probe.PerCandidate))
			if v, err := prober.ProbeVersion(ctx); err != nil {
				p.Error("probe failed: %v", err)
				issues = append(issues, "Version probe failed")
			} else {
				p.Success("Python %s", v)
			}

			// 5. Library
			p.Subheader("Library")
			if plat.Kind.Supported() {
				library, attempts, err := res.Trace(ctx, searchPaths)
				if err != nil {
					p.Error("%v", err)
					issues = append(issues, "Python library not found")
					printAttempts(p, attempts)
				} else {
					p.Success("%s", library)
				}
			}

			// 6. Configuration
			p.Subheader("Configuration")
			configFile := deps.Layout.ConfigFile()
			if !fsops.Exists(deps.Fs, configFile) {
				configFile += " (not present, using defaults)"
			}
			p.KeyValue("Config file", configFile)
			logFile := cfg.Paths.LogFile
			if logFile == "" {
				logFile = "disabled"
			}
			p.KeyValue("Log file", logFile)

			// Summary
			p.Header("Summary")

			if len(issues) == 0 {
				p.Success("All critical checks passed!")
			} else {
				p.Error("Found %d issue(s):", len(issues))
				p.List(issues)
			}

			if len(warnings) > 0 {
				p.Warning("Found %d warning(s):", len(warnings))
				p.List(warnings)
			}

			if len(issues) > 0 {
				return fmt.Errorf("diagnostics failed with %d issue(s)", len(issues))
			}

			return nil
		},
	}

	return cmd
}
