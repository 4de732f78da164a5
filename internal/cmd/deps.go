package cmd

import (
	"runtime"

	"github.com/quantmind-br/pylocate/internal/config"
	"github.com/quantmind-br/pylocate/internal/core"
	"github.com/quantmind-br/pylocate/internal/helpers"
	"github.com/quantmind-br/pylocate/internal/logging"
	"github.com/quantmind-br/pylocate/internal/paths"
	"github.com/quantmind-br/pylocate/internal/platform"
	"github.com/quantmind-br/pylocate/internal/probe"
	"github.com/quantmind-br/pylocate/internal/resolver"
	"github.com/quantmind-br/pylocate/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Deps are the collaborators the commands read the host through
type Deps struct {
	Fs     afero.Fs
	Env    platform.Environment
	GOOS   string
	Runner helpers.CommandRunner
	// Layout locates pylocate's own config and log files
	Layout *paths.Resolver
	// Select asks the user to pick one item; used by probe --select
	Select func(label string, items []string) (int, string, error)
}

// DefaultDeps uses the real filesystem, environment and process runner
func DefaultDeps() Deps {
	return Deps{
		Fs:     afero.NewOsFs(),
		Env:    platform.OSEnv{},
		GOOS:   runtime.GOOS,
		Runner: helpers.NewOSCommandRunner(),
		Layout: paths.NewResolver(),
		Select: ui.SelectPrompt,
	}
}

// Platform detects the platform once for a command invocation
func (d Deps) Platform() core.Platform {
	return platform.DetectFor(d.GOOS, d.Env)
}

func newProber(cfg *config.Config, log *zerolog.Logger, deps Deps) *probe.Prober {
	return probe.New(deps.Runner, probe.Config{
		Command: cfg.Probe.Command,
		Timeout: cfg.Probe.Timeout,
	}, logging.Component(log, "probe"))
}

func newResolver(cfg *config.Config, log *zerolog.Logger, deps Deps) *resolver.Resolver {
	return resolver.New(
		deps.Fs,
		deps.Env,
		deps.Platform(),
		newProber(cfg, log, deps),
		resolver.Options{PerCandidate: cfg.Probe.PerCandidate},
		logging.Component(log, "resolver"),
	)
}
