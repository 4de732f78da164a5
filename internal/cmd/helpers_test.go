package cmd

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/quantmind-br/pylocate/internal/config"
	"github.com/quantmind-br/pylocate/internal/helpers"
	"github.com/quantmind-br/pylocate/internal/paths"
	"github.com/quantmind-br/pylocate/internal/platform"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const probeReply = "3 11 kwgood\n"

func testConfig() *config.Config {
	return &config.Config{
		Probe: config.ProbeConfig{
			Command: "python",
			Timeout: time.Second,
		},
		Logging: config.LoggingConfig{Level: "info", Color: "never"},
	}
}

func testLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// testDeps builds a linux host whose PATH is /usr/bin:/usr/lib with a
// python3 interpreter in /usr/bin that answers the probe with 3.11
func testDeps(t *testing.T) Deps {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/usr/bin", 0755))
	require.NoError(t, fs.MkdirAll("/usr/lib", 0755))
	require.NoError(t, afero.WriteFile(fs, "/usr/bin/python3", []byte("#!"), 0755))

	return Deps{
		Fs:   fs,
		Env:  platform.MapEnv{"PATH": "/usr/bin:/usr/lib"},
		GOOS: "linux",
		Runner: &helpers.MockCommandRunner{
			RunCommandFunc: func(_ context.Context, _ string, _ ...string) (string, error) {
				return probeReply, nil
			},
		},
		Layout: paths.NewResolverWithHome("/home/user"),
		Select: func(_ string, items []string) (int, string, error) {
			return 0, items[0], nil
		},
	}
}

// execute runs cmd with args and returns stdout and stderr. Usage output is
// silenced as it is under the root command.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	cmd.SilenceUsage = true

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
