package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/pylocate/internal/fsops"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// AppName is attached to every record as the app field
	AppName = "pylocate"
	// DefaultFileLevel keeps the per-candidate resolution trace in the log
	// file even when the console only shows info and above.
	DefaultFileLevel = "debug"
)

// Config holds logger configuration
type Config struct {
	// Level filters the console
	Level string
	// FileLevel filters the rotating log file; empty means DefaultFileLevel
	FileLevel string
	LogFile   string
	NoColor   bool
	// Version is recorded on every entry when set
	Version string
}

// NewLogger creates a logger writing to stderr and, when LogFile is set, to a
// rotating file. Each destination has its own level.
func NewLogger(cfg Config) *zerolog.Logger {
	return newLogger(cfg, os.Stderr, afero.NewOsFs())
}

func newLogger(cfg Config, console io.Writer, fs afero.Fs) *zerolog.Logger {
	// Enable stack trace marshaling
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	consoleLevel := parseLevel(cfg.Level)
	lowest := consoleLevel

	consoleWriter := zerolog.ConsoleWriter{
		Out:           console,
		TimeFormat:    "15:04:05",
		NoColor:       cfg.NoColor,
		FieldsExclude: []string{"app", "version"},
	}

	writers := []io.Writer{
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: consoleWriter},
			Level:  consoleLevel,
		},
	}

	if cfg.LogFile != "" {
		if err := fsops.EnsureDir(fs, filepath.Dir(cfg.LogFile), 0755); err == nil {
			fileLevel := parseLevel(orDefault(cfg.FileLevel, DefaultFileLevel))
			writers = append(writers, &zerolog.FilteredLevelWriter{
				Writer: zerolog.LevelWriterAdapter{Writer: &lumberjack.Logger{
					Filename:   cfg.LogFile,
					MaxSize:    10, // MB
					MaxBackups: 3,
					MaxAge:     28, // days
					Compress:   true,
				}},
				Level: fileLevel,
			})
			if fileLevel < lowest {
				lowest = fileLevel
			}
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lowest).
		With().
		Timestamp().
		Str("app", AppName)
	if cfg.Version != "" {
		ctx = ctx.Str("version", cfg.Version)
	}

	logger := ctx.Logger()
	return &logger
}

// Component returns a child logger tagged with the pipeline stage it serves
func Component(log *zerolog.Logger, name string) *zerolog.Logger {
	if log == nil {
		nop := zerolog.Nop()
		return &nop
	}
	child := log.With().Str("component", name).Logger()
	return &child
}

// parseLevel converts a configured level to zerolog.Level. Unknown and empty
// values fall back to info.
func parseLevel(level string) zerolog.Level {
	level = strings.TrimSpace(level)
	if strings.EqualFold(level, "warning") {
		return zerolog.WarnLevel
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// NewTestLogger creates a logger for testing that writes to a buffer
func NewTestLogger(w io.Writer) *zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Logger()
	return &logger
}
