// Package command provides the CLI command definitions for bookit.
//
// It uses urfave/cli/v2 for command parsing. Every command loads the store
// named by --config, applies one operation and, when the collection
// changed, writes it back.
package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/nikbrunner/bookit/internal/editor"
	"github.com/nikbrunner/bookit/internal/picker"
	"github.com/nikbrunner/bookit/internal/storage"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const sessionKey = "session"

// Option customizes the collaborators App hands to commands.
type Option func(*options)

type options struct {
	runner    editor.Runner
	lookupEnv func(string) string
	opener    func(url string) error
	runPicker func(picker.Picker) (picker.Picker, error)
}

// WithEditRunner sets the runner used by the edit command.
func WithEditRunner(r editor.Runner) Option {
	return func(o *options) { o.runner = r }
}

// WithLookupEnv sets how the edit command resolves environment variables.
func WithLookupEnv(fn func(string) string) Option {
	return func(o *options) { o.lookupEnv = fn }
}

// WithOpener sets how the pick command opens a url.
func WithOpener(fn func(url string) error) Option {
	return func(o *options) { o.opener = fn }
}

// WithPickerRunner sets how the pick command runs the interactive picker.
func WithPickerRunner(fn func(picker.Picker) (picker.Picker, error)) Option {
	return func(o *options) { o.runPicker = fn }
}

func defaultOptions() options {
	return options{
		runner:    editor.NewExecRunner(),
		lookupEnv: os.Getenv,
		opener:    openURL,
		runPicker: runPicker,
	}
}

// App creates the CLI application.
func App(opts ...Option) *cli.App {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	app := &cli.App{
		Name:                 "bookit",
		Usage:                "Bookmarks manager",
		Version:              fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		Flags:                globalFlags(),
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			ViewCommand(),
			AddCommand(),
			EditCommand(),
			DeleteCommand(),
			ConfigCommand(),
			CompletionsCommand(),
			ImportCommand(),
			ExportCommand(),
			PickCommand(),
		},
		Before: func(c *cli.Context) error {
			s, err := newSession(c, o)
			if err != nil {
				return err
			}
			c.App.Metadata[sessionKey] = s
			return nil
		},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "configuration file to use",
			EnvVars: []string{"BOOKIT_CONFIG_PATH"},
			Value:   storage.DefaultConfigPath,
		},
		&cli.StringFlag{
			Name:    "settings",
			Usage:   "settings file to use",
			EnvVars: []string{"BOOKIT_SETTINGS_PATH"},
			Value:   storage.DefaultSettingsPath,
		},
	}
}

// session carries what every command needs once global flags are parsed.
type session struct {
	configPath string
	settings   *storage.Settings
	logger     *slog.Logger
	stdout     io.Writer
	opts       options
}

func newSession(c *cli.Context, o options) (*session, error) {
	configPath, err := storage.ExpandPath(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	settingsPath, err := storage.ExpandPath(c.String("settings"))
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}

	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(c.App.ErrWriter, settings.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.Debug("session", "config", configPath, "settings", settingsPath)

	return &session{
		configPath: configPath,
		settings:   settings,
		logger:     logger,
		stdout:     c.App.Writer,
		opts:       o,
	}, nil
}

// getSession retrieves the session from context.
func getSession(c *cli.Context) *session {
	if s, ok := c.App.Metadata[sessionKey].(*session); ok {
		return s
	}
	return nil
}

func (s *session) store() storage.Storage {
	return storage.NewYAMLStorage(s.configPath)
}

// runPicker runs the picker on the terminal. The picker draws on stderr so
// stdout stays clean for --print.
func runPicker(p picker.Picker) (picker.Picker, error) {
	program := tea.NewProgram(p, tea.WithOutput(os.Stderr))
	finalModel, err := program.Run()
	if err != nil {
		return p, fmt.Errorf("run picker: %w", err)
	}
	return finalModel.(picker.Picker), nil
}
