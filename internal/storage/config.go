package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "BOOKIT_"

// DefaultEditCommand opens the store in $EDITOR and searches for the
// bookmark name. $EDITOR is assumed to understand vim's "+/pattern".
const DefaultEditCommand = `$EDITOR "$BOOKIT_CONFIG_PATH" "+/$VIM_BOOKIT_BOOKMARK_NAME"`

// Settings holds application settings. They live apart from the bookmark
// store so the store stays a plain bookmarks file.
type Settings struct {
	EditCommand string `koanf:"edit_command"`
	LogLevel    string `koanf:"log_level"`
	Suggestions int    `koanf:"suggestions"` // max "did you mean" names, 0 (default) disables
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		EditCommand: DefaultEditCommand,
		LogLevel:    "error",
		Suggestions: 0,
	}
}

// LoadSettings reads settings from defaults, then the YAML file at path (if
// it exists), then BOOKIT_* environment variables. BOOKIT_EDIT_COMMAND maps
// to edit_command.
func LoadSettings(path string) (*Settings, error) {
	k := koanf.New(".")

	defaults := DefaultSettings()
	if err := k.Load(defaultsProvider{
		"edit_command": defaults.EditCommand,
		"log_level":    defaults.LogLevel,
		"suggestions":  defaults.Suggestions,
	}, nil); err != nil {
		return nil, fmt.Errorf("load default settings: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load settings file %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat settings file %s: %w", path, err)
		}
	}

	envTransformer := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformer), nil); err != nil {
		return nil, fmt.Errorf("load settings env: %w", err)
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	// An empty override means "use the default", not "run nothing".
	if strings.TrimSpace(settings.EditCommand) == "" {
		settings.EditCommand = defaults.EditCommand
	}
	if strings.TrimSpace(settings.LogLevel) == "" {
		settings.LogLevel = defaults.LogLevel
	}

	return &settings, nil
}

// DefaultSettingsPath is the settings path used when none is given.
const DefaultSettingsPath = "~/.config/bookit/settings.yaml"

// defaultsProvider loads settings from a map.
type defaultsProvider map[string]any

func (p defaultsProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("defaults provider does not support ReadBytes")
}

func (p defaultsProvider) Read() (map[string]any, error) {
	return p, nil
}
