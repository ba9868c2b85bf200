package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nikbrunner/bookit/internal/model"
	"github.com/nikbrunner/bookit/internal/storage"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "configuration",
		Subcommands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "creates a configuration file",
				ArgsUsage: "[PATH]",
				Action:    configCreate,
			},
		},
	}
}

// configCreate writes an empty store at PATH, or at --config when no path
// is given. An existing file is never touched.
func configCreate(c *cli.Context) error {
	s := getSession(c)

	path := s.configPath
	if c.Args().Present() {
		expanded, err := storage.ExpandPath(c.Args().First())
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
		path = expanded
	}

	if _, err := os.Lstat(path); err == nil {
		return model.Errorf(model.ErrAlreadyExists, "Configuration file already exists at '%s'.", path)
	}

	fmt.Fprintf(s.stdout, "Creating configuration at '%s'.\n", path)

	if err := storage.NewYAMLStorage(path).Create(); err != nil {
		return err
	}

	fmt.Fprintln(s.stdout, "Created configuration.")
	return nil
}
