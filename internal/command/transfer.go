package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nikbrunner/bookit/internal/exporter"
	"github.com/nikbrunner/bookit/internal/importer"
	"github.com/nikbrunner/bookit/internal/model"
	"github.com/nikbrunner/bookit/internal/storage"
)

// ImportCommand returns the import command.
func ImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "import bookmarks from a browser HTML export",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "replace bookmarks that already exist",
			},
		},
		Action: importBookmarks,
	}
}

// ExportCommand returns the export command.
func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "export bookmarks to browser HTML",
		ArgsUsage: "[PATH]",
		Action:    exportBookmarks,
	}
}

func importBookmarks(c *cli.Context) error {
	s := getSession(c)

	if !c.Args().Present() {
		return model.Errorf(model.ErrInvalid, "Usage: %s import <file.html>", c.App.Name)
	}
	filePath := c.Args().First()

	store := s.store()
	coll, err := store.Load()
	if err != nil {
		return err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return model.Errorf(model.ErrIO, "Cannot open '%s': %v.", filePath, err).Wrap(err)
	}
	defer file.Close()

	entries, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		return model.Errorf(model.ErrParse, "Cannot parse '%s': %v.", filePath, err).Wrap(err)
	}

	added, replaced, skipped := coll.ImportMerge(entries, c.Bool("force"))
	s.logger.Info("import merged", "file", filePath, "links", len(entries),
		"added", added, "replaced", replaced, "skipped", skipped)

	if err := store.Save(coll); err != nil {
		return err
	}

	fmt.Fprintf(s.stdout, "Imported %d bookmarks (%d replaced, %d skipped).\n", added+replaced, replaced, skipped)
	return nil
}

func exportBookmarks(c *cli.Context) error {
	s := getSession(c)

	// Determine output path
	outputPath := c.Args().First()
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			return fmt.Errorf("default export path: %w", err)
		}
	} else {
		expanded, err := storage.ExpandPath(outputPath)
		if err != nil {
			return fmt.Errorf("resolve export path: %w", err)
		}
		outputPath = expanded
	}

	coll, err := s.store().Load()
	if err != nil {
		return err
	}

	html := exporter.ExportHTML(coll)

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		return model.Errorf(model.ErrIO, "Cannot write export at '%s': %v.", outputPath, err).Wrap(err)
	}

	fmt.Fprintf(s.stdout, "Exported %d bookmarks to %s\n", coll.Len(), outputPath)
	return nil
}
