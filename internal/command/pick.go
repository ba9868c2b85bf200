package command

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/nikbrunner/bookit/internal/model"
	"github.com/nikbrunner/bookit/internal/picker"
	"github.com/nikbrunner/bookit/internal/search"
)

// PickCommand returns the pick command.
func PickCommand() *cli.Command {
	return &cli.Command{
		Name:      "pick",
		Usage:     "choose a bookmark interactively and open it",
		ArgsUsage: "[QUERY]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "print",
				Usage: "print the url instead of opening it",
			},
		},
		Action: pickBookmark,
	}
}

func pickBookmark(c *cli.Context) error {
	s := getSession(c)

	coll, err := s.store().Load()
	if err != nil {
		return err
	}

	entries := coll.Entries()
	title := "Bookmarks"

	// Narrow down by fuzzy query, best match first
	if query := c.Args().First(); query != "" {
		results := search.FuzzySearchNames(coll, query)
		entries = make([]model.Entry, 0, len(results))
		for _, r := range results {
			b, _ := coll.Get(r.Name)
			entries = append(entries, model.Entry{Name: r.Name, Bookmark: b})
		}
		title = fmt.Sprintf("Search: %s", query)
	}

	if len(entries) == 0 {
		fmt.Fprintln(s.stdout, "No bookmarks found.")
		return nil
	}

	selected := entries[0]
	if len(entries) > 1 {
		final, err := s.opts.runPicker(picker.New(entries, title))
		if err != nil {
			return err
		}
		if final.Cancelled() {
			s.logger.Debug("pick cancelled")
			return nil
		}
		entry, ok := final.SelectedEntry()
		if !ok {
			return nil
		}
		selected = entry
	}

	if c.Bool("print") {
		fmt.Fprintln(s.stdout, selected.URL)
		return nil
	}

	s.logger.Info("opening bookmark", "name", selected.Name, "url", selected.URL)
	return s.opts.opener(selected.URL)
}

// openURL opens a URL in the default browser.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("cannot open urls on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}
