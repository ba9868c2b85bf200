package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/nikbrunner/bookit/internal/editor"
	"github.com/nikbrunner/bookit/internal/model"
	"github.com/nikbrunner/bookit/internal/search"
	"github.com/nikbrunner/bookit/internal/view"
)

func nameFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "name",
		Aliases:  []string{"n"},
		Usage:    "name of the bookmark",
		Required: true,
	}
}

// ViewCommand returns the view command.
func ViewCommand() *cli.Command {
	return &cli.Command{
		Name:  "view",
		Usage: "view bookmarks",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "exclude-icon",
				Usage: "omit the icon column",
			},
		},
		Action: viewBookmarks,
	}
}

// AddCommand returns the add command.
func AddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "add a new bookmark",
		ArgsUsage: "[TAG...]",
		Flags: []cli.Flag{
			nameFlag(),
			&cli.StringFlag{
				Name:     "url",
				Aliases:  []string{"u"},
				Usage:    "url of the bookmark",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:     "tags",
				Aliases:  []string{"t"},
				Usage:    "tags of the bookmark (comma separated; values after the last flag are tags too)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "override a bookmark if one already exists",
			},
		},
		Action: addBookmark,
	}
}

// EditCommand returns the edit command.
func EditCommand() *cli.Command {
	return &cli.Command{
		Name:   "edit",
		Usage:  "edit a bookmark",
		Flags:  []cli.Flag{nameFlag()},
		Action: editBookmark,
	}
}

// DeleteCommand returns the delete command.
func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:   "delete",
		Usage:  "delete a bookmark",
		Flags:  []cli.Flag{nameFlag()},
		Action: deleteBookmark,
	}
}

func viewBookmarks(c *cli.Context) error {
	s := getSession(c)

	coll, err := s.store().Load()
	if err != nil {
		return err
	}

	return view.Render(s.stdout, coll, view.Options{ExcludeIcon: c.Bool("exclude-icon")})
}

func addBookmark(c *cli.Context) error {
	s := getSession(c)
	store := s.store()

	tags, err := tagsFrom(c)
	if err != nil {
		return err
	}

	coll, err := store.Load()
	if err != nil {
		return err
	}

	entry, err := coll.Add(model.AddParams{
		Name:  c.String("name"),
		URL:   c.String("url"),
		Tags:  tags,
		Force: c.Bool("force"),
	})
	if err != nil {
		return err
	}

	if err := store.Save(coll); err != nil {
		return err
	}
	s.logger.Debug("bookmark added", "name", entry.Name, "tags", entry.Tags)

	fmt.Fprintf(s.stdout, "Added bookmark '%s\t%s'.\n", entry.Name, entry.URL)
	return nil
}

// tagsFrom collects --tags values followed by the positional arguments, so
// "--tags a b c" keeps all three. Flag parsing stops at the first positional
// argument, so a flag seen there was misplaced.
func tagsFrom(c *cli.Context) ([]string, error) {
	tags := c.StringSlice("tags")
	for _, arg := range c.Args().Slice() {
		if strings.HasPrefix(arg, "-") {
			return nil, model.Errorf(model.ErrInvalid, "Unexpected flag '%s' after tags. Put flags before the tag list.", arg)
		}
		for _, tag := range strings.Split(arg, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags, nil
}

func editBookmark(c *cli.Context) error {
	s := getSession(c)
	name := c.String("name")

	coll, err := s.store().Load()
	if err != nil {
		return err
	}

	if _, err := coll.Edit(name); err != nil {
		return s.withSuggestions(err, coll, name)
	}

	path, err := editor.CanonicalPath(s.configPath)
	if err != nil {
		return model.Errorf(model.ErrIO, "Cannot resolve config at '%s': %v.", s.configPath, err).Wrap(err)
	}

	inv := editor.Invocation{
		Template:   s.settings.EditCommand,
		ConfigPath: path,
		Name:       name,
		LookupEnv:  s.opts.lookupEnv,
	}
	if err := editor.Edit(s.opts.runner, inv, s.logger); err != nil {
		return err
	}

	fmt.Fprintf(s.stdout, "Edited bookmark '%s'.\n", name)
	return nil
}

func deleteBookmark(c *cli.Context) error {
	s := getSession(c)
	store := s.store()
	name := c.String("name")

	coll, err := store.Load()
	if err != nil {
		return err
	}

	entry, err := coll.Delete(name)
	if err != nil {
		return s.withSuggestions(err, coll, name)
	}

	if err := store.Save(coll); err != nil {
		return err
	}

	fmt.Fprintf(s.stdout, "Deleted bookmark '%s'.\n", entry.Name)
	return nil
}

// withSuggestions appends a "Did you mean" line to not-found errors when
// the collection holds similar names.
func (s *session) withSuggestions(err error, coll *model.Collection, name string) error {
	var merr *model.Error
	if !errors.As(err, &merr) || !errors.Is(err, model.ErrNotFound) {
		return err
	}

	names := search.Suggest(coll, name, s.settings.Suggestions)
	if len(names) == 0 {
		return err
	}

	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}

	return &model.Error{
		Kind:    model.ErrNotFound,
		Message: fmt.Sprintf("%s\nDid you mean %s?", merr.Message, strings.Join(quoted, ", ")),
		Err:     err,
	}
}
