package model

import "sort"

// Collection holds every bookmark in one store, keyed by name.
type Collection struct {
	Bookmarks map[string]Bookmark
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection {
	return &Collection{
		Bookmarks: map[string]Bookmark{},
	}
}

// Len returns the number of bookmarks.
func (c *Collection) Len() int {
	return len(c.Bookmarks)
}

// Names returns all bookmark names in lexicographic order.
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.Bookmarks))
	for name := range c.Bookmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns all bookmarks ordered by name.
func (c *Collection) Entries() []Entry {
	names := c.Names()
	entries := make([]Entry, len(names))
	for i, name := range names {
		entries[i] = Entry{Name: name, Bookmark: c.Bookmarks[name]}
	}
	return entries
}

// Get finds a bookmark by name.
func (c *Collection) Get(name string) (Bookmark, bool) {
	b, ok := c.Bookmarks[name]
	return b, ok
}

// AddParams holds parameters for Collection.Add.
type AddParams struct {
	Name  string
	URL   string
	Tags  []string
	Force bool // replace an existing bookmark with the same name
}

// Add inserts a bookmark. An existing bookmark with the same name is only
// replaced when Force is set, and then fully: tags are not merged.
func (c *Collection) Add(params AddParams) (Entry, error) {
	if params.Name == "" {
		return Entry{}, Errorf(ErrInvalid, "Bookmark name must not be empty.")
	}
	if params.URL == "" {
		return Entry{}, Errorf(ErrInvalid, "Bookmark '%s' must have a url.", params.Name)
	}

	if _, exists := c.Bookmarks[params.Name]; exists {
		if !params.Force {
			return Entry{}, Errorf(ErrAlreadyExists,
				"Bookmark already exists with name '%s'. Use '--force' to override.", params.Name)
		}
		delete(c.Bookmarks, params.Name)
	}

	if c.Bookmarks == nil {
		c.Bookmarks = map[string]Bookmark{}
	}
	b := NewBookmark(NewBookmarkParams{URL: params.URL, Tags: params.Tags})
	c.Bookmarks[params.Name] = b

	return Entry{Name: params.Name, Bookmark: b}, nil
}

// Edit checks that a bookmark exists so it can be handed to an editor.
// The collection is left untouched.
func (c *Collection) Edit(name string) (Entry, error) {
	b, ok := c.Bookmarks[name]
	if !ok {
		return Entry{}, Errorf(ErrNotFound, "Bookmark '%s' not found.", name)
	}
	return Entry{Name: name, Bookmark: b}, nil
}

// Delete removes exactly one bookmark and returns it.
func (c *Collection) Delete(name string) (Entry, error) {
	b, ok := c.Bookmarks[name]
	if !ok {
		return Entry{}, Errorf(ErrNotFound, "Bookmark doesn't exist with name '%s'.", name)
	}
	delete(c.Bookmarks, name)
	return Entry{Name: name, Bookmark: b}, nil
}

// ImportMerge adds imported entries. Names already taken are skipped unless
// force is set, in which case they are replaced. Entries with an empty name
// or url are skipped, and so are repeats of a name earlier in entries.
func (c *Collection) ImportMerge(entries []Entry, force bool) (added, replaced, skipped int) {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		_, exists := c.Bookmarks[e.Name]
		if seen[e.Name] || (exists && !force) {
			skipped++
			continue
		}

		if _, err := c.Add(AddParams{Name: e.Name, URL: e.URL, Tags: e.Tags, Force: force}); err != nil {
			skipped++
			continue
		}
		seen[e.Name] = true

		if exists {
			replaced++
		} else {
			added++
		}
	}
	return added, replaced, skipped
}
