package model

// Bookmark is the record stored under a bookmark name.
type Bookmark struct {
	URL  string
	Tags []string // order preserved, duplicates allowed
}

// Entry pairs a bookmark with the name it is stored under.
type Entry struct {
	Name string
	Bookmark
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	URL  string
	Tags []string
}

// NewBookmark creates a Bookmark that owns a copy of the given tags.
func NewBookmark(params NewBookmarkParams) Bookmark {
	tags := make([]string, len(params.Tags))
	copy(tags, params.Tags)

	return Bookmark{
		URL:  params.URL,
		Tags: tags,
	}
}
