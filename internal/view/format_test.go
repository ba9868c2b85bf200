package view_test

import (
	"bytes"
	"errors"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/golden"

	"github.com/nikbrunner/bookit/internal/model"
	"github.com/nikbrunner/bookit/internal/view"
)

// testCollection creates a sample collection for snapshot tests.
func testCollection() *model.Collection {
	return &model.Collection{
		Bookmarks: map[string]model.Bookmark{
			"GitHub (mallardscript)": {
				URL:  "https://github.com/Nate-Wilkins/mallardscript",
				Tags: []string{"duckyscript", "security", "keyboard", "automation"},
			},
			"GitHub (bookit)": {
				URL:  "https://github.com/Nate-Wilkins/bookit",
				Tags: []string{"internet", "browser", "bookmarks"},
			},
			"Go": {
				URL:  "https://go.dev",
				Tags: []string{},
			},
		},
	}
}

func TestExtractHostname(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "https://github.com/a/b", want: "github.com"},
		{url: "https://github.com", want: "github.com"},
		{url: "https://github.com/", want: "github.com"},
		{url: "http://localhost:8080/path?q=1", want: "localhost:8080"},
		{url: "https://user@example.com/x", want: "user@example.com"},
		{url: "file:///etc/hosts", want: ""},
		{url: "ftp://files.example.org/pub", want: "files.example.org"},
		{url: "://no-scheme.example/x", want: "no-scheme.example"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := view.ExtractHostname(tt.url)
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestExtractHostname_Malformed(t *testing.T) {
	for _, url := range []string{"not-a-url", "", "github.com/a/b", "mailto:someone@example.com", "https:/x"} {
		t.Run(url, func(t *testing.T) {
			_, err := view.ExtractHostname(url)
			assert.Assert(t, errors.Is(err, model.ErrMalformedURL), "got %v", err)
			assert.Error(t, err, "Cannot parse bookmark entry '"+url+"' not a valid entry.")
		})
	}
}

func TestFormatLine(t *testing.T) {
	b := model.Bookmark{
		URL:  "https://github.com/Nate-Wilkins/bookit",
		Tags: []string{"internet", "browser", "bookmarks"},
	}

	got, err := view.FormatLine("GitHub (bookit)", b, false)
	assert.NilError(t, err)
	assert.Equal(t, got, "GitHub (bookit)\tinternet,browser,bookmarks\thttps://github.com/Nate-Wilkins/bookit\t\x00icon\x1fgithub.com")

	got, err = view.FormatLine("GitHub (bookit)", b, true)
	assert.NilError(t, err)
	assert.Equal(t, got, "GitHub (bookit)\tinternet,browser,bookmarks\thttps://github.com/Nate-Wilkins/bookit")
}

func TestFormatLine_NoTags(t *testing.T) {
	got, err := view.FormatLine("Go", model.Bookmark{URL: "https://go.dev"}, true)
	assert.NilError(t, err)
	assert.Equal(t, got, "Go\t\thttps://go.dev")
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer

	assert.NilError(t, view.Render(&buf, model.NewCollection(), view.Options{}))
	assert.Equal(t, buf.String(), "")
}

func TestRender_WithIcon(t *testing.T) {
	var buf bytes.Buffer

	assert.NilError(t, view.Render(&buf, testCollection(), view.Options{}))
	golden.Assert(t, buf.String(), "view_with_icon.golden")
}

func TestRender_ExcludeIcon(t *testing.T) {
	var buf bytes.Buffer

	assert.NilError(t, view.Render(&buf, testCollection(), view.Options{ExcludeIcon: true}))
	golden.Assert(t, buf.String(), "view_exclude_icon.golden")
}

// A single malformed url suppresses all output, including rows that
// sort before it.
func TestRender_FailFast(t *testing.T) {
	c := testCollection()
	c.Bookmarks["Zzz broken"] = model.Bookmark{URL: "not-a-url", Tags: []string{}}

	var buf bytes.Buffer
	err := view.Render(&buf, c, view.Options{})

	assert.Assert(t, errors.Is(err, model.ErrMalformedURL), "got %v", err)
	assert.Equal(t, buf.Len(), 0)
}
