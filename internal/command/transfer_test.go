package command

import (
	"os"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"

	"github.com/nikbrunner/bookit/internal/storage"
)

const browserExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3>Development</H3>
    <DL><p>
        <DT><A HREF="https://go.dev">Go</A>
    </DL><p>
    <DT><A HREF="https://github.com/Nate-Wilkins/bookit">GitHub (bookit)</A>
</DL><p>
`

func TestImport(t *testing.T) {
	h := newHarness(t, twoBookmarks)
	fs.Apply(t, h.dir, fs.WithFile("bookmarks.html", browserExport))
	file := h.dir.Join("bookmarks.html")

	assert.NilError(t, h.run("import", file))
	assert.Equal(t, h.stdout.String(), "Imported 1 bookmarks (0 replaced, 1 skipped).\n")

	c, err := storage.NewYAMLStorage(h.config).Load()
	assert.NilError(t, err)
	assert.Equal(t, c.Len(), 3)
	b, _ := c.Get("Go")
	assert.DeepEqual(t, b.Tags, []string{"Development"})

	// Existing bookmark kept its tags
	b, _ = c.Get("GitHub (bookit)")
	assert.DeepEqual(t, b.Tags, []string{"internet", "browser", "bookmarks"})
}

func TestImport_Force(t *testing.T) {
	h := newHarness(t, twoBookmarks)
	fs.Apply(t, h.dir, fs.WithFile("bookmarks.html", browserExport))

	assert.NilError(t, h.run("import", "--force", h.dir.Join("bookmarks.html")))
	assert.Equal(t, h.stdout.String(), "Imported 2 bookmarks (1 replaced, 0 skipped).\n")

	c, err := storage.NewYAMLStorage(h.config).Load()
	assert.NilError(t, err)
	b, _ := c.Get("GitHub (bookit)")
	assert.DeepEqual(t, b.Tags, []string{})
}

func TestImport_Errors(t *testing.T) {
	h := newHarness(t, twoBookmarks)

	assert.ErrorContains(t, h.run("import"), "Usage: bookit import <file.html>")
	assert.ErrorContains(t, h.run("import", h.dir.Join("missing.html")), "Cannot open")
	assert.Equal(t, h.storeContent(), twoBookmarks)
}

func TestExport(t *testing.T) {
	h := newHarness(t, twoBookmarks)
	out := h.dir.Join("export.html")

	assert.NilError(t, h.run("export", out))
	assert.Equal(t, h.stdout.String(), "Exported 2 bookmarks to "+out+"\n")

	data, err := os.ReadFile(out)
	assert.NilError(t, err)
	html := string(data)
	assert.Assert(t, strings.Contains(html,
		`<DT><A HREF="https://github.com/Nate-Wilkins/bookit" TAGS="internet,browser,bookmarks">GitHub (bookit)</A>`))
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newHarness(t, twoBookmarks)
	out := src.dir.Join("export.html")
	assert.NilError(t, src.run("export", out))

	dst := newHarness(t, "---\nbookmarks: {}\n")
	assert.NilError(t, dst.run("import", out))
	assert.Equal(t, dst.stdout.String(), "Imported 2 bookmarks (0 replaced, 0 skipped).\n")
	assert.Equal(t, dst.storeContent(), twoBookmarks)
}
