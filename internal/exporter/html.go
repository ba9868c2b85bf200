package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/bookit/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the collection to Netscape bookmark HTML format.
// Bookmarks are written as one flat list in name order; tags go to the
// TAGS attribute that browsers and the importer understand.
func ExportHTML(c *model.Collection) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, e := range c.Entries() {
		writeEntry(&b, e)
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeEntry(b *strings.Builder, e model.Entry) {
	const prefix = "    "

	if len(e.Tags) == 0 {
		fmt.Fprintf(b, "%s<DT><A HREF=\"%s\">%s</A>\n",
			prefix,
			html.EscapeString(e.URL),
			html.EscapeString(e.Name),
		)
		return
	}

	fmt.Fprintf(b, "%s<DT><A HREF=\"%s\" TAGS=\"%s\">%s</A>\n",
		prefix,
		html.EscapeString(e.URL),
		html.EscapeString(strings.Join(e.Tags, ",")),
		html.EscapeString(e.Name),
	)
}
