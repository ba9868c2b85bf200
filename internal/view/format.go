// Package view formats bookmarks as tab-separated lines for launchers and
// fuzzy finders.
package view

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/nikbrunner/bookit/internal/model"
)

// IconMarker precedes the hostname in the last column. Rofi reads
// "\x00icon\x1f<name>" as the row's icon.
const IconMarker = "\x00icon\x1f"

var hostnamePattern = regexp.MustCompile(`^([^:]*://)([^/]*)/?.*$`)

// Options controls line formatting.
type Options struct {
	ExcludeIcon bool
}

// ExtractHostname returns the host part of a "scheme://host/..." url.
func ExtractHostname(url string) (string, error) {
	m := hostnamePattern.FindStringSubmatch(url)
	if m == nil {
		return "", model.Errorf(model.ErrMalformedURL, "Cannot parse bookmark entry '%s' not a valid entry.", url)
	}
	return m[2], nil
}

// FormatLine renders one bookmark as
// name TAB tags TAB url [TAB IconMarker hostname].
func FormatLine(name string, b model.Bookmark, excludeIcon bool) (string, error) {
	hostname, err := ExtractHostname(b.URL)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('\t')
	sb.WriteString(strings.Join(b.Tags, ","))
	sb.WriteByte('\t')
	sb.WriteString(b.URL)
	if !excludeIcon {
		sb.WriteByte('\t')
		sb.WriteString(IconMarker)
		sb.WriteString(hostname)
	}
	return sb.String(), nil
}

// Lines formats every bookmark in name order. The first malformed url
// aborts the whole view.
func Lines(c *model.Collection, opts Options) ([]string, error) {
	entries := c.Entries()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line, err := FormatLine(e.Name, e.Bookmark, opts.ExcludeIcon)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Render writes all lines to w, or nothing if any line fails.
func Render(w io.Writer, c *model.Collection, opts Options) error {
	lines, err := Lines(c, opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	_, err = w.Write(buf.Bytes())
	return err
}
