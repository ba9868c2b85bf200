package importer

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/nikbrunner/bookit/internal/model"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML. Each link becomes an
// entry named after its text. The names of the folders enclosing a link,
// outermost first, become its tags, followed by the link's own TAGS
// attribute.
func ParseHTMLBookmarks(r io.Reader) ([]model.Entry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var entries []model.Entry

	// Track current folder stack for hierarchy
	var folderStack []string
	var pendingFolder *string // folder waiting to be pushed on next DL

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder definition - get name from text content
				if name := getTextContent(n); name != "" {
					pendingFolder = &name
				}
				return // Don't recurse into H3

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					// Skip bookmarks without URL
					return
				}

				name := getTextContent(n)
				if name == "" {
					name = href // fallback to URL as name
				}

				tags := make([]string, 0, len(folderStack))
				tags = append(tags, folderStack...)
				tags = append(tags, splitTags(getAttr(n, "tags"))...)

				entries = append(entries, model.Entry{
					Name:     name,
					Bookmark: model.NewBookmark(model.NewBookmarkParams{URL: href, Tags: tags}),
				})
				return // Don't recurse into A

			case "dl":
				// Definition list - marks folder contents
				pushedFolder := false
				if pendingFolder != nil {
					folderStack = append(folderStack, *pendingFolder)
					pendingFolder = nil
					pushedFolder = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder && len(folderStack) > 0 {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return // Don't recurse further, we handled children
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return entries, nil
}

// splitTags splits a comma-separated TAGS attribute, dropping blanks.
func splitTags(attr string) []string {
	var tags []string
	for _, tag := range strings.Split(attr, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
