package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/nikbrunner/bookit/internal/model"
)

const documentStart = "---\n"

// document mirrors the on-disk schema. Pointers tell a missing key apart
// from an empty value.
type document struct {
	Bookmarks *map[string]record `yaml:"bookmarks"`
}

type record struct {
	URL  *text   `yaml:"url"`
	Tags *[]text `yaml:"tags"`
}

// text is a scalar that must be a YAML string. Numbers and booleans are
// rejected rather than converted.
type text string

func (t *text) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return fmt.Errorf("line %d: expected a string, got %s", n.Line, n.ShortTag())
	}
	*t = text(n.Value)
	return nil
}

// Decode parses store content. Unknown keys are rejected.
func Decode(data []byte) (*model.Collection, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		if !emptyDocument(&extra) {
			return nil, fmt.Errorf("line %d: unexpected second document", extra.Line)
		}
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}

	if doc.Bookmarks == nil {
		return nil, errors.New("missing top-level 'bookmarks' mapping")
	}

	c := model.NewCollection()
	for name, r := range *doc.Bookmarks {
		if name == "" {
			return nil, errors.New("bookmark name must not be empty")
		}
		if r.URL == nil || *r.URL == "" {
			return nil, fmt.Errorf("bookmark '%s' has no url", name)
		}
		if r.Tags == nil {
			return nil, fmt.Errorf("bookmark '%s' has no tags", name)
		}
		tags := make([]string, len(*r.Tags))
		for i, tag := range *r.Tags {
			tags[i] = string(tag)
		}
		c.Bookmarks[name] = model.NewBookmark(model.NewBookmarkParams{
			URL:  string(*r.URL),
			Tags: tags,
		})
	}

	return c, nil
}

// Encode serializes a collection. Output is deterministic: names are sorted,
// urls are double-quoted and the document starts with "---".
func Encode(c *model.Collection) ([]byte, error) {
	bookmarks := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if c.Len() == 0 {
		bookmarks.Style = yaml.FlowStyle
	}

	for _, e := range c.Entries() {
		tags := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(e.Tags) == 0 {
			tags.Style = yaml.FlowStyle
		}
		for _, tag := range e.Tags {
			tags.Content = append(tags.Content, stringNode(tag, 0))
		}

		fields := &yaml.Node{
			Kind: yaml.MappingNode,
			Tag:  "!!map",
			Content: []*yaml.Node{
				stringNode("url", 0),
				stringNode(e.URL, yaml.DoubleQuotedStyle),
				stringNode("tags", 0),
				tags,
			},
		}
		bookmarks.Content = append(bookmarks.Content, stringNode(e.Name, 0), fields)
	}

	root := &yaml.Node{
		Kind:    yaml.MappingNode,
		Tag:     "!!map",
		Content: []*yaml.Node{stringNode("bookmarks", 0), bookmarks},
	}

	var buf bytes.Buffer
	buf.WriteString(documentStart)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// emptyDocument reports whether n is a document with no content, as left by
// a trailing "---".
func emptyDocument(n *yaml.Node) bool {
	if n.Kind == 0 || len(n.Content) == 0 {
		return true
	}
	return len(n.Content) == 1 && n.Content[0].ShortTag() == "!!null" && n.Content[0].Value == ""
}

func stringNode(value string, style yaml.Style) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: value,
		Style: style,
	}
}
