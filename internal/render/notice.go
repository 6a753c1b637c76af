package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Notice converts a Markdown notice into HTML nodes. Raw HTML in the source
// is dropped by goldmark's default renderer.
func Notice(src string) ([]*html.Node, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return nil, fmt.Errorf("convert notice: %w", err)
	}

	nodes, err := html.ParseFragment(&buf, element(atom.Div))
	if err != nil {
		return nil, fmt.Errorf("parse notice: %w", err)
	}
	return nodes, nil
}
