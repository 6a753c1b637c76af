package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dgallion1/gymscore/internal/view"
)

// Markdown writes the tree as Markdown: headings, paragraphs and pipe
// tables. Tab panels become level-4 headings, so both layouts export alike.
func Markdown(w io.Writer, tree *view.Tree) error {
	var blocks []string
	var walk func(n *view.Node)
	walk = func(n *view.Node) {
		switch n.Kind {
		case view.KindHeading:
			title := n.Text
			if n.Href != "" {
				title = fmt.Sprintf("[%s](%s)", n.Text, n.Href)
			}
			blocks = append(blocks, strings.Repeat("#", n.Level)+" "+title)
		case view.KindParagraph:
			blocks = append(blocks, n.Text)
		case view.KindTable:
			blocks = append(blocks, markdownTable(n.Table))
		case view.KindPanel:
			blocks = append(blocks, "#### "+n.Text)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if tree != nil {
		for _, n := range tree.Children {
			walk(n)
		}
	}

	out := strings.Join(blocks, "\n\n")
	if out != "" {
		out += "\n"
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

func markdownTable(t *view.Table) string {
	if t == nil {
		return ""
	}
	tw := table.NewWriter()
	header := make(table.Row, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	tw.AppendHeader(header)
	for _, r := range t.Rows {
		row := make(table.Row, len(r))
		for i, c := range r {
			row[i] = c
		}
		tw.AppendRow(row)
	}
	return tw.RenderMarkdown()
}
