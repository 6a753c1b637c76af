// Package render turns a view.Tree into HTML or Markdown.
package render

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/gymscore/internal/view"
)

// HTML writes the tree as a sequence of HTML fragments, suitable as the
// inner HTML of the results container.
func HTML(w io.Writer, tree *view.Tree) error {
	for _, n := range Nodes(tree) {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	}
	return nil
}

// Nodes converts the tree into detached HTML nodes.
func Nodes(tree *view.Tree) []*html.Node {
	if tree == nil {
		return nil
	}
	out := make([]*html.Node, 0, len(tree.Children))
	for _, n := range tree.Children {
		out = append(out, convert(n))
	}
	return out
}

func convert(n *view.Node) *html.Node {
	switch n.Kind {
	case view.KindHeading:
		h := element(headingAtom(n.Level), idAttrs(n)...)
		if n.Href != "" {
			a := element(atom.A, attr("href", n.Href))
			a.AppendChild(textNode(n.Text))
			h.AppendChild(a)
		} else {
			h.AppendChild(textNode(n.Text))
		}
		return h
	case view.KindParagraph:
		p := element(atom.P, idAttrs(n)...)
		p.AppendChild(textNode(n.Text))
		return p
	case view.KindTable:
		return tableNode(n)
	case view.KindTabs:
		return tabsNode(n)
	case view.KindPanel:
		return panelNode(n)
	}

	sec := element(atom.Section, idAttrs(n)...)
	appendChildren(sec, n.Children)
	return sec
}

func tableNode(n *view.Node) *html.Node {
	tbl := element(atom.Table, idAttrs(n)...)
	if n.Table == nil {
		return tbl
	}

	thead := element(atom.Thead)
	head := element(atom.Tr)
	for _, h := range n.Table.Header {
		th := element(atom.Th, attr("scope", "col"))
		th.AppendChild(textNode(h))
		head.AppendChild(th)
	}
	thead.AppendChild(head)
	tbl.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, row := range n.Table.Rows {
		tr := element(atom.Tr)
		for _, cell := range row {
			td := element(atom.Td)
			td.AppendChild(textNode(cell))
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	tbl.AppendChild(tbody)
	return tbl
}

// tabsNode renders a radio group per class followed by its panels. The page
// stylesheet shows the panel whose radio is checked, so switching tabs needs
// no script and the radio group name keeps classes independent.
func tabsNode(n *view.Node) *html.Node {
	div := element(atom.Div, attr("id", n.ID), attr("class", "tabs"))
	for _, p := range n.Children {
		radio := element(atom.Input,
			attr("type", "radio"),
			attr("class", "tab-input"),
			attr("name", n.ID),
			attr("id", p.ID+"-tab"),
			attr("value", p.Key),
		)
		if p.Active {
			radio.Attr = append(radio.Attr, attr("checked", ""))
		}
		label := element(atom.Label, attr("class", "tab-label"), attr("for", p.ID+"-tab"))
		label.AppendChild(textNode(p.Text))
		div.AppendChild(radio)
		div.AppendChild(label)
	}
	for _, p := range n.Children {
		class := "tab-panel"
		if p.Active {
			class += " active"
		}
		pd := element(atom.Div, attr("id", p.ID), attr("class", class), attr("data-tab", p.Key))
		if !p.Active {
			pd.Attr = append(pd.Attr, attr("hidden", ""))
		}
		appendChildren(pd, p.Children)
		div.AppendChild(pd)
	}
	return div
}

// panelNode renders a stand-alone panel of the sections layout.
func panelNode(n *view.Node) *html.Node {
	sec := element(atom.Section, attr("id", n.ID), attr("class", "panel"), attr("data-tab", n.Key))
	h := element(atom.H4)
	h.AppendChild(textNode(n.Text))
	sec.AppendChild(h)
	appendChildren(sec, n.Children)
	return sec
}

func appendChildren(parent *html.Node, children []*view.Node) {
	for _, c := range children {
		parent.AppendChild(convert(c))
	}
}

func headingAtom(level int) atom.Atom {
	switch level {
	case 1:
		return atom.H1
	case 2:
		return atom.H2
	case 3:
		return atom.H3
	case 4:
		return atom.H4
	case 5:
		return atom.H5
	}
	return atom.H6
}

func idAttrs(n *view.Node) []html.Attribute {
	var attrs []html.Attribute
	if n.ID != "" {
		attrs = append(attrs, attr("id", n.ID))
	}
	if n.Class != "" {
		attrs = append(attrs, attr("class", n.Class))
	}
	return attrs
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a, Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}
