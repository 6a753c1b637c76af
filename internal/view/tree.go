// Package view turns a results document into a renderer-independent tree of
// sections, headings, paragraphs, tables and tab panels.
package view

// Kind tags the variant a Node holds.
type Kind int

const (
	KindSection   Kind = iota // container for Children
	KindHeading               // Level, Text, optional Href
	KindParagraph             // Text
	KindTable                 // Table
	KindTabs                  // Children are KindPanel, exactly one Active
	KindPanel                 // Key, Text (label), Active, Children
)

func (k Kind) String() string {
	switch k {
	case KindSection:
		return "section"
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindTable:
		return "table"
	case KindTabs:
		return "tabs"
	case KindPanel:
		return "panel"
	}
	return "unknown"
}

// Tree is the content of the results container.
type Tree struct {
	Children []*Node
}

// Node is one element of the view.
type Node struct {
	Kind   Kind
	ID     string // element id, unique within the page when set
	Class  string // presentation hint, e.g. "competition", "meta", "empty"
	Level  int    // heading level
	Text   string // heading text, paragraph text or panel label
	Href   string // heading link target
	Key    string // panel key: "allround", "fx", "tu", "tr"
	Active bool   // panel visibility

	Table    *Table
	Children []*Node
}

// Table is a header row plus string cells, already formatted for display.
type Table struct {
	Header []string
	Rows   [][]string
}

// Walk calls fn for every node in depth-first document order.
func (t *Tree) Walk(fn func(*Node)) {
	var walk func([]*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			fn(n)
			walk(n.Children)
		}
	}
	walk(t.Children)
}
