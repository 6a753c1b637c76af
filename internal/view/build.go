package view

import (
	"fmt"
	"net/url"

	"github.com/dgallion1/gymscore/internal/results"
)

// Fixed texts shown in the container.
const (
	LoadingText        = "Loading results…"
	FailureText        = "Failed to load data."
	NoCompetitionsText = "No competitions yet."
	NoClassesText      = "No classes yet."
	NoTeamsText        = "No teams yet."
	NoScoresText       = "No scores yet."

	DefaultAllroundLabel = "Mångkamp"
)

var (
	AllroundHeader  = []string{"Rank", "Team", "FX", "TU", "TR", "Total", "Gap"}
	ApparatusHeader = []string{"Rank", "Team", "D", "E", "C", "HJ", "Score", "Gap"}
)

// Layout selects how a class's tables are arranged.
type Layout string

const (
	LayoutTabs     Layout = "tabs"     // one visible panel per class
	LayoutSections Layout = "sections" // all panels stacked
)

// ParseLayout validates a layout name.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case LayoutTabs, LayoutSections:
		return Layout(s), nil
	}
	return "", fmt.Errorf("unknown layout %q (want %q or %q)", s, LayoutTabs, LayoutSections)
}

// Options controls Build.
type Options struct {
	Layout        Layout
	Tabs          *TabState // initial tab per class; nil means all allround
	AllroundLabel string
}

// Loading is the container content while the document is on its way.
func Loading() *Tree {
	return &Tree{Children: []*Node{{Kind: KindParagraph, Class: "loading", Text: LoadingText}}}
}

// Failure is the container content after any fetch, decode or render error.
func Failure() *Tree {
	return &Tree{Children: []*Node{{Kind: KindParagraph, Class: "error", Text: FailureText}}}
}

// Build maps a document to its view. It does not modify doc.
func Build(doc *results.Document, opts Options) *Tree {
	if opts.Layout == "" {
		opts.Layout = LayoutTabs
	}
	if opts.AllroundLabel == "" {
		opts.AllroundLabel = DefaultAllroundLabel
	}

	tree := &Tree{}
	if doc == nil {
		doc = &results.Document{}
	}
	if doc.LastUpdated != "" {
		tree.Children = append(tree.Children, paragraph("updated", "Last updated: "+doc.LastUpdated))
	}
	if len(doc.Competitions) == 0 {
		tree.Children = append(tree.Children, paragraph("empty", NoCompetitionsText))
		return tree
	}
	for i, comp := range doc.Competitions {
		tree.Children = append(tree.Children, buildCompetition(i, comp, opts))
	}
	return tree
}

func buildCompetition(idx int, comp results.Competition, opts Options) *Node {
	section := &Node{
		Kind:  KindSection,
		ID:    fmt.Sprintf("comp-%d", idx+1),
		Class: "competition",
	}
	section.Children = append(section.Children, &Node{
		Kind:  KindHeading,
		Level: 2,
		Text:  comp.Name,
		Href:  safeHref(comp.URL),
	})
	if meta := MetaLine(comp.DateFrom, comp.DateTo, comp.Place); meta != "" {
		section.Children = append(section.Children, paragraph("meta", meta))
	}
	if len(comp.Classes) == 0 {
		section.Children = append(section.Children, paragraph("empty", NoClassesText))
		return section
	}
	for j, cls := range comp.Classes {
		section.Children = append(section.Children, buildClass(ClassID(idx, j), cls, opts))
	}
	return section
}

func buildClass(id string, cls results.ClassResult, opts Options) *Node {
	section := &Node{Kind: KindSection, ID: id, Class: "class"}
	section.Children = append(section.Children, &Node{Kind: KindHeading, Level: 3, Text: cls.Name})

	panels := make([]*Node, 0, len(Tabs))
	for _, t := range Tabs {
		panels = append(panels, buildPanel(id, t, cls, opts.AllroundLabel))
	}

	if opts.Layout == LayoutSections {
		for _, p := range panels {
			p.Active = true
		}
		section.Children = append(section.Children, panels...)
		return section
	}

	active := opts.Tabs.Active(id)
	for i, p := range panels {
		p.Active = Tab(i) == active
	}
	section.Children = append(section.Children, &Node{
		Kind:     KindTabs,
		ID:       id + "-tabs",
		Class:    "tabs",
		Children: panels,
	})
	return section
}

func buildPanel(classID string, t Tab, cls results.ClassResult, allroundLabel string) *Node {
	panel := &Node{
		Kind: KindPanel,
		ID:   classID + "-" + t.Key(),
		Key:  t.Key(),
	}

	a, ok := t.Apparatus()
	if !ok {
		panel.Text = allroundLabel
		if len(cls.Teams) == 0 {
			panel.Children = []*Node{paragraph("empty", NoTeamsText)}
			return panel
		}
		panel.Children = []*Node{{Kind: KindTable, Class: "allround", Table: allroundTable(cls.Teams)}}
		return panel
	}

	panel.Text = a.Code()
	rows := cls.Rows(a)
	if len(rows) == 0 {
		panel.Children = []*Node{paragraph("empty", NoScoresText)}
		return panel
	}
	panel.Children = []*Node{{Kind: KindTable, Class: "apparatus", Table: apparatusTable(rows)}}
	return panel
}

func allroundTable(teams []results.TeamAllround) *Table {
	tbl := &Table{Header: AllroundHeader, Rows: make([][]string, 0, len(teams))}
	for _, t := range teams {
		tbl.Rows = append(tbl.Rows, []string{
			t.Rank.String(),
			t.Name.String(),
			FormatScore(t.Score(results.FX)),
			FormatScore(t.Score(results.TU)),
			FormatScore(t.Score(results.TR)),
			FormatScore(t.Total),
			FormatScore(t.Gap),
		})
	}
	return tbl
}

func apparatusTable(rows []results.ApparatusRow) *Table {
	tbl := &Table{Header: ApparatusHeader, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		tbl.Rows = append(tbl.Rows, []string{
			r.Rank.String(),
			r.Name.String(),
			FormatScore(r.D),
			FormatScore(r.E),
			FormatScore(r.C),
			FormatScore(r.HJ),
			FormatScore(r.Score),
			FormatScore(r.Gap),
		})
	}
	return tbl
}

func paragraph(class, text string) *Node {
	return &Node{Kind: KindParagraph, Class: class, Text: text}
}

// safeHref keeps absolute http(s) links only.
func safeHref(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.String()
}
