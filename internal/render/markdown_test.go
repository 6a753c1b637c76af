package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgallion1/gymscore/internal/view"
)

func TestMarkdown_ExportsHeadingsAndTables(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown(&buf, view.Build(sampleDocument(), view.Options{Layout: view.LayoutTabs})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"## [Regional Cup](https://live.example.com/Score/1)",
		"2024-05-01 • Oslo",
		"### Senior",
		"#### Mångkamp",
		"#### FX",
		"12.500",
		"No teams yet.",
		"No scores yet.",
		"## Autumn Open",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected markdown to contain %q\n%s", want, out)
		}
	}
	if n := strings.Count(out, "| Rank |"); n != 2 {
		t.Errorf("expected 2 tables, got %d\n%s", n, out)
	}
}

func TestMarkdown_SameForBothLayouts(t *testing.T) {
	var tabs, sections bytes.Buffer
	if err := Markdown(&tabs, view.Build(sampleDocument(), view.Options{Layout: view.LayoutTabs})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Markdown(&sections, view.Build(sampleDocument(), view.Options{Layout: view.LayoutSections})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tabs.String() != sections.String() {
		t.Errorf("expected identical exports\ntabs:\n%s\nsections:\n%s", tabs.String(), sections.String())
	}
}

func TestMarkdown_Failure(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown(&buf, view.Failure()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != view.FailureText+"\n" {
		t.Errorf("expected %q, got %q", view.FailureText+"\n", got)
	}
}
