package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgallion1/gymscore/internal/results"
)

// Tab is the index of a class's panel.
type Tab int

const (
	TabAllround Tab = iota
	TabFX
	TabTU
	TabTR
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabAllround, TabFX, TabTU, TabTR}

var tabKeys = [...]string{"allround", "fx", "tu", "tr"}

// Key is the stable identifier used in element ids and URLs.
func (t Tab) Key() string {
	if t < 0 || int(t) >= len(tabKeys) {
		return ""
	}
	return tabKeys[t]
}

// Apparatus returns the apparatus shown on t, false for the allround tab.
func (t Tab) Apparatus() (results.Apparatus, bool) {
	switch t {
	case TabFX:
		return results.FX, true
	case TabTU:
		return results.TU, true
	case TabTR:
		return results.TR, true
	}
	return "", false
}

// ParseTab maps a key back to its Tab.
func ParseTab(key string) (Tab, bool) {
	for i, k := range tabKeys {
		if strings.EqualFold(k, key) {
			return Tab(i), true
		}
	}
	return TabAllround, false
}

// ClassID identifies a class by its position, 1-based, e.g. "c2-1" for the
// first class of the second competition.
func ClassID(competition, class int) string {
	return fmt.Sprintf("c%d-%d", competition+1, class+1)
}

// TabState maps class ids to their active tab. Classes never selected show
// the allround tab. A nil *TabState behaves as an empty one for reads.
type TabState struct {
	active map[string]Tab
}

func NewTabState() *TabState {
	return &TabState{active: make(map[string]Tab)}
}

// Select makes t the active tab of classID. Other classes are untouched.
func (s *TabState) Select(classID string, t Tab) {
	if t.Key() == "" {
		return
	}
	if t == TabAllround {
		delete(s.active, classID)
		return
	}
	s.active[classID] = t
}

// Active returns the active tab of classID.
func (s *TabState) Active(classID string) Tab {
	if s == nil {
		return TabAllround
	}
	if t, ok := s.active[classID]; ok {
		return t
	}
	return TabAllround
}

// ParseTabState reads "classID:key" entries, e.g. the repeated ?tab= query
// parameter. Malformed entries are skipped; later entries win.
func ParseTabState(values []string) *TabState {
	s := NewTabState()
	for _, v := range values {
		id, key, ok := strings.Cut(v, ":")
		if !ok || id == "" {
			continue
		}
		t, ok := ParseTab(key)
		if !ok {
			continue
		}
		s.Select(id, t)
	}
	return s
}

// Values encodes the non-default selections, sorted by class id.
func (s *TabState) Values() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.active))
	for id, t := range s.active {
		out = append(out, id+":"+t.Key())
	}
	sort.Strings(out)
	return out
}
