package results

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Document is the results document published by the scraper.
type Document struct {
	LastUpdated  string        `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
	Competitions []Competition `json:"competitions" yaml:"competitions"`
}

// Competition is one event with its classes.
type Competition struct {
	Name     string        `json:"competition" yaml:"competition"`
	DateFrom string        `json:"date_from,omitempty" yaml:"date_from,omitempty"`
	DateTo   string        `json:"date_to,omitempty" yaml:"date_to,omitempty"`
	Place    string        `json:"place,omitempty" yaml:"place,omitempty"`
	URL      string        `json:"url,omitempty" yaml:"url,omitempty"`
	Classes  []ClassResult `json:"classes" yaml:"classes"`
}

// ClassResult holds the allround ranking and apparatus lists of one class.
type ClassResult struct {
	Name  string         `json:"class_name" yaml:"class_name"`
	Teams []TeamAllround `json:"teams" yaml:"teams"`
	FX    []ApparatusRow `json:"fx_app,omitempty" yaml:"fx_app,omitempty"`
	TU    []ApparatusRow `json:"tu_app,omitempty" yaml:"tu_app,omitempty"`
	TR    []ApparatusRow `json:"tr_app,omitempty" yaml:"tr_app,omitempty"`

	// Legacy nesting written by older scraper versions.
	Legacy *ApparatusSet `json:"apparatus,omitempty" yaml:"apparatus,omitempty"`
}

// ApparatusSet is the legacy {"fx": [...], "tu": [...], "tr": [...]} object.
type ApparatusSet struct {
	FX []ApparatusRow `json:"fx,omitempty" yaml:"fx,omitempty"`
	TU []ApparatusRow `json:"tu,omitempty" yaml:"tu,omitempty"`
	TR []ApparatusRow `json:"tr,omitempty" yaml:"tr,omitempty"`
}

// Rows returns the result rows for an apparatus. The flat <code>_app list
// wins; the legacy nesting is only consulted when the flat list is absent.
func (c ClassResult) Rows(a Apparatus) []ApparatusRow {
	var flat []ApparatusRow
	switch a {
	case FX:
		flat = c.FX
	case TU:
		flat = c.TU
	case TR:
		flat = c.TR
	}
	if flat != nil || c.Legacy == nil {
		return flat
	}
	switch a {
	case FX:
		return c.Legacy.FX
	case TU:
		return c.Legacy.TU
	case TR:
		return c.Legacy.TR
	}
	return nil
}

// TeamAllround is one team's row in the combined ranking.
type TeamAllround struct {
	Rank          Literal        `json:"rank" yaml:"rank,omitempty"`
	StartPosition Literal        `json:"start_position" yaml:"start_position,omitempty"`
	Name          Literal        `json:"name" yaml:"name"`
	FX            ApparatusScore `json:"fx" yaml:"fx"`
	TU            ApparatusScore `json:"tu" yaml:"tu"`
	TR            ApparatusScore `json:"tr" yaml:"tr"`
	Total         Score          `json:"total" yaml:"total"`
	Gap           Score          `json:"gap" yaml:"gap"`
}

// Score returns the team's score on an apparatus.
func (t TeamAllround) Score(a Apparatus) Score {
	switch a {
	case FX:
		return t.FX.Score
	case TU:
		return t.TU.Score
	case TR:
		return t.TR.Score
	}
	return Score{}
}

// ApparatusScore is the per-apparatus part of an allround row. The scraper
// also writes the D/E/C breakdown here; only Score is displayed.
type ApparatusScore struct {
	Score Score `json:"score" yaml:"score"`
	D     Score `json:"D" yaml:"D"`
	E     Score `json:"E" yaml:"E"`
	C     Score `json:"C" yaml:"C"`
}

// UnmarshalJSON also accepts a bare number in place of the object.
func (a *ApparatusScore) UnmarshalJSON(b []byte) error {
	*a = ApparatusScore{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return a.Score.UnmarshalJSON(b)
	}
	type plain ApparatusScore
	return json.Unmarshal(b, (*plain)(a))
}

// ApparatusRow is one team's result on a single apparatus.
type ApparatusRow struct {
	Rank  Literal `json:"rank" yaml:"rank,omitempty"`
	Name  Literal `json:"name" yaml:"name"`
	D     Score   `json:"D" yaml:"D"`
	E     Score   `json:"E" yaml:"E"`
	C     Score   `json:"C" yaml:"C"`
	HJ    Score   `json:"HJ" yaml:"HJ"`
	Score Score   `json:"score" yaml:"score"`
	Gap   Score   `json:"gap" yaml:"gap"`
}

// Apparatus identifies one of the three scored events.
type Apparatus string

const (
	FX Apparatus = "fx" // floor
	TU Apparatus = "tu" // tumbling
	TR Apparatus = "tr" // trampette
)

// AllApparatus lists the apparatus in display order.
var AllApparatus = []Apparatus{FX, TU, TR}

// Code returns the upper-case code shown to users ("FX").
func (a Apparatus) Code() string {
	return strings.ToUpper(string(a))
}

// Score is an optional number. Absent, null and non-numeric JSON values all
// decode to the unset Score instead of failing the document.
type Score struct {
	Value float64
	Valid bool
}

// NewScore returns a set Score.
func NewScore(v float64) Score {
	return Score{Value: v, Valid: true}
}

func (s *Score) UnmarshalJSON(b []byte) error {
	*s = Score{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] == 'n' || b[0] == '"' || b[0] == '{' || b[0] == '[' || b[0] == 't' || b[0] == 'f' {
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	*s = Score{Value: v, Valid: true}
	return nil
}

func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

func (s Score) MarshalYAML() (any, error) {
	if !s.Valid {
		return nil, nil
	}
	return s.Value, nil
}

// Literal keeps a scalar exactly as the source wrote it: strings are
// unquoted, numbers keep their literal text, null and objects are empty.
type Literal string

func (l *Literal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*l = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = Literal(s)
	case b[0] == '{', b[0] == '[':
		*l = ""
	default:
		*l = Literal(b)
	}
	return nil
}

func (l Literal) String() string {
	return string(l)
}
