package view

import (
	"math"
	"testing"

	"github.com/dgallion1/gymscore/internal/results"
)

func TestFormatScore(t *testing.T) {
	tests := []struct {
		in   results.Score
		want string
	}{
		{results.NewScore(12.5), "12.500"},
		{results.NewScore(0), "0.000"},
		{results.NewScore(9.8765), "9.877"},
		{results.NewScore(-0.35), "-0.350"},
		{results.NewScore(30), "30.000"},
		{results.Score{}, ""},
		{results.Score{Value: 4}, ""},
		{results.NewScore(math.NaN()), ""},
		{results.NewScore(math.Inf(1)), ""},
	}
	for _, tt := range tests {
		if got := FormatScore(tt.in); got != tt.want {
			t.Errorf("FormatScore(%+v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestMetaLine(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"all present", []string{"2024-05-01", "2024-05-02", "Oslo"}, "2024-05-01 • 2024-05-02 • Oslo"},
		{"missing end date", []string{"2024-05-01", "", "Oslo"}, "2024-05-01 • Oslo"},
		{"only place", []string{"", "", "Oslo"}, "Oslo"},
		{"blank values", []string{" ", "", "\t"}, ""},
		{"none", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MetaLine(tt.parts...); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
