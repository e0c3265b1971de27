package main

import (
	"strings"
	"testing"
)

func TestDisplayWidthCountsWideRunes(t *testing.T) {
	cases := map[string]int{
		"world":  5,
		"資料庫":    6,
		"ａｂ":     4,
		"tick 世界": 9,
	}
	for in, want := range cases {
		if got := displayWidth(in); got != want {
			t.Fatalf("displayWidth(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestSectionLineKeepsWidth(t *testing.T) {
	a := strings.Count(sectionLine("data"), "─")
	b := strings.Count(sectionLine("資料"), "─")
	// "── " prefix contributes 2 dashes; titles are both 4 columns wide.
	if a != b {
		t.Fatalf("expected equal padding, got %d and %d", a, b)
	}
}
