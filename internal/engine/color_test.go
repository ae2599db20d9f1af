package engine

import (
	"regexp"
	"testing"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func TestSessionColorsAreDistinctHex(t *testing.T) {
	colors := sessionColors()
	for _, c := range colors {
		if !hexColor.MatchString(c) {
			t.Fatalf("expected hex color, got %q", c)
		}
	}
	if colors[0] == colors[1] {
		t.Fatalf("players must get distinct colors, both %q", colors[0])
	}
}

func TestColorsStableForSessionLifetime(t *testing.T) {
	s := New(DefaultConfig())
	first := s.Color(PlayerOne)
	second := s.Color(PlayerTwo)
	if first == "" || second == "" {
		t.Fatalf("expected colors assigned at session start")
	}
	s.Reset()
	if s.Color(PlayerOne) != first || s.Color(PlayerTwo) != second {
		t.Fatalf("colors must stay fixed across reset")
	}
}
