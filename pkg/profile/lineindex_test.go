package profile

import "testing"

func TestLineIndexResolvesNestedPaths(t *testing.T) {
	t.Parallel()

	idx := NewLineIndex([]byte(sampleProfile))

	cases := []struct {
		path string
		line int
	}{
		{"profile", 1},
		{"profile.name", 2},
		{"profile.documentTypes", 5},
		{"profile.elements", 8},
		{"profile.elements.akomaNtoso", 9},
		{"profile.elements.debateReport", 13},
		{"profile.elements.debateReport.attributes.eId", 15},
		{"profile.elements.debateReport.children.choice.body", 24},
		{"profile.elements.meta", 30},
	}
	for _, tc := range cases {
		if got := idx.Lookup(tc.path); got != tc.line {
			t.Fatalf("Lookup(%s) = %d, want %d", tc.path, got, tc.line)
		}
	}
}

func TestLineIndexFallsBackToAncestor(t *testing.T) {
	t.Parallel()

	idx := NewLineIndex([]byte(sampleProfile))
	if got, want := idx.Lookup("profile.elements.debateReport.children.notThere"), idx.Lookup("profile.elements.debateReport.children"); got != want || got == 0 {
		t.Fatalf("ancestor fallback = %d, want %d", got, want)
	}
	if got := idx.Lookup("nowhere.at.all"); got != 0 {
		t.Fatalf("unknown root path = %d, want 0", got)
	}
}

func TestLineIndexKeepsFirstOccurrence(t *testing.T) {
	t.Parallel()

	idx := NewLineIndex([]byte("profile:\n  name: a\nprofile:\n  name: b\n"))
	if got := idx.Lookup("profile"); got != 1 {
		t.Fatalf("first occurrence = %d, want 1", got)
	}
	if got := idx.Lookup("profile.name"); got != 2 {
		t.Fatalf("first nested occurrence = %d, want 2", got)
	}
}
