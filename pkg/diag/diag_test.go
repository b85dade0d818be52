package diag

import (
	"strings"
	"testing"
)

func TestDedupeKeepsFirstSeenOrder(t *testing.T) {
	t.Parallel()

	errs := []Error{
		Errorf("vocabulary.unknown-element", "profile.elements.foo", "element %q is not defined", "foo"),
		Warnf("structure.unknown-key", "profile.extra", "unknown profile key %q", "extra"),
		Errorf("vocabulary.unknown-element", "profile.elements.foo", "element %q is not defined", "foo"),
		Errorf("vocabulary.unknown-element", "profile.elements.bar", "element %q is not defined", "bar"),
	}
	got := Dedupe(errs)
	if len(got) != 3 {
		t.Fatalf("Dedupe kept %d diagnostics, want 3", len(got))
	}
	if got[0].Path != "profile.elements.foo" || got[1].RuleID != "structure.unknown-key" || got[2].Path != "profile.elements.bar" {
		t.Fatalf("Dedupe reordered diagnostics: %+v", got)
	}
}

func TestDedupeDistinguishesMessages(t *testing.T) {
	t.Parallel()

	errs := []Error{
		Errorf("datatype.value-not-in-enum", "profile.elements.act.attributes.contains", "value %q rejected", "a"),
		Errorf("datatype.value-not-in-enum", "profile.elements.act.attributes.contains", "value %q rejected", "b"),
	}
	if got := Dedupe(errs); len(got) != 2 {
		t.Fatalf("distinct messages on one path must both survive, got %d", len(got))
	}
}

func TestHasErrors(t *testing.T) {
	t.Parallel()

	if HasErrors(nil) {
		t.Fatalf("empty slice has no errors")
	}
	if HasErrors([]Error{Warnf("structure.unknown-key", "profile.x", "warn")}) {
		t.Fatalf("warnings alone are not errors")
	}
	if !HasErrors([]Error{
		Warnf("structure.unknown-key", "profile.x", "warn"),
		Errorf("vocabulary.unknown-element", "profile.elements.x", "boom"),
	}) {
		t.Fatalf("expected HasErrors to see the ERROR entry")
	}
}

func TestErrorString(t *testing.T) {
	t.Parallel()

	e := Errorf("choice.mixed-branches", "profile.elements.body.children", "branches mixed")
	if s := e.String(); !strings.Contains(s, "ERROR choice.mixed-branches") || strings.Contains(s, "line") {
		t.Fatalf("String without line = %q", s)
	}
	e.Line = 12
	if s := e.String(); !strings.Contains(s, "(line 12)") {
		t.Fatalf("String with line = %q", s)
	}
}
