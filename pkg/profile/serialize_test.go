package profile

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-aknprofile/pkg/schema"
)

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	doc, errs := Parse([]byte(sampleProfile))
	if doc == nil || len(errs) != 0 {
		t.Fatalf("parse sample: %+v", errs)
	}
	out, err := Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	again, errs := Parse(out)
	if again == nil || len(errs) != 0 {
		t.Fatalf("reparse: %+v", errs)
	}
	if again.Name != doc.Name || again.Version != doc.Version {
		t.Fatalf("header lost in round trip")
	}
	if diff := cmp.Diff(doc.Elements.Keys(), again.Elements.Keys()); diff != "" {
		t.Fatalf("element order lost (-want +got):\n%s", diff)
	}
	report, _ := again.Elements.Get("debateReport")
	if diff := cmp.Diff([]string{"meta", "coverPage"}, report.Children.Keys()); diff != "" {
		t.Fatalf("children order lost (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"body", "mainBody"}, report.Choice.Keys()); diff != "" {
		t.Fatalf("choice members lost (-want +got):\n%s", diff)
	}
}

func TestMarshalLayout(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	doc.Name = "layout"
	doc.DocumentTypes = []string{"act"}

	act := NewElementRestriction()
	act.Children.Set("meta", ChildOf(schema.Occurs{Min: 1, Max: 1}))
	doc.Elements.Set("act", act)
	doc.Elements.Set("meta", NewElementRestriction())

	out, err := Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	text := string(out)

	if !strings.HasPrefix(text, "profile:\n") {
		t.Fatalf("missing top-level profile key:\n%s", text)
	}
	for _, want := range []string{
		"\n\n  documentTypes:",
		"\n\n  elements:",
		"\n\n    meta:",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected blank line before %q in:\n%s", strings.TrimSpace(want), text)
		}
	}
	if !strings.Contains(text, "meta: null") {
		t.Fatalf("empty restriction should serialize as null:\n%s", text)
	}
}

func TestMarshalChoiceSubMap(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	rest := NewElementRestriction()
	rest.Children.Set("meta", ChildOf(schema.Occurs{Min: 1, Max: 1}))
	rest.Choice.Set("body", ChildOf(schema.Occurs{Min: 1, Max: 1}))
	rest.Choice.Set("mainBody", ChildOf(schema.Occurs{Min: 1, Max: 1}))
	doc.Elements.Set("debate", rest)

	out, err := Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	text := string(out)
	choiceAt := strings.Index(text, "choice:")
	if choiceAt < 0 {
		t.Fatalf("choice sub-map missing:\n%s", text)
	}
	if metaAt := strings.Index(text, "meta:"); metaAt > choiceAt {
		t.Fatalf("ordinary children must precede the choice sub-map:\n%s", text)
	}
	if !strings.Contains(text, "body: 1..1") {
		t.Fatalf("choice member cardinality missing:\n%s", text)
	}
}

func TestMarshalNilDocument(t *testing.T) {
	t.Parallel()

	if _, err := Marshal(nil); err == nil {
		t.Fatalf("expected error for nil document")
	}
}
