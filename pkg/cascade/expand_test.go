package cascade

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-aknprofile/pkg/profile"
	"github.com/goliatone/go-aknprofile/pkg/schema"
	"github.com/goliatone/go-aknprofile/pkg/validate"
)

func testModel() *schema.Model {
	return schema.NewModel("akomaNtoso", []*schema.ElementDef{
		{
			Name: "akomaNtoso",
			Children: []schema.ChildRef{
				{Name: "act", Occurs: schema.Occurs{Min: 0, Max: 1}},
				{Name: "debate", Occurs: schema.Occurs{Min: 0, Max: 1}},
			},
		},
		{
			Name:       "act",
			Attributes: []schema.AttributeDef{{Name: "eId", Required: true}},
			Children: []schema.ChildRef{
				{Name: "meta", Occurs: schema.Occurs{Min: 1, Max: 1}},
				{Name: "coverPage", Occurs: schema.Occurs{Min: 0, Max: 1}},
				{Name: "body", Occurs: schema.Occurs{Min: 1, Max: 1}},
			},
		},
		{
			Name: "debate",
			Children: []schema.ChildRef{
				{Name: "meta", Occurs: schema.Occurs{Min: 1, Max: 1}},
				{Name: "body", Occurs: schema.Occurs{Min: 1, Max: 1}},
				{Name: "mainBody", Occurs: schema.Occurs{Min: 1, Max: 1}},
			},
			ChoiceGroups: []schema.ChoiceGroup{
				{
					ID:     "debateType:choice_0",
					Occurs: schema.Occurs{Min: 1, Max: 1},
					Branches: []schema.ChoiceBranch{
						{ID: "branch_0", Label: "body", Elements: []string{"body"}},
						{ID: "branch_1", Label: "mainBody", Elements: []string{"mainBody"}},
					},
				},
			},
		},
		{
			Name: "meta",
			Children: []schema.ChildRef{
				{Name: "identification", Occurs: schema.Occurs{Min: 1, Max: 1}},
			},
		},
		{
			Name: "identification",
			Attributes: []schema.AttributeDef{
				{Name: "source", Required: true, EnumValues: []string{"official", "editorial"}},
			},
		},
		{
			Name:     "body",
			Children: []schema.ChildRef{{Name: "section", Occurs: schema.Occurs{Min: 1, Max: schema.Unbounded}}},
		},
		{
			Name:     "mainBody",
			Children: []schema.ChildRef{{Name: "section", Occurs: schema.Occurs{Min: 1, Max: schema.Unbounded}}},
		},
		{
			Name:     "section",
			Children: []schema.ChildRef{{Name: "section", Occurs: schema.Occurs{Min: 0, Max: schema.Unbounded}}},
		},
		{Name: "coverPage"},
	})
}

func TestExpandFromEmptyProfile(t *testing.T) {
	t.Parallel()

	model := testModel()
	out := Expand(nil, "act", model)
	doc, errs := profile.Parse(out)
	if doc == nil || len(errs) != 0 {
		t.Fatalf("expanded text unparsable: %+v\n%s", errs, out)
	}

	// The root comes first, then the chain in discovery order.
	want := []string{"akomaNtoso", "act", "meta", "identification", "body", "section"}
	if diff := cmp.Diff(want, doc.Elements.Keys()); diff != "" {
		t.Fatalf("elements (-want +got):\n%s", diff)
	}

	act, _ := doc.Elements.Get("act")
	eID, _ := act.Attributes.Get("eId")
	if eID == nil || eID.Required == nil || !*eID.Required {
		t.Fatalf("required attribute not added: %+v", eID)
	}
	meta, _ := act.Children.Get("meta")
	if meta == nil || meta.Raw != "1..1" {
		t.Fatalf("meta child = %+v", meta)
	}
	if act.Children.Has("coverPage") {
		t.Fatalf("optional children must not be added")
	}

	ident, _ := doc.Elements.Get("identification")
	source, _ := ident.Attributes.Get("source")
	if source == nil || len(source.Values) != 2 {
		t.Fatalf("enum values not carried onto required attribute: %+v", source)
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	t.Parallel()

	model := testModel()
	once := Expand(nil, "act", model)
	twice := Expand(once, "act", model)
	if string(once) != string(twice) {
		t.Fatalf("expand is not idempotent:\n--- once ---\n%s\n--- twice ---\n%s", once, twice)
	}
}

func TestExpandKeepsTightenedDeclarations(t *testing.T) {
	t.Parallel()

	const text = `profile:
  elements:
    body:
      children:
        section: 1..3
`
	model := testModel()
	out := Expand([]byte(text), "body", model)
	doc, _ := profile.Parse(out)
	body, _ := doc.Elements.Get("body")
	section, _ := body.Children.Get("section")
	if section.Raw != "1..3" {
		t.Fatalf("tightened cardinality was overwritten: %+v", section)
	}
}

func TestExpandPlacesChoiceMembersUnderChoice(t *testing.T) {
	t.Parallel()

	model := testModel()
	out := Expand(nil, "debate", model)
	doc, _ := profile.Parse(out)
	debate, _ := doc.Elements.Get("debate")

	if diff := cmp.Diff([]string{"meta"}, debate.Children.Keys()); diff != "" {
		t.Fatalf("ordinary children (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"body", "mainBody"}, debate.Choice.Keys()); diff != "" {
		t.Fatalf("choice members (-want +got):\n%s", diff)
	}
}

func TestExpandListsDocumentTypesUnderRoot(t *testing.T) {
	t.Parallel()

	const text = `profile:
  documentTypes:
    - act
`
	model := testModel()
	out := Expand([]byte(text), "act", model)
	doc, _ := profile.Parse(out)

	if doc.Elements.Keys()[0] != "akomaNtoso" {
		t.Fatalf("root must be first: %v", doc.Elements.Keys())
	}
	root, _ := doc.Elements.Get("akomaNtoso")
	act, _ := root.Children.Get("act")
	if act == nil || act.Raw != "1..1" {
		t.Fatalf("document type not listed under root: %+v", act)
	}
}

func TestExpandUnknownElementReturnsInputUnchanged(t *testing.T) {
	t.Parallel()

	const text = "profile:\n  name: untouched\n"
	out := Expand([]byte(text), "preamble", testModel())
	if string(out) != text {
		t.Fatalf("input was modified:\n%s", out)
	}
}

func TestExpandUnparsableInputReturnedVerbatim(t *testing.T) {
	t.Parallel()

	const text = "profile: [unclosed"
	out := Expand([]byte(text), "act", testModel())
	if string(out) != text {
		t.Fatalf("unparsable input must pass through: %q", out)
	}
}

func TestExpandedProfileValidatesClean(t *testing.T) {
	t.Parallel()

	const text = `profile:
  name: acts
  documentTypes:
    - act
`
	model := testModel()
	out := Expand([]byte(text), "act", model)
	if errs := validate.Validate(out, model); len(errs) != 0 {
		t.Fatalf("expanded profile has diagnostics: %+v\n%s", errs, out)
	}
	if !strings.Contains(string(out), "name: acts") {
		t.Fatalf("header fields lost:\n%s", out)
	}
}
