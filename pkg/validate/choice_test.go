package validate

import (
	"strings"
	"testing"
)

func TestChoiceMixedBranches(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `profile:
  elements:
    debate:
      children:
        meta: 1..1
        body: 1..1
        mainBody: 1..1
`)
	errs := choiceRule{}.Check(doc, testModel(), nil)
	if len(errs) != 1 {
		t.Fatalf("want exactly one diagnostic per group, got %+v", errs)
	}
	e := errs[0]
	if e.RuleID != "choice.mixed-branches" || e.Path != "profile.elements.debate.children" {
		t.Fatalf("diagnostic = %+v", e)
	}
	if !strings.Contains(e.Message, "branch_0 and branch_1") || !strings.Contains(e.Message, "debateType:choice_0") {
		t.Fatalf("message = %q", e.Message)
	}
}

func TestChoiceSingleBranchIsFine(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `profile:
  elements:
    debate:
      children:
        meta: 1..1
        body: 1..1
`)
	errs := choiceRule{}.Check(doc, testModel(), nil)
	if len(errs) != 0 {
		t.Fatalf("diagnostics = %+v", errs)
	}
}

func TestChoiceSubMapMembersAreAlternatives(t *testing.T) {
	t.Parallel()

	// Declaring both alternatives under the choice sub-map documents the
	// schema's alternatives without picking one; that is not mixing.
	doc := mustParse(t, `profile:
  elements:
    debate:
      children:
        meta: 1..1
        choice:
          body: 1..1
          mainBody: 1..1
`)
	errs := choiceRule{}.Check(doc, testModel(), nil)
	if len(errs) != 0 {
		t.Fatalf("diagnostics = %+v", errs)
	}
}
