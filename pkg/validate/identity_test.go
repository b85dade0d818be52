package validate

import (
	"testing"

	"github.com/goliatone/go-aknprofile/pkg/diag"
)

func TestIdentityUnsupportedAttribute(t *testing.T) {
	t.Parallel()

	// The act definition only carries eId; declaring wId on it is an error.
	doc := mustParse(t, `profile:
  elements:
    act:
      attributes:
        eId:
          required: true
        wId: null
`)
	errs := identityRule{}.Check(doc, testModel(), nil)
	if len(errs) != 1 {
		t.Fatalf("diagnostics = %+v", errs)
	}
	e := errs[0]
	if e.RuleID != "identity.unsupported-attribute" || e.Path != "profile.elements.act.attributes.wId" || e.Severity != diag.SeverityError {
		t.Fatalf("diagnostic = %+v", e)
	}
}

func TestIdentityMissingRequiredWarnsOnce(t *testing.T) {
	t.Parallel()

	// act requires eId; an element entry with no attributes map at all gets
	// a warning, not an error, so exploratory profiles stay usable.
	doc := mustParse(t, `profile:
  elements:
    act:
      children:
        meta: 1..1
`)
	errs := identityRule{}.Check(doc, testModel(), nil)
	if len(errs) != 1 {
		t.Fatalf("diagnostics = %+v", errs)
	}
	e := errs[0]
	if e.RuleID != "identity.missing-required" || e.Severity != diag.SeverityWarning || e.Path != "profile.elements.act" {
		t.Fatalf("diagnostic = %+v", e)
	}
}

func TestIdentityDeclaredAttributesSatisfy(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `profile:
  elements:
    act:
      attributes:
        eId:
          required: true
    section:
      attributes:
        eId: null
`)
	errs := identityRule{}.Check(doc, testModel(), nil)
	if len(errs) != 0 {
		t.Fatalf("diagnostics = %+v", errs)
	}
}
