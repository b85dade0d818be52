package report

import (
	"strings"
	"testing"

	"github.com/goliatone/go-aknprofile/pkg/diag"
)

func TestRenderMarkdownNoIssues(t *testing.T) {
	t.Parallel()

	out, err := RenderMarkdown("clean-profile", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "# Profile validation: clean-profile") {
		t.Fatalf("title missing:\n%s", out)
	}
	if !strings.Contains(out, "No issues found.") {
		t.Fatalf("empty-run message missing:\n%s", out)
	}
}

func TestRenderMarkdownWithIssues(t *testing.T) {
	t.Parallel()

	errs := []diag.Error{
		{
			RuleID:   "strictness.missing-required-child",
			Path:     "profile.elements.act.children",
			Message:  `element "act" omits child "meta"`,
			Severity: diag.SeverityError,
			Line:     12,
		},
		{
			RuleID:   "structure.unknown-key",
			Path:     "profile.color",
			Message:  `unknown profile key "color"`,
			Severity: diag.SeverityWarning,
		},
	}
	out, err := RenderMarkdown("debate-reports", errs)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"2 issue(s): 1 error(s), 1 warning(s).",
		"| ERROR | `strictness.missing-required-child` | `profile.elements.act.children` | 12 |",
		"| WARNING | `structure.unknown-key` | `profile.color` | 0 |",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
