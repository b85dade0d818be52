package testsupport

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	internalxsd "github.com/goliatone/go-aknprofile/internal/xsd"
	"github.com/goliatone/go-aknprofile/pkg/diag"
	"github.com/goliatone/go-aknprofile/pkg/profile"
	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// LoadModel reads a schema fixture from disk and ingests it. Testing helpers
// fail fast to keep contract tests concise.
func LoadModel(t *testing.T, path string, options ...internalxsd.Option) *schema.Model {
	t.Helper()

	model, err := LoadModelFromPath(path, options...)
	if err != nil {
		t.Fatalf("load model: %v", err)
	}
	return model
}

// LoadModelFromPath ingests a schema fixture without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadModelFromPath(path string, options ...internalxsd.Option) (*schema.Model, error) {
	if path == "" {
		return nil, errors.New("testsupport: schema path is required")
	}
	model, err := internalxsd.IngestFile(path, options...)
	if err != nil {
		return nil, fmt.Errorf("testsupport: ingest schema: %w", err)
	}
	return model, nil
}

// MustIngest builds a schema model from inline XSD text.
func MustIngest(t *testing.T, xsdText string, options ...internalxsd.Option) *schema.Model {
	t.Helper()

	model, err := internalxsd.Ingest(strings.NewReader(xsdText), options...)
	if err != nil {
		t.Fatalf("ingest schema: %v", err)
	}
	return model
}

// MustParseProfile parses profile text, failing the test on any parse
// diagnostic.
func MustParseProfile(t *testing.T, text string) *profile.Document {
	t.Helper()

	doc, errs := profile.Parse([]byte(text))
	if doc == nil || len(errs) != 0 {
		t.Fatalf("parse profile: %+v", errs)
	}
	return doc
}

// RuleIDs projects diagnostics onto their rule identifiers, preserving order.
func RuleIDs(errs []diag.Error) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.RuleID)
	}
	return out
}

// FilterRule keeps the diagnostics produced by a single rule.
func FilterRule(errs []diag.Error, ruleID string) []diag.Error {
	var out []diag.Error
	for _, e := range errs {
		if e.RuleID == ruleID {
			out = append(out, e)
		}
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
