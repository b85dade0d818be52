// Package diag defines the diagnostic records produced by profile parsing and
// validation. Diagnostics cross package boundaries as plain data; nothing in
// the core signals a validation outcome by returning an error.
package diag

import "fmt"

// Severity classifies how blocking a diagnostic is.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Error is a single diagnostic. RuleID is a dotted category.kind string such
// as "strictness.loosened-child-cardinality"; Path is a dotted profile path
// such as "profile.elements.act.children.body". Line is best-effort metadata
// resolved from a text scan and may be zero when unknown.
type Error struct {
	RuleID   string   `json:"ruleId"`
	Path     string   `json:"path"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Line     int      `json:"line,omitempty"`
}

// String renders the diagnostic in a single human-readable line.
func (e Error) String() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s %s at %s (line %d): %s", e.Severity, e.RuleID, e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("%s %s at %s: %s", e.Severity, e.RuleID, e.Path, e.Message)
}

// Errorf builds an ERROR diagnostic with a formatted message.
func Errorf(ruleID, path, format string, args ...any) Error {
	return Error{
		RuleID:   ruleID,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityError,
	}
}

// Warnf builds a WARNING diagnostic with a formatted message.
func Warnf(ruleID, path, format string, args ...any) Error {
	return Error{
		RuleID:   ruleID,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityWarning,
	}
}

// Dedupe removes diagnostics whose (RuleID, Path, Message) triple was already
// seen, preserving first-seen order.
func Dedupe(errs []Error) []Error {
	if len(errs) < 2 {
		return errs
	}
	type key struct {
		rule, path, message string
	}
	seen := make(map[key]bool, len(errs))
	out := errs[:0:0]
	for _, e := range errs {
		k := key{e.RuleID, e.Path, e.Message}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}

// HasErrors reports whether any diagnostic carries ERROR severity.
func HasErrors(errs []Error) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}
