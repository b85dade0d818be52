// Package validate cross-checks a profile document against the schema model
// and reports precise, deduplicated diagnostics. The pipeline runs a fixed,
// ordered list of independent rule modules; a failing module is isolated and
// never prevents the others from running.
package validate

import (
	"log/slog"

	"github.com/goliatone/go-aknprofile/pkg/diag"
	"github.com/goliatone/go-aknprofile/pkg/profile"
	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// Rule is one validation category. Implementations are pure: they read the
// document and the immutable schema model and return diagnostics.
type Rule interface {
	ID() string
	Check(doc *profile.Document, model *schema.Model, lines profile.LineIndex) []diag.Error
}

// Rules returns the pipeline's rule modules in execution order. The list is
// fixed at compile time; ordering is part of the output contract.
func Rules() []Rule {
	return []Rule{
		vocabularyRule{},
		structureRule{},
		choiceRule{},
		datatypeRule{},
		identityRule{},
		strictnessRule{},
	}
}

// Option configures a validation run.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger overrides the logger used when a rule module has to be
// recovered.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Validate parses the profile text and runs every rule module against it.
// The result is deterministic for a given (text, model) pair and the call is
// safe to issue concurrently from any number of goroutines. A structurally
// unparsable profile yields parse-family diagnostics only.
func Validate(text []byte, model *schema.Model, options ...Option) []diag.Error {
	cfg := &config{logger: slog.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	doc, parseErrs := profile.Parse(text)
	if doc == nil {
		return parseErrs
	}
	lines := profile.NewLineIndex(text)

	all := append([]diag.Error(nil), parseErrs...)
	all = append(all, run(doc, model, lines, Rules(), cfg.logger)...)
	all = diag.Dedupe(all)

	for i := range all {
		if all[i].Line == 0 {
			all[i].Line = lines.Lookup(all[i].Path)
		}
	}
	return all
}

// run executes the rule modules, recovering any that panic so one buggy
// category cannot take the rest of the pipeline down with it.
func run(doc *profile.Document, model *schema.Model, lines profile.LineIndex, rules []Rule, logger *slog.Logger) []diag.Error {
	var all []diag.Error
	for _, rule := range rules {
		all = append(all, checkSafely(rule, doc, model, lines, logger)...)
	}
	return all
}

func checkSafely(rule Rule, doc *profile.Document, model *schema.Model, lines profile.LineIndex, logger *slog.Logger) (out []diag.Error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("validation rule panicked, skipping its diagnostics", "rule", rule.ID(), "panic", r)
			out = nil
		}
	}()
	return rule.Check(doc, model, lines)
}

func elementPath(name string) string {
	return "profile.elements." + name
}
