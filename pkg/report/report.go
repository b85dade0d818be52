// Package report renders a validation run as a human-readable document for
// review outside the editor, e.g. in CI summaries or pull requests.
package report

import (
	"embed"
	"fmt"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-aknprofile/pkg/diag"
)

//go:embed templates
var templatesFS embed.FS

var templates = pongo2.NewSet("aknprofile-report", pongo2.NewFSLoader(templatesFS))

// RenderMarkdown renders the diagnostics of one validation run as a markdown
// report titled after the profile.
func RenderMarkdown(profileName string, errs []diag.Error) (string, error) {
	tmpl, err := templates.FromFile("templates/report.md.tpl")
	if err != nil {
		return "", fmt.Errorf("report: load template: %w", err)
	}

	issues := make([]map[string]any, 0, len(errs))
	var errorCount, warningCount int
	for _, e := range errs {
		if e.Severity == diag.SeverityError {
			errorCount++
		} else {
			warningCount++
		}
		issues = append(issues, map[string]any{
			"severity": string(e.Severity),
			"rule":     e.RuleID,
			"path":     e.Path,
			"line":     e.Line,
			"message":  e.Message,
		})
	}

	out, err := tmpl.Execute(pongo2.Context{
		"name":     profileName,
		"issues":   issues,
		"total":    len(errs),
		"errors":   errorCount,
		"warnings": warningCount,
	})
	if err != nil {
		return "", fmt.Errorf("report: render template: %w", err)
	}
	return out, nil
}
