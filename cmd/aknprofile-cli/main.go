package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	gojson "github.com/goccy/go-json"

	"github.com/goliatone/go-aknprofile"
	"github.com/goliatone/go-aknprofile/pkg/diag"
	"github.com/goliatone/go-aknprofile/pkg/export"
	"github.com/goliatone/go-aknprofile/pkg/report"
	"github.com/goliatone/go-aknprofile/pkg/schema"
	"github.com/goliatone/go-aknprofile/pkg/validate"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "validate":
		err = runValidate(args[1:])
	case "expand":
		err = runCascade(args[1:], aknprofile.Expand)
	case "collapse":
		err = runCascade(args[1:], aknprofile.Collapse)
	case "init":
		err = runInit(args[1:])
	case "export":
		err = runExport(args[1:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
		os.Exit(1)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s <command> [flags]\n\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  validate   check a profile against the schema")
	fmt.Fprintln(out, "  expand     add an element and its required chain to a profile")
	fmt.Fprintln(out, "  collapse   remove an element and orphaned descendants from a profile")
	fmt.Fprintln(out, "  init       generate a starter profile")
	fmt.Fprintln(out, "  export     project a profile-narrowed schema as OpenAPI")
}

func loadModel(path string, verbose bool) (*schema.Model, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	model, err := aknprofile.IngestSchemaFile(path, aknprofile.WithIngestLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("ingest schema: %w", err)
	}
	return model, nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	schemaPath := fs.String("schema", "akomantoso30.xsd", "schema document path")
	profilePath := fs.String("profile", "profile.yaml", "profile path")
	format := fs.String("format", "text", "output format: text, json, or markdown")
	verbose := fs.Bool("verbose", false, "log skipped schema constructs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	model, err := loadModel(*schemaPath, *verbose)
	if err != nil {
		return err
	}
	text, err := os.ReadFile(*profilePath)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}

	issues := validate.Validate(text, model)
	switch *format {
	case "json":
		enc := gojson.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(issues); err != nil {
			return fmt.Errorf("encode diagnostics: %w", err)
		}
	case "markdown":
		md, err := report.RenderMarkdown(filepath.Base(*profilePath), issues)
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		fmt.Println(md)
	case "text":
		for _, issue := range issues {
			line := ""
			if issue.Line > 0 {
				line = fmt.Sprintf(":%d", issue.Line)
			}
			fmt.Printf("%s%s [%s] %s: %s\n", issue.Path, line, issue.Severity, issue.RuleID, issue.Message)
		}
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	if diag.HasErrors(issues) {
		os.Exit(1)
	}
	return nil
}

func runCascade(args []string, apply func([]byte, string, *schema.Model) []byte) error {
	fs := flag.NewFlagSet("cascade", flag.ExitOnError)
	schemaPath := fs.String("schema", "akomantoso30.xsd", "schema document path")
	profilePath := fs.String("profile", "profile.yaml", "profile path")
	element := fs.String("element", "", "element name (prompted when empty)")
	output := fs.String("output", "", "output file (rewrites profile in place if empty)")
	verbose := fs.Bool("verbose", false, "log skipped schema constructs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	model, err := loadModel(*schemaPath, *verbose)
	if err != nil {
		return err
	}
	text, err := os.ReadFile(*profilePath)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}

	name := strings.TrimSpace(*element)
	if name == "" {
		name, err = promptElement(model)
		if err != nil {
			return err
		}
	}
	if !model.Has(name) {
		return fmt.Errorf("unknown element %q", name)
	}

	result := apply(text, name, model)
	target := *output
	if target == "" {
		target = *profilePath
	}
	if err := os.WriteFile(target, result, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	fmt.Printf("Profile written to %s\n", target)
	return nil
}

func promptElement(model *schema.Model) (string, error) {
	names := model.Names()
	prompt := &survey.Select{
		Message:  "Element:",
		Options:  names,
		PageSize: 15,
	}
	var name string
	if err := survey.AskOne(prompt, &name, survey.WithValidator(survey.Required)); err != nil {
		return "", fmt.Errorf("select element: %w", err)
	}
	return name, nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	schemaPath := fs.String("schema", "akomantoso30.xsd", "schema document path")
	name := fs.String("name", "new-profile", "profile name")
	version := fs.String("version", "0.1.0", "profile version")
	types := fs.String("types", "", "comma-separated document types (prompted when empty)")
	output := fs.String("output", "profile.yaml", "output file")
	verbose := fs.Bool("verbose", false, "log skipped schema constructs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	model, err := loadModel(*schemaPath, *verbose)
	if err != nil {
		return err
	}

	docTypes := splitList(*types)
	if len(docTypes) == 0 {
		docTypes, err = promptDocumentTypes(model)
		if err != nil {
			return err
		}
	}

	text, err := aknprofile.StarterProfile(model, *name, *version, docTypes)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*output, text, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	fmt.Printf("Profile written to %s\n", *output)
	return nil
}

func promptDocumentTypes(model *schema.Model) ([]string, error) {
	options := documentTypeOptions(model)
	if len(options) == 0 {
		return nil, fmt.Errorf("schema root %q declares no document types", model.Root())
	}
	prompt := &survey.MultiSelect{
		Message:  "Document types:",
		Options:  options,
		PageSize: 15,
	}
	var selected []string
	if err := survey.AskOne(prompt, &selected, survey.WithValidator(survey.MinItems(1))); err != nil {
		return nil, fmt.Errorf("select document types: %w", err)
	}
	return selected, nil
}

// documentTypeOptions lists the document-type elements a profile can cover:
// the children of the schema's root container element.
func documentTypeOptions(model *schema.Model) []string {
	def, ok := model.Element(model.Root())
	if !ok {
		return nil
	}
	options := make([]string, 0, len(def.Children))
	for _, child := range def.Children {
		options = append(options, child.Name)
	}
	sort.Strings(options)
	return options
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	schemaPath := fs.String("schema", "akomantoso30.xsd", "schema document path")
	profilePath := fs.String("profile", "profile.yaml", "profile path")
	output := fs.String("output", "", "output file (stdout if empty)")
	verbose := fs.Bool("verbose", false, "log skipped schema constructs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	model, err := loadModel(*schemaPath, *verbose)
	if err != nil {
		return err
	}
	text, err := os.ReadFile(*profilePath)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}

	spec, err := export.Build(text, model)
	if err != nil {
		return err
	}
	encoded, err := gojson.MarshalIndent(spec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, encoded, 0o644); err != nil {
			return fmt.Errorf("write document: %w", err)
		}
		fmt.Printf("OpenAPI document written to %s\n", *output)
		return nil
	}
	fmt.Println(string(encoded))
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
