// Package aknprofile validates and maintains YAML application profiles that
// restrict the Akoma Ntoso legal-document XML schema to a project-specific
// subset. The root package is a thin facade over the ingestion, validation,
// and cascade packages; it keeps concrete implementations hidden from
// consumers that only need the common entry points.
package aknprofile

import (
	"io"

	internalxsd "github.com/goliatone/go-aknprofile/internal/xsd"
	"github.com/goliatone/go-aknprofile/pkg/cascade"
	"github.com/goliatone/go-aknprofile/pkg/diag"
	"github.com/goliatone/go-aknprofile/pkg/schema"
	"github.com/goliatone/go-aknprofile/pkg/validate"
)

// IngestOption configures schema ingestion.
type IngestOption = internalxsd.Option

// WithIngestLogger overrides the logger used for skipped-construct warnings.
var WithIngestLogger = internalxsd.WithLogger

// WithRootElement pins the schema's universal root element.
var WithRootElement = internalxsd.WithRootElement

// IngestSchema builds the immutable schema model from a schema document.
// Build the model once at startup and pass it to every validation and
// cascade call; it is safe for unlimited concurrent readers.
func IngestSchema(r io.Reader, options ...IngestOption) (*schema.Model, error) {
	return internalxsd.Ingest(r, options...)
}

// IngestSchemaFile ingests a schema file from disk.
func IngestSchemaFile(path string, options ...IngestOption) (*schema.Model, error) {
	return internalxsd.IngestFile(path, options...)
}

// Validate cross-checks profile text against the schema model and returns
// ordered, deduplicated diagnostics.
func Validate(profileText []byte, model *schema.Model, options ...validate.Option) []diag.Error {
	return validate.Validate(profileText, model, options...)
}

// Expand ensures an element and its required-child chain exist in the
// profile, returning the rewritten YAML text. The input is returned
// unchanged when it cannot be interpreted or the element is unknown.
func Expand(profileText []byte, element string, model *schema.Model) []byte {
	return cascade.Expand(profileText, element, model)
}

// Collapse removes an element and every orphaned descendant from the
// profile, returning the rewritten YAML text. The input is returned
// unchanged when it cannot be interpreted or the element is not declared.
func Collapse(profileText []byte, element string, model *schema.Model) []byte {
	return cascade.Collapse(profileText, element, model)
}
