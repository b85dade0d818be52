package aknprofile

import (
	"fmt"

	"github.com/goliatone/go-aknprofile/pkg/cascade"
	"github.com/goliatone/go-aknprofile/pkg/profile"
	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// StarterProfile generates a minimal valid profile for the given document
// types. Every document type is expanded so the result carries the full
// required-child chain and passes validation without edits.
func StarterProfile(model *schema.Model, name, version string, documentTypes []string) ([]byte, error) {
	if model == nil {
		return nil, fmt.Errorf("aknprofile: starter profile requires a schema model")
	}
	for _, dt := range documentTypes {
		if !model.Has(dt) {
			return nil, fmt.Errorf("aknprofile: unknown document type %q", dt)
		}
	}

	doc := profile.NewDocument()
	doc.Name = name
	doc.Version = version
	doc.DocumentTypes = append(doc.DocumentTypes, documentTypes...)

	text, err := profile.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("aknprofile: serialize starter profile: %w", err)
	}

	for _, dt := range documentTypes {
		text = cascade.Expand(text, dt, model)
	}
	return text, nil
}
