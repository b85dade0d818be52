// Package export projects a profile-restricted schema subset into an
// OpenAPI 3 document, one component schema per profiled element. The output
// feeds form and editor tooling that consumes OpenAPI rather than XSD.
package export

import (
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-aknprofile/pkg/profile"
	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// Build parses profile text and renders it with BuildDocument. Profiles
// that do not parse cannot be projected and report the first diagnostic.
func Build(profileText []byte, model *schema.Model) (*openapi3.T, error) {
	doc, errs := profile.Parse(profileText)
	if doc == nil {
		return nil, fmt.Errorf("export: parse profile: %s", errs[0].Message)
	}
	return BuildDocument(model, doc)
}

// BuildDocument renders the named elements of a profile as OpenAPI component
// schemas. Elements the schema model does not know are skipped; the
// validator is the place that complains about them.
func BuildDocument(model *schema.Model, doc *profile.Document) (*openapi3.T, error) {
	if doc == nil {
		return nil, errors.New("export: profile document is required")
	}
	title := doc.Name
	if title == "" {
		title = "akn-profile"
	}
	version := doc.Version
	if version == "" {
		version = "0.0.0"
	}

	t := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       title,
			Version:     version,
			Description: doc.Description,
		},
		Components: &openapi3.Components{Schemas: make(openapi3.Schemas)},
		Paths:      openapi3.NewPaths(),
	}

	for _, name := range doc.Elements.Keys() {
		def, ok := model.Element(name)
		if !ok {
			continue
		}
		rest, _ := doc.Elements.Get(name)
		t.Components.Schemas[name] = openapi3.NewSchemaRef("", elementSchema(def, rest))
	}
	return t, nil
}

func elementSchema(def *schema.ElementDef, rest *profile.ElementRestriction) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	s.Description = def.Doc

	for _, attr := range exportedAttributes(def, rest) {
		prop := openapi3.NewStringSchema()
		for _, v := range attr.EnumValues {
			prop.Enum = append(prop.Enum, v)
		}
		if attr.Pattern != "" {
			prop.Pattern = attr.Pattern
		}
		s.Properties[attr.Name] = openapi3.NewSchemaRef("", prop)
		if attr.Required {
			s.Required = append(s.Required, attr.Name)
		}
	}

	for _, child := range exportedChildren(def, rest) {
		prop := openapi3.NewArraySchema()
		prop.Items = openapi3.NewSchemaRef("#/components/schemas/"+child.Name, nil)
		prop.MinItems = uint64(child.Occurs.Min)
		if !child.Occurs.UnboundedMax() {
			max := uint64(child.Occurs.Max)
			prop.MaxItems = &max
		}
		s.Properties[child.Name] = openapi3.NewSchemaRef("", prop)
		if child.Required() {
			s.Required = append(s.Required, child.Name)
		}
	}
	return s
}

// exportedAttributes applies the profile's attribute narrowing on top of the
// schema declarations; an absent attributes map exports the schema as-is.
func exportedAttributes(def *schema.ElementDef, rest *profile.ElementRestriction) []schema.AttributeDef {
	if rest == nil || rest.Attributes.Len() == 0 {
		return def.Attributes
	}
	var out []schema.AttributeDef
	for _, name := range rest.Attributes.Keys() {
		restr, _ := rest.Attributes.Get(name)
		attr, ok := def.Attribute(name)
		if !ok {
			continue
		}
		if restr.Required != nil {
			attr.Required = *restr.Required
		}
		if len(restr.Values) > 0 {
			attr.EnumValues = append([]string(nil), restr.Values...)
		}
		out = append(out, attr)
	}
	return out
}

// exportedChildren applies the profile's child narrowing; tightened
// cardinalities replace the schema's, deferred ones keep them.
func exportedChildren(def *schema.ElementDef, rest *profile.ElementRestriction) []schema.ChildRef {
	if rest == nil || (rest.Children.Len() == 0 && rest.Choice.Len() == 0) {
		return def.Children
	}
	var out []schema.ChildRef
	for _, name := range rest.ChildNames() {
		ref, ok := def.Child(name)
		if !ok {
			continue
		}
		if child, declared := rest.Children.Get(name); declared && child.Occurs != nil {
			ref.Occurs = *child.Occurs
		}
		out = append(out, ref)
	}
	return out
}
