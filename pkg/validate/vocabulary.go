package validate

import (
	"github.com/goliatone/go-aknprofile/pkg/diag"
	"github.com/goliatone/go-aknprofile/pkg/profile"
	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// vocabularyRule checks that every element, attribute, and child name the
// profile references exists in the schema model.
type vocabularyRule struct{}

func (vocabularyRule) ID() string { return "vocabulary" }

func (vocabularyRule) Check(doc *profile.Document, model *schema.Model, _ profile.LineIndex) []diag.Error {
	var errs []diag.Error

	for _, dt := range doc.DocumentTypes {
		if !model.Has(dt) {
			errs = append(errs, diag.Errorf("vocabulary.unknown-element", "profile.documentTypes",
				"document type %q is not defined by the schema", dt))
		}
	}

	for _, name := range doc.Elements.Keys() {
		path := elementPath(name)
		def, ok := model.Element(name)
		if !ok {
			errs = append(errs, diag.Errorf("vocabulary.unknown-element", path,
				"element %q is not defined by the schema", name))
			continue
		}
		rest, _ := doc.Elements.Get(name)
		for _, attrName := range rest.Attributes.Keys() {
			if _, ok := def.Attribute(attrName); !ok {
				errs = append(errs, diag.Errorf("vocabulary.unknown-attribute", path+".attributes."+attrName,
					"attribute %q is not declared on element %q", attrName, name))
			}
		}
		for _, childName := range rest.Children.Keys() {
			if !allowedChild(def, childName) {
				errs = append(errs, diag.Errorf("vocabulary.unknown-child", path+".children."+childName,
					"element %q does not allow child %q", name, childName))
			}
		}
		for _, childName := range rest.Choice.Keys() {
			if !allowedChild(def, childName) {
				errs = append(errs, diag.Errorf("vocabulary.unknown-child", path+".children.choice."+childName,
					"element %q does not allow child %q", name, childName))
			}
		}
	}
	return errs
}

// allowedChild reports whether the schema's content model for def can
// produce the named child, directly or through a choice group.
func allowedChild(def *schema.ElementDef, name string) bool {
	if _, ok := def.Child(name); ok {
		return true
	}
	for _, g := range def.ChoiceGroups {
		if g.Contains(name) {
			return true
		}
	}
	return false
}
