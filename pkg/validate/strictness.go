package validate

import (
	"github.com/goliatone/go-aknprofile/pkg/diag"
	"github.com/goliatone/go-aknprofile/pkg/profile"
	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// strictnessRule enforces the core invariant: a profile may only be as
// strict or stricter than the schema, never looser. A present children or
// attributes map must carry everything the schema requires, declared
// cardinalities must stay within the schema's bounds, and the required-child
// chain of every declared document type must be completely covered.
type strictnessRule struct{}

func (strictnessRule) ID() string { return "strictness" }

func (strictnessRule) Check(doc *profile.Document, model *schema.Model, _ profile.LineIndex) []diag.Error {
	var errs []diag.Error

	for _, name := range doc.Elements.Keys() {
		def, ok := model.Element(name)
		if !ok {
			continue
		}
		rest, _ := doc.Elements.Get(name)
		path := elementPath(name)

		// A present children map must list every schema-required child.
		// Members of an exclusive choice live under the choice sub-map
		// instead, so their absence from the ordinary children is fine.
		if rest.Children.Len() > 0 || rest.Choice.Len() > 0 {
			for _, child := range def.RequiredChildren() {
				if def.InExclusiveChoice(child.Name) {
					continue
				}
				if !rest.Children.Has(child.Name) {
					errs = append(errs, diag.Errorf("strictness.missing-required-child", path+".children",
						"element %q omits child %q which the schema requires (%s)",
						name, child.Name, child.Occurs))
				}
			}
		}

		// A present attributes map must list every schema-required attribute.
		if rest.Attributes.Len() > 0 {
			for _, attr := range def.RequiredAttributes() {
				if !rest.Attributes.Has(attr.Name) {
					errs = append(errs, diag.Errorf("strictness.missing-required-attribute", path+".attributes",
						"element %q omits attribute %q which the schema requires", name, attr.Name))
				}
			}
		}

		// Declared cardinalities may tighten the schema's but never loosen
		// them; an open profile maximum is only legal when the schema's
		// maximum is open too.
		for _, childName := range rest.Children.Keys() {
			child, _ := rest.Children.Get(childName)
			if child.Occurs == nil {
				continue // deferred to schema, or flagged by the structure rule
			}
			schemaChild, ok := def.Child(childName)
			if !ok {
				continue
			}
			if !child.Occurs.Within(schemaChild.Occurs) {
				errs = append(errs, diag.Errorf("strictness.loosened-child-cardinality",
					path+".children."+childName,
					"cardinality %s loosens the schema's %s for child %q",
					child.Occurs, schemaChild.Occurs, childName))
			}
		}

		// A schema-required attribute cannot be declared optional.
		for _, attrName := range rest.Attributes.Keys() {
			restr, _ := rest.Attributes.Get(attrName)
			schemaAttr, ok := def.Attribute(attrName)
			if !ok {
				continue
			}
			if schemaAttr.Required && restr.Required != nil && !*restr.Required {
				errs = append(errs, diag.Errorf("strictness.loosened-required-attribute",
					path+".attributes."+attrName,
					"attribute %q is required by the schema and cannot be declared optional", attrName))
			}
		}

		// Self-consistency: every referenced child with its own schema
		// definition must also be declared as a top-level element entry.
		for _, childName := range rest.ChildNames() {
			if model.Has(childName) && !doc.Elements.Has(childName) {
				errs = append(errs, diag.Errorf("strictness.undeclared-child", path+".children."+childName,
					"child %q is referenced but not declared under elements", childName))
			}
		}
	}

	// Every element reachable through the required-child chain of a declared
	// document type must itself be declared.
	for _, dt := range doc.DocumentTypes {
		for _, required := range model.RequiredClosure(dt) {
			if !doc.Elements.Has(required) {
				errs = append(errs, diag.Errorf("strictness.incomplete-chain", "profile.elements",
					"element %q is required by document type %q but not declared", required, dt))
			}
		}
	}
	return errs
}
