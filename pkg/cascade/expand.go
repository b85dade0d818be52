// Package cascade performs schema-aware structural edits on profile text:
// Expand adds an element together with everything it requires, Collapse
// removes an element together with everything that becomes unreachable. Both
// operations are total functions over their inputs; any input that cannot be
// interpreted, or an element the schema does not know, makes them return the
// original text unchanged.
package cascade

import (
	"github.com/goliatone/go-aknprofile/pkg/profile"
	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// Expand ensures the named element and its entire required-child chain exist
// under the profile's elements map. Existing entries are only ever added to;
// deliberately tightened declarations are left untouched. After the chain is
// processed the schema's universal root is created or updated to list every
// declared document type as a required child and moved to the front of the
// elements map.
func Expand(text []byte, element string, model *schema.Model) []byte {
	doc, _ := profile.Parse(text)
	if doc == nil {
		return text
	}
	if !model.Has(element) {
		return text
	}

	expandInto(doc, element, model, make(map[string]bool))

	if root := model.Root(); root != "" && model.Has(root) {
		ensureRoot(doc, root, model)
	}

	out, err := profile.Marshal(doc)
	if err != nil {
		return text
	}
	return out
}

func expandInto(doc *profile.Document, name string, model *schema.Model, visited map[string]bool) {
	if visited[name] {
		return
	}
	visited[name] = true
	def, ok := model.Element(name)
	if !ok {
		return
	}

	rest, exists := doc.Elements.Get(name)
	if !exists || rest == nil {
		rest = profile.NewElementRestriction()
		doc.Elements.Set(name, rest)
	}

	for _, attr := range def.RequiredAttributes() {
		if rest.Attributes.Has(attr.Name) {
			continue
		}
		required := true
		restr := &profile.AttributeRestriction{Required: &required}
		if len(attr.EnumValues) > 0 {
			restr.Values = append([]string(nil), attr.EnumValues...)
		}
		rest.Attributes.Set(attr.Name, restr)
	}

	for _, child := range def.RequiredChildren() {
		if def.InExclusiveChoice(child.Name) {
			// Exclusive alternatives are alternatives, not ordinary
			// children; they live under the nested choice sub-map.
			if !rest.Choice.Has(child.Name) {
				rest.Choice.Set(child.Name, profile.ChildOf(child.Occurs))
			}
		} else if !rest.Children.Has(child.Name) {
			rest.Children.Set(child.Name, profile.ChildOf(child.Occurs))
		}
		expandInto(doc, child.Name, model, visited)
	}
}

// ensureRoot lists every declared document type as a required child of the
// universal root and keeps the root first in the elements map for
// readability.
func ensureRoot(doc *profile.Document, root string, model *schema.Model) {
	rest, exists := doc.Elements.Get(root)
	if !exists || rest == nil {
		rest = profile.NewElementRestriction()
		doc.Elements.Set(root, rest)
	}
	for _, dt := range doc.DocumentTypes {
		if !rest.Children.Has(dt) {
			rest.Children.Set(dt, profile.ChildOf(schema.Occurs{Min: 1, Max: 1}))
		}
	}
	doc.Elements.MoveToFront(root)
}
