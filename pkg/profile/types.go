// Package profile parses and serializes application profile documents: YAML
// files that restrict the Akoma Ntoso schema to a project-specific subset.
// The package is deliberately schema-blind; cross-checking a profile against
// the schema model is the validation pipeline's job.
package profile

import (
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// Document is the typed form of a profile YAML file.
type Document struct {
	Name        string
	Version     string
	Description string
	// DocumentTypes lists the element names that may appear as children of
	// the schema's universal root.
	DocumentTypes []string
	// Elements maps element name to its restriction; insertion order is
	// significant for serialization.
	Elements *OrderedMap[*ElementRestriction]

	raw *yaml.Node
}

// NewDocument returns an empty profile document.
func NewDocument() *Document {
	return &Document{Elements: NewOrderedMap[*ElementRestriction]()}
}

// Raw exposes the retained YAML mapping node of the "profile" key, when the
// document was built by Parse. Shape-checking rules walk it to report
// irregularities the lenient parser tolerated.
func (d *Document) Raw() *yaml.Node {
	return d.raw
}

// ElementRestriction narrows a single element. A nil or empty restriction
// means "permitted, no narrowing beyond existence".
type ElementRestriction struct {
	Attributes *OrderedMap[*AttributeRestriction]
	Children   *OrderedMap[*Child]
	// Choice holds the exclusive-choice sub-map nested under children. Its
	// members are alternatives; declaring several is not branch mixing.
	Choice    *OrderedMap[*Child]
	Structure []string
}

// NewElementRestriction returns a restriction with empty collections.
func NewElementRestriction() *ElementRestriction {
	return &ElementRestriction{
		Attributes: NewOrderedMap[*AttributeRestriction](),
		Children:   NewOrderedMap[*Child](),
		Choice:     NewOrderedMap[*Child](),
	}
}

// Empty reports whether the restriction narrows anything at all.
func (r *ElementRestriction) Empty() bool {
	if r == nil {
		return true
	}
	return r.Attributes.Len() == 0 && r.Children.Len() == 0 && r.Choice.Len() == 0 && len(r.Structure) == 0
}

// ChildNames returns every element name the restriction references as a
// child, ordinary children first, then exclusive-choice members.
func (r *ElementRestriction) ChildNames() []string {
	if r == nil {
		return nil
	}
	out := r.Children.Keys()
	return append(out, r.Choice.Keys()...)
}

// Child is one entry of a children (or choice) map. A nil Occurs defers to
// the schema's own cardinality; Raw preserves the cardinality text exactly
// as the author wrote it.
type Child struct {
	Raw    string
	Occurs *schema.Occurs
}

// ChildOf builds a Child pinned to the given cardinality.
func ChildOf(occurs schema.Occurs) *Child {
	return &Child{Raw: occurs.String(), Occurs: &occurs}
}

// AttributeRestriction narrows a single attribute. Required distinguishes
// "not stated" (nil) from an explicit true/false; Values optionally narrows
// the schema's enumeration.
type AttributeRestriction struct {
	Required *bool
	Values   []string
}
