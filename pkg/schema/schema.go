// Package schema holds the in-memory model of the Akoma Ntoso XML schema:
// every element, its attributes, its children with cardinalities, and the
// choice groups that constrain its content. The model is built once by the
// ingestion layer and never mutated afterwards, so it is safe to share
// between any number of concurrent readers.
package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Unbounded marks an Occurs.Max with no upper limit.
const Unbounded = -1

// Occurs captures a minOccurs/maxOccurs pair. Max is Unbounded when the
// schema places no upper limit on repetitions.
type Occurs struct {
	Min int
	Max int
}

// String renders the cardinality in the "min..max" profile notation, with
// "*" standing in for an unbounded maximum.
func (o Occurs) String() string {
	if o.Max == Unbounded {
		return fmt.Sprintf("%d..*", o.Min)
	}
	return fmt.Sprintf("%d..%d", o.Min, o.Max)
}

// UnboundedMax reports whether the upper bound is open.
func (o Occurs) UnboundedMax() bool {
	return o.Max == Unbounded
}

// Within reports whether o is equal to or tighter than outer. A profile
// cardinality is only legal when it stays within the schema's bounds.
func (o Occurs) Within(outer Occurs) bool {
	if o.Min < outer.Min {
		return false
	}
	if outer.Max == Unbounded {
		return true
	}
	if o.Max == Unbounded {
		return false
	}
	return o.Max <= outer.Max
}

// ParseOccurs parses the "min..max" notation used by profile documents.
// The maximum may be "*" for unbounded.
func ParseOccurs(raw string) (Occurs, error) {
	trimmed := strings.TrimSpace(raw)
	lo, hi, ok := strings.Cut(trimmed, "..")
	if !ok {
		return Occurs{}, fmt.Errorf("schema: cardinality %q is not in min..max form", raw)
	}
	min, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil || min < 0 {
		return Occurs{}, fmt.Errorf("schema: cardinality %q has an invalid minimum", raw)
	}
	hi = strings.TrimSpace(hi)
	if hi == "*" {
		return Occurs{Min: min, Max: Unbounded}, nil
	}
	max, err := strconv.Atoi(hi)
	if err != nil || max < min {
		return Occurs{}, fmt.Errorf("schema: cardinality %q has an invalid maximum", raw)
	}
	return Occurs{Min: min, Max: max}, nil
}

// AttributeDef describes a single attribute as the schema declares it.
type AttributeDef struct {
	Name string
	// Required is true when the schema marks the attribute use="required".
	Required bool
	// EnumValues lists the permitted values when the attribute type is an
	// enumeration; empty means the value space is unconstrained.
	EnumValues []string
	// Pattern holds the regex facet of the attribute type, if any.
	Pattern string
}

// AllowsValue reports whether the schema's enumeration (if any) permits v.
func (a AttributeDef) AllowsValue(v string) bool {
	if len(a.EnumValues) == 0 {
		return true
	}
	for _, e := range a.EnumValues {
		if e == v {
			return true
		}
	}
	return false
}

// ChildRef names a child element together with its schema cardinality.
type ChildRef struct {
	Name   string
	Occurs Occurs
}

// Required reports whether the schema demands at least one occurrence.
func (c ChildRef) Required() bool {
	return c.Occurs.Min >= 1
}

// ChoiceBranch is one alternative of a choice particle. Elements holds every
// element name reachable through the branch, resolved recursively through any
// nested group references.
type ChoiceBranch struct {
	ID       string
	Label    string
	Elements []string
}

// Contains reports whether the branch can produce the named element.
func (b ChoiceBranch) Contains(name string) bool {
	for _, e := range b.Elements {
		if e == name {
			return true
		}
	}
	return false
}

// ChoiceGroup captures a choice particle found in an element's content model.
// Branch order follows the schema document.
type ChoiceGroup struct {
	// ID is scoped to the owning type, e.g. "bodyType:choice_0".
	ID       string
	Occurs   Occurs
	Branches []ChoiceBranch
}

// Exclusive reports whether at most one branch may be used. A choice with
// maxOccurs > 1 is a free mix: any combination of branch elements is legal.
func (g ChoiceGroup) Exclusive() bool {
	return g.Occurs.Max == 1
}

// AllElements returns the union of every branch's element set, in branch
// order with duplicates removed.
func (g ChoiceGroup) AllElements() []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range g.Branches {
		for _, e := range b.Elements {
			if seen[e] {
				continue
			}
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether any branch can produce the named element.
func (g ChoiceGroup) Contains(name string) bool {
	for _, b := range g.Branches {
		if b.Contains(name) {
			return true
		}
	}
	return false
}

// BranchOf returns the first branch whose element set contains name.
func (g ChoiceGroup) BranchOf(name string) (ChoiceBranch, bool) {
	for _, b := range g.Branches {
		if b.Contains(name) {
			return b, true
		}
	}
	return ChoiceBranch{}, false
}

// ElementDef is the complete schema view of one element. Instances are built
// during ingestion and immutable afterwards.
type ElementDef struct {
	Name         string
	Doc          string
	Attributes   []AttributeDef
	Children     []ChildRef
	ChoiceGroups []ChoiceGroup
}

// Attribute looks up an attribute declaration by name.
func (e *ElementDef) Attribute(name string) (AttributeDef, bool) {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return AttributeDef{}, false
}

// Child looks up a child reference by name.
func (e *ElementDef) Child(name string) (ChildRef, bool) {
	for _, c := range e.Children {
		if c.Name == name {
			return c, true
		}
	}
	return ChildRef{}, false
}

// RequiredAttributes returns the attributes the schema marks required.
func (e *ElementDef) RequiredAttributes() []AttributeDef {
	var out []AttributeDef
	for _, a := range e.Attributes {
		if a.Required {
			out = append(out, a)
		}
	}
	return out
}

// RequiredChildren returns the children with a minimum occurrence of one or
// more, including members of exclusive choice groups.
func (e *ElementDef) RequiredChildren() []ChildRef {
	var out []ChildRef
	for _, c := range e.Children {
		if c.Required() {
			out = append(out, c)
		}
	}
	return out
}

// ExclusiveChoice returns the first exclusive choice group declared on the
// element's content model, if any.
func (e *ElementDef) ExclusiveChoice() (ChoiceGroup, bool) {
	for _, g := range e.ChoiceGroups {
		if g.Exclusive() {
			return g, true
		}
	}
	return ChoiceGroup{}, false
}

// InExclusiveChoice reports whether the named child belongs to any exclusive
// choice group of the element.
func (e *ElementDef) InExclusiveChoice(name string) bool {
	for _, g := range e.ChoiceGroups {
		if g.Exclusive() && g.Contains(name) {
			return true
		}
	}
	return false
}
