package cascade

import (
	"github.com/goliatone/go-aknprofile/pkg/profile"
	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// Collapse removes the named element from the profile together with every
// descendant that becomes orphaned: a child no remaining element still
// references. References to removed elements are stripped from the surviving
// restrictions, and a children map emptied by the stripping is dropped
// entirely. The removal set is derived from the profile alone; the model
// parameter exists for signature parity with Expand.
func Collapse(text []byte, element string, _ *schema.Model) []byte {
	doc, _ := profile.Parse(text)
	if doc == nil {
		return text
	}
	if _, ok := doc.Elements.Get(element); !ok {
		return text
	}

	toRemove := map[string]bool{element: true}
	collectOrphans(doc, element, toRemove)

	for _, name := range doc.Elements.Keys() {
		if toRemove[name] {
			continue
		}
		rest, _ := doc.Elements.Get(name)
		for removed := range toRemove {
			rest.Children.Delete(removed)
			rest.Choice.Delete(removed)
		}
	}
	for removed := range toRemove {
		doc.Elements.Delete(removed)
	}

	out, err := profile.Marshal(doc)
	if err != nil {
		return text
	}
	return out
}

// collectOrphans walks the children of a to-be-removed element and adds
// every child no surviving element still references, recursing into each
// newly orphaned child.
func collectOrphans(doc *profile.Document, name string, toRemove map[string]bool) {
	rest, ok := doc.Elements.Get(name)
	if !ok {
		return
	}
	for _, child := range rest.ChildNames() {
		if toRemove[child] {
			continue
		}
		if referencedOutside(doc, child, toRemove) {
			continue
		}
		toRemove[child] = true
		collectOrphans(doc, child, toRemove)
	}
}

// referencedOutside reports whether any element not already slated for
// removal still lists the child.
func referencedOutside(doc *profile.Document, child string, toRemove map[string]bool) bool {
	for _, name := range doc.Elements.Keys() {
		if toRemove[name] {
			continue
		}
		rest, _ := doc.Elements.Get(name)
		if rest.Children.Has(child) || rest.Choice.Has(child) {
			return true
		}
	}
	return false
}
