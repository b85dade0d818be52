package schema

import "sort"

// Model is the queryable schema model produced by ingestion. It is immutable
// once built; callers share a single instance freely across goroutines.
type Model struct {
	root     string
	elements map[string]*ElementDef
}

// NewModel assembles a Model from element definitions. root names the
// schema's universal root element (the one every document starts with).
// Later definitions with a duplicate name are ignored.
func NewModel(root string, elements []*ElementDef) *Model {
	m := &Model{
		root:     root,
		elements: make(map[string]*ElementDef, len(elements)),
	}
	for _, def := range elements {
		if def == nil || def.Name == "" {
			continue
		}
		if _, exists := m.elements[def.Name]; exists {
			continue
		}
		m.elements[def.Name] = def
	}
	return m
}

// Root returns the name of the schema's universal root element.
func (m *Model) Root() string {
	if m == nil {
		return ""
	}
	return m.root
}

// Element looks up an element definition by name.
func (m *Model) Element(name string) (*ElementDef, bool) {
	if m == nil {
		return nil, false
	}
	def, ok := m.elements[name]
	return def, ok
}

// Has reports whether the schema declares the named element.
func (m *Model) Has(name string) bool {
	_, ok := m.Element(name)
	return ok
}

// Len returns the number of element definitions.
func (m *Model) Len() int {
	if m == nil {
		return 0
	}
	return len(m.elements)
}

// Names returns every declared element name in sorted order.
func (m *Model) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.elements))
	for name := range m.elements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequiredClosure walks the required-child chain starting at the named
// element and returns every element reachable through it, including the
// start itself when declared. The walk is cycle-safe.
func (m *Model) RequiredClosure(start string) []string {
	if m == nil || !m.Has(start) {
		return nil
	}
	visited := make(map[string]bool)
	var out []string
	var walk func(name string)
	walk = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		def, ok := m.elements[name]
		if !ok {
			return
		}
		out = append(out, name)
		for _, child := range def.Children {
			if child.Required() {
				walk(child.Name)
			}
		}
	}
	walk(start)
	return out
}
