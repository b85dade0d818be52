package xsd

import (
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// elementExtractor assembles the final per-element definitions, resolving
// each top-level element's type into attribute and child lists and wiring in
// the choice groups extracted for that type.
type elementExtractor struct {
	types      map[string]*xsdComplexType
	simples    map[string]*xsdSimpleType
	attrGroups map[string]*xsdAttributeGroup
	resolver   *groupResolver
	choices    *choiceExtractor
	sanitize   *bluemonday.Policy
	log        *slog.Logger
}

func newElementExtractor(doc *xsdSchema, resolver *groupResolver, log *slog.Logger) *elementExtractor {
	x := &elementExtractor{
		types:      make(map[string]*xsdComplexType, len(doc.ComplexTypes)),
		simples:    make(map[string]*xsdSimpleType, len(doc.SimpleTypes)),
		attrGroups: make(map[string]*xsdAttributeGroup, len(doc.AttributeGroups)),
		resolver:   resolver,
		choices:    &choiceExtractor{resolver: resolver, log: log},
		sanitize:   bluemonday.StrictPolicy(),
		log:        log,
	}
	for i := range doc.ComplexTypes {
		ct := &doc.ComplexTypes[i]
		if ct.Name != "" {
			x.types[ct.Name] = ct
		}
	}
	for i := range doc.SimpleTypes {
		st := &doc.SimpleTypes[i]
		if st.Name != "" {
			x.simples[st.Name] = st
		}
	}
	for i := range doc.AttributeGroups {
		ag := &doc.AttributeGroups[i]
		if ag.Name != "" {
			x.attrGroups[ag.Name] = ag
		}
	}
	return x
}

// extract builds an ElementDef for every named top-level element. Malformed
// declarations are logged and skipped, never fatal.
func (x *elementExtractor) extract(elements []xsdElement) []*schema.ElementDef {
	var out []*schema.ElementDef
	for i := range elements {
		el := &elements[i]
		if el.Name == "" {
			x.log.Warn("skipping top-level element without a name")
			continue
		}
		out = append(out, x.buildElement(el))
	}
	return out
}

func (x *elementExtractor) buildElement(el *xsdElement) *schema.ElementDef {
	def := &schema.ElementDef{
		Name: el.Name,
		Doc:  x.documentation(el.Doc),
	}
	ct := el.ComplexType
	typeName := el.Name
	if ct == nil && el.Type != "" {
		typeName = localName(el.Type)
		ct = x.types[typeName]
		if ct == nil {
			// Simple-typed elements carry no attributes or children.
			if _, simple := x.simples[typeName]; !simple && !strings.Contains(el.Type, ":") {
				x.log.Warn("element type not found, treating as empty", "element", el.Name, "type", el.Type)
			}
			return def
		}
	}
	if ct == nil {
		return def
	}
	if ct.Name != "" {
		typeName = ct.Name
	}

	visited := make(map[string]bool)
	attrs, children, particles := x.flattenType(ct, visited)
	def.Attributes = attrs
	def.Children = children
	def.ChoiceGroups = x.choices.extract(typeName, particles)
	return def
}

// flattenType resolves a complex type into attribute defs, child refs, and
// the content-model particles of the whole derivation chain. Extension bases
// contribute first so derived declarations read in schema order.
func (x *elementExtractor) flattenType(ct *xsdComplexType, visited map[string]bool) ([]schema.AttributeDef, []schema.ChildRef, []*xsdParticle) {
	if ct.Name != "" {
		if visited[ct.Name] {
			x.log.Warn("cyclic type derivation, cutting branch", "type", ct.Name)
			return nil, nil, nil
		}
		visited[ct.Name] = true
	}

	var (
		attrs     []schema.AttributeDef
		children  []schema.ChildRef
		particles []*xsdParticle
	)

	appendDerivation := func(d *xsdDerivation) {
		if d == nil {
			return
		}
		if base := localName(d.Base); base != "" {
			if baseType, ok := x.types[base]; ok {
				baseAttrs, baseChildren, baseParticles := x.flattenType(baseType, visited)
				attrs = append(attrs, baseAttrs...)
				children = append(children, baseChildren...)
				particles = append(particles, baseParticles...)
			}
		}
		for _, p := range d.particles() {
			particles = append(particles, p)
			children = append(children, x.collectChildren(*p, false)...)
		}
		attrs = append(attrs, x.resolveAttributes(d.Attributes, d.AttrGroups, make(map[string]bool))...)
	}

	if ct.ComplexContent != nil {
		appendDerivation(ct.ComplexContent.Extension)
		appendDerivation(ct.ComplexContent.Restriction)
	}
	if ct.SimpleContent != nil && ct.SimpleContent.Extension != nil {
		attrs = append(attrs, x.resolveAttributes(ct.SimpleContent.Extension.Attributes, ct.SimpleContent.Extension.AttrGroups, make(map[string]bool))...)
	}

	for _, p := range ct.particles() {
		particles = append(particles, p)
		children = append(children, x.collectChildren(*p, false)...)
	}
	attrs = append(attrs, x.resolveAttributes(ct.Attributes, ct.AttrGroups, make(map[string]bool))...)

	return dedupeAttrs(attrs), dedupeChildren(children), particles
}

// collectChildren walks a content-model particle and returns one ChildRef
// per element reachable through it. repeated is true when an enclosing
// particle may occur more than once, which opens every inner upper bound.
// Members of an optional choice (minOccurs 0) become individually optional;
// members of a mandatory choice keep their own minimum, expressing "required
// within its branch".
func (x *elementExtractor) collectChildren(p xsdParticle, repeated bool) []schema.ChildRef {
	repeats := repeated || p.occurs().Max != 1

	switch p.Kind {
	case kindElement:
		name := p.elementName()
		if name == "" {
			return nil
		}
		occ := p.occurs()
		if repeated || occ.Max != 1 {
			occ.Max = schema.Unbounded
		}
		return []schema.ChildRef{{Name: name, Occurs: occ}}
	case kindGroup:
		if p.Ref == "" {
			return nil
		}
		var out []schema.ChildRef
		for _, name := range x.resolver.resolve(localName(p.Ref)) {
			out = append(out, schema.ChildRef{Name: name, Occurs: schema.Occurs{Min: 0, Max: schema.Unbounded}})
		}
		return out
	case kindSequence, kindAll:
		var out []schema.ChildRef
		for _, item := range p.Items {
			out = append(out, x.collectChildren(item, repeats)...)
		}
		return out
	case kindChoice:
		optional := p.occurs().Min == 0
		var out []schema.ChildRef
		for _, item := range p.Items {
			for _, child := range x.collectChildren(item, repeats) {
				if optional {
					child.Occurs.Min = 0
				}
				out = append(out, child)
			}
		}
		return out
	default:
		return nil
	}
}

// resolveAttributes expands direct attribute declarations and attribute
// group references into AttributeDef values. Group references recurse with
// cycle protection.
func (x *elementExtractor) resolveAttributes(attrs []xsdAttribute, groups []xsdAttrGroupRef, visited map[string]bool) []schema.AttributeDef {
	var out []schema.AttributeDef
	for i := range attrs {
		attr := &attrs[i]
		name := attr.Name
		if name == "" && attr.Ref != "" {
			name = localName(attr.Ref)
		}
		if name == "" {
			x.log.Warn("skipping attribute without a name")
			continue
		}
		def := schema.AttributeDef{
			Name:     name,
			Required: attr.Use == "required",
		}
		x.applyFacets(&def, attr)
		out = append(out, def)
	}
	for _, ref := range groups {
		if ref.Ref == "" {
			continue
		}
		name := localName(ref.Ref)
		if visited[name] {
			x.log.Warn("cyclic attribute group reference", "attributeGroup", name)
			continue
		}
		visited[name] = true
		group, ok := x.attrGroups[name]
		if !ok {
			x.log.Warn("unresolved attribute group reference", "attributeGroup", name)
			continue
		}
		out = append(out, x.resolveAttributes(group.Attributes, group.AttrGroups, visited)...)
	}
	return out
}

// applyFacets copies enumeration and pattern facets from the attribute's
// simple type, whether inline or named.
func (x *elementExtractor) applyFacets(def *schema.AttributeDef, attr *xsdAttribute) {
	st := attr.SimpleType
	if st == nil && attr.Type != "" {
		st = x.simples[localName(attr.Type)]
	}
	if st == nil || st.Restriction == nil {
		return
	}
	for _, e := range st.Restriction.Enumerations {
		if e.Value != "" {
			def.EnumValues = append(def.EnumValues, e.Value)
		}
	}
	if len(st.Restriction.Patterns) > 0 {
		def.Pattern = st.Restriction.Patterns[0].Value
	}
}

// documentation joins annotation text and strips any markup the schema
// authors embedded in it.
func (x *elementExtractor) documentation(docs []string) string {
	if len(docs) == 0 {
		return ""
	}
	joined := strings.TrimSpace(strings.Join(docs, "\n"))
	if joined == "" {
		return ""
	}
	return strings.TrimSpace(x.sanitize.Sanitize(joined))
}

func dedupeAttrs(attrs []schema.AttributeDef) []schema.AttributeDef {
	if len(attrs) < 2 {
		return attrs
	}
	seen := make(map[string]bool, len(attrs))
	out := attrs[:0:0]
	for _, a := range attrs {
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		out = append(out, a)
	}
	return out
}

func dedupeChildren(children []schema.ChildRef) []schema.ChildRef {
	if len(children) < 2 {
		return children
	}
	seen := make(map[string]bool, len(children))
	out := children[:0:0]
	for _, c := range children {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c)
	}
	return out
}
