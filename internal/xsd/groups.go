package xsd

import "log/slog"

// groupResolver flattens named model groups into the set of element names
// reachable through them. Each named group is resolved once and memoized;
// cyclic references are cut with a per-resolution visited set and logged
// instead of failing the ingestion.
type groupResolver struct {
	groups map[string]*xsdNamedGroup
	memo   map[string][]string
	log    *slog.Logger
}

func newGroupResolver(groups []xsdNamedGroup, log *slog.Logger) *groupResolver {
	r := &groupResolver{
		groups: make(map[string]*xsdNamedGroup, len(groups)),
		memo:   make(map[string][]string, len(groups)),
		log:    log,
	}
	for i := range groups {
		g := &groups[i]
		if g.Name == "" {
			continue
		}
		r.groups[g.Name] = g
	}
	return r
}

// resolve returns the element names reachable through the named group.
func (r *groupResolver) resolve(name string) []string {
	if cached, ok := r.memo[name]; ok {
		return cached
	}
	out := r.walk(name, make(map[string]bool))
	r.memo[name] = out
	return out
}

func (r *groupResolver) walk(name string, visited map[string]bool) []string {
	if visited[name] {
		r.log.Warn("cyclic group reference, cutting branch", "group", name)
		return nil
	}
	visited[name] = true
	group, ok := r.groups[name]
	if !ok {
		r.log.Warn("unresolved group reference", "group", name)
		return nil
	}
	var out []string
	for _, p := range group.particles() {
		out = append(out, r.walkParticle(*p, visited)...)
	}
	return dedupeNames(out)
}

// walkParticle collects element names below a particle, resolving nested
// group references recursively and descending through sequence/choice/all
// wrappers transparently.
func (r *groupResolver) walkParticle(p xsdParticle, visited map[string]bool) []string {
	switch p.Kind {
	case kindElement:
		if name := p.elementName(); name != "" {
			return []string{name}
		}
		return nil
	case kindGroup:
		if p.Ref == "" {
			return nil
		}
		return r.walk(localName(p.Ref), visited)
	case kindSequence, kindChoice, kindAll:
		var out []string
		for _, item := range p.Items {
			out = append(out, r.walkParticle(item, visited)...)
		}
		return out
	default:
		// Wildcards carry no element names a profile could reference.
		return nil
	}
}

func dedupeNames(names []string) []string {
	if len(names) < 2 {
		return names
	}
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
