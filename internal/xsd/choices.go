package xsd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// choiceExtractor turns the choice particles of a complex type into
// schema.ChoiceGroup values. Group references inside branches are flattened
// through the group resolver so branch membership is always a plain set of
// element names.
type choiceExtractor struct {
	resolver *groupResolver
	log      *slog.Logger
}

// extract scans a type's content model for choice particles and builds one
// ChoiceGroup per particle found. The scan descends through sequence/all
// wrappers but not into a choice particle itself; nested choices contribute
// a branch to their parent rather than a group of their own.
func (x *choiceExtractor) extract(typeName string, particles []*xsdParticle) []schema.ChoiceGroup {
	var found []xsdParticle
	for _, p := range particles {
		found = append(found, scanChoices(*p)...)
	}
	var out []schema.ChoiceGroup
	for i, particle := range found {
		group := x.buildGroup(fmt.Sprintf("%s:choice_%d", typeName, i), particle)
		if len(group.Branches) == 0 {
			continue
		}
		out = append(out, group)
	}
	return out
}

// scanChoices collects choice particles at the current content-model level.
func scanChoices(p xsdParticle) []xsdParticle {
	switch p.Kind {
	case kindChoice:
		return []xsdParticle{p}
	case kindSequence, kindAll:
		var out []xsdParticle
		for _, item := range p.Items {
			out = append(out, scanChoices(item)...)
		}
		return out
	default:
		return nil
	}
}

func (x *choiceExtractor) buildGroup(id string, particle xsdParticle) schema.ChoiceGroup {
	group := schema.ChoiceGroup{ID: id, Occurs: particle.occurs()}
	for _, item := range particle.Items {
		branch, ok := x.buildBranch(item)
		if !ok {
			continue
		}
		branch.ID = fmt.Sprintf("branch_%d", len(group.Branches))
		group.Branches = append(group.Branches, branch)
	}
	return group
}

func (x *choiceExtractor) buildBranch(item xsdParticle) (schema.ChoiceBranch, bool) {
	switch item.Kind {
	case kindElement:
		name := item.elementName()
		if name == "" {
			return schema.ChoiceBranch{}, false
		}
		return schema.ChoiceBranch{Label: name, Elements: []string{name}}, true
	case kindGroup:
		if item.Ref == "" {
			return schema.ChoiceBranch{}, false
		}
		name := localName(item.Ref)
		elements := x.resolver.resolve(name)
		if len(elements) == 0 {
			x.log.Warn("choice branch group resolved to no elements", "group", name)
			return schema.ChoiceBranch{}, false
		}
		return schema.ChoiceBranch{Label: name, Elements: elements}, true
	case kindSequence, kindChoice:
		elements := dedupeNames(x.reachableElements(item))
		if len(elements) == 0 {
			return schema.ChoiceBranch{}, false
		}
		return schema.ChoiceBranch{Label: branchLabel(item), Elements: elements}, true
	default:
		// Wildcards are irrelevant to profile validation.
		return schema.ChoiceBranch{}, false
	}
}

// reachableElements unions everything reachable within a nested particle.
func (x *choiceExtractor) reachableElements(p xsdParticle) []string {
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
		return x.resolver.resolve(localName(p.Ref))
	case kindSequence, kindChoice, kindAll:
		var out []string
		for _, item := range p.Items {
			out = append(out, x.reachableElements(item)...)
		}
		return out
	default:
		return nil
	}
}

// branchLabel names a nested sequence/choice branch after its direct
// constituents. The label is documentation only; membership is what counts.
func branchLabel(p xsdParticle) string {
	var parts []string
	for _, item := range p.Items {
		switch item.Kind {
		case kindElement:
			if name := item.elementName(); name != "" {
				parts = append(parts, name)
			}
		case kindGroup:
			if item.Ref != "" {
				parts = append(parts, localName(item.Ref))
			}
		case kindSequence, kindChoice:
			if nested := branchLabel(item); nested != "" {
				parts = append(parts, nested)
			}
		}
	}
	return strings.Join(parts, " + ")
}
