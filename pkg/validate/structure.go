package validate

import (
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-aknprofile/pkg/diag"
	"github.com/goliatone/go-aknprofile/pkg/profile"
	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// structureRule checks the YAML shape of the profile against the expected
// grammar, independent of schema content. It walks the raw node the lenient
// parser retained, so irregularities the parser tolerated still surface.
type structureRule struct{}

func (structureRule) ID() string { return "structure" }

var profileKeys = map[string]bool{
	"name":          true,
	"version":       true,
	"description":   true,
	"documentTypes": true,
	"elements":      true,
}

var restrictionKeys = map[string]bool{
	"attributes": true,
	"children":   true,
	"structure":  true,
}

var attributeKeys = map[string]bool{
	"required": true,
	"values":   true,
}

func (structureRule) Check(doc *profile.Document, _ *schema.Model, _ profile.LineIndex) []diag.Error {
	root := doc.Raw()
	if root == nil {
		return nil
	}
	var errs []diag.Error
	add := func(e diag.Error) { errs = append(errs, e) }

	eachEntry(root, func(key string, value *yaml.Node) {
		path := "profile." + key
		if !profileKeys[key] {
			add(diag.Warnf("structure.unknown-key", path, "unknown profile key %q", key))
			return
		}
		switch key {
		case "name", "version", "description":
			if value.Kind != yaml.ScalarNode {
				add(diag.Errorf("structure.invalid-type", path, "%q must be a string", key))
			}
		case "documentTypes":
			if value.Kind != yaml.SequenceNode {
				add(diag.Errorf("structure.invalid-type", path, "%q must be a list of element names", key))
				return
			}
			for _, item := range value.Content {
				if item.Kind != yaml.ScalarNode {
					add(diag.Errorf("structure.invalid-type", path, "document type entries must be strings"))
				}
			}
		case "elements":
			if isNullNode(value) {
				return
			}
			if value.Kind != yaml.MappingNode {
				add(diag.Errorf("structure.invalid-type", path, "%q must be a mapping of element names", key))
				return
			}
			eachEntry(value, func(name string, rest *yaml.Node) {
				errs = append(errs, checkRestriction(elementPath(name), rest)...)
			})
		}
	})
	return errs
}

func checkRestriction(path string, node *yaml.Node) []diag.Error {
	if isNullNode(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return []diag.Error{diag.Errorf("structure.invalid-type", path,
			"an element restriction must be a mapping or null")}
	}
	var errs []diag.Error
	eachEntry(node, func(key string, value *yaml.Node) {
		keyPath := path + "." + key
		if !restrictionKeys[key] {
			errs = append(errs, diag.Warnf("structure.unknown-key", keyPath, "unknown restriction key %q", key))
			return
		}
		switch key {
		case "attributes":
			if value.Kind != yaml.MappingNode {
				errs = append(errs, diag.Errorf("structure.invalid-type", keyPath, "%q must be a mapping", key))
				return
			}
			eachEntry(value, func(attrName string, attrNode *yaml.Node) {
				errs = append(errs, checkAttribute(keyPath+"."+attrName, attrNode)...)
			})
		case "children":
			if value.Kind != yaml.MappingNode {
				errs = append(errs, diag.Errorf("structure.invalid-type", keyPath, "%q must be a mapping", key))
				return
			}
			eachEntry(value, func(childName string, childNode *yaml.Node) {
				childPath := keyPath + "." + childName
				if childName == "choice" {
					if childNode.Kind != yaml.MappingNode {
						errs = append(errs, diag.Errorf("structure.invalid-type", childPath,
							"the choice sub-map must be a mapping"))
						return
					}
					eachEntry(childNode, func(memberName string, memberNode *yaml.Node) {
						errs = append(errs, checkCardinality(childPath+"."+memberName, memberNode)...)
					})
					return
				}
				errs = append(errs, checkCardinality(childPath, childNode)...)
			})
		case "structure":
			if value.Kind != yaml.SequenceNode {
				errs = append(errs, diag.Errorf("structure.invalid-type", keyPath, "%q must be a list", key))
			}
		}
	})
	return errs
}

func checkAttribute(path string, node *yaml.Node) []diag.Error {
	if isNullNode(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return []diag.Error{diag.Errorf("structure.invalid-type", path,
			"an attribute restriction must be a mapping or null")}
	}
	var errs []diag.Error
	eachEntry(node, func(key string, value *yaml.Node) {
		keyPath := path + "." + key
		if !attributeKeys[key] {
			errs = append(errs, diag.Warnf("structure.unknown-key", keyPath, "unknown attribute key %q", key))
			return
		}
		switch key {
		case "required":
			if value.Kind != yaml.ScalarNode || (value.Value != "true" && value.Value != "false") {
				errs = append(errs, diag.Errorf("structure.invalid-type", keyPath, "%q must be true or false", key))
			}
		case "values":
			if value.Kind != yaml.SequenceNode {
				errs = append(errs, diag.Errorf("structure.invalid-type", keyPath, "%q must be a list of values", key))
			}
		}
	})
	return errs
}

func checkCardinality(path string, node *yaml.Node) []diag.Error {
	if isNullNode(node) {
		return nil
	}
	if node.Kind != yaml.ScalarNode {
		return []diag.Error{diag.Errorf("structure.invalid-type", path,
			"a child entry must be a cardinality string or null")}
	}
	if _, err := schema.ParseOccurs(node.Value); err != nil {
		return []diag.Error{diag.Errorf("structure.invalid-cardinality", path,
			"cardinality %q is not in min..max form", node.Value)}
	}
	return nil
}

func eachEntry(node *yaml.Node, visit func(key string, value *yaml.Node)) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		visit(node.Content[i].Value, node.Content[i+1])
	}
}

func isNullNode(node *yaml.Node) bool {
	return node == nil || node.Tag == "!!null"
}
