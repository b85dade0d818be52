package profile

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-aknprofile/pkg/diag"
	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// Rule ids reported by the parser. Parse-family diagnostics short-circuit
// the validation pipeline: a document that cannot be understood at all is
// never cross-checked against the schema.
const (
	RuleInvalidYAML     = "parse.invalid-yaml"
	RuleMissingProfile  = "parse.missing-profile"
	RuleInvalidElements = "parse.invalid-elements"
)

// Parse turns profile YAML text into a Document. Structural problems that
// prevent building a document at all are returned as parse-family
// diagnostics with a nil document; finer irregularities are tolerated here
// and left on the retained raw node for the structure rule to report.
// Empty input yields an empty, valid document.
func Parse(text []byte) (*Document, []diag.Error) {
	if strings.TrimSpace(string(text)) == "" {
		return NewDocument(), nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(text, &root); err != nil {
		return nil, []diag.Error{diag.Errorf(RuleInvalidYAML, "profile", "invalid YAML: %v", err)}
	}
	top := documentMapping(&root)
	if top == nil {
		return nil, []diag.Error{diag.Errorf(RuleMissingProfile, "profile", "document is not a YAML mapping")}
	}
	profileNode := mappingValue(top, "profile")
	if profileNode == nil {
		return nil, []diag.Error{diag.Errorf(RuleMissingProfile, "profile", "top-level %q key is missing", "profile")}
	}
	if profileNode.Kind != yaml.MappingNode {
		return nil, []diag.Error{diag.Errorf(RuleMissingProfile, "profile", "%q must be a mapping", "profile")}
	}

	doc := NewDocument()
	doc.raw = profileNode
	doc.Name = scalarValue(mappingValue(profileNode, "name"))
	doc.Version = scalarValue(mappingValue(profileNode, "version"))
	doc.Description = scalarValue(mappingValue(profileNode, "description"))

	if node := mappingValue(profileNode, "documentTypes"); node != nil && node.Kind == yaml.SequenceNode {
		for _, item := range node.Content {
			if value := scalarValue(item); value != "" {
				doc.DocumentTypes = append(doc.DocumentTypes, value)
			}
		}
	}

	elementsNode := mappingValue(profileNode, "elements")
	if elementsNode != nil && !isNull(elementsNode) {
		if elementsNode.Kind != yaml.MappingNode {
			return nil, []diag.Error{diag.Errorf(RuleInvalidElements, "profile.elements", "%q must be a mapping of element names", "elements")}
		}
		forEachEntry(elementsNode, func(key string, value *yaml.Node) {
			doc.Elements.Set(key, parseRestriction(value))
		})
	}

	return doc, nil
}

// parseRestriction reads one element restriction. Null stands for "no
// narrowing"; shapes the grammar does not know are skipped, not rejected.
func parseRestriction(node *yaml.Node) *ElementRestriction {
	rest := NewElementRestriction()
	if node == nil || node.Kind != yaml.MappingNode {
		return rest
	}
	forEachEntry(node, func(key string, value *yaml.Node) {
		switch key {
		case "attributes":
			forEachEntry(value, func(attrName string, attrNode *yaml.Node) {
				rest.Attributes.Set(attrName, parseAttribute(attrNode))
			})
		case "children":
			forEachEntry(value, func(childName string, childNode *yaml.Node) {
				if childName == "choice" {
					forEachEntry(childNode, func(memberName string, memberNode *yaml.Node) {
						rest.Choice.Set(memberName, parseChild(memberNode))
					})
					return
				}
				rest.Children.Set(childName, parseChild(childNode))
			})
		case "structure":
			if value != nil && value.Kind == yaml.SequenceNode {
				for _, item := range value.Content {
					if entry := scalarValue(item); entry != "" {
						rest.Structure = append(rest.Structure, entry)
					}
				}
			}
		}
	})
	return rest
}

func parseAttribute(node *yaml.Node) *AttributeRestriction {
	attr := &AttributeRestriction{}
	if node == nil || node.Kind != yaml.MappingNode {
		return attr
	}
	forEachEntry(node, func(key string, value *yaml.Node) {
		switch key {
		case "required":
			if value != nil && value.Kind == yaml.ScalarNode {
				required := value.Value == "true"
				attr.Required = &required
			}
		case "values":
			if value != nil && value.Kind == yaml.SequenceNode {
				for _, item := range value.Content {
					if entry := scalarValue(item); entry != "" {
						attr.Values = append(attr.Values, entry)
					}
				}
			}
		}
	})
	return attr
}

func parseChild(node *yaml.Node) *Child {
	child := &Child{}
	if node == nil || node.Kind != yaml.ScalarNode || isNull(node) {
		return child
	}
	child.Raw = node.Value
	if occurs, err := schema.ParseOccurs(node.Value); err == nil {
		child.Occurs = &occurs
	}
	return child
}

// documentMapping unwraps a parsed document node down to its top mapping.
func documentMapping(root *yaml.Node) *yaml.Node {
	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}

// mappingValue returns the value node for a key of a mapping node.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// forEachEntry visits every key/value pair of a mapping node in order.
func forEachEntry(node *yaml.Node, visit func(key string, value *yaml.Node)) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		visit(node.Content[i].Value, node.Content[i+1])
	}
}

func scalarValue(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode || isNull(node) {
		return ""
	}
	return node.Value
}

func isNull(node *yaml.Node) bool {
	return node != nil && node.Tag == "!!null"
}
