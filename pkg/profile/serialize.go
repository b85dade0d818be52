package profile

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Marshal serializes a Document back to YAML. Key order follows insertion
// order throughout, and a readability pass inserts blank lines before major
// sections and before each element entry. The layout has no semantic effect.
func Marshal(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("profile: cannot marshal a nil document")
	}

	body := newMappingNode()
	if doc.Name != "" {
		appendEntry(body, "name", scalarNode(doc.Name))
	}
	if doc.Version != "" {
		appendEntry(body, "version", scalarNode(doc.Version))
	}
	if doc.Description != "" {
		appendEntry(body, "description", scalarNode(doc.Description))
	}
	if len(doc.DocumentTypes) > 0 {
		appendEntry(body, "documentTypes", sequenceNode(doc.DocumentTypes))
	}
	if doc.Elements != nil && doc.Elements.Len() > 0 {
		elements := newMappingNode()
		for _, name := range doc.Elements.Keys() {
			rest, _ := doc.Elements.Get(name)
			appendEntry(elements, name, restrictionNode(rest))
		}
		appendEntry(body, "elements", elements)
	}

	top := newMappingNode()
	appendEntry(top, "profile", body)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(top); err != nil {
		return nil, fmt.Errorf("profile: encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("profile: encode document: %w", err)
	}
	return insertBlankLines(buf.Bytes()), nil
}

func restrictionNode(rest *ElementRestriction) *yaml.Node {
	if rest.Empty() {
		return nullNode()
	}
	node := newMappingNode()
	if rest.Attributes.Len() > 0 {
		attrs := newMappingNode()
		for _, name := range rest.Attributes.Keys() {
			attr, _ := rest.Attributes.Get(name)
			appendEntry(attrs, name, attributeNode(attr))
		}
		appendEntry(node, "attributes", attrs)
	}
	if rest.Children.Len() > 0 || rest.Choice.Len() > 0 {
		children := newMappingNode()
		for _, name := range rest.Children.Keys() {
			child, _ := rest.Children.Get(name)
			appendEntry(children, name, childNode(child))
		}
		if rest.Choice.Len() > 0 {
			choice := newMappingNode()
			for _, name := range rest.Choice.Keys() {
				child, _ := rest.Choice.Get(name)
				appendEntry(choice, name, childNode(child))
			}
			appendEntry(children, "choice", choice)
		}
		appendEntry(node, "children", children)
	}
	if len(rest.Structure) > 0 {
		appendEntry(node, "structure", sequenceNode(rest.Structure))
	}
	return node
}

func attributeNode(attr *AttributeRestriction) *yaml.Node {
	if attr == nil || (attr.Required == nil && len(attr.Values) == 0) {
		return nullNode()
	}
	node := newMappingNode()
	if attr.Required != nil {
		appendEntry(node, "required", boolNode(*attr.Required))
	}
	if len(attr.Values) > 0 {
		appendEntry(node, "values", sequenceNode(attr.Values))
	}
	return node
}

func childNode(child *Child) *yaml.Node {
	if child == nil {
		return nullNode()
	}
	if child.Raw != "" {
		return scalarNode(child.Raw)
	}
	if child.Occurs != nil {
		return scalarNode(child.Occurs.String())
	}
	return nullNode()
}

func newMappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func appendEntry(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, scalarNode(key), value)
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func boolNode(value bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprintf("%t", value)}
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func sequenceNode(values []string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		node.Content = append(node.Content, scalarNode(v))
	}
	return node
}

// insertBlankLines separates the major profile sections and the individual
// element entries so hand-edited diffs stay readable.
func insertBlankLines(text []byte) []byte {
	lines := strings.Split(string(text), "\n")
	out := make([]string, 0, len(lines)+8)
	inElements := false
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			out = append(out, line)
			continue
		}
		indent := len(line) - len(trimmed)
		if indent == 2 {
			inElements = strings.HasPrefix(trimmed, "elements:")
		}
		sectionStart := indent == 2 &&
			(strings.HasPrefix(trimmed, "documentTypes:") || strings.HasPrefix(trimmed, "elements:"))
		elementStart := inElements && indent == 4 &&
			!strings.HasPrefix(trimmed, "-") && strings.Contains(trimmed, ":")
		if (sectionStart || elementStart) && len(out) > 0 && out[len(out)-1] != "" {
			out = append(out, "")
		}
		out = append(out, line)
	}
	return []byte(strings.Join(out, "\n"))
}
