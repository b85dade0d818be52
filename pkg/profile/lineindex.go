package profile

import "strings"

// LineIndex maps dotted profile paths to one-based line numbers. It is built
// by a plain text scan that tracks key indentation, not by walking the YAML
// AST, so it is best-effort metadata only and never load-bearing.
type LineIndex map[string]int

// NewLineIndex scans raw profile text and records the first line each
// mapping key appears on, keyed by its dotted path.
func NewLineIndex(text []byte) LineIndex {
	idx := make(LineIndex)
	type frame struct {
		indent int
		key    string
	}
	var stack []frame

	for lineNo, line := range strings.Split(string(text), "\n") {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") {
			continue
		}
		key, _, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		key = strings.Trim(strings.TrimSpace(key), `"'`)
		if key == "" || strings.ContainsAny(key, " \t") {
			continue
		}
		indent := len(line) - len(trimmed)
		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, frame{indent: indent, key: key})

		parts := make([]string, len(stack))
		for i, f := range stack {
			parts[i] = f.key
		}
		path := strings.Join(parts, ".")
		if _, seen := idx[path]; !seen {
			idx[path] = lineNo + 1
		}
	}
	return idx
}

// Lookup resolves a dotted path to a line number, falling back to the
// closest known ancestor. Zero means unknown.
func (idx LineIndex) Lookup(path string) int {
	for path != "" {
		if line, ok := idx[path]; ok {
			return line
		}
		dot := strings.LastIndex(path, ".")
		if dot < 0 {
			return 0
		}
		path = path[:dot]
	}
	return 0
}
