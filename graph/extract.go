package graph

import (
	"iter"
	"regexp"
)

// A single alternation keeps matches in source order regardless of which
// import form they use. The alternatives cover, in turn:
//   - static imports, with or without bindings: import x from "y", import "y"
//   - re-exports: export { a } from "y", export * from "y"
//   - call forms: require("y") and dynamic import("y")
//
// Compiled once; read-only after init, safe for concurrent use.
var specifierPattern = regexp.MustCompile(
	`import\s+(?:[\w$*{},\s]+from\s+)?["']([^"']+)["']` +
		`|export\s+[\w$*{},\s]+from\s+["']([^"']+)["']` +
		`|(?:require|import)\s*\(\s*["']([^"']+)["']\s*\)`)

// ExtractSpecifiers scans source text for import/require-style declarations
// and yields each quoted module specifier in discovery order. Matching is
// lexical, not a parse: malformed input yields fewer specifiers, never an
// error.
func ExtractSpecifiers(source string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, m := range specifierPattern.FindAllStringSubmatch(source, -1) {
			spec := m[1]
			if spec == "" {
				spec = m[2]
			}
			if spec == "" {
				spec = m[3]
			}
			if !yield(spec) {
				return
			}
		}
	}
}
