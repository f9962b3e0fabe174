package graph

import (
	"fmt"
	"sort"
	"strings"
)

// Orphan is a function unreached by traversal from any root: disconnected,
// or a member of a cycle with no external caller.
type Orphan struct {
	Name string `json:"name"`
	// Line is one-based, for the report.
	Line int `json:"line"`
}

// Roots returns the functions never called by another known function,
// ordered by definition line. Functions inside a cycle with no external
// caller have no root; they surface later as orphans.
func Roots(g CallGraph) []string {
	called := make(map[string]bool)
	for _, fn := range g {
		for _, c := range fn.Callees {
			called[c.Callee] = true
		}
	}
	var roots []string
	for _, name := range g.Names() {
		if !called[name] {
			roots = append(roots, name)
		}
	}
	return roots
}

// RenderTree renders the call tree from each root depth-first and returns
// it with the set of visited names. A visited name is never expanded again,
// which keeps traversal finite on self- and mutually-recursive graphs.
// Children appear in call-discovery order.
func RenderTree(g CallGraph, roots []string) (string, map[string]bool) {
	var b strings.Builder
	visited := make(map[string]bool)
	for _, root := range roots {
		renderNode(&b, g, root, "", true, visited)
	}
	return b.String(), visited
}

func renderNode(b *strings.Builder, g CallGraph, name, prefix string, isLast bool, visited map[string]bool) {
	if visited[name] {
		return
	}
	fn := g[name]
	if fn == nil {
		// Unresolved external callee; tolerated, never rendered.
		return
	}
	visited[name] = true

	connector := "├── "
	childPrefix := prefix + "│   "
	if isLast {
		connector = "└── "
		childPrefix = prefix + "    "
	}
	fmt.Fprintf(b, "%s%s%s (line %d)\n", prefix, connector, name, fn.Line+1)

	for i, c := range fn.Callees {
		renderNode(b, g, c.Callee, childPrefix, i == len(fn.Callees)-1, visited)
	}
}

// Orphans returns the defined functions absent from the visited set,
// sorted by name, with one-based definition lines.
func Orphans(g CallGraph, visited map[string]bool) []Orphan {
	var out []Orphan
	for name, fn := range g {
		if !visited[name] {
			out = append(out, Orphan{Name: name, Line: fn.Line + 1})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
