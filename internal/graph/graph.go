// Package graph builds and analyzes heuristic call graphs for a single
// source file. The scanner is lexical only: it has no tokenizer or AST and
// accepts false matches around comments, strings and nested scopes.
package graph

import "sort"

// Call records one callee sighting: the callee's name and the zero-based
// line of its first occurrence within the caller.
type Call struct {
	Callee string `json:"callee"`
	Line   int    `json:"line"`
}

// FunctionInfo describes one function definition and its outgoing calls.
// Callees are kept in discovery order with no duplicates per caller.
type FunctionInfo struct {
	Name string `json:"name"`
	// Line is the zero-based line of the definition keyword.
	Line    int    `json:"line"`
	Callees []Call `json:"callees"`
}

func (f *FunctionInfo) hasCallee(name string) bool {
	for _, c := range f.Callees {
		if c.Callee == name {
			return true
		}
	}
	return false
}

// CallGraph maps function names to their definitions. Keys are unique
// within a file. A callee name recorded in one entry may be absent from
// the map (an unresolved external call); consumers tolerate that silently.
type CallGraph map[string]*FunctionInfo

// Names returns all defined names ordered by definition line.
func (g CallGraph) Names() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := g[names[i]], g[names[j]]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Name < b.Name
	})
	return names
}
