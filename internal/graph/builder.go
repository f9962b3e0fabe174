package graph

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/Simar-malhotra09/pars/internal/lang"
)

// ErrEmptyFile is returned when there is no content to scan. A file with
// content but zero function definitions is a valid empty graph, not an error.
var ErrEmptyFile = errors.New("file is empty")

// Build scans content with the language's lexical rules and produces its
// call graph in two passes: definitions first, then call sites with scope
// tracking. The first definition of a name wins; later same-named
// definitions are ignored without error.
func Build(spec *lang.Spec, content string) (CallGraph, error) {
	if content == "" {
		return nil, ErrEmptyFile
	}
	lines := strings.Split(content, "\n")

	g := make(CallGraph)
	// Definition order, used so callees sharing a line are recorded
	// deterministically in pass 2.
	var names []string

	// Pass 1: register definitions.
	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimLeft(lines[i], " \t")
		if !strings.HasPrefix(trimmed, spec.DefKeyword) {
			continue
		}
		name, ok := defName(spec, trimmed)
		if !ok {
			slog.Warn("graph.bad_name", "line", i+1, "text", strings.TrimSpace(trimmed))
			continue
		}
		start := i
		// Join continuation lines until the signature terminator shows
		// up, so multi-line signatures register under their start line.
		sig := lines[i]
		for !strings.Contains(sig, spec.ScopeEnd) && i+1 < len(lines) {
			i++
			sig += " " + strings.TrimSpace(lines[i])
		}
		if _, dup := g[name]; dup {
			continue
		}
		g[name] = &FunctionInfo{Name: name, Line: start}
		names = append(names, name)
	}

	// Pass 2: attribute call sites to the enclosing definition.
	var current *FunctionInfo
	depth := 0     // brace depth, brace-scoped languages only
	inSig := false // after the def keyword, before the opening brace
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimLeft(line, " \t")

		if strings.HasPrefix(trimmed, spec.DefKeyword) {
			current = nil
			if name, ok := defName(spec, trimmed); ok {
				current = g[name]
			}
			if spec.BraceScoped {
				opens := strings.Count(line, "{")
				closes := strings.Count(line, "}")
				depth = opens - closes
				inSig = opens == 0
				if opens > 0 && depth <= 0 {
					// Body opened and closed on the signature line.
					current = nil
				}
			}
			continue
		}
		if current == nil {
			continue
		}

		if spec.BraceScoped {
			opens := strings.Count(line, "{")
			closes := strings.Count(line, "}")
			if inSig && opens > 0 {
				inSig = false
			}
			depth += opens - closes
			recordCalls(current, names, line, i)
			if !inSig && depth <= 0 {
				current = nil
			}
			continue
		}

		// Indentation-significant: any non-blank line at zero
		// indentation closes the current scope.
		if line != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			current = nil
			continue
		}
		recordCalls(current, names, line, i)
	}

	return g, nil
}

// defName extracts and validates the function name from a definition line
// whose leading whitespace has been stripped. The name must appear before
// the parameter delimiter on the same line.
func defName(spec *lang.Spec, trimmed string) (string, bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, spec.DefKeyword))
	idx := strings.Index(rest, spec.ParamOpen)
	if idx < 0 {
		return "", false
	}
	name := strings.TrimSpace(rest[:idx])
	if name == "" || !spec.ValidIdent(name) {
		return "", false
	}
	return name, true
}

// recordCalls appends each known function sighted on line to the current
// caller, once per callee at its first occurrence.
func recordCalls(current *FunctionInfo, names []string, line string, lineNo int) {
	for _, name := range names {
		if name == current.Name {
			continue
		}
		if !lineCallsFunction(line, name) {
			continue
		}
		if current.hasCallee(name) {
			continue
		}
		current.Callees = append(current.Callees, Call{Callee: name, Line: lineNo})
	}
}

// lineCallsFunction matches "name(" (bare call) or ".name(" (member-style
// call) by exact substring. Any other call syntax is missed, and longer
// names containing the target are falsely matched; both are accepted
// heuristic limitations.
func lineCallsFunction(line, name string) bool {
	if !strings.Contains(line, name) {
		return false
	}
	return strings.Contains(line, name+"(") || strings.Contains(line, "."+name+"(")
}
