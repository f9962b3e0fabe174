package graph

import (
	"reflect"
	"strings"
	"testing"
)

func TestRootsSetDifference(t *testing.T) {
	g := CallGraph{
		"a": {Name: "a", Line: 0, Callees: []Call{{Callee: "b", Line: 1}}},
		"b": {Name: "b", Line: 2, Callees: []Call{{Callee: "c", Line: 3}}},
		"c": {Name: "c", Line: 4},
		"d": {Name: "d", Line: 6},
	}
	got := Roots(g)
	want := []string{"a", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Roots = %v, want %v", got, want)
	}
}

func TestRootsZeroCallsAllRoots(t *testing.T) {
	g := CallGraph{
		"x": {Name: "x", Line: 0},
		"y": {Name: "y", Line: 2},
		"z": {Name: "z", Line: 4},
	}
	if got := Roots(g); len(got) != 3 {
		t.Errorf("Roots = %v, want all three", got)
	}
}

func TestMutualRecursionOrphans(t *testing.T) {
	// a calls b, b calls a, neither called from elsewhere: no roots,
	// traversal terminates, both are orphans.
	g := CallGraph{
		"a": {Name: "a", Line: 0, Callees: []Call{{Callee: "b", Line: 1}}},
		"b": {Name: "b", Line: 2, Callees: []Call{{Callee: "a", Line: 3}}},
	}
	roots := Roots(g)
	if len(roots) != 0 {
		t.Fatalf("Roots = %v, want none", roots)
	}
	tree, visited := RenderTree(g, roots)
	if tree != "" {
		t.Errorf("unexpected tree output: %q", tree)
	}
	orphans := Orphans(g, visited)
	if len(orphans) != 2 || orphans[0].Name != "a" || orphans[1].Name != "b" {
		t.Errorf("Orphans = %+v, want a and b", orphans)
	}
	if orphans[0].Line != 1 || orphans[1].Line != 3 {
		t.Errorf("orphan lines = %+v, want one-based 1 and 3", orphans)
	}
}

func TestSelfRecursionTerminates(t *testing.T) {
	g := CallGraph{
		"loop": {Name: "loop", Line: 0, Callees: []Call{{Callee: "loop", Line: 1}}},
	}
	// loop calls itself but spec's builder never records self-calls; a
	// cached graph from elsewhere might. Traversal must still terminate.
	tree, visited := RenderTree(g, []string{"loop"})
	if !visited["loop"] {
		t.Fatal("loop not visited")
	}
	if strings.Count(tree, "loop") != 1 {
		t.Errorf("loop expanded more than once:\n%s", tree)
	}
}

func TestRenderTreeShape(t *testing.T) {
	g := CallGraph{
		"main":   {Name: "main", Line: 0, Callees: []Call{{Callee: "first", Line: 1}, {Callee: "second", Line: 2}}},
		"first":  {Name: "first", Line: 4},
		"second": {Name: "second", Line: 6},
	}
	tree, visited := RenderTree(g, Roots(g))
	want := "└── main (line 1)\n" +
		"    ├── first (line 5)\n" +
		"    └── second (line 7)\n"
	if tree != want {
		t.Errorf("tree mismatch:\ngot:\n%swant:\n%s", tree, want)
	}
	for _, name := range []string{"main", "first", "second"} {
		if !visited[name] {
			t.Errorf("%s not visited", name)
		}
	}
	if orphans := Orphans(g, visited); len(orphans) != 0 {
		t.Errorf("unexpected orphans: %+v", orphans)
	}
}

func TestRenderTreeInsertionOrder(t *testing.T) {
	// Children must come out in call-discovery order, not alphabetical.
	g := CallGraph{
		"run":     {Name: "run", Line: 0, Callees: []Call{{Callee: "z_last", Line: 1}, {Callee: "a_first", Line: 2}}},
		"z_last":  {Name: "z_last", Line: 4},
		"a_first": {Name: "a_first", Line: 6},
	}
	tree, _ := RenderTree(g, Roots(g))
	zi := strings.Index(tree, "z_last")
	ai := strings.Index(tree, "a_first")
	if zi < 0 || ai < 0 || zi > ai {
		t.Errorf("children not in discovery order:\n%s", tree)
	}
}

func TestRenderTreeUnresolvedCalleeTolerated(t *testing.T) {
	g := CallGraph{
		"f": {Name: "f", Line: 0, Callees: []Call{{Callee: "ghost", Line: 1}}},
	}
	tree, visited := RenderTree(g, Roots(g))
	if strings.Contains(tree, "ghost") {
		t.Errorf("unresolved callee rendered:\n%s", tree)
	}
	if visited["ghost"] {
		t.Error("unresolved callee marked visited")
	}
}

func TestOrphansDisjointCycle(t *testing.T) {
	// main is reachable; c and d form a disconnected cycle.
	g := CallGraph{
		"main": {Name: "main", Line: 0},
		"d":    {Name: "d", Line: 2, Callees: []Call{{Callee: "c", Line: 3}}},
		"c":    {Name: "c", Line: 4, Callees: []Call{{Callee: "d", Line: 5}}},
	}
	roots := Roots(g)
	if !reflect.DeepEqual(roots, []string{"main"}) {
		t.Fatalf("Roots = %v, want [main]", roots)
	}
	_, visited := RenderTree(g, roots)
	orphans := Orphans(g, visited)
	if len(orphans) != 2 || orphans[0].Name != "c" || orphans[1].Name != "d" {
		t.Errorf("Orphans = %+v, want c then d (sorted by name)", orphans)
	}
}
