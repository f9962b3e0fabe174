package cache

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Simar-malhotra09/pars/internal/graph"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.py")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func sampleGraph() graph.CallGraph {
	return graph.CallGraph{
		"a": {Name: "a", Line: 0, Callees: []graph.Call{{Callee: "b", Line: 1}}},
		"b": {Name: "b", Line: 2},
	}
}

func TestPathFor(t *testing.T) {
	tests := []struct{ source, want string }{
		{"/tmp/app.py", "/tmp/app.funcparse_cache"},
		{"lib.rs", "lib.funcparse_cache"},
		{"noext", "noext.funcparse_cache"},
	}
	for _, tt := range tests {
		if got := PathFor(tt.source); got != tt.want {
			t.Errorf("PathFor(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	content := "def a():\n    b()\ndef b():\n    pass"
	path := writeSource(t, content)
	want := sampleGraph()

	if err := Save(path, []byte(content), want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok, err := Load(path, []byte(content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round-trip mismatch: got %+v", got)
	}
}

func TestMissWhenNoCacheFile(t *testing.T) {
	path := writeSource(t, "def a(): pass")
	_, ok, err := Load(path, []byte("def a(): pass"))
	if err != nil {
		t.Fatalf("missing cache file should be a silent miss, got %v", err)
	}
	if ok {
		t.Fatal("unexpected hit")
	}
}

func TestMissOnContentChange(t *testing.T) {
	content := "def a(): pass"
	path := writeSource(t, content)
	if err := Save(path, []byte(content), sampleGraph()); err != nil {
		t.Fatal(err)
	}
	_, ok, err := Load(path, []byte("def a(): changed()"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatal("stale content must miss")
	}
}

func TestMissOnTouchedMtime(t *testing.T) {
	// Content unchanged, only mtime moved: still a miss.
	content := "def a(): pass"
	path := writeSource(t, content)
	if err := Save(path, []byte(content), sampleGraph()); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	_, ok, err := Load(path, []byte(content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatal("touched mtime must invalidate the cache")
	}
}

func TestCorruptCacheReturnsError(t *testing.T) {
	content := "def a(): pass"
	path := writeSource(t, content)
	if err := os.WriteFile(PathFor(path), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, ok, err := Load(path, []byte(content))
	if err == nil {
		t.Fatal("expected decode error for corrupt cache")
	}
	if ok {
		t.Fatal("corrupt cache must not hit")
	}
}

func TestMemoryKeyedByHash(t *testing.T) {
	m, err := NewMemory(4)
	if err != nil {
		t.Fatal(err)
	}
	g := sampleGraph()
	m.Add("/tmp/app.py", 111, g)

	if _, ok := m.Get("/tmp/app.py", 222); ok {
		t.Error("different hash must miss")
	}
	if _, ok := m.Get("/tmp/other.py", 111); ok {
		t.Error("different path must miss")
	}
	got, ok := m.Get("/tmp/app.py", 111)
	if !ok || !reflect.DeepEqual(got, g) {
		t.Errorf("expected hit, got ok=%v", ok)
	}
}

func TestMemoryNilSafe(t *testing.T) {
	var m *Memory
	m.Add("p", 1, nil)
	if _, ok := m.Get("p", 1); ok {
		t.Fatal("nil Memory must miss")
	}
}
