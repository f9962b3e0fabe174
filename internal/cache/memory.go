package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Simar-malhotra09/pars/internal/graph"
)

// DefaultMemoryEntries bounds the in-process result cache.
const DefaultMemoryEntries = 256

// Memory is an in-process LRU of parsed graphs for long-lived surfaces
// (the MCP server and the watcher). Keys combine path and content hash,
// so an edited file can never be served a stale graph.
type Memory struct {
	c *lru.Cache[string, graph.CallGraph]
}

// NewMemory creates a Memory holding up to size graphs.
func NewMemory(size int) (*Memory, error) {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	c, err := lru.New[string, graph.CallGraph](size)
	if err != nil {
		return nil, fmt.Errorf("lru: %w", err)
	}
	return &Memory{c: c}, nil
}

func memoryKey(source string, hash uint64) string {
	return fmt.Sprintf("%s@%016x", source, hash)
}

// Get returns the cached graph for the file content identified by hash.
func (m *Memory) Get(source string, hash uint64) (graph.CallGraph, bool) {
	if m == nil {
		return nil, false
	}
	return m.c.Get(memoryKey(source, hash))
}

// Add stores a parsed graph.
func (m *Memory) Add(source string, hash uint64, g graph.CallGraph) {
	if m == nil {
		return
	}
	m.c.Add(memoryKey(source, hash), g)
}
