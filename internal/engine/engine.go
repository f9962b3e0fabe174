// Package engine runs the full single-file pipeline: chunked read, cache
// lookup, heuristic graph build, cache save, and analysis. The caller owns
// path validation and all user-facing printing.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Simar-malhotra09/pars/internal/cache"
	"github.com/Simar-malhotra09/pars/internal/chunkio"
	"github.com/Simar-malhotra09/pars/internal/graph"
	"github.com/Simar-malhotra09/pars/internal/lang"
)

// ErrUnsupportedLanguage is returned for file extensions with no
// registered language spec.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Config is supplied by the caller (CLI flags or a .parsrc file).
type Config struct {
	// Threads is the chunked-read worker pool size.
	Threads int
	// BlockSize is the chunk size in bytes.
	BlockSize int64
	// EnableCache controls the on-disk parse cache.
	EnableCache bool
	// Memory is an optional in-process result cache, consulted before the
	// disk cache. Used by long-lived surfaces.
	Memory *cache.Memory
}

// Result is everything the presentation layer needs.
type Result struct {
	Path        string
	Language    lang.Language
	Size        int64
	ContentHash uint64
	Graph       graph.CallGraph
	Roots       []string
	Tree        string
	Visited     map[string]bool
	Orphans     []graph.Orphan
	FromCache   bool
	Elapsed     time.Duration
}

// ParseFile ingests one source file and returns its analyzed call graph.
// Cache failures of any kind are absorbed here: they are logged and parsing
// proceeds as a miss. All other errors propagate unmodified.
func ParseFile(ctx context.Context, path string, cfg Config) (*Result, error) {
	spec := lang.ForPath(path)
	if spec == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, filepath.Ext(path))
	}

	start := time.Now()
	slog.Info("engine.start", "path", path, "language", spec.Language)

	reader := &chunkio.Reader{Workers: cfg.Threads, BlockSize: cfg.BlockSize}
	t := time.Now()
	content, err := reader.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	slog.Debug("pass.timing", "pass", "read", "elapsed", time.Since(t), "bytes", len(content))

	if len(content) == 0 {
		return nil, fmt.Errorf("%s: %w", path, graph.ErrEmptyFile)
	}

	hash := cache.Hash(content)
	var g graph.CallGraph
	fromCache := false

	if mg, ok := cfg.Memory.Get(path, hash); ok {
		g = mg
		fromCache = true
		slog.Debug("cache.memory_hit", "path", path)
	}

	if g == nil && cfg.EnableCache {
		cg, ok, cerr := cache.Load(path, content)
		if cerr != nil {
			slog.Warn("cache.err", "path", path, "err", cerr)
		}
		if ok {
			g = cg
			fromCache = true
			slog.Info("cache.hit", "path", path)
		}
	}

	if g == nil {
		t = time.Now()
		g, err = graph.Build(spec, string(content))
		if err != nil {
			return nil, err
		}
		slog.Debug("pass.timing", "pass", "build", "elapsed", time.Since(t), "functions", len(g))

		if cfg.EnableCache {
			if err := cache.Save(path, content, g); err != nil {
				// Non-fatal: the fresh graph is still returned.
				slog.Warn("cache.save_err", "path", path, "err", err)
			}
		}
	}
	cfg.Memory.Add(path, hash, g)

	roots := graph.Roots(g)
	tree, visited := graph.RenderTree(g, roots)
	orphans := graph.Orphans(g, visited)

	elapsed := time.Since(start)
	slog.Info("engine.done",
		"path", path,
		"functions", len(g),
		"roots", len(roots),
		"orphans", len(orphans),
		"cached", fromCache,
		"elapsed", elapsed,
	)

	return &Result{
		Path:        path,
		Language:    spec.Language,
		Size:        int64(len(content)),
		ContentHash: hash,
		Graph:       g,
		Roots:       roots,
		Tree:        tree,
		Visited:     visited,
		Orphans:     orphans,
		FromCache:   fromCache,
		Elapsed:     elapsed,
	}, nil
}
