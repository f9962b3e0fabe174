// Package cache persists parse results next to the source file and
// validates them by content fingerprint and modification time.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/Simar-malhotra09/pars/internal/graph"
)

// fileExt replaces the source file's extension to form the cache path.
const fileExt = ".funcparse_cache"

// Entry is a persisted parse snapshot. It is trusted only when both the
// content hash and the modification time still match the live file; any
// mismatch discards the whole entry. A format change simply fails to
// decode and reads as a miss.
type Entry struct {
	ContentHash  uint64          `json:"content_hash"`
	LastModified uint64          `json:"last_modified"`
	Functions    graph.CallGraph `json:"functions"`
}

// PathFor returns the cache file co-located with the source file.
func PathFor(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + fileExt
}

// Hash fingerprints raw content. xxh3 is fast and non-cryptographic;
// collisions are an accepted, unguarded risk.
func Hash(content []byte) uint64 {
	return xxh3.Hash(content)
}

func sourceModTime(source string) (uint64, error) {
	info, err := os.Stat(source)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", source, err)
	}
	return uint64(info.ModTime().Unix()), nil
}

// Load returns the cached graph for source, or ok=false on a miss.
// A missing cache file and a stale entry are silent misses; a read,
// decode or stat failure is returned for the caller to log, and is
// never fatal to parsing.
func Load(source string, content []byte) (g graph.CallGraph, ok bool, err error) {
	data, err := os.ReadFile(PathFor(source))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false, fmt.Errorf("decode cache: %w", err)
	}

	mtime, err := sourceModTime(source)
	if err != nil {
		return nil, false, err
	}
	if e.ContentHash != Hash(content) || e.LastModified != mtime {
		return nil, false, nil
	}
	return e.Functions, true, nil
}

// Save persists the graph alongside the source file. Failures are
// reported to the caller, which treats them as non-fatal: the freshly
// computed graph is still returned upstream.
func Save(source string, content []byte, g graph.CallGraph) error {
	mtime, err := sourceModTime(source)
	if err != nil {
		return err
	}
	e := Entry{
		ContentHash:  Hash(content),
		LastModified: mtime,
		Functions:    g,
	}
	data, err := json.MarshalIndent(&e, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := os.WriteFile(PathFor(source), data, 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}
