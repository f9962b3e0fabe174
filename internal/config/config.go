// Package config loads user-overridable defaults from a .parsrc dot-file.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Simar-malhotra09/pars/internal/chunkio"
)

// FileName is the dot-file searched for next to the source file.
const FileName = ".parsrc"

// File holds user-overridable settings. Unset fields fall back to the
// built-in defaults; CLI flags override both.
type File struct {
	// Threads is the worker pool size for chunked reading.
	Threads *int `yaml:"threads"`

	// BlockSizeKB is the chunk size in KiB.
	BlockSizeKB *int `yaml:"block_size_kb"`

	// Cache enables or disables the on-disk parse cache.
	Cache *bool `yaml:"cache"`
}

// Default returns the built-in configuration.
func Default() *File {
	return &File{}
}

// Load reads .parsrc from the given directory. Returns defaults if the
// file doesn't exist or fails to parse.
func Load(dir string) *File {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return cfg // file not found or unreadable — use defaults
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default() // invalid YAML — use defaults
	}
	return cfg
}

// EffectiveThreads returns the configured worker count, or the default.
func (f *File) EffectiveThreads() int {
	if f.Threads != nil && *f.Threads > 0 {
		return *f.Threads
	}
	return chunkio.DefaultWorkers
}

// EffectiveBlockSize returns the configured chunk size in bytes, or the
// default.
func (f *File) EffectiveBlockSize() int64 {
	if f.BlockSizeKB != nil && *f.BlockSizeKB > 0 {
		return int64(*f.BlockSizeKB) * 1024
	}
	return chunkio.DefaultBlockSize
}

// EffectiveCache returns whether the on-disk cache is enabled (default true).
func (f *File) EffectiveCache() bool {
	if f.Cache != nil {
		return *f.Cache
	}
	return true
}
