package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg := Load(t.TempDir())
	if cfg.EffectiveThreads() != 8 {
		t.Errorf("EffectiveThreads = %d, want 8", cfg.EffectiveThreads())
	}
	if cfg.EffectiveBlockSize() != 16*1024 {
		t.Errorf("EffectiveBlockSize = %d, want 16384", cfg.EffectiveBlockSize())
	}
	if !cfg.EffectiveCache() {
		t.Error("EffectiveCache = false, want true by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	content := "threads: 4\nblock_size_kb: 64\ncache: false\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := Load(dir)
	if cfg.EffectiveThreads() != 4 {
		t.Errorf("EffectiveThreads = %d, want 4", cfg.EffectiveThreads())
	}
	if cfg.EffectiveBlockSize() != 64*1024 {
		t.Errorf("EffectiveBlockSize = %d, want 65536", cfg.EffectiveBlockSize())
	}
	if cfg.EffectiveCache() {
		t.Error("EffectiveCache = true, want false")
	}
}

func TestLoadInvalidYAMLFallsBack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("threads: [not an int"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := Load(dir)
	if cfg.EffectiveThreads() != 8 || !cfg.EffectiveCache() {
		t.Error("invalid YAML should fall back to defaults")
	}
}
