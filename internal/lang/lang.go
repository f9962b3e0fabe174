package lang

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Language identifies a supported source language.
type Language string

const (
	Python Language = "python"
	Rust   Language = "rust"
)

// AllLanguages returns all supported languages.
func AllLanguages() []Language {
	return []Language{Python, Rust}
}

// Spec describes the lexical shape of function definitions for one language.
// The scanner needs nothing heavier than this: the keyword that opens a
// definition, the delimiter that opens the parameter list, the token that
// terminates the signature, and how scopes close. A Spec is selected once
// per file and never changes for the file's lifetime.
type Spec struct {
	Language       Language
	FileExtensions []string

	// DefKeyword starts a function definition line (e.g. "def", "fn").
	DefKeyword string
	// ParamOpen separates the function name from its parameter list.
	ParamOpen string
	// ScopeEnd terminates a signature (":" for Python, "{" for Rust).
	// Signatures spanning several lines are joined until it appears.
	ScopeEnd string
	// BraceScoped selects brace-depth scope tracking. When false the
	// language is indentation-significant and a non-blank line at zero
	// indentation closes the current scope.
	BraceScoped bool
}

// ValidIdent reports whether name is a plausible function identifier:
// a leading letter or underscore followed by letters, digits or underscores.
func (s *Spec) ValidIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// registry maps file extensions to language specs.
var registry = map[string]*Spec{}

// Register adds a Spec to the global registry.
func Register(spec *Spec) {
	for _, ext := range spec.FileExtensions {
		registry[ext] = spec
	}
}

// ForExtension returns the Spec for a file extension (e.g. ".py"), or nil
// if the extension is not recognized.
func ForExtension(ext string) *Spec {
	return registry[strings.ToLower(ext)]
}

// ForPath selects the Spec from a path's extension.
func ForPath(path string) *Spec {
	return ForExtension(filepath.Ext(path))
}
