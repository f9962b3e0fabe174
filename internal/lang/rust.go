package lang

func init() {
	Register(&Spec{
		Language:       Rust,
		FileExtensions: []string{".rs"},
		DefKeyword:     "fn",
		ParamOpen:      "(",
		ScopeEnd:       "{",
		BraceScoped:    true,
	})
}
