package lang

func init() {
	Register(&Spec{
		Language:       Python,
		FileExtensions: []string{".py"},
		DefKeyword:     "def",
		ParamOpen:      "(",
		ScopeEnd:       ":",
	})
}
