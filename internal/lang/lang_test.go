package lang

import "testing"

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"main.py", Python},
		{"/some/dir/app.PY", Python},
		{"lib.rs", Rust},
		{"src/bin/pars.rs", Rust},
	}
	for _, tt := range tests {
		spec := ForPath(tt.path)
		if spec == nil {
			t.Fatalf("ForPath(%q) = nil, want %s", tt.path, tt.want)
		}
		if spec.Language != tt.want {
			t.Errorf("ForPath(%q) = %s, want %s", tt.path, spec.Language, tt.want)
		}
	}
}

func TestForPathUnknown(t *testing.T) {
	for _, path := range []string{"main.go", "notes.txt", "Makefile", "script"} {
		if spec := ForPath(path); spec != nil {
			t.Errorf("ForPath(%q) = %v, want nil", path, spec.Language)
		}
	}
}

func TestSpecShape(t *testing.T) {
	py := ForExtension(".py")
	if py.DefKeyword != "def" || py.ScopeEnd != ":" || py.BraceScoped {
		t.Errorf("unexpected python spec: %+v", py)
	}
	rs := ForExtension(".rs")
	if rs.DefKeyword != "fn" || rs.ScopeEnd != "{" || !rs.BraceScoped {
		t.Errorf("unexpected rust spec: %+v", rs)
	}
}

func TestValidIdent(t *testing.T) {
	spec := ForExtension(".py")
	valid := []string{"f", "main", "_private", "snake_case", "camelCase", "f2", "__init__"}
	for _, name := range valid {
		if !spec.ValidIdent(name) {
			t.Errorf("ValidIdent(%q) = false, want true", name)
		}
	}
	invalid := []string{"", "2fast", "with space", "dash-name", "a.b", "f("}
	for _, name := range invalid {
		if spec.ValidIdent(name) {
			t.Errorf("ValidIdent(%q) = true, want false", name)
		}
	}
}
