package ignore

import "testing"

func TestCompileExactMatch(t *testing.T) {
	m := Compile("config.json")
	if !m("config.json") {
		t.Error("exact pattern should match itself")
	}
	if m("sub/config.json") {
		t.Error("exact pattern should not match the same name in a subdirectory")
	}
}

func TestCompileDirectoryPattern(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
		desc    string
	}{
		{"build/", "build", true, "bare directory name"},
		{"build/", "build/", true, "pattern matches itself"},
		{"build/", "build/out.o", true, "file under the directory"},
		{"build/", "build/sub/deep.txt", true, "nested file under the directory"},
		{"build/", "builder", false, "sibling with shared prefix"},
		{"build/", "src/build", false, "same name elsewhere in the tree"},
		{"docx/", "docx", true, "required docx rule, bare"},
		{"docx/", "docx/report.docx", true, "required docx rule, contents"},
		{".docx/", ".docx/tmp", true, "hidden docx variant"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := Compile(tt.pattern)(tt.path); got != tt.want {
				t.Errorf("Compile(%q)(%q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
			}
		})
	}
}

func TestCompileGlobPattern(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
		desc    string
	}{
		{"*.env*", ".env", true, "bare dotenv"},
		{"*.env*", ".env.local", true, "dotenv with suffix"},
		{"*.env*", "secrets.env.bak", true, "env in the middle"},
		{"*.env*", "prod.env", true, "env at the end"},
		{"*.env*", "config.json", false, "unrelated file"},
		{"*.env*", "environment.md", false, "env without the dot"},
		{".env*", ".env", true, "anchored dotenv"},
		{".env*", ".envrc", true, "anchored dotenv with suffix"},
		{".env*", "prod.env", false, "anchored pattern does not float"},
		{"?.txt", "a.txt", true, "question mark single rune"},
		{"?.txt", "ab.txt", false, "question mark exactly one rune"},
		{"*.log", "debug.log", true, "simple star"},
		{"*.log", "logs/debug.log", true, "star crosses separators in this dialect"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := Compile(tt.pattern)(tt.path); got != tt.want {
				t.Errorf("Compile(%q)(%q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
			}
		})
	}
}

func TestCompileEscapesRegexpMetacharacters(t *testing.T) {
	// Dots and plus signs in the pattern are literal, not regexp operators.
	m := Compile("a.b")
	if m("axb") {
		t.Error("dot in pattern must be literal")
	}
	if !m("a.b") {
		t.Error("literal dot should match")
	}

	m = Compile("c++.txt")
	if !m("c++.txt") {
		t.Error("plus signs in pattern must be literal")
	}
}

func TestCompileEmptyPattern(t *testing.T) {
	m := Compile("")
	if !m("") {
		t.Error("empty pattern matches the empty path by exact equality")
	}
	if m("anything") {
		t.Error("empty pattern must not match non-empty paths")
	}
}

func TestPatternSet(t *testing.T) {
	ps := NewPatternSet([]string{"*.log", "build/", "README.md"})

	if !ps.Matches("debug.log") {
		t.Error("set should match via glob member")
	}
	if !ps.Matches("build/a.o") {
		t.Error("set should match via directory member")
	}
	if ps.Matches("main.go") {
		t.Error("set should not match unrelated path")
	}

	if !ps.Contains("build/") {
		t.Error("Contains should find the literal line")
	}
	if ps.Contains("build") {
		t.Error("Contains is literal, not normalized")
	}
}

func TestParseLines(t *testing.T) {
	content := "# comment\n\n  *.log  \nbuild/\n   \n# more\n.env*"
	got := ParseLines(content)
	want := []string{"*.log", "build/", ".env*"}

	if len(got) != len(want) {
		t.Fatalf("ParseLines returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
