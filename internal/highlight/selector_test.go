package highlight

import (
	"testing"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name      string
		ext       string
		theme     string
		wantExt   string
		wantTheme string
		wantLang  string
		wantStyle string
	}{
		{"go source", "go", "monokai", "go", "monokai", "Go", "monokai"},
		{"leading dot and case", ".PY", "dracula", "py", "dracula", "", "dracula"},
		{"defaults", "", "", DefaultExtension, DefaultTheme, "", DefaultTheme},
		{"unknown theme", "rs", "no-such-theme", "rs", "no-such-theme", "Rust", styles.Fallback.Name},
		{"unknown extension", "zzqx", "monokai", "zzqx", "monokai", lexers.Fallback.Config().Name, "monokai"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.ext, tt.theme)
			if got.Extension != tt.wantExt || got.Theme != tt.wantTheme || got.Style != tt.wantStyle {
				t.Fatalf("Select(%q,%q)=%+v", tt.ext, tt.theme, got)
			}
			if tt.wantLang != "" && got.Language != tt.wantLang {
				t.Fatalf("Language=%q, want %q", got.Language, tt.wantLang)
			}
			if got.Lexer() == nil || got.ChromaStyle() == nil {
				t.Fatalf("config must always resolve a lexer and style")
			}
		})
	}
}

func TestSelect_Deterministic(t *testing.T) {
	if Select("go", "monokai") != Select("go", "monokai") {
		t.Fatalf("Select must be deterministic")
	}
}

func TestExtensionOf(t *testing.T) {
	tests := map[string]string{
		"/tmp/main.go":      "go",
		"README":            DefaultExtension,
		"/a/b/archive.TAR":  "tar",
		"/a/.hidden/readme": DefaultExtension,
		"":                  DefaultExtension,
	}
	for path, want := range tests {
		if got := ExtensionOf(path); got != want {
			t.Errorf("ExtensionOf(%q)=%q, want %q", path, got, want)
		}
	}
}

func TestThemesIncludesDefault(t *testing.T) {
	for _, name := range Themes() {
		if name == DefaultTheme {
			return
		}
	}
	t.Fatalf("Themes() does not list %q", DefaultTheme)
}
