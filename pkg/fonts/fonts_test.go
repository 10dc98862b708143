package fonts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stackchart/pkg/errors"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		data []byte
		want string
	}{
		{[]byte("wOFF...."), "woff"},
		{[]byte("wOF2...."), "woff2"},
		{[]byte("OTTO...."), "opentype"},
		{[]byte{0, 1, 0, 0, 9}, "truetype"},
		{[]byte("true...."), "truetype"},
		{[]byte("<svg>"), ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := Format(tt.data); got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.data, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "font.woff")
	bad := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(good, []byte("wOFFdata"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("valid", func(t *testing.T) {
		data, err := Load(good)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if string(data) != "wOFFdata" {
			t.Errorf("data = %q", data)
		}
	})
	t.Run("missing", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.ttf"))
		if errors.GetCode(err) != errors.ErrCodeFileNotFound {
			t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeFileNotFound)
		}
	})
	t.Run("not a font", func(t *testing.T) {
		_, err := Load(bad)
		if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
			t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	})
	t.Run("traversal", func(t *testing.T) {
		_, err := Load("../fonts/x.ttf")
		if errors.GetCode(err) != errors.ErrCodeInvalidPath {
			t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidPath)
		}
	})
}

func TestFontFace(t *testing.T) {
	css := FontFace([]byte("wOFFdata"))
	for _, want := range []string{
		"font-family: '" + EmbeddedFontFamily + "'",
		"data:font/woff;base64," + Base64([]byte("wOFFdata")),
		"format('woff')",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("FontFace missing %q in %s", want, css)
		}
	}
}

func TestBase64Cached(t *testing.T) {
	a := Base64([]byte("abc"))
	b := Base64([]byte("abc"))
	if a != b || a != "YWJj" {
		t.Errorf("Base64 = %q, %q", a, b)
	}
}
