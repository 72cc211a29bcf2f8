package highlight

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/labdoc/pkg/cache"
	"github.com/matzehuels/labdoc/pkg/core/rtf"
	"github.com/matzehuels/labdoc/pkg/errors"
)

const goSource = "package main\n\n// say hi\nfunc main() {\n\tprintln(\"{hi}\\\\\")\n}\n"

func TestLexer(t *testing.T) {
	tests := []struct {
		ext, code, want string
	}{
		{"go", "", "Go"},
		{"py", "", "Python"},
		{"java", "", "Java"},
		{"", "", "plaintext"},
		{"../go", "", "plaintext"},
		{"nosuchext", "", "plaintext"},
	}
	for _, tt := range tests {
		if got := Lexer(tt.ext, tt.code).Config().Name; got != tt.want {
			t.Errorf("Lexer(%q).Name = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestNewUnknownStyle(t *testing.T) {
	_, err := New("no-such-style")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("New(unknown) error = %v, want INVALID_CONFIG", err)
	}
}

func TestHighlightDecodesToSource(t *testing.T) {
	h, err := New("github")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	out, err := h.Highlight(context.Background(), "go", goSource)
	if err != nil {
		t.Fatalf("Highlight() error: %v", err)
	}
	if !strings.HasPrefix(out, `{\rtf1`) {
		t.Fatalf("output is not RTF: %q", out[:min(len(out), 20)])
	}

	d, err := rtf.Decode(out)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got := d.Text(); got != goSource {
		t.Errorf("decoded text = %q, want %q", got, goSource)
	}

	styled := false
	for _, b := range d.Blocks {
		if !b.Format.IsZero() {
			styled = true
			if b.Format.ColorRef != 0 {
				if _, ok := d.Colors.Lookup(b.Format.ColorRef); !ok {
					t.Errorf("block %q references missing color %d", b.Text, b.Format.ColorRef)
				}
			}
		}
	}
	if !styled {
		t.Error("highlighted Go source has no styled blocks")
	}
}

func TestHighlightUsesCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	keyer := cache.NewDefaultKeyer()
	h, err := New("github", WithCache(fc, keyer))
	if err != nil {
		t.Fatal(err)
	}

	first, err := h.Highlight(ctx, "go", goSource)
	if err != nil {
		t.Fatal(err)
	}
	key := keyer.HighlightKey(Lexer("go", goSource).Config().Name, "github", goSource)
	data, ok, err := fc.Get(ctx, key)
	if err != nil || !ok || string(data) != first {
		t.Fatalf("cache entry after Highlight = %v, %v", ok, err)
	}

	if err := fc.Set(ctx, key, []byte(`{\rtf1 cached}`), 0); err != nil {
		t.Fatal(err)
	}
	got, err := h.Highlight(ctx, "go", goSource)
	if err != nil {
		t.Fatal(err)
	}
	if got != `{\rtf1 cached}` {
		t.Errorf("Highlight() = %q, want the cached value", got)
	}
}

func TestEscapeRTF(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{`a\b{c}`, `a\\b\{c\}`},
		{"x\ny", "x\\par\ny"},
		{"x\r\ny", "x\\par\ny"},
		{"\tx", `\tab x`},
		{"é", `\u233?`},
		{"’", `\u8217?`},
		{"！", `\u-255?`},
	}
	for _, tt := range tests {
		if got := escapeRTF(tt.in); got != tt.want {
			t.Errorf("escapeRTF(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeRTFRoundTrip(t *testing.T) {
	src := "tab\there {braces} back\\slash café → ！\n"
	d, err := rtf.Decode(`{\rtf1 ` + escapeRTF(src) + `}`)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got := d.Text(); got != src {
		t.Errorf("round trip = %q, want %q", got, src)
	}
}
