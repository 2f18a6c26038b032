package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	out, err := ToHTML("# Hi there")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "<h1>Hi there</h1>") {
		t.Errorf("expected an <h1>, got %q", out)
	}
}

func TestToHTMLRawPassthrough(t *testing.T) {
	out, err := ToHTML("before <em>raw</em> after")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "<em>raw</em>") {
		t.Errorf("raw HTML should pass through, got %q", out)
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"# Hi there", "Hi there"},
		{"# Title\n\nSome *emphasized* text.", "Title Some emphasized text."},
		{"a [link](https://example.com) here", "a link here"},
		{"line one\nline two", "line one line two"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := PlainText(tt.source); got != tt.want {
			t.Errorf("PlainText(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("# Hi there", 160); got != "Hi there" {
		t.Errorf("Excerpt = %q, want %q", got, "Hi there")
	}

	long := strings.Repeat("word ", 100)
	if got := Excerpt(long, 160); len([]rune(got)) != 160 {
		t.Errorf("Excerpt length = %d, want 160", len([]rune(got)))
	}
}
