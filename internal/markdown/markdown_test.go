package markdown

import (
	"strings"
	"testing"
)

func TestRenderHeadings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"h1", "# Title", "Title"},
		{"h2", "## Section", "Section"},
		{"h3", "### Sub", "Sub"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.in)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Render(%q) = %q, want it to contain %q", tt.in, got, tt.want)
			}
			if strings.Contains(got, "#") {
				t.Errorf("Render(%q) left a heading marker in %q", tt.in, got)
			}
		})
	}
}

func TestRenderCodeBlock(t *testing.T) {
	in := "before\n```\nfmt.Println(\"hi\")\n```\nafter"
	got := Render(in)
	if !strings.Contains(got, `fmt.Println("hi")`) {
		t.Errorf("code block content missing from %q", got)
	}
	if strings.Contains(got, "```") {
		t.Errorf("fence markers leaked into output %q", got)
	}
}

func TestRenderUnterminatedFence(t *testing.T) {
	got := Render("```\nkept line")
	if !strings.Contains(got, "kept line") {
		t.Errorf("unterminated fence dropped content: %q", got)
	}
}

func TestRenderBullets(t *testing.T) {
	got := Render("- first\n- second")
	if !strings.Contains(got, "• ") {
		t.Errorf("bullets not rendered: %q", got)
	}
	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Errorf("bullet text missing: %q", got)
	}
}

func TestRenderInlineCode(t *testing.T) {
	got := Render("run `go test` now")
	if !strings.Contains(got, "go test") {
		t.Errorf("inline code content missing: %q", got)
	}
	if strings.Contains(got, "`") {
		t.Errorf("backticks leaked into output %q", got)
	}
}

func TestRenderUnmatchedMarkerVerbatim(t *testing.T) {
	got := Render("a lone ` backtick")
	if !strings.Contains(got, "`") {
		t.Errorf("unmatched backtick should stay verbatim: %q", got)
	}
}

func TestRenderPlainLinesPassThrough(t *testing.T) {
	got := Render("just text\n\nmore text")
	if !strings.Contains(got, "just text") || !strings.Contains(got, "more text") {
		t.Errorf("plain lines mangled: %q", got)
	}
}
