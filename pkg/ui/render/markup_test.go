package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func stripAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = ansi.Strip(l)
	}
	return out
}

func TestLines_Paragraph(t *testing.T) {
	lines := stripAll(Lines("<p>Hello there, traveler.</p>", 80))
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d: %q", len(lines), lines)
	}
	if lines[0] != "Hello there, traveler." {
		t.Errorf("Expected plain paragraph text, got %q", lines[0])
	}
}

func TestLines_WrapsToWidth(t *testing.T) {
	lines := stripAll(Lines("<p>alpha beta gamma delta epsilon</p>", 12))
	if len(lines) < 2 {
		t.Fatalf("Expected wrapped output, got %q", lines)
	}
	for _, l := range lines {
		if w := ansi.StringWidth(l); w > 12 {
			t.Errorf("Line %q has width %d, exceeds 12", l, w)
		}
	}
	joined := strings.Join(lines, " ")
	for _, word := range []string{"alpha", "beta", "gamma", "delta", "epsilon"} {
		if !strings.Contains(joined, word) {
			t.Errorf("Expected wrapped output to contain %q, got %q", word, lines)
		}
	}
}

func TestLines_HardBreak(t *testing.T) {
	lines := stripAll(Lines("<p>first<br>second</p>", 80))
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "first" || lines[1] != "second" {
		t.Errorf("Expected break to split lines, got %q", lines)
	}
}

func TestLines_BlankLineBetweenParagraphs(t *testing.T) {
	lines := stripAll(Lines("<p>one</p><p>two</p>", 80))
	want := []string{"one", "", "two"}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestLines_InlineSpans(t *testing.T) {
	markup := "<p>a <strong>bold</strong> and <em>slanted</em> and <code class=\"inline-code\">mono</code> word</p>"
	lines := stripAll(Lines(markup, 80))
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %q", lines)
	}
	if lines[0] != "a bold and slanted and mono word" {
		t.Errorf("Expected inline tags stripped to text, got %q", lines[0])
	}
}

func TestLines_Anchor(t *testing.T) {
	markup := `<p>see <a href="https://example.com/guide" target="_blank" rel="noopener noreferrer">→ https://example.com/guide</a></p>`
	lines := stripAll(Lines(markup, 120))
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %q", lines)
	}
	if !strings.Contains(lines[0], "→ https://example.com/guide") {
		t.Errorf("Expected anchor label in output, got %q", lines[0])
	}
	if strings.Contains(lines[0], "href") {
		t.Errorf("Expected anchor markup removed, got %q", lines[0])
	}
}

func TestLines_Heading(t *testing.T) {
	lines := stripAll(Lines(`<h2 class="message-header">Getting Around</h2><p>body</p>`, 80))
	if len(lines) != 3 {
		t.Fatalf("Expected heading, blank, body; got %q", lines)
	}
	if lines[0] != "Getting Around" {
		t.Errorf("Expected heading text, got %q", lines[0])
	}
	if lines[2] != "body" {
		t.Errorf("Expected body paragraph, got %q", lines[2])
	}
}

func TestLines_UnorderedList(t *testing.T) {
	markup := `<ul class="message-list"><li>Jaipur</li>
<li>Goa</li></ul>`
	lines := stripAll(Lines(markup, 80))
	if len(lines) != 2 {
		t.Fatalf("Expected 2 list lines, got %q", lines)
	}
	if lines[0] != "• Jaipur" || lines[1] != "• Goa" {
		t.Errorf("Expected bulleted items, got %q", lines)
	}
}

func TestLines_ListItemHangingIndent(t *testing.T) {
	markup := `<ul class="message-list"><li>alpha beta gamma delta epsilon zeta</li></ul>`
	lines := stripAll(Lines(markup, 14))
	if len(lines) < 2 {
		t.Fatalf("Expected wrapped list item, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "• ") {
		t.Errorf("Expected bullet prefix on first line, got %q", lines[0])
	}
	for _, l := range lines[1:] {
		if !strings.HasPrefix(l, "  ") {
			t.Errorf("Expected continuation indent on %q", l)
		}
	}
}

func TestLines_BareListItem(t *testing.T) {
	lines := stripAll(Lines("<li>First stop</li>", 80))
	if len(lines) != 1 || lines[0] != "• First stop" {
		t.Errorf("Expected single bulleted line, got %q", lines)
	}
}

func TestLines_CodeBlock(t *testing.T) {
	markup := "<pre class=\"code-block\"><div class=\"code-header\">python</div><code>print(&quot;hi&quot;)\nprint(2)</code></pre>"
	lines := stripAll(Lines(markup, 80))
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 code lines, got %q", lines)
	}
	if !strings.Contains(lines[0], "python") {
		t.Errorf("Expected language label, got %q", lines[0])
	}
	if lines[1] != `print("hi")` {
		t.Errorf("Expected entities decoded in code, got %q", lines[1])
	}
	if lines[2] != "print(2)" {
		t.Errorf("Expected second code line, got %q", lines[2])
	}
}

func TestLines_EmptyInput(t *testing.T) {
	if lines := Lines("", 80); len(lines) != 0 {
		t.Errorf("Expected no lines for empty markup, got %q", lines)
	}
}

func TestPlainLines(t *testing.T) {
	lines := PlainLines("**bold** stays literal", 80)
	if len(lines) != 1 || ansi.Strip(lines[0]) != "**bold** stays literal" {
		t.Errorf("Expected verbatim text, got %q", lines)
	}

	lines = PlainLines("first\n\nsecond", 80)
	want := []string{"first", "", "second"}
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %q", lines)
	}
	for i, w := range want {
		if ansi.Strip(lines[i]) != w {
			t.Errorf("Line %d: expected %q, got %q", i, w, lines[i])
		}
	}

	lines = PlainLines("one two three four", 9)
	for _, line := range lines {
		if ansi.StringWidth(ansi.Strip(line)) > 9 {
			t.Errorf("Expected wrap within 9 cells, got %q", line)
		}
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"&lt;b&gt;", "<b>"},
		{"&quot;quoted&quot;", `"quoted"`},
		{"&#039;s", "'s"},
		{"&amp;amp;", "&amp;"},
		{"nothing here", "nothing here"},
	}
	for _, tt := range tests {
		if got := Unescape(tt.in); got != tt.want {
			t.Errorf("Unescape(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := ansi.Strip(Truncate("a long subject line", 8)); ansi.StringWidth(got) > 8 {
		t.Errorf("Expected truncation to 8 cells, got %q", got)
	}
	if got := Truncate("short", 40); got != "short" {
		t.Errorf("Expected short string unchanged, got %q", got)
	}
}
