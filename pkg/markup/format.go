// Package markup turns plain assistant replies into a small fixed HTML-like
// markup vocabulary. It is not a markdown parser: it applies an ordered list
// of pattern rewrites, and the order is load-bearing (block constructs before
// paragraph splitting, bold before italic). Reordering stages changes output.
package markup

import (
	"regexp"
	"strings"
)

// stage is one pure text-to-text rewrite in the formatting pipeline.
type stage struct {
	name string
	fn   func(string) string
}

// stages run left-to-right over sanitized text. Later stages must not
// re-match text produced by earlier ones.
var stages = []stage{
	{"collapse_newlines", collapseNewlines},
	{"code_blocks", codeBlocks},
	{"inline_code", inlineCode},
	{"bold", bold},
	{"italic", italic},
	{"links", links},
	{"headings", headings},
	{"bullet_lists", bulletLists},
	{"numbered_lists", numberedLists},
	{"paragraphs", paragraphs},
	{"line_breaks", lineBreaks},
	{"cleanup", cleanup},
}

// Format sanitizes text and runs the full formatting pipeline over it.
// It never fails: malformed or unbalanced delimiters are left as literal
// (already escaped) characters. Empty input produces empty output.
func Format(text string) string {
	out := Escape(text)
	for _, st := range stages {
		out = st.fn(out)
	}
	return out
}

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// collapseNewlines normalizes three or more consecutive newlines to exactly
// two, so runaway blank lines become a single paragraph break.
func collapseNewlines(s string) string {
	return excessNewlines.ReplaceAllString(s, "\n\n")
}

var fencedBlock = regexp.MustCompile("(?s)```(\\w*)\n(.*?)```")

// codeBlocks rewrites triple-backtick fences into a labeled code block.
// A missing language tag falls back to "text".
func codeBlocks(s string) string {
	return fencedBlock.ReplaceAllStringFunc(s, func(m string) string {
		sub := fencedBlock.FindStringSubmatch(m)
		lang := sub[1]
		if lang == "" {
			lang = "text"
		}
		code := strings.TrimSpace(sub[2])
		return `<pre class="code-block"><div class="code-header">` + lang + `</div><code>` + code + `</code></pre>`
	})
}

var inlineSpan = regexp.MustCompile("`([^`]+)`")

func inlineCode(s string) string {
	return inlineSpan.ReplaceAllString(s, `<code class="inline-code">$1</code>`)
}

var boldSpan = regexp.MustCompile(`\*\*([^*]+)\*\*`)

// bold must run before italic, otherwise ** would first be read as two
// italic markers.
func bold(s string) string {
	return boldSpan.ReplaceAllString(s, `<strong>$1</strong>`)
}

var italicSpan = regexp.MustCompile(`\*([^*]+)\*`)

func italic(s string) string {
	return italicSpan.ReplaceAllString(s, `<em>$1</em>`)
}

var bareURL = regexp.MustCompile(`https?://[^\s<]+`)

// links anchors bare URLs. The sanitizer has already escaped every literal
// <, so [^\s<] stops exactly at tags inserted by earlier stages.
func links(s string) string {
	return bareURL.ReplaceAllStringFunc(s, func(url string) string {
		return `<a href="` + url + `" target="_blank" rel="noopener noreferrer">→ ` + url + `</a>`
	})
}

var headingPatterns = []struct {
	re  *regexp.Regexp
	tag string
}{
	{regexp.MustCompile(`(?m)^### (.+)$`), "h3"},
	{regexp.MustCompile(`(?m)^## (.+)$`), "h2"},
	{regexp.MustCompile(`(?m)^# (.+)$`), "h1"},
}

// headings handles one to three leading # anchored at line start. Deepest
// level first so ## is never half-consumed by the h1 pattern. Must run
// before paragraph and line-break substitution.
func headings(s string) string {
	for _, h := range headingPatterns {
		s = h.re.ReplaceAllString(s, `<`+h.tag+` class="message-header">$1</`+h.tag+`>`)
	}
	return s
}

var (
	bulletLine = regexp.MustCompile(`(?m)^- (.+)$`)
	listRun    = regexp.MustCompile(`<li>[^\n]*</li>(?:\n<li>[^\n]*</li>)*`)
)

// bulletLists turns "- item" lines into list items, then wraps each maximal
// contiguous run of items in a single unordered-list container.
func bulletLists(s string) string {
	s = bulletLine.ReplaceAllString(s, `<li>$1</li>`)
	return listRun.ReplaceAllStringFunc(s, func(run string) string {
		return `<ul class="message-list">` + run + `</ul>`
	})
}

var numberedLine = regexp.MustCompile(`(?m)^\d+\. (.+)$`)

// numberedLists converts "1. item" lines to list items. They are
// deliberately not wrapped in an ordered-list container; the asymmetry with
// bulletLists is inherited product behavior.
func numberedLists(s string) string {
	return numberedLine.ReplaceAllString(s, `<li>$1</li>`)
}

// paragraphs makes every remaining double newline a paragraph boundary and
// wraps the whole text in a paragraph.
func paragraphs(s string) string {
	return "<p>" + strings.ReplaceAll(s, "\n\n", "</p><p>") + "</p>"
}

var paragraphNewline = regexp.MustCompile(`<p>([^<]*?)\n([^<]*?)</p>`)

// lineBreaks converts single newlines inside tag-free paragraphs to <br>.
// One newline is rewritten per pass, so iterate until settled.
func lineBreaks(s string) string {
	for {
		next := paragraphNewline.ReplaceAllString(s, "<p>$1<br>$2</p>")
		if next == s {
			return s
		}
		s = next
	}
}

var (
	blockOpenWrap  = regexp.MustCompile(`<p>\s*<(h[1-3]|ul|ol|pre)`)
	blockCloseWrap = regexp.MustCompile(`</(h[1-3]|ul|ol|pre)>\s*</p>`)
)

// cleanup drops empty paragraphs and removes paragraph markup that ended up
// wrapped around block-level elements.
func cleanup(s string) string {
	s = strings.ReplaceAll(s, "<p></p>", "")
	s = blockOpenWrap.ReplaceAllString(s, "<${1}")
	s = blockCloseWrap.ReplaceAllString(s, "</${1}>")
	return s
}
