// Package render turns formatted message markup into styled terminal lines.
// It understands exactly the element vocabulary the formatter produces
// (paragraphs, breaks, headings, lists, code blocks, inline spans, anchors);
// anything else passes through as text.
package render

import (
	"regexp"
	"strings"

	"guideme/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

type spanKind int

const (
	spanText spanKind = iota
	spanStrong
	spanEm
	spanCode
	spanLink
	spanBreak
)

type span struct {
	text string
	kind spanKind
}

// unescaper restores the named entities the sanitizer produced. A single
// pass, so an entity is never decoded twice.
var unescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#039;", "'",
	"&amp;", "&",
)

// Unescape decodes the sanitizer's entity references back to characters for
// terminal display.
func Unescape(text string) string {
	return unescaper.Replace(text)
}

// Truncate cuts a styled string to the given display width.
func Truncate(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

var blockPattern = regexp.MustCompile(`(?s)` +
	`<pre class="code-block"><div class="code-header">(.*?)</div><code>(.*?)</code></pre>` +
	`|<h([1-3]) class="message-header">(.*?)</h[1-3]>` +
	`|<ul class="message-list">(.*?)</ul>` +
	`|<li>(.*?)</li>` +
	`|<p>(.*?)</p>`)

var listItem = regexp.MustCompile(`(?s)<li>(.*?)</li>`)

// strayTag drops paragraph remnants the formatter's cleanup pass leaves
// behind when a block element and prose share a paragraph.
var strayTag = regexp.MustCompile(`</?p>`)

// Lines renders markup into width-wrapped styled terminal lines. Blocks are
// separated by a single blank line.
func Lines(markup string, width int) []string {
	if width < 1 {
		width = 1
	}

	var out []string
	appendBlock := func(lines []string) {
		if len(lines) == 0 {
			return
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, lines...)
	}

	pos := 0
	for _, loc := range blockPattern.FindAllStringSubmatchIndex(markup, -1) {
		if between := markup[pos:loc[0]]; strings.TrimSpace(strayTag.ReplaceAllString(between, "")) != "" {
			appendBlock(renderParagraph(strayTag.ReplaceAllString(between, ""), width))
		}
		pos = loc[1]

		switch {
		case loc[2] >= 0: // code block
			appendBlock(renderCodeBlock(markup[loc[2]:loc[3]], markup[loc[4]:loc[5]], width))
		case loc[6] >= 0: // heading
			appendBlock(renderHeading(markup[loc[8]:loc[9]], width))
		case loc[10] >= 0: // unordered list
			var lines []string
			for _, item := range listItem.FindAllStringSubmatch(markup[loc[10]:loc[11]], -1) {
				lines = append(lines, renderListItem(item[1], width)...)
			}
			appendBlock(lines)
		case loc[12] >= 0: // bare list item (numbered, by design unwrapped)
			appendBlock(renderListItem(markup[loc[12]:loc[13]], width))
		case loc[14] >= 0: // paragraph
			appendBlock(renderParagraph(markup[loc[14]:loc[15]], width))
		}
	}
	if rest := markup[pos:]; strings.TrimSpace(strayTag.ReplaceAllString(rest, "")) != "" {
		appendBlock(renderParagraph(strayTag.ReplaceAllString(rest, ""), width))
	}

	return out
}

func renderCodeBlock(lang, code string, width int) []string {
	lines := []string{styles.CodeHeaderStyle.Render("── " + Unescape(lang) + " ──")}
	for _, raw := range strings.Split(Unescape(code), "\n") {
		raw = strings.ReplaceAll(raw, "\t", "    ")
		for {
			if runewidth.StringWidth(raw) <= width {
				lines = append(lines, styles.CodeStyle.Render(raw))
				break
			}
			cut := runewidth.Truncate(raw, width, "")
			if cut == "" {
				// A rune wider than the whole line; emit it rather than loop.
				lines = append(lines, styles.CodeStyle.Render(raw))
				break
			}
			lines = append(lines, styles.CodeStyle.Render(cut))
			raw = raw[len(cut):]
		}
	}
	return lines
}

func renderHeading(content string, width int) []string {
	var lines []string
	for _, line := range wrapSpans(inlineSpans(content), width, "", "") {
		lines = append(lines, styles.HeadingStyle.Render(plain(line)))
	}
	return lines
}

func renderListItem(content string, width int) []string {
	return wrapSpans(inlineSpans(content), width, "• ", "  ")
}

func renderParagraph(content string, width int) []string {
	return wrapSpans(inlineSpans(content), width, "", "")
}

// PlainLines word-wraps raw text without any tag or entity handling.
// Used for user-authored messages, which render verbatim.
func PlainLines(text string, width int) []string {
	var lines []string
	for _, seg := range strings.Split(text, "\n") {
		if seg == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapSpans([]span{{kind: spanText, text: seg}}, width, "", "")...)
	}
	return lines
}

var inlineTag = regexp.MustCompile(`(?s)<strong>.*?</strong>` +
	`|<em>.*?</em>` +
	`|<code class="inline-code">.*?</code>` +
	`|<a href="[^"]*"[^>]*>.*?</a>` +
	`|<br>`)

// inlineSpans tokenizes paragraph-level content into styled spans.
func inlineSpans(content string) []span {
	var spans []span
	pos := 0
	for _, loc := range inlineTag.FindAllStringIndex(content, -1) {
		if text := content[pos:loc[0]]; text != "" {
			spans = append(spans, span{text: Unescape(text), kind: spanText})
		}
		spans = append(spans, classifyTag(content[loc[0]:loc[1]]))
		pos = loc[1]
	}
	if text := content[pos:]; text != "" {
		spans = append(spans, span{text: Unescape(text), kind: spanText})
	}
	return spans
}

func classifyTag(tag string) span {
	switch {
	case tag == "<br>":
		return span{kind: spanBreak}
	case strings.HasPrefix(tag, "<strong>"):
		return span{text: Unescape(inner(tag)), kind: spanStrong}
	case strings.HasPrefix(tag, "<em>"):
		return span{text: Unescape(inner(tag)), kind: spanEm}
	case strings.HasPrefix(tag, "<code"):
		return span{text: Unescape(inner(tag)), kind: spanCode}
	default: // anchor; the label already carries the directional glyph
		return span{text: Unescape(inner(tag)), kind: spanLink}
	}
}

// inner strips the outermost tag pair from a matched element.
func inner(tag string) string {
	open := strings.IndexByte(tag, '>')
	close := strings.LastIndexByte(tag, '<')
	if open < 0 || close <= open {
		return tag
	}
	return tag[open+1 : close]
}

func styleFor(kind spanKind) func(...string) string {
	switch kind {
	case spanStrong:
		return styles.StrongStyle.Render
	case spanEm:
		return styles.EmStyle.Render
	case spanCode:
		return styles.CodeStyle.Render
	case spanLink:
		return styles.LinkStyle.Render
	default:
		return styles.TextStyle.Render
	}
}

// wrapSpans lays spans out into lines no wider than width, styling each
// fragment as it is placed. prefix starts the first line, cont indents
// continuation lines.
func wrapSpans(spans []span, width int, prefix, cont string) []string {
	var lines []string
	var cur strings.Builder

	curPrefix := prefix
	cur.WriteString(curPrefix)
	curWidth := runewidth.StringWidth(curPrefix)

	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curPrefix = cont
		cur.WriteString(cont)
		curWidth = runewidth.StringWidth(cont)
	}

	for _, sp := range spans {
		if sp.kind == spanBreak {
			flush()
			continue
		}
		style := styleFor(sp.kind)
		for _, word := range splitWords(sp.text) {
			w := runewidth.StringWidth(word)
			if curWidth > runewidth.StringWidth(curPrefix) && curWidth+w > width {
				flush()
				word = strings.TrimLeft(word, " ")
				w = runewidth.StringWidth(word)
				if word == "" {
					continue
				}
			}
			// A single word wider than a line, typically a URL, gets
			// hard-split.
			for curWidth+w > width && w > 1 {
				avail := width - curWidth
				if avail < 1 {
					avail = 1
				}
				head := runewidth.Truncate(word, avail, "")
				if head == "" {
					break
				}
				cur.WriteString(style(head))
				curWidth += runewidth.StringWidth(head)
				flush()
				word = word[len(head):]
				w = runewidth.StringWidth(word)
			}
			if word == "" {
				continue
			}
			cur.WriteString(style(word))
			curWidth += w
		}
	}

	if curWidth > runewidth.StringWidth(curPrefix) || len(lines) == 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// splitWords cuts text after every run of spaces so wrapping can break
// between words without losing the spacing.
func splitWords(text string) []string {
	var words []string
	start := 0
	inSpace := false
	for i, r := range text {
		if r == ' ' {
			inSpace = true
			continue
		}
		if inSpace {
			words = append(words, text[start:i])
			start = i
			inSpace = false
		}
	}
	if start < len(text) {
		words = append(words, text[start:])
	}
	return words
}

// plain strips any styling already applied to a wrapped line so block-level
// styles can be applied uniformly.
func plain(line string) string {
	return ansi.Strip(line)
}
