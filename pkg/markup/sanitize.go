package markup

import "strings"

// escaper rewrites every markup-significant character in a single pass, so
// already-produced entities are never escaped twice.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape replaces the characters &, <, >, " and ' with their named-entity
// equivalents and leaves everything else untouched. It must run before any
// formatting stage so that message content can never be read as structural
// markup by a later stage.
func Escape(text string) string {
	return escaper.Replace(text)
}
