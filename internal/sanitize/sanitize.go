// Package sanitize provides the text cleanup applied to user-submitted
// comment fields before they enter the document. It is pure string
// processing with no dependency on the rest of the application.
package sanitize

import "strings"

// MaxTextLen is the maximum stored length, in characters, of a sanitized
// comment or author field.
const MaxTextLen = 1000

// escaper rewrites the four HTML-sensitive characters the frontend renders
// unescaped. The ampersand is deliberately not escaped; stored entities
// round-trip as-is.
var escaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Text HTML-escapes s and truncates the result to MaxTextLen characters.
// Escaping happens first, so a string may shrink below the limit in source
// characters while the stored form still fits exactly MaxTextLen.
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = escaper.Replace(s)
	if r := []rune(s); len(r) > MaxTextLen {
		return string(r[:MaxTextLen])
	}
	return s
}
