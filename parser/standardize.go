package parser

import (
	regexp "github.com/wasilibs/go-re2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// whitespaceRe matches ASCII whitespace, vertical tab, Unicode space
// separators such as U+00A0 and U+2003, and the U+FEFF byte order mark.
var whitespaceRe = regexp.MustCompile(`[\s\x{0B}\p{Z}\x{FEFF}]+`)

// Standardize removes all whitespace from s and lower-cases it. Applying it
// twice gives the same result as applying it once.
func Standardize(s string) string {
	return cases.Lower(language.Und).String(whitespaceRe.ReplaceAllString(s, ""))
}
