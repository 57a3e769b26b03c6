package content

import (
	"regexp"
	"strings"
)

var reWhitespace = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)

// Slug derives a detail-page address from a title: the title is lowercased
// and every whitespace run becomes a single hyphen. Punctuation is kept, so
// "E-Commerce Platform" becomes "e-commerce-platform".
func Slug(title string) string {
	return reWhitespace.ReplaceAllString(strings.ToLower(title), "-")
}
