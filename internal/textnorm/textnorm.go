// Package textnorm cleans raw text before parsing: markup removal,
// unicode normalization, and whitespace collapsing.
package textnorm

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	tagRe        = regexp.MustCompile(`</?[A-Za-z][^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Clean strips markup tags, unescapes HTML entities, applies NFC
// normalization, drops control characters, and collapses all
// whitespace runs (including newlines) to single spaces.
//
// Clean is a fixed point: Clean(Clean(x)) == Clean(x). A tag adjacent
// to words never fuses the surrounding words together; accented
// letters round-trip unchanged.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	// Tags become spaces before entities resolve, so "5 &lt; 10" keeps
	// its comparison text. The tag pattern requires a letter after the
	// bracket; a bare "<" produced by an entity is not markup and must
	// survive a second pass.
	s := tagRe.ReplaceAllString(raw, " ")
	s = html.UnescapeString(s)
	s = norm.NFC.String(s)

	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) && r != '\n' && r != '\t' && r != ' ' {
			return ' ' // nbsp and its relatives, which \s does not cover
		}
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)

	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// WordCount counts whitespace-delimited tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
