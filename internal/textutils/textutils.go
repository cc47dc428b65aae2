// Package textutils provides text normalization utilities for Portuguese
// bank-statement content and user questions.
package textutils

import (
	"regexp"
	"strings"
)

// accentReplacements maps the accented characters that appear in Brazilian
// statement text and user questions to their unaccented equivalents.
// The table is fixed on purpose: matching behavior must not drift with
// Unicode library changes.
var accentReplacements = []struct {
	from string
	to   string
}{
	{"á", "a"}, {"à", "a"}, {"ã", "a"}, {"â", "a"},
	{"é", "e"}, {"ê", "e"},
	{"í", "i"},
	{"ó", "o"}, {"ô", "o"}, {"õ", "o"},
	{"ú", "u"},
	{"ç", "c"},
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize lowercases s and strips the fixed set of Portuguese accents.
// It is the canonical form used for keyword matching and cache keys.
func Normalize(s string) string {
	s = strings.ToLower(s)
	for _, r := range accentReplacements {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return s
}

// CollapseWhitespace trims s and replaces any run of whitespace with a
// single space.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// TitleCase capitalizes the first letter of each word, lowercasing the
// rest. Short Portuguese connectives stay lowercase when not leading.
func TitleCase(s string) string {
	lowerWords := map[string]bool{
		"de": true, "da": true, "do": true, "das": true, "dos": true, "e": true,
	}

	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if i > 0 && lowerWords[w] {
			continue
		}
		r := []rune(w)
		if len(r) > 0 {
			words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return strings.Join(words, " ")
}
