package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ellipsis marks text cut by TruncateAtWord.
const Ellipsis = "..."

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {},
	"to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {}, "do": {}, "does": {},
	"did": {}, "will": {}, "would": {}, "should": {}, "could": {}, "may": {}, "might": {},
	"must": {}, "can": {}, "this": {}, "that": {}, "these": {}, "those": {},
}

// Normalize lowercases text, drops everything that is not a letter, digit or
// whitespace, and collapses whitespace runs to a single space.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// ExtractKeywords returns the normalized words of text longer than two
// characters that are not function words.
func ExtractKeywords(text string) map[string]struct{} {
	keywords := make(map[string]struct{})
	for _, w := range strings.Fields(Normalize(text)) {
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		keywords[w] = struct{}{}
	}
	return keywords
}

// IsStopWord reports whether w (already lowercased) is a function word.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// TruncateAtWord shortens s to at most limit runes. A cut string ends at the
// last space before the limit and carries Ellipsis.
func TruncateAtWord(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	keep := limit - utf8.RuneCountInString(Ellipsis)
	if keep < 0 {
		keep = 0
	}
	head := string(runes[:keep])
	if i := strings.LastIndex(head, " "); i >= 0 {
		head = head[:i]
	}
	return head + Ellipsis
}

// Prefix returns the first n runes of s.
func Prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Len counts runes.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// CollapseSpaces joins the whitespace separated fields of s with one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StartsUpper reports whether the first rune of s is an uppercase letter.
func StartsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}
