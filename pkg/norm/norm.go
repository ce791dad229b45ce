// Package norm folds raw display names and queries into a canonical
// comparable form and splits names into semantic tokens.
//
// All functions here are pure and allocation-light: they are called once per
// entity at index build time and once per keystroke on the query path, and
// their output feeds caches upstream, so identical input must always produce
// identical output.
package norm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	unorm "golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// fold collapses full-width variants, decomposes compatibility forms and
// strips combining marks, so "Ｃａｆé" and "Cafe" compare equal.
var fold = transform.Chain(width.Fold, unorm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// IsCJK reports whether r falls in the CJK Unified Ideographs ranges
// (base, Extension A/B) or the Compatibility Ideographs blocks.
func IsCJK(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
		return true
	case r >= 0x3400 && r <= 0x4DBF: // Extension A
		return true
	case r >= 0x20000 && r <= 0x2A6DF: // Extension B
		return true
	case r >= 0xF900 && r <= 0xFAFF: // Compatibility Ideographs
		return true
	case r >= 0x2F800 && r <= 0x2FA1F: // Compatibility Supplement
		return true
	}
	return false
}

// ContainsCJK reports whether s has at least one CJK ideograph.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if IsCJK(r) {
			return true
		}
	}
	return false
}

// Normalize folds case, diacritics and width, then keeps only ASCII
// letters/digits and CJK ideographs. Everything else is dropped outright:
// punctuation and whitespace contribute nothing to the comparable form.
// Normalize is idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || IsCJK(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokenize splits raw text on runs of non-letter/non-digit runes, then
// splits each run at camel-case boundaries, then normalizes every piece.
// Empty pieces after normalization are discarded.
//
//	"Visual Studio Code" -> [visual, studio, code]
//	"XMLHttpRequest"     -> [xml, http, request]
//	"word2vec"           -> [word2vec]
func Tokenize(s string) []string {
	var tokens []string
	var run []rune
	flush := func() {
		if len(run) == 0 {
			return
		}
		for _, piece := range camelSplit(run) {
			if t := Normalize(string(piece)); t != "" {
				tokens = append(tokens, t)
			}
		}
		run = run[:0]
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			run = append(run, r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// camelSplit breaks a letter/digit run wherever a lowercase rune precedes an
// uppercase one, or an uppercase run is followed by a lowercase rune (the
// last upper starts the next piece: "XMLHttp" -> "XML", "Http").
func camelSplit(run []rune) [][]rune {
	if len(run) < 2 {
		return [][]rune{run}
	}
	var pieces [][]rune
	start := 0
	for i := 1; i < len(run); i++ {
		prev, cur := run[i-1], run[i]
		if unicode.IsLower(prev) && unicode.IsUpper(cur) {
			pieces = append(pieces, run[start:i])
			start = i
			continue
		}
		if i+1 < len(run) && unicode.IsUpper(prev) && unicode.IsUpper(cur) && unicode.IsLower(run[i+1]) {
			pieces = append(pieces, run[start:i])
			start = i
		}
	}
	pieces = append(pieces, run[start:])
	return pieces
}

// Acronym concatenates the first character of every all-ASCII token, in
// token order. Tokens with any non-ASCII rune contribute nothing, so a
// CJK-only name has an empty acronym.
func Acronym(tokens []string) string {
	var b strings.Builder
	for _, t := range tokens {
		if t == "" || !isASCII(t) {
			continue
		}
		b.WriteByte(t[0])
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
