package sortkey

import (
	"strings"
	"unicode"

	"github.com/gosimple/slug"
)

// Transliterate replaces non-ASCII letters with ASCII equivalents keeping
// word boundaries and capitalization: "Война и мир" -> "Voina i mir".
// Not safe for concurrent use with Slug, slug keeps lowercasing switch in
// package state.
func Transliterate(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = transliterateWord(word)
	}
	return strings.Join(words, " ")
}

func transliterateWord(word string) string {
	slug.Lowercase = false
	trans := slug.Make(word)
	slug.Lowercase = true
	if trans == "" {
		return word
	}

	src, out := []rune(word), []rune(trans)
	switch {
	case upperOnly(src):
		for i := range out {
			out[i] = unicode.ToUpper(out[i])
		}
	case unicode.IsUpper(src[0]):
		out[0] = unicode.ToUpper(out[0])
	}
	return string(out)
}

// upperOnly reports whether word has more than one letter and all of them
// are upper case.
func upperOnly(runes []rune) bool {
	letters := 0
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters > 1
}
