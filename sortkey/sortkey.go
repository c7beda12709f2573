// Package sortkey derives ordering and identity strings from free text
// titles: punctuation stripping, case folding, leading article relocation and
// whitespace collapsing.
package sortkey

import (
	"errors"
	"strings"
	"unicode"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ErrNoWords is returned when text has nothing left after normalization.
var ErrNoWords = errors.New("no words left after normalization")

// Articles are relocated to the end of a sort key.
var Articles = []string{"a", "an", "the"}

// ArticleMark precedes relocated article in a sort key.
const ArticleMark = "+"

// Normalize strips all punctuation and symbols, case-folds and collapses
// whitespace runs to a single space.
func Normalize(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, norm.NFC.String(text))
	// cases.Caser is stateful and cannot be shared between goroutines
	return strings.Join(strings.Fields(cases.Fold().String(stripped)), " ")
}

// Sort returns sort key for text: normalized words joined with underscores,
// leading article moved to the end. For example "The Ugly Bridge 2" becomes
// "ugly_bridge_2_+the".
func Sort(text string) (string, error) {
	words := strings.Fields(Normalize(text))
	if len(words) == 0 {
		return "", ErrNoWords
	}
	if len(words) > 1 && isArticle(words[0]) {
		words = append(words[1:], ArticleMark+words[0])
	}
	return strings.Join(words, "_"), nil
}

// Filename returns normalized text with whitespace replaced by underscores.
// No article relocation happens here.
func Filename(text string) string {
	return strings.Join(strings.Fields(Normalize(text)), "_")
}

// Slug returns ASCII transliterated, hyphen separated form of text suitable
// for file names on file systems which do not like non-ASCII names.
func Slug(text string) string {
	return slug.Make(text)
}

func isArticle(word string) bool {
	for _, a := range Articles {
		if word == a {
			return true
		}
	}
	return false
}
