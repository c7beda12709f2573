package model

import (
	"errors"
	"strings"

	"github.com/beevik/etree"

	"mcat/sortkey"
)

// Title is display text with derived forms used for ordering and file names.
type Title struct {
	Raw        string
	Normalized string
	Sort       string
	File       string
}

// NewTitle builds title from raw text. Empty text or text without any words
// after normalization is rejected with TitleError.
func NewTitle(raw string) (Title, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Title{}, &TitleError{Text: raw, Message: "empty title"}
	}
	sort, err := sortkey.Sort(raw)
	if err != nil {
		return Title{}, &TitleError{Text: raw, Message: err.Error()}
	}
	return Title{
		Raw:        raw,
		Normalized: sortkey.Normalize(raw),
		Sort:       sort,
		File:       sortkey.Filename(raw),
	}, nil
}

func (t Title) String() string {
	return t.Raw
}

// IsZero reports whether title was never set.
func (t Title) IsZero() bool {
	return t.Raw == ""
}

// Equal compares titles by normalized text, ignoring case and punctuation.
func (t Title) Equal(other Title) bool {
	return t.Normalized == other.Normalized
}

// Slug returns transliterated ASCII form of the title.
func (t Title) Slug() string {
	return sortkey.Slug(t.Raw)
}

func parseTitle(el *etree.Element) (Title, error) {
	title, err := NewTitle(el.Text())
	if err != nil {
		var te *TitleError
		if errors.As(err, &te) {
			te.Element = el.Tag
		}
		return Title{}, err
	}
	return title, nil
}
