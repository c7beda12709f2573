package model

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"mcat/sortkey"
)

// DefaultNameTemplate is used when configuration does not provide one.
const DefaultNameTemplate = "{{ .FileTitle }}-{{ .Year }}"

// nameValues holds variables available for name template expansion.
type nameValues struct {
	Title      string
	SortTitle  string
	FileTitle  string
	Slug       string
	Year       int
	Index      int
	Kind       string
	Key        string
	DisplayKey string
	ID         string
	Collection string
	Media      string
	Artists    []string
}

// ExpandNameTemplate expands template with content identity values. Media
// may be nil. When transliterate is set text values are converted to ASCII
// before expansion.
func ExpandNameTemplate(content Content, media *Media, field string, transliterate bool) (string, error) {
	if content == nil {
		return "", fmt.Errorf("no content to expand template for")
	}
	if field == "" {
		field = DefaultNameTemplate
	}

	w := content.Base()
	values := &nameValues{
		Title:      w.Title.Raw,
		SortTitle:  w.SortTitle,
		FileTitle:  w.Title.File,
		Slug:       w.Title.Slug(),
		Year:       w.Year(),
		Index:      w.Index(),
		Kind:       string(content.Kind()),
		Key:        w.UniqueKey,
		DisplayKey: w.DisplayKey(),
		ID:         w.ID().String(),
		Artists:    nounStrings(w.Catalog.Artists),
	}
	if media != nil {
		values.Collection = media.Collection
		values.Media = media.Title.Raw
	}
	if transliterate {
		values.Title = sortkey.Transliterate(values.Title)
		values.FileTitle = sortkey.Transliterate(values.FileTitle)
		values.Media = sortkey.Transliterate(values.Media)
		for i, a := range values.Artists {
			values.Artists[i] = sortkey.Transliterate(a)
		}
	}

	tmpl, err := template.New("name").Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse name template: %w", err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand name template: %w", err)
	}
	return buf.String(), nil
}
