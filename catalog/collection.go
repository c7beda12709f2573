// Package catalog loads catalog documents from files, directories and zip
// archives into a Collection of contents keyed by unique key.
package catalog

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"

	"mcat/config"
	"mcat/model"
)

// Entry is content loaded from a catalog document together with the media
// it belongs to.
type Entry struct {
	Content model.Content
	Media   *model.Media
	// Source is path to the document, documents inside archives are
	// reported as "archive.zip/path/in/archive".
	Source string
}

// Key returns unique key of entry content.
func (e *Entry) Key() string {
	return e.Content.Base().UniqueKey
}

// Name expands configured name template for entry into relative path safe
// for current OS.
func (e *Entry) Name(cfg *config.CatalogConfig) (string, error) {
	name, err := model.ExpandNameTemplate(e.Content, e.Media, cfg.NameTemplate, cfg.Transliterate)
	if err != nil {
		return "", err
	}
	return config.CleanPath(name), nil
}

// DuplicateKeyError is returned when collection already has content with
// the same unique key, which means the same logical work.
type DuplicateKeyError struct {
	Key      string
	Existing string
	Source   string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate content %q from %s, already loaded from %s", e.Key, e.Source, e.Existing)
}

// Collection holds contents of many documents. Not safe for concurrent use.
type Collection struct {
	entries map[string]*Entry
	media   []*model.Media
	seen    map[*model.Media]struct{}
}

func NewCollection() *Collection {
	return &Collection{
		entries: make(map[string]*Entry),
		seen:    make(map[*model.Media]struct{}),
	}
}

// Add puts content into collection. Content with unique key already present
// is rejected with DuplicateKeyError.
func (c *Collection) Add(content model.Content, media *model.Media, source string) error {
	key := content.Base().UniqueKey
	if old, exists := c.entries[key]; exists {
		return &DuplicateKeyError{Key: key, Existing: old.Source, Source: source}
	}
	c.entries[key] = &Entry{Content: content, Media: media, Source: source}
	if media != nil {
		if _, ok := c.seen[media]; !ok {
			c.seen[media] = struct{}{}
			c.media = append(c.media, media)
		}
	}
	return nil
}

// AddLibrary adds every content of every media in library. Duplicates do not
// stop processing, all of them are returned.
func (c *Collection) AddLibrary(lib *model.Library, source string) (errs []error) {
	for _, m := range lib.Media {
		for _, content := range m.Contents {
			if err := c.Add(content, m, source); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

// Get returns entry by unique key.
func (c *Collection) Get(key string) (*Entry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

func (c *Collection) Len() int {
	return len(c.entries)
}

// Media returns media in the order they were first added.
func (c *Collection) Media() []*model.Media {
	return c.media
}

// Sorted returns entries in natural order of sort title, unique key breaks
// ties.
func (c *Collection) Sorted() []*Entry {
	out := make([]*Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Content.Base(), out[j].Content.Base()
		if a.SortTitle != b.SortTitle {
			return natural.Less(a.SortTitle, b.SortTitle)
		}
		return natural.Less(a.UniqueKey, b.UniqueKey)
	})
	return out
}
