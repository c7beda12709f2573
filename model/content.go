package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContentKind distinguishes content variants.
type ContentKind string

const (
	KindMovie ContentKind = "movie"
	KindAlbum ContentKind = "album"
)

// ErrMissingTitle is the cause of ContentBuildError for content element
// without <title>.
var ErrMissingTitle = errors.New("missing title")

// ContentNamespace is the UUID namespace for content identities.
var ContentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("mcat/content-identity/v1"))

// Content is implemented by Movie and Album. The set is closed.
type Content interface {
	Kind() ContentKind
	// Base returns fields shared by all content variants.
	Base() *Work
	// Runtime returns total known running time.
	Runtime() time.Duration
	content()
}

// Work holds fields shared by all content variants, including derived
// identity.
type Work struct {
	Title          Title
	Catalog        Catalog
	Classification *Classification
	Keywords       Keywords
	Technical      *Technical
	Crew           *Crew
	// SortTitle is variant title sort form when variant is marked sortable,
	// title sort form otherwise.
	SortTitle string
	// UniqueKey is SortTitle-YYYY-N, index is always present.
	UniqueKey string
}

// Year returns copyright year or 0.
func (w *Work) Year() int {
	return w.Catalog.Year()
}

// Index returns unique index disambiguator.
func (w *Work) Index() int {
	return w.Catalog.Index()
}

// DisplayKey is human readable form of UniqueKey: default index is omitted.
func (w *Work) DisplayKey() string {
	if idx := w.Index(); idx != DefaultUniqueIndex {
		return fmt.Sprintf("%s-%04d-%d", w.SortTitle, w.Year(), idx)
	}
	return fmt.Sprintf("%s-%04d", w.SortTitle, w.Year())
}

// ID returns deterministic identity derived from UniqueKey.
func (w *Work) ID() uuid.UUID {
	return uuid.NewSHA1(ContentNamespace, []byte(w.UniqueKey))
}

// SameWork reports whether two contents are the same logical work. Equality
// is defined by unique key only.
func SameWork(a, b Content) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Base().UniqueKey == b.Base().UniqueKey
}

// UniqueKey builds machine identity key from title and catalog.
func UniqueKey(title Title, catalog *Catalog) (sortTitle, key string) {
	sortTitle = title.Sort
	if alt := catalog.AltTitles; alt.VariantSort && alt.Variant != nil {
		sortTitle = alt.Variant.Sort
	}
	return sortTitle, fmt.Sprintf("%s-%04d-%d", sortTitle, catalog.Year(), catalog.Index())
}

// workBuilder accumulates common content children, it is used by every
// content variant builder.
type workBuilder struct {
	tag      string
	work     Work
	hasTitle bool
}

func newWorkBuilder(el *etree.Element) *workBuilder {
	return &workBuilder{tag: el.Tag}
}

// add handles child common to all contents. It reports false for children it
// does not know about.
func (b *workBuilder) add(child *etree.Element, log *zap.Logger) (bool, error) {
	switch child.Tag {
	case "title":
		if b.hasTitle {
			log.Debug("Duplicate title, ignoring", zap.String("parent", b.tag), zap.String("title", textOf(child)))
			return true, nil
		}
		title, err := parseTitle(child)
		if err != nil {
			return true, err
		}
		b.work.Title, b.hasTitle = title, true
	case "catalog":
		b.work.Catalog = parseCatalog(child, log)
	case "classification":
		cls := parseClassification(child, log)
		b.work.Classification = &cls
	case "keywords":
		b.work.Keywords = parseKeywords(child, log)
	case "technical":
		tech := parseTechnical(child, log)
		b.work.Technical = &tech
	case "crew":
		crew := parseCrew(child, log)
		b.work.Crew = &crew
	default:
		return false, nil
	}
	return true, nil
}

// finish computes identity. Content without title cannot be identified.
func (b *workBuilder) finish() (Work, error) {
	if !b.hasTitle {
		return Work{}, &ContentBuildError{Element: b.tag, Message: "content has no title", Cause: ErrMissingTitle}
	}
	b.work.SortTitle, b.work.UniqueKey = UniqueKey(b.work.Title, &b.work.Catalog)
	return b.work, nil
}
