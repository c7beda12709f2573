package model

import (
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// Album is an audio release made of songs and dialogue tracks.
type Album struct {
	Work
	Elements []AlbumElement
}

func (*Album) Kind() ContentKind { return KindAlbum }
func (a *Album) Base() *Work     { return &a.Work }
func (*Album) content()          {}

// Runtime sums overall runtime of elements, elements without runtime are
// ignored.
func (a *Album) Runtime() time.Duration {
	var total time.Duration
	for _, e := range a.Elements {
		if d, ok := e.Base().Technical.Overall(); ok {
			total += d
		}
	}
	return total
}

// Songs returns album songs in order.
func (a *Album) Songs() []*Song {
	var songs []*Song
	for _, e := range a.Elements {
		if s, ok := e.(*Song); ok {
			songs = append(songs, s)
		}
	}
	return songs
}

// ElementKind distinguishes album element variants.
type ElementKind string

const (
	ElementSong     ElementKind = "song"
	ElementDialogue ElementKind = "dialogue"
)

// AlbumElement is implemented by Song and Dialogue. The set is closed.
type AlbumElement interface {
	Kind() ElementKind
	Base() *Track
	albumElement()
}

// Track holds fields shared by album elements.
type Track struct {
	// Number is position on album counted from 1.
	Number    int
	Title     Title
	Catalog   Catalog
	Technical *Technical
}

// Song is a musical track.
type Song struct {
	Track
	Music *Music
}

func (*Song) Kind() ElementKind { return ElementSong }
func (s *Song) Base() *Track    { return &s.Track }
func (*Song) albumElement()     {}

// Dialogue is a spoken track.
type Dialogue struct {
	Track
	Speakers []Name
}

func (*Dialogue) Kind() ElementKind { return ElementDialogue }
func (d *Dialogue) Base() *Track    { return &d.Track }
func (*Dialogue) albumElement()     {}

// ParseAlbum builds Album from <album> element. Elements are built after all
// album children are processed, so album catalog is known regardless of
// document order.
func ParseAlbum(el *etree.Element, log *zap.Logger) (*Album, error) {
	b := newWorkBuilder(el)
	var pending []*etree.Element
	for _, child := range el.ChildElements() {
		handled, err := b.add(child, log)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		switch child.Tag {
		case "song", "dialogue":
			pending = append(pending, child)
		default:
			skipTag(log, el, child)
		}
	}
	work, err := b.finish()
	if err != nil {
		return nil, err
	}

	album := &Album{Work: work}
	for _, child := range pending {
		element, err := parseAlbumElement(child, len(album.Elements)+1, &album.Catalog, log)
		if err != nil {
			return nil, &ContentBuildError{Element: el.Tag, Message: "bad album element", Cause: err}
		}
		album.Elements = append(album.Elements, element)
	}
	return album, nil
}

func parseAlbumContent(el *etree.Element, log *zap.Logger) (Content, error) {
	album, err := ParseAlbum(el, log)
	if err != nil {
		return nil, err
	}
	return album, nil
}

func parseAlbumElement(el *etree.Element, number int, parent *Catalog, log *zap.Logger) (AlbumElement, error) {
	track := Track{Number: number}
	var (
		hasTitle, hasCatalog bool
		music                *Music
		speakers             []Name
	)
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "title":
			title, err := parseTitle(child)
			if err != nil {
				return nil, err
			}
			track.Title, hasTitle = title, true
		case "catalog":
			track.Catalog, hasCatalog = parseCatalog(child, log), true
		case "technical":
			tech := parseTechnical(child, log)
			track.Technical = &tech
		case "music":
			if el.Tag != "song" {
				skipTag(log, el, child)
				continue
			}
			m := parseMusic(child, log)
			music = &m
		case "speaker":
			if el.Tag != "dialogue" {
				skipTag(log, el, child)
				continue
			}
			speakers = parseNames(speakers, child, log)
		default:
			skipTag(log, el, child)
		}
	}
	if !hasTitle {
		return nil, &ContentBuildError{Element: el.Tag, Message: "element has no title", Cause: ErrMissingTitle}
	}
	if !hasCatalog {
		// absent catalog borrows album artists, present one is kept even if empty
		track.Catalog = Catalog{Artists: parent.Artists, Inherited: true}
	}

	if el.Tag == "dialogue" {
		return &Dialogue{Track: track, Speakers: speakers}, nil
	}
	return &Song{Track: track, Music: music}, nil
}
