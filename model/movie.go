package model

import (
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// Movie is a film.
type Movie struct {
	Work
	Tagline string
}

func (*Movie) Kind() ContentKind { return KindMovie }
func (m *Movie) Base() *Work     { return &m.Work }
func (*Movie) content()          {}

// Runtime returns overall runtime from technical section or 0.
func (m *Movie) Runtime() time.Duration {
	d, _ := m.Technical.Overall()
	return d
}

// ParseMovie builds Movie from <movie> element.
func ParseMovie(el *etree.Element, log *zap.Logger) (*Movie, error) {
	b := newWorkBuilder(el)
	movie := &Movie{}
	for _, child := range el.ChildElements() {
		handled, err := b.add(child, log)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		switch child.Tag {
		case "tagline":
			movie.Tagline = textOf(child)
		default:
			skipTag(log, el, child)
		}
	}
	work, err := b.finish()
	if err != nil {
		return nil, err
	}
	movie.Work = work
	return movie, nil
}

func parseMovieContent(el *etree.Element, log *zap.Logger) (Content, error) {
	movie, err := ParseMovie(el, log)
	if err != nil {
		return nil, err
	}
	return movie, nil
}
