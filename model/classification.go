package model

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// Classification groups genre and rating information.
type Classification struct {
	Genres  []Genre
	Ratings []Rating
}

// Genre is a single genre reference, Type is free form (primary, secondary,
// style...) and stays empty when absent.
type Genre struct {
	Value string
	Type  string
}

// Rating is an audience rating in a named system (MPAA, BBFC, FSK...).
type Rating struct {
	System string
	Value  string
}

// HasGenre reports whether classification lists genre, case is ignored.
func (c *Classification) HasGenre(value string) bool {
	for _, g := range c.Genres {
		if equalFold(g.Value, value) {
			return true
		}
	}
	return false
}

func parseClassification(el *etree.Element, log *zap.Logger) Classification {
	cls := Classification{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "genre":
			if value := textOf(child); value != "" {
				cls.Genres = append(cls.Genres, Genre{Value: value, Type: child.SelectAttrValue("type", "")})
			} else {
				log.Debug("Empty genre value, skipping")
			}
		case "rating":
			if value := textOf(child); value != "" {
				cls.Ratings = append(cls.Ratings, Rating{System: child.SelectAttrValue("system", ""), Value: value})
			} else {
				log.Debug("Empty rating value, skipping")
			}
		default:
			skipTag(log, el, child)
		}
	}
	return cls
}
