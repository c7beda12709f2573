package model

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// DefaultUniqueIndex is used when catalog has no unique index.
const DefaultUniqueIndex = 1

// Catalog carries bibliographic identity of a work.
type Catalog struct {
	Copyright   *Copyright
	AltTitles   AlternateTitles
	UniqueIndex *UniqueIndex
	Artists     []Noun
	// Inherited is set when the catalog was not present in source and
	// artists were taken from enclosing album.
	Inherited bool
}

// Year returns copyright year or 0.
func (c *Catalog) Year() int {
	if c.Copyright == nil {
		return 0
	}
	return c.Copyright.Year
}

// Index returns unique index disambiguator or DefaultUniqueIndex.
func (c *Catalog) Index() int {
	if c.UniqueIndex == nil {
		return DefaultUniqueIndex
	}
	return c.UniqueIndex.Index
}

// Copyright mirrors <copyright>.
type Copyright struct {
	Year    int
	Holders []Noun
}

// AlternateTitles mirrors <altTitles>.
type AlternateTitles struct {
	Original     *Title
	Production   []Title
	Distribution []Title
	Variant      *Title
	// VariantSort means variant title should be used for sorting and identity.
	VariantSort bool
	// VariantSpeak means variant title should be used for text-to-speech.
	VariantSpeak bool
}

// UniqueIndex disambiguates works sharing title and year.
type UniqueIndex struct {
	Index int
	Note  string
}

func parseCatalog(el *etree.Element, log *zap.Logger) Catalog {
	catalog := Catalog{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "copyright":
			cr := parseCopyright(child, log)
			catalog.Copyright = &cr
		case "altTitles":
			catalog.AltTitles = parseAlternateTitles(child, log)
		case "uniqueIndex":
			ui := parseUniqueIndex(child, log)
			catalog.UniqueIndex = &ui
		case "artist":
			if artist := parseNoun(child, NounGroup, log); artist.Value != "" {
				catalog.Artists = append(catalog.Artists, artist)
			} else {
				log.Debug("Empty artist, skipping")
			}
		default:
			skipTag(log, el, child)
		}
	}
	return catalog
}

func parseCopyright(el *etree.Element, log *zap.Logger) Copyright {
	cr := Copyright{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "year":
			if cr.Year = intText(child, 0, log); cr.Year < 0 {
				log.Debug("Negative copyright year, using 0", zap.Int("year", cr.Year))
				cr.Year = 0
			}
		case "holder":
			if holder := parseNoun(child, NounEntity, log); holder.Value != "" {
				cr.Holders = append(cr.Holders, holder)
			}
		default:
			skipTag(log, el, child)
		}
	}
	return cr
}

func parseAlternateTitles(el *etree.Element, log *zap.Logger) AlternateTitles {
	alt := AlternateTitles{}
	for _, child := range el.ChildElements() {
		title, err := parseTitle(child)
		if err != nil {
			if !isKnownAltTitle(child.Tag) {
				skipTag(log, el, child)
				continue
			}
			log.Debug("Bad alternate title, skipping", zap.String("tag", child.Tag), zap.Error(err))
			continue
		}
		switch child.Tag {
		case "original":
			alt.Original = &title
		case "production":
			alt.Production = append(alt.Production, title)
		case "distribution":
			alt.Distribution = append(alt.Distribution, title)
		case "variant":
			alt.Variant = &title
			alt.VariantSort = xsdBool(child.SelectAttrValue("sortable", ""))
			alt.VariantSpeak = xsdBool(child.SelectAttrValue("textToSpeech", ""))
		default:
			skipTag(log, el, child)
		}
	}
	return alt
}

func isKnownAltTitle(tag string) bool {
	switch tag {
	case "original", "production", "distribution", "variant":
		return true
	}
	return false
}

func parseUniqueIndex(el *etree.Element, log *zap.Logger) UniqueIndex {
	ui := UniqueIndex{Index: DefaultUniqueIndex}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "index":
			if ui.Index = intText(child, DefaultUniqueIndex, log); ui.Index < 1 {
				log.Debug("Unique index must be positive, using default", zap.Int("index", ui.Index))
				ui.Index = DefaultUniqueIndex
			}
		case "note":
			ui.Note = textOf(child)
		default:
			skipTag(log, el, child)
		}
	}
	return ui
}
