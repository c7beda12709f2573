package model

import (
	"mcat/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns readable tree of the library, it exists for manual
// inspection only.
func (l *Library) String() string {
	if l == nil {
		return "<nil Library>"
	}
	tw := treeWriter{debug.NewTreeWriter()}
	tw.Line(0, "Library name=%q media=%d", l.Name, len(l.Media))
	for i, m := range l.Media {
		tw.media(1, i, m)
	}
	return tw.String()
}

// String returns readable tree of the media.
func (m *Media) String() string {
	if m == nil {
		return "<nil Media>"
	}
	tw := treeWriter{debug.NewTreeWriter()}
	tw.media(0, 0, m)
	return tw.String()
}

func (tw treeWriter) media(depth, i int, m *Media) {
	tw.Line(depth, "Media[%d] id=%q collection=%q", i, m.ID, m.Collection)
	tw.title(depth+1, "Title", &m.Title)
	if r := m.Release; r != nil {
		date := ""
		if !r.Date.IsZero() {
			date = r.Date.Format(releaseDateLayout)
		}
		tw.Line(depth+1, "Release type=%s retailer=%q id=%q", r.Type, r.Retailer, r.ID)
		tw.Field(depth+2, "Date", date)
		tw.Field(depth+2, "Edition", r.Edition)
	}
	if md := m.Medium; md != nil {
		tw.Line(depth+1, "Medium type=%s discs=%d region=%q", md.Type, md.Discs, md.Region)
	}
	if len(m.Packaging) > 0 {
		tw.Line(depth+1, "Packaging")
		WalkPackaging(m.Packaging, func(item PackageItem, level int) {
			tw.packageItem(depth+2+level, item)
		})
	}
	tw.Line(depth+1, "Contents runtime=%s", FormatDuration(m.Runtime()))
	for _, c := range m.Contents {
		tw.content(depth+2, c)
	}
}

func (tw treeWriter) packageItem(depth int, item PackageItem) {
	switch it := item.(type) {
	case *Container:
		tw.Line(depth, "Container type=%s items=%d", it.Type, len(it.Items))
	case *Disc:
		tw.Line(depth, "Disc type=%s id=%q scanlines=%d", it.Type, it.ID, it.Scanlines)
		tw.Field(depth+1, "Label", it.Label)
	case *Booklet:
		tw.Line(depth, "Booklet pages=%d", it.Pages)
		tw.Field(depth+1, "Label", it.Label)
	case *CodeSheet:
		tw.Line(depth, "CodeSheet retailer=%q type=%q", it.Retailer, it.Type)
		tw.Field(depth+1, "Code", it.Code)
	}
}

func (tw treeWriter) title(depth int, label string, t *Title) {
	tw.Line(depth, "%s %q sort=%q file=%q", label, t.Raw, t.Sort, t.File)
}

func (tw treeWriter) content(depth int, c Content) {
	w := c.Base()
	tw.Line(depth, "Content kind=%s key=%q id=%s", c.Kind(), w.UniqueKey, w.ID())
	tw.title(depth+1, "Title", &w.Title)
	tw.catalog(depth+1, &w.Catalog)
	if cls := w.Classification; cls != nil {
		tw.Line(depth+1, "Classification")
		for _, g := range cls.Genres {
			tw.Line(depth+2, "Genre %q type=%q", g.Value, g.Type)
		}
		for _, r := range cls.Ratings {
			tw.Line(depth+2, "Rating %q system=%q", r.Value, r.System)
		}
	}
	tw.keywords(depth+1, w.Keywords)
	tw.technical(depth+1, w.Technical)
	tw.crew(depth+1, w.Crew)

	switch v := c.(type) {
	case *Movie:
		tw.Field(depth+1, "Tagline", v.Tagline)
	case *Album:
		tw.Line(depth+1, "Elements runtime=%s", FormatDuration(v.Runtime()))
		for _, e := range v.Elements {
			tw.albumElement(depth+2, e)
		}
	}
}

func (tw treeWriter) catalog(depth int, c *Catalog) {
	tw.Line(depth, "Catalog year=%d index=%d inherited=%t", c.Year(), c.Index(), c.Inherited)
	if c.Copyright != nil {
		tw.List(depth+1, "Holders", nounStrings(c.Copyright.Holders))
	}
	alt := &c.AltTitles
	if alt.Original != nil {
		tw.title(depth+1, "Original", alt.Original)
	}
	for i := range alt.Production {
		tw.title(depth+1, "Production", &alt.Production[i])
	}
	for i := range alt.Distribution {
		tw.title(depth+1, "Distribution", &alt.Distribution[i])
	}
	if alt.Variant != nil {
		tw.title(depth+1, "Variant", alt.Variant)
		tw.Line(depth+2, "sortable=%t textToSpeech=%t", alt.VariantSort, alt.VariantSpeak)
	}
	if c.UniqueIndex != nil {
		tw.Field(depth+1, "IndexNote", c.UniqueIndex.Note)
	}
	tw.List(depth+1, "Artists", nounStrings(c.Artists))
}

func (tw treeWriter) keywords(depth int, kw Keywords) {
	if kw.Len() == 0 {
		return
	}
	tw.Line(depth, "Keywords count=%d", kw.Len())
	for _, pool := range kw.Pools() {
		tw.Line(depth+1, "Pool %q", pool)
		for _, k := range kw.Sorted(pool) {
			tw.Line(depth+2, "%s %q relevance=%d", k.Kind, k.String(), k.Relevance)
			tw.Field(depth+3, "Synonym", k.Synonym)
			tw.Field(depth+3, "Clarification", k.Clarification)
		}
	}
}

func (tw treeWriter) technical(depth int, t *Technical) {
	if t == nil {
		return
	}
	tw.Line(depth, "Technical aspectRatio=%q", t.AspectRatio)
	if t.Runtime != nil {
		if t.Runtime.Overall != nil {
			tw.Line(depth+1, "Overall %s", FormatDuration(*t.Runtime.Overall))
		}
		if t.Runtime.Credits != nil {
			tw.Line(depth+1, "Credits %s", FormatDuration(*t.Runtime.Credits))
		}
	}
	for _, l := range t.Audio {
		tw.Line(depth+1, "Audio %s", l)
	}
	for _, l := range t.Subtitles {
		tw.Line(depth+1, "Subtitle %s", l)
	}
}

func (tw treeWriter) crew(depth int, c *Crew) {
	if c == nil {
		return
	}
	tw.Line(depth, "Crew")
	tw.List(depth+1, "Directors", nameStrings(c.Directors))
	tw.List(depth+1, "Writers", nameStrings(c.Writers))
	tw.List(depth+1, "Cinematographers", nameStrings(c.Cinematographers))
	tw.List(depth+1, "Editors", nameStrings(c.Editors))
	if c.Music != nil {
		tw.music(depth+1, c.Music)
	}
	for _, r := range c.Roles() {
		tw.Line(depth+1, "Role[%d] actor=%q archival=%t", r.Number, r.Actor.String(), r.Actor.ArchivalFootage)
		for _, p := range r.Portrayals {
			tw.Line(depth+2, "%s %q", p.Kind(), p.String())
		}
	}
}

func (tw treeWriter) music(depth int, m *Music) {
	tw.Line(depth, "Music")
	tw.List(depth+1, "Composers", nameStrings(m.Composers))
	tw.List(depth+1, "Conductors", nameStrings(m.Conductors))
	tw.List(depth+1, "Staff", nameStrings(m.Staff))
}

func (tw treeWriter) albumElement(depth int, e AlbumElement) {
	t := e.Base()
	tw.Line(depth, "%s[%d] %q", e.Kind(), t.Number, t.Title.Raw)
	tw.catalog(depth+1, &t.Catalog)
	tw.technical(depth+1, t.Technical)
	switch v := e.(type) {
	case *Song:
		if v.Music != nil {
			tw.music(depth+1, v.Music)
		}
	case *Dialogue:
		tw.List(depth+1, "Speakers", nameStrings(v.Speakers))
	}
}

func nounStrings(nouns []Noun) []string {
	out := make([]string, len(nouns))
	for i, n := range nouns {
		out[i] = n.String()
	}
	return out
}

func nameStrings(names []Name) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.String()
	}
	return out
}
