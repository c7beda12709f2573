package model

import (
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestParseCatalog(t *testing.T) {
	log := testLogger(t)
	el := mustElement(t, `<catalog>
		<copyright><year>1982</year><holder>Studio One</holder><holder/></copyright>
		<altTitles>
			<original>Der Fluss</original>
			<production>River Project</production>
			<distribution>River</distribution>
			<distribution>Fleuve</distribution>
			<variant sortable="1" textToSpeech="false">The Director's Cut</variant>
			<production>...</production>
		</altTitles>
		<uniqueIndex><index>2</index><note>remake</note></uniqueIndex>
		<artist>Francis Heart</artist>
		<artist> </artist>
		<barcode>123</barcode>
	</catalog>`)

	c := parseCatalog(el, log)
	if c.Year() != 1982 {
		t.Errorf("Year() = %d", c.Year())
	}
	if len(c.Copyright.Holders) != 1 || c.Copyright.Holders[0].Value != "Studio One" {
		t.Errorf("holders = %+v", c.Copyright.Holders)
	}
	if c.AltTitles.Original == nil || c.AltTitles.Original.Raw != "Der Fluss" {
		t.Errorf("original = %+v", c.AltTitles.Original)
	}
	if len(c.AltTitles.Production) != 1 {
		t.Errorf("punctuation only production title must be skipped, got %d", len(c.AltTitles.Production))
	}
	if len(c.AltTitles.Distribution) != 2 {
		t.Errorf("distribution = %d", len(c.AltTitles.Distribution))
	}
	if c.AltTitles.Variant == nil || c.AltTitles.Variant.Sort != "directors_cut_+the" {
		t.Errorf("variant = %+v", c.AltTitles.Variant)
	}
	if !c.AltTitles.VariantSort || c.AltTitles.VariantSpeak {
		t.Errorf("variant flags = %v/%v", c.AltTitles.VariantSort, c.AltTitles.VariantSpeak)
	}
	if c.Index() != 2 || c.UniqueIndex.Note != "remake" {
		t.Errorf("unique index = %+v", c.UniqueIndex)
	}
	if len(c.Artists) != 1 || c.Artists[0].String() != "Francis Heart" {
		t.Errorf("artists = %+v", c.Artists)
	}
	if c.Inherited {
		t.Errorf("parsed catalog must not be marked inherited")
	}
}

func TestCatalogDefaults(t *testing.T) {
	log := testLogger(t)
	tests := []struct {
		name  string
		xml   string
		year  int
		index int
	}{
		{name: "empty", xml: `<catalog/>`, year: 0, index: 1},
		{name: "no year", xml: `<catalog><copyright/></catalog>`, year: 0, index: 1},
		{name: "negative year", xml: `<catalog><copyright><year>-5</year></copyright></catalog>`, year: 0, index: 1},
		{name: "bad year", xml: `<catalog><copyright><year>MCM</year></copyright></catalog>`, year: 0, index: 1},
		{name: "empty index", xml: `<catalog><uniqueIndex/></catalog>`, year: 0, index: 1},
		{name: "zero index", xml: `<catalog><uniqueIndex><index>0</index></uniqueIndex></catalog>`, year: 0, index: 1},
		{name: "bad index", xml: `<catalog><uniqueIndex><index>two</index></uniqueIndex></catalog>`, year: 0, index: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := parseCatalog(mustElement(t, tt.xml), log)
			if c.Year() != tt.year || c.Index() != tt.index {
				t.Fatalf("year/index = %d/%d, want %d/%d", c.Year(), c.Index(), tt.year, tt.index)
			}
			if c.AltTitles.Variant != nil || c.AltTitles.VariantSort {
				t.Fatalf("unexpected alternate titles %+v", c.AltTitles)
			}
		})
	}
}

func TestVariantBooleanLiterals(t *testing.T) {
	log := testLogger(t)
	tests := []struct {
		attr string
		want bool
	}{
		{attr: `sortable="true"`, want: true},
		{attr: `sortable="1"`, want: true},
		{attr: `sortable="false"`, want: false},
		{attr: `sortable="0"`, want: false},
		{attr: `sortable="TRUE"`, want: false},
		{attr: `sortable="yes"`, want: false},
		{attr: ``, want: false},
	}
	for _, tt := range tests {
		alt := parseAlternateTitles(mustElement(t, `<altTitles><variant `+tt.attr+`>Cut</variant></altTitles>`), log)
		if alt.VariantSort != tt.want {
			t.Errorf("%s: VariantSort = %v, want %v", tt.attr, alt.VariantSort, tt.want)
		}
	}
}

func TestParseClassification(t *testing.T) {
	log := testLogger(t)
	cls := parseClassification(mustElement(t, `<classification>
		<genre type="primary">Drama</genre>
		<genre>Thriller</genre>
		<genre type="x"></genre>
		<rating system="MPAA">R</rating>
		<rating system="BBFC"/>
	</classification>`), log)

	if len(cls.Genres) != 2 || cls.Genres[0].Type != "primary" || cls.Genres[1].Type != "" {
		t.Fatalf("genres = %+v", cls.Genres)
	}
	if !cls.HasGenre("thriller") || cls.HasGenre("comedy") {
		t.Fatalf("HasGenre mismatch")
	}
	if len(cls.Ratings) != 1 || cls.Ratings[0].System != "MPAA" || cls.Ratings[0].Value != "R" {
		t.Fatalf("ratings = %+v", cls.Ratings)
	}
}

func TestParseTechnical(t *testing.T) {
	log := testLogger(t)
	tech := parseTechnical(mustElement(t, `<technical>
		<runtime><overall>PT1H30M</overall><credits>soon</credits></runtime>
		<audio><language>en</language></audio>
		<audio>de</audio>
		<audio>not a language tag at all</audio>
		<subtitle><language>fr-CA</language></subtitle>
		<aspectRatio>1.85:1</aspectRatio>
	</technical>`), log)

	overall, ok := tech.Overall()
	if !ok || overall != 90*time.Minute {
		t.Fatalf("Overall() = %v, %v", overall, ok)
	}
	if tech.Runtime.Credits != nil {
		t.Fatalf("unparsable credits must be nil, got %v", *tech.Runtime.Credits)
	}
	if len(tech.Audio) != 3 || tech.Audio[0] != language.English || tech.Audio[1] != language.German || tech.Audio[2] != language.Und {
		t.Fatalf("audio = %v", tech.Audio)
	}
	if len(tech.Subtitles) != 1 || tech.Subtitles[0] != language.CanadianFrench {
		t.Fatalf("subtitles = %v", tech.Subtitles)
	}
	if tech.AspectRatio != "1.85:1" {
		t.Fatalf("aspect ratio = %q", tech.AspectRatio)
	}

	var none *Technical
	if _, ok := none.Overall(); ok {
		t.Fatalf("nil technical must have no runtime")
	}
}
