package model

import (
	"cmp"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"mcat/sortkey"
)

// Display sentinels for values absent from source.
const (
	Undefined = "UNDEF"
	Unknown   = "UNKNOWN"
)

// NounKind distinguishes proper noun variants.
type NounKind string

const (
	NounThing  NounKind = "thing"
	NounEntity NounKind = "entity"
	NounGroup  NounKind = "group"
	NounEvent  NounKind = "event"
	NounPerson NounKind = "person"
	NounPlace  NounKind = "place"
)

// ProperNoun is implemented by Noun, Name and Place. The set is closed.
type ProperNoun interface {
	Kind() NounKind
	// String returns display form.
	String() string
	// SortKey returns case-folded form used for ordering.
	SortKey() string
	properNoun()
}

// CompareProper orders proper nouns by sort key, then by display form.
func CompareProper(a, b ProperNoun) int {
	if c := cmp.Compare(a.SortKey(), b.SortKey()); c != 0 {
		return c
	}
	return cmp.Compare(a.String(), b.String())
}

// Noun is a named thing, entity, group or event.
type Noun struct {
	Type  NounKind
	Value string
}

func (n Noun) Kind() NounKind { return n.Type }

func (n Noun) String() string {
	if n.Value == "" {
		return Undefined
	}
	return n.Value
}

func (n Noun) SortKey() string {
	key, _ := sortkey.Sort(n.Value)
	return key
}

func (Noun) properNoun() {}

// Name is a person name.
type Name struct {
	Given  string
	Middle string
	Family string
}

func (Name) Kind() NounKind { return NounPerson }

// IsZero reports whether name has no parts.
func (n Name) IsZero() bool {
	return n.Given == "" && n.Middle == "" && n.Family == ""
}

func (n Name) String() string {
	if n.IsZero() {
		return Unknown
	}
	return joinNonEmpty(" ", n.Given, n.Middle, n.Family)
}

// SortKey returns family_given_middle, case-folded, absent parts omitted.
func (n Name) SortKey() string {
	return joinNonEmpty("_", sortkey.Filename(n.Family), sortkey.Filename(n.Given), sortkey.Filename(n.Middle))
}

func (Name) properNoun() {}

// Place is a major locality with optional chain of minor localities.
type Place struct {
	Major string
	Minor []string
}

func (Place) Kind() NounKind { return NounPlace }

func (p Place) String() string {
	major := p.Major
	if major == "" {
		major = Undefined
	}
	if len(p.Minor) == 0 {
		return major
	}
	return major + " (" + strings.Join(p.Minor, ", ") + ")"
}

func (p Place) SortKey() string {
	key, _ := sortkey.Sort(joinNonEmpty(" ", append([]string{p.Major}, p.Minor...)...))
	return key
}

func (Place) properNoun() {}

// Actor is a cast member.
type Actor struct {
	Name
	ArchivalFootage bool
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

func parseNoun(el *etree.Element, kind NounKind, _ *zap.Logger) Noun {
	return Noun{Type: kind, Value: textOf(el)}
}

func parseName(el *etree.Element, log *zap.Logger) Name {
	name := Name{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "given":
			name.Given = textOf(child)
		case "middle":
			name.Middle = textOf(child)
		case "family":
			name.Family = textOf(child)
		default:
			skipTag(log, el, child)
		}
	}
	return name
}

func parsePlace(el *etree.Element, log *zap.Logger) Place {
	place := Place{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "major":
			place.Major = textOf(child)
		case "minor":
			if v := textOf(child); v != "" {
				place.Minor = append(place.Minor, v)
			}
		default:
			skipTag(log, el, child)
		}
	}
	return place
}

func parseActor(el *etree.Element, log *zap.Logger) Actor {
	return Actor{
		Name:            parseName(el, log),
		ArchivalFootage: xsdBool(el.SelectAttrValue("archivalFootage", "")),
	}
}

// parseNames collects names from repeated elements.
func parseNames(names []Name, el *etree.Element, log *zap.Logger) []Name {
	name := parseName(el, log)
	if name.IsZero() {
		log.Debug("Empty name, skipping", zap.String("tag", el.Tag))
		return names
	}
	return append(names, name)
}
