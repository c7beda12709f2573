package model

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"mcat/sortkey"
)

// Crew lists people who made the work.
type Crew struct {
	Directors        []Name
	Writers          []Name
	Cinematographers []Name
	Editors          []Name
	Music            *Music
	Cast             *Cast
}

// Music lists music staff.
type Music struct {
	Composers  []Name
	Conductors []Name
	Staff      []Name
}

// Cast is an ordered list of roles numbered from 1.
type Cast struct {
	Roles []Role
}

// Role is a single cast entry: actor and how the actor appears on screen.
type Role struct {
	Number     int
	Actor      Actor
	Portrayals []Portrayal
}

// PortrayalKind distinguishes portrayal variants.
type PortrayalKind string

const (
	PortraysNamedCharacter   PortrayalKind = "namedCharacter"
	PortraysUnnamedCharacter PortrayalKind = "unnamedCharacter"
	PortraysSelfCharacter    PortrayalKind = "selfCharacter"
	PortraysSelf             PortrayalKind = "self"
	PortraysNarrator         PortrayalKind = "narrator"
	PortraysBackground       PortrayalKind = "background"
	PortraysAdditionalVoices PortrayalKind = "additionalVoices"
)

// Portrayal is implemented by the closed set of portrayal variants below.
type Portrayal interface {
	Kind() PortrayalKind
	// String returns display form.
	String() string
	// SortKey returns case-folded form used for ordering.
	SortKey() string
	portrayal()
}

// NamedCharacter is a character with a name.
type NamedCharacter struct {
	Name    Name
	Variant string
	Aspect  string
	Aliases []string
	// Formal is name with variant, aspect and aliases annotations.
	Formal string
}

func (NamedCharacter) Kind() PortrayalKind { return PortraysNamedCharacter }
func (c NamedCharacter) String() string    { return c.Formal }
func (c NamedCharacter) SortKey() string   { return c.Name.SortKey() }
func (NamedCharacter) portrayal()          {}

// UnnamedCharacter is a character known by description only ("Waitress").
type UnnamedCharacter struct {
	Description string
}

func (UnnamedCharacter) Kind() PortrayalKind { return PortraysUnnamedCharacter }

func (c UnnamedCharacter) String() string {
	if c.Description == "" {
		return Undefined
	}
	return c.Description
}

func (c UnnamedCharacter) SortKey() string {
	key, _ := sortkey.Sort(c.Description)
	return key
}

func (UnnamedCharacter) portrayal() {}

// SelfCharacter is an actor playing a fictionalized version of themselves,
// it borrows display and sort values from the actor.
type SelfCharacter struct {
	Actor *Actor
}

func (SelfCharacter) Kind() PortrayalKind { return PortraysSelfCharacter }

func (c SelfCharacter) String() string {
	if c.Actor == nil {
		return Unknown
	}
	return c.Actor.String()
}

func (c SelfCharacter) SortKey() string {
	if c.Actor == nil {
		return ""
	}
	return c.Actor.SortKey()
}

func (SelfCharacter) portrayal() {}

// FixedPortrayal covers variants without own data: self, narrator,
// background and additional voices.
type FixedPortrayal struct {
	Type PortrayalKind
}

var fixedPortrayalNames = map[PortrayalKind]string{
	PortraysSelf:             "Self",
	PortraysNarrator:         "Narrator",
	PortraysBackground:       "Background",
	PortraysAdditionalVoices: "Additional Voices",
}

func (p FixedPortrayal) Kind() PortrayalKind { return p.Type }

func (p FixedPortrayal) String() string {
	if name, ok := fixedPortrayalNames[p.Type]; ok {
		return name
	}
	return Undefined
}

func (p FixedPortrayal) SortKey() string {
	return sortkey.Filename(p.String())
}

func (FixedPortrayal) portrayal() {}

// Roles returns cast roles or nil.
func (c *Crew) Roles() []Role {
	if c == nil || c.Cast == nil {
		return nil
	}
	return c.Cast.Roles
}

func parseCrew(el *etree.Element, log *zap.Logger) Crew {
	crew := Crew{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "director":
			crew.Directors = parseNames(crew.Directors, child, log)
		case "writer":
			crew.Writers = parseNames(crew.Writers, child, log)
		case "cinematographer":
			crew.Cinematographers = parseNames(crew.Cinematographers, child, log)
		case "editor":
			crew.Editors = parseNames(crew.Editors, child, log)
		case "music":
			music := parseMusic(child, log)
			crew.Music = &music
		case "cast":
			cast := parseCast(child, log)
			crew.Cast = &cast
		default:
			skipTag(log, el, child)
		}
	}
	return crew
}

func parseMusic(el *etree.Element, log *zap.Logger) Music {
	music := Music{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "composer":
			music.Composers = parseNames(music.Composers, child, log)
		case "conductor":
			music.Conductors = parseNames(music.Conductors, child, log)
		case "staff":
			music.Staff = parseNames(music.Staff, child, log)
		default:
			skipTag(log, el, child)
		}
	}
	return music
}

func parseCast(el *etree.Element, log *zap.Logger) Cast {
	cast := Cast{}
	for _, child := range el.ChildElements() {
		if child.Tag != "role" {
			skipTag(log, el, child)
			continue
		}
		cast.Roles = append(cast.Roles, parseRole(child, len(cast.Roles)+1, log))
	}
	return cast
}

func parseRole(el *etree.Element, number int, log *zap.Logger) Role {
	role := Role{Number: number}
	if actor := el.SelectElement("actor"); actor != nil {
		role.Actor = parseActor(actor, log)
	} else {
		log.Debug("Role without actor", zap.Int("number", number))
	}
	for _, child := range el.ChildElements() {
		if child.Tag == "actor" {
			continue
		}
		build, ok := portrayalTable.lookup(child.Tag)
		if !ok {
			skipTag(log, el, child)
			continue
		}
		if p := build(child, &role.Actor, log); p != nil {
			role.Portrayals = append(role.Portrayals, p)
		}
	}
	return role
}

// parseCharacter dispatches on the first child of <character>.
func parseCharacter(el *etree.Element, actor *Actor, log *zap.Logger) Portrayal {
	children := el.ChildElements()
	if len(children) == 0 {
		log.Debug("Empty character, skipping")
		return nil
	}
	build, ok := characterTable.lookup(children[0].Tag)
	if !ok {
		skipTag(log, el, children[0])
		return nil
	}
	return build(children[0], actor, log)
}

func parseNamedCharacter(el *etree.Element, _ *Actor, log *zap.Logger) Portrayal {
	c := NamedCharacter{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "given":
			c.Name.Given = textOf(child)
		case "middle":
			c.Name.Middle = textOf(child)
		case "family":
			c.Name.Family = textOf(child)
		case "variant":
			c.Variant = textOf(child)
		case "aspect":
			c.Aspect = textOf(child)
		case "alias":
			if alias := textOf(child); alias != "" {
				c.Aliases = append(c.Aliases, alias)
			}
		default:
			skipTag(log, el, child)
		}
	}
	c.Formal = formalName(&c)
	return c
}

// formalName concatenates name, parenthesized variant and aspect and slash
// joined aliases - in this order.
func formalName(c *NamedCharacter) string {
	var b strings.Builder
	b.WriteString(c.Name.String())
	if c.Variant != "" {
		b.WriteString(" (" + c.Variant + ")")
	}
	if c.Aspect != "" {
		b.WriteString(" (" + c.Aspect + ")")
	}
	for _, alias := range c.Aliases {
		b.WriteString(" / " + alias)
	}
	return b.String()
}

func parseUnnamedCharacter(el *etree.Element, _ *Actor, _ *zap.Logger) Portrayal {
	return UnnamedCharacter{Description: textOf(el)}
}

func parseSelfCharacter(_ *etree.Element, actor *Actor, _ *zap.Logger) Portrayal {
	return SelfCharacter{Actor: actor}
}

func fixedPortrayal(kind PortrayalKind) portrayalBuilder {
	return func(_ *etree.Element, _ *Actor, _ *zap.Logger) Portrayal {
		return FixedPortrayal{Type: kind}
	}
}
