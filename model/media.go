package model

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// Library is an ordered list of media.
type Library struct {
	Name  string
	Media []*Media
}

// Contents returns all contents of all media in library order.
func (l *Library) Contents() []Content {
	var out []Content
	for _, m := range l.Media {
		out = append(out, m.Contents...)
	}
	return out
}

// Media is a single physical or digital product.
type Media struct {
	ID         string
	Collection string
	Title      Title
	Release    *Release
	Medium     *Medium
	Packaging  []PackageItem
	Contents   []Content
}

// Runtime sums runtime of all contents.
func (m *Media) Runtime() time.Duration {
	var total time.Duration
	for _, c := range m.Contents {
		total += c.Runtime()
	}
	return total
}

// ReleaseType is kind of release.
type ReleaseType string

const (
	ReleaseRetail      ReleaseType = "retail"
	ReleaseRental      ReleaseType = "rental"
	ReleasePromotional ReleaseType = "promotional"
	ReleaseBroadcast   ReleaseType = "broadcast"
	ReleaseDigital     ReleaseType = "digital"
)

// Release describes how media was released.
type Release struct {
	Type     ReleaseType
	Retailer string
	ID       string
	// Date is zero when absent or not parsable.
	Date    time.Time
	Edition string
}

// MediumType is physical format of media.
type MediumType string

const (
	MediumDVD       MediumType = "dvd"
	MediumBluRay    MediumType = "bluRay"
	MediumUltraHD   MediumType = "ultraHD"
	MediumCD        MediumType = "cd"
	MediumVinyl     MediumType = "vinyl"
	MediumCassette  MediumType = "cassette"
	MediumVHS       MediumType = "vhs"
	MediumLaserDisc MediumType = "laserDisc"
	MediumDigital   MediumType = "digital"
)

// Medium describes physical format.
type Medium struct {
	Type   MediumType
	Discs  int
	Region string
}

const releaseDateLayout = "2006-01-02"

func parseLibrary(el *etree.Element, log *zap.Logger) (*Library, error) {
	lib := &Library{Name: el.SelectAttrValue("name", "")}
	for _, child := range el.ChildElements() {
		if child.Tag != "media" || !inNamespace(child, NamespaceMedia) {
			skipTag(log, el, child)
			continue
		}
		media, err := parseMedia(child, log)
		if err != nil {
			return nil, fmt.Errorf("library media %d: %w", len(lib.Media)+1, err)
		}
		lib.Media = append(lib.Media, media)
	}
	return lib, nil
}

// ParseMedia builds Media from <media> element.
func ParseMedia(el *etree.Element, log *zap.Logger) (*Media, error) {
	return parseMedia(el, log)
}

func parseMedia(el *etree.Element, log *zap.Logger) (*Media, error) {
	media := &Media{
		ID:         el.SelectAttrValue("id", ""),
		Collection: el.SelectAttrValue("collection", ""),
	}
	var hasTitle bool
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "title":
			title, err := parseTitle(child)
			if err != nil {
				return nil, err
			}
			media.Title, hasTitle = title, true
		case "release":
			release, err := parseRelease(child, log)
			if err != nil {
				return nil, err
			}
			media.Release = release
		case "medium":
			medium, err := parseMedium(child, log)
			if err != nil {
				return nil, err
			}
			media.Medium = medium
		case "packaging":
			media.Packaging = parsePackaging(child, log)
		case "contents":
			contents, err := parseContents(child, log)
			if err != nil {
				return nil, err
			}
			media.Contents = append(media.Contents, contents...)
		default:
			skipTag(log, el, child)
		}
	}
	if !hasTitle {
		return nil, &ContentBuildError{Element: el.Tag, Message: "media has no title", Cause: ErrMissingTitle}
	}
	if len(media.Contents) == 0 {
		return nil, &ContentBuildError{Element: el.Tag, Message: "media has no recognized content"}
	}
	return media, nil
}

func parseContents(el *etree.Element, log *zap.Logger) ([]Content, error) {
	var contents []Content
	for _, child := range el.ChildElements() {
		entry, ok := contentTable.lookup(child.Tag)
		if !ok || !inNamespace(child, entry.namespace) {
			skipTag(log, el, child)
			continue
		}
		content, err := entry.build(child, log)
		if err != nil {
			return nil, err
		}
		contents = append(contents, content)
	}
	return contents, nil
}

func parseRelease(el *etree.Element, log *zap.Logger) (*Release, error) {
	release := &Release{
		Retailer: el.SelectAttrValue("retailer", ""),
		ID:       el.SelectAttrValue("id", ""),
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "type":
			if t := selectType(releaseTypeTable, child, log); t != "" {
				release.Type = t
			}
		case "date":
			if t, err := time.Parse(releaseDateLayout, textOf(child)); err == nil {
				release.Date = t
			} else {
				log.Debug("Unable to parse release date, ignoring", zap.String("date", textOf(child)), zap.Error(err))
			}
		case "edition":
			release.Edition = textOf(child)
		default:
			skipTag(log, el, child)
		}
	}
	if release.Type == "" {
		return nil, &ReleaseTypeError{Element: el.Tag, Message: "no recognized release type"}
	}
	return release, nil
}

func parseMedium(el *etree.Element, log *zap.Logger) (*Medium, error) {
	medium := &Medium{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "type":
			if t := selectType(mediumTypeTable, child, log); t != "" {
				medium.Type = t
			}
		case "discs":
			if medium.Discs = intText(child, 0, log); medium.Discs < 0 {
				medium.Discs = 0
			}
		case "region":
			medium.Region = textOf(child)
		default:
			skipTag(log, el, child)
		}
	}
	if medium.Type == "" {
		return nil, &ReleaseTypeError{Element: el.Tag, Message: "no recognized medium type"}
	}
	return medium, nil
}

// selectType returns first recognized child of type element.
func selectType[T ~string](table registry[T], el *etree.Element, log *zap.Logger) T {
	for _, child := range el.ChildElements() {
		if v, ok := table.lookup(child.Tag); ok {
			return v
		}
		skipTag(log, el, child)
	}
	return ""
}
