package model

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// PackageKind is tag of packaging item.
type PackageKind string

const (
	PackageBox       PackageKind = "box"
	PackageCase      PackageKind = "case"
	PackageSnapcase  PackageKind = "snapcase"
	PackageDigibook  PackageKind = "digibook"
	PackageEnvelope  PackageKind = "envelope"
	PackageDVD       PackageKind = "dvd"
	PackageBluRay    PackageKind = "bluRay"
	PackageUltraHD   PackageKind = "ultraHD"
	PackageBooklet   PackageKind = "booklet"
	PackageCodeSheet PackageKind = "codeSheet"
)

// PackageItem is implemented by Container, Disc, Booklet and CodeSheet.
type PackageItem interface {
	Kind() PackageKind
	packageItem()
}

// Container holds other packaging items.
type Container struct {
	Type  PackageKind
	Items []PackageItem
}

func (c *Container) Kind() PackageKind { return c.Type }
func (*Container) packageItem()        {}

// Disc is a physical disc.
type Disc struct {
	Type      PackageKind
	ID        string
	Scanlines int
	Label     string
}

func (d *Disc) Kind() PackageKind { return d.Type }
func (*Disc) packageItem()        {}

// Booklet is printed insert.
type Booklet struct {
	Pages int
	Label string
}

func (*Booklet) Kind() PackageKind { return PackageBooklet }
func (*Booklet) packageItem()      {}

// CodeSheet carries digital redemption code.
type CodeSheet struct {
	Retailer string
	Type     string
	Code     string
}

func (*CodeSheet) Kind() PackageKind { return PackageCodeSheet }
func (*CodeSheet) packageItem()      {}

// WalkPackaging calls fn for every item in depth first order, depth of top
// level items is 0.
func WalkPackaging(items []PackageItem, fn func(item PackageItem, depth int)) {
	walkPackaging(items, 0, fn)
}

func walkPackaging(items []PackageItem, depth int, fn func(PackageItem, int)) {
	for _, item := range items {
		fn(item, depth)
		if c, ok := item.(*Container); ok {
			walkPackaging(c.Items, depth+1, fn)
		}
	}
}

func parsePackaging(el *etree.Element, log *zap.Logger) []PackageItem {
	var items []PackageItem
	for _, child := range el.ChildElements() {
		build, ok := packagingTable.lookup(child.Tag)
		if !ok {
			skipTag(log, el, child)
			continue
		}
		items = append(items, build(child, log))
	}
	return items
}

func containerBuilder(kind PackageKind) packageBuilder {
	return func(el *etree.Element, log *zap.Logger) PackageItem {
		return &Container{Type: kind, Items: parsePackaging(el, log)}
	}
}

func discBuilder(kind PackageKind) packageBuilder {
	return func(el *etree.Element, log *zap.Logger) PackageItem {
		disc := &Disc{
			Type:      kind,
			ID:        el.SelectAttrValue("id", ""),
			Scanlines: intAttr(el, "scanlines", 0, log),
		}
		for _, child := range el.ChildElements() {
			switch child.Tag {
			case "label":
				disc.Label = textOf(child)
			default:
				skipTag(log, el, child)
			}
		}
		return disc
	}
}

func parseBooklet(el *etree.Element, log *zap.Logger) PackageItem {
	booklet := &Booklet{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "pages":
			booklet.Pages = intText(child, 0, log)
		case "label":
			booklet.Label = textOf(child)
		default:
			skipTag(log, el, child)
		}
	}
	return booklet
}

func parseCodeSheet(el *etree.Element, _ *zap.Logger) PackageItem {
	return &CodeSheet{
		Retailer: el.SelectAttrValue("retailer", ""),
		Type:     el.SelectAttrValue("type", ""),
		Code:     textOf(el),
	}
}
