package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// XML parsing entry points for catalog documents.
// Parsing is exhaustive: every builder walks direct children once, matching
// on local tag name (etree keeps prefix in Space, so Tag is already stripped
// of namespace). Unknown tags are skipped by policy and reported at debug
// level only.

// ParseXML builds Library from either <library> or <media> root. A single
// media document is returned as unnamed library with one entry.
func ParseXML(doc *etree.Document, log *zap.Logger) (*Library, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	if !inNamespace(root, NamespaceMedia) {
		return nil, fmt.Errorf("unexpected root element namespace %q", root.NamespaceURI())
	}

	switch root.Tag {
	case "library":
		return parseLibrary(root, log)
	case "media":
		media, err := parseMedia(root, log)
		if err != nil {
			return nil, err
		}
		return &Library{Media: []*Media{media}}, nil
	default:
		return nil, fmt.Errorf("unexpected root element %q", root.Tag)
	}
}

// ParseMediaXML builds Media from document with <media> root.
func ParseMediaXML(doc *etree.Document, log *zap.Logger) (*Media, error) {
	if doc == nil || doc.Root() == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	if root := doc.Root(); root.Tag != "media" {
		return nil, fmt.Errorf("unexpected root element %q", root.Tag)
	}
	return parseMedia(doc.Root(), log)
}

// ReadDocument parses raw XML into etree document with settings used for all
// catalog files.
func ReadDocument(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		ValidateInput: false,
		Permissive:    true,
	}
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("unable to read xml: %w", err)
	}
	return doc, nil
}

func textOf(el *etree.Element) string {
	return strings.TrimSpace(el.Text())
}

// xsdBool interprets xs:boolean literal. Malformed values are false.
func xsdBool(value string) bool {
	switch strings.TrimSpace(value) {
	case "true", "1":
		return true
	default:
		return false
	}
}

// intAttr returns integer attribute value or dflt when absent or malformed.
func intAttr(el *etree.Element, key string, dflt int, log *zap.Logger) int {
	raw := strings.TrimSpace(el.SelectAttrValue(key, ""))
	if raw == "" {
		return dflt
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Debug("Invalid integer attribute, using default", zap.String("tag", el.Tag), zap.String("attr", key), zap.String("raw", raw))
		return dflt
	}
	return v
}

// intText returns integer element text or dflt when empty or malformed.
func intText(el *etree.Element, dflt int, log *zap.Logger) int {
	raw := textOf(el)
	if raw == "" {
		return dflt
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Debug("Invalid integer value, using default", zap.String("tag", el.Tag), zap.String("raw", raw))
		return dflt
	}
	return v
}

func skipTag(log *zap.Logger, parent, child *etree.Element) {
	log.Debug("Unexpected tag, ignoring", zap.String("parent", parent.Tag), zap.String("tag", child.Tag))
}
