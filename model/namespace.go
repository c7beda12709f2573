package model

import (
	"strings"

	"github.com/beevik/etree"
)

// Logical namespace keys of the catalog vocabulary.
const (
	NamespaceMedia = "media"
	NamespaceMovie = "movie"
	NamespaceAudio = "audio"
)

var namespaces = map[string]string{
	NamespaceMedia: "urn:mcat:media:1",
	NamespaceMovie: "urn:mcat:movie:1",
	NamespaceAudio: "urn:mcat:audio:1",
}

var namespaceKeys = func() map[string]string {
	keys := make(map[string]string, len(namespaces))
	for k, uri := range namespaces {
		keys[uri] = k
	}
	return keys
}()

// NamespaceURI returns URI registered for logical namespace key.
func NamespaceURI(key string) (string, bool) {
	uri, ok := namespaces[key]
	return uri, ok
}

// Prefix returns "{uri}" prefix for logical namespace key, suitable for
// building qualified tags.
func Prefix(key string) (string, bool) {
	uri, ok := namespaces[key]
	if !ok {
		return "", false
	}
	return "{" + uri + "}", true
}

// Qualify builds "{uri}local" tag for logical namespace key. Unknown key
// yields bare local name.
func Qualify(key, local string) string {
	prefix, _ := Prefix(key)
	return prefix + local
}

// KeyOf returns logical key for namespace URI.
func KeyOf(uri string) (string, bool) {
	key, ok := namespaceKeys[uri]
	return key, ok
}

// Strip removes "{uri}" prefix from qualified tag. Tags without prefix are
// returned as is.
func Strip(tag string) string {
	if !strings.HasPrefix(tag, "{") {
		return tag
	}
	if i := strings.IndexByte(tag, '}'); i >= 0 {
		return tag[i+1:]
	}
	return tag
}

// QualifiedTag returns element tag in "{uri}local" form using namespace
// declarations in scope. Elements outside of any namespace get bare tag.
func QualifiedTag(el *etree.Element) string {
	if uri := el.NamespaceURI(); uri != "" {
		return "{" + uri + "}" + el.Tag
	}
	return el.Tag
}

// inNamespace reports whether element belongs to logical namespace. Elements
// without namespace are accepted everywhere.
func inNamespace(el *etree.Element, key string) bool {
	uri := el.NamespaceURI()
	if uri == "" {
		return true
	}
	return QualifiedTag(el) == Qualify(key, el.Tag)
}
