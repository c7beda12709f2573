package model

import (
	"cmp"
	"slices"
	"sort"

	"github.com/beevik/etree"
	"github.com/maruel/natural"
	"go.uber.org/zap"

	"mcat/sortkey"
)

const (
	// DefaultPool receives keywords without explicit collection.
	DefaultPool = "generic"
	// DefaultRelevance is used when keyword has no relevance attribute.
	DefaultRelevance = 3
)

// KeywordKind distinguishes keyword variants.
type KeywordKind string

const (
	KeywordGeneric    KeywordKind = "generic"
	KeywordProperNoun KeywordKind = "properNoun"
)

// Keyword is a single search keyword. Generic keywords carry Text, proper
// noun keywords carry Noun.
type Keyword struct {
	Kind          KeywordKind
	Text          string
	Noun          ProperNoun
	Relevance     int
	Synonym       string
	Clarification string
	Pool          string
}

// String returns display form of the keyword.
func (k *Keyword) String() string {
	if k.Kind == KeywordProperNoun && k.Noun != nil {
		return k.Noun.String()
	}
	return k.Text
}

// Compare orders keywords by relevance, then by case-folded text.
func (k *Keyword) Compare(other *Keyword) int {
	if c := cmp.Compare(k.Relevance, other.Relevance); c != 0 {
		return c
	}
	return cmp.Compare(sortkey.Normalize(k.String()), sortkey.Normalize(other.String()))
}

// Keywords maps pool name to keywords in document order.
type Keywords map[string][]Keyword

// Pools returns pool names in natural order.
func (kw Keywords) Pools() []string {
	pools := make([]string, 0, len(kw))
	for pool := range kw {
		pools = append(pools, pool)
	}
	sort.Sort(natural.StringSlice(pools))
	return pools
}

// Sorted returns copy of pool keywords ordered by Keyword.Compare.
func (kw Keywords) Sorted(pool string) []Keyword {
	out := slices.Clone(kw[pool])
	slices.SortStableFunc(out, func(a, b Keyword) int { return a.Compare(&b) })
	return out
}

// Len returns total number of keywords in all pools.
func (kw Keywords) Len() int {
	n := 0
	for _, list := range kw {
		n += len(list)
	}
	return n
}

// keywordScope carries group level overrides down to members.
type keywordScope struct {
	pool      string
	relevance int
}

func parseKeywords(el *etree.Element, log *zap.Logger) Keywords {
	kw := Keywords{}
	collectKeywords(kw, el, keywordScope{pool: DefaultPool, relevance: DefaultRelevance}, log)
	return kw
}

func collectKeywords(kw Keywords, el *etree.Element, scope keywordScope, log *zap.Logger) {
	for _, child := range el.ChildElements() {
		if child.Tag == "group" {
			inner := keywordScope{
				pool:      child.SelectAttrValue("collection", scope.pool),
				relevance: intAttr(child, "relevance", scope.relevance, log),
			}
			collectKeywords(kw, child, inner, log)
			continue
		}
		build, ok := keywordTable.lookup(child.Tag)
		if !ok {
			skipTag(log, el, child)
			continue
		}
		keyword, ok := build(child, log)
		if !ok {
			continue
		}
		keyword.Relevance = intAttr(child, "relevance", scope.relevance, log)
		keyword.Synonym = child.SelectAttrValue("synonym", "")
		keyword.Clarification = child.SelectAttrValue("clarification", "")
		keyword.Pool = child.SelectAttrValue("collection", scope.pool)
		if keyword.Pool == "" {
			keyword.Pool = DefaultPool
		}
		kw[keyword.Pool] = append(kw[keyword.Pool], keyword)
	}
}

func parseGenericKeyword(el *etree.Element, log *zap.Logger) (Keyword, bool) {
	text := textOf(el)
	if text == "" {
		log.Debug("Empty keyword, skipping")
		return Keyword{}, false
	}
	return Keyword{Kind: KeywordGeneric, Text: text}, true
}

// parseProperNounKeyword dispatches on the single child element of
// <properNoun>.
func parseProperNounKeyword(el *etree.Element, log *zap.Logger) (Keyword, bool) {
	children := el.ChildElements()
	if len(children) == 0 {
		log.Debug("Proper noun keyword without value, skipping")
		return Keyword{}, false
	}
	if len(children) > 1 {
		log.Debug("Proper noun keyword has more than one value, using first", zap.Int("count", len(children)))
	}
	build, ok := properNounTable.lookup(children[0].Tag)
	if !ok {
		skipTag(log, el, children[0])
		return Keyword{}, false
	}
	return Keyword{Kind: KeywordProperNoun, Noun: build(children[0], log)}, true
}
