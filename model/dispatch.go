package model

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// Dispatch tables map local tag names to builders. Lookups are exact and
// case sensitive. Every table follows ignore-unknown policy: a tag which is
// not registered produces no object and is reported at debug level by the
// caller.

type registry[T any] map[string]T

func (r registry[T]) lookup(tag string) (T, bool) {
	v, ok := r[tag]
	return v, ok
}

type (
	keywordBuilder    func(el *etree.Element, log *zap.Logger) (Keyword, bool)
	properNounBuilder func(el *etree.Element, log *zap.Logger) ProperNoun
	portrayalBuilder  func(el *etree.Element, actor *Actor, log *zap.Logger) Portrayal
	packageBuilder    func(el *etree.Element, log *zap.Logger) PackageItem
	contentBuilder    func(el *etree.Element, log *zap.Logger) (Content, error)
)

// contentEntry binds content builder to namespace its element must belong to.
type contentEntry struct {
	namespace string
	build     contentBuilder
}

// keywords: ignore-unknown.
var keywordTable = registry[keywordBuilder]{
	"generic":    parseGenericKeyword,
	"properNoun": parseProperNounKeyword,
}

func nounBuilder(kind NounKind) properNounBuilder {
	return func(el *etree.Element, log *zap.Logger) ProperNoun {
		return parseNoun(el, kind, log)
	}
}

// proper noun values of <properNoun>: ignore-unknown.
var properNounTable = registry[properNounBuilder]{
	"thing":  nounBuilder(NounThing),
	"entity": nounBuilder(NounEntity),
	"group":  nounBuilder(NounGroup),
	"event":  nounBuilder(NounEvent),
	"person": func(el *etree.Element, log *zap.Logger) ProperNoun { return parseName(el, log) },
	"place":  func(el *etree.Element, log *zap.Logger) ProperNoun { return parsePlace(el, log) },
}

// first child of <character>: ignore-unknown.
var characterTable = registry[portrayalBuilder]{
	"name":    parseNamedCharacter,
	"unnamed": parseUnnamedCharacter,
	"self":    parseSelfCharacter,
}

// children of <role> other than <actor>: ignore-unknown.
var portrayalTable = registry[portrayalBuilder]{
	"character":        parseCharacter,
	"self":             fixedPortrayal(PortraysSelf),
	"narrator":         fixedPortrayal(PortraysNarrator),
	"background":       fixedPortrayal(PortraysBackground),
	"additionalVoices": fixedPortrayal(PortraysAdditionalVoices),
}

// children of <contents>: ignore-unknown, including known tags from foreign
// namespace.
var contentTable = registry[contentEntry]{
	"movie": {namespace: NamespaceMovie, build: parseMovieContent},
	"album": {namespace: NamespaceAudio, build: parseAlbumContent},
}

// children of <release><type>: unknown tags are skipped, but release without
// any recognized type is rejected.
var releaseTypeTable = registry[ReleaseType]{
	"retail":      ReleaseRetail,
	"rental":      ReleaseRental,
	"promotional": ReleasePromotional,
	"broadcast":   ReleaseBroadcast,
	"digital":     ReleaseDigital,
}

// children of <medium><type>: same policy as release types.
var mediumTypeTable = registry[MediumType]{
	"dvd":       MediumDVD,
	"bluRay":    MediumBluRay,
	"ultraHD":   MediumUltraHD,
	"cd":        MediumCD,
	"vinyl":     MediumVinyl,
	"cassette":  MediumCassette,
	"vhs":       MediumVHS,
	"laserDisc": MediumLaserDisc,
	"digital":   MediumDigital,
}

// children of <packaging> and of every container: ignore-unknown.
// Containers parse their children through this very table, so it is filled
// in init to break initialization cycle.
var packagingTable registry[packageBuilder]

func init() {
	packagingTable = registry[packageBuilder]{
		"box":       containerBuilder(PackageBox),
		"case":      containerBuilder(PackageCase),
		"snapcase":  containerBuilder(PackageSnapcase),
		"digibook":  containerBuilder(PackageDigibook),
		"envelope":  containerBuilder(PackageEnvelope),
		"dvd":       discBuilder(PackageDVD),
		"bluRay":    discBuilder(PackageBluRay),
		"ultraHD":   discBuilder(PackageUltraHD),
		"booklet":   parseBooklet,
		"codeSheet": parseCodeSheet,
	}
}
