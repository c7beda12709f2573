package model

import (
	"strings"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Technical holds technical specification of a work or track.
type Technical struct {
	Runtime     *Runtime
	Audio       []language.Tag
	Subtitles   []language.Tag
	AspectRatio string
}

// Runtime durations, nil when absent or not parsable.
type Runtime struct {
	Overall *time.Duration
	Credits *time.Duration
}

// Overall returns overall runtime, if known.
func (t *Technical) Overall() (time.Duration, bool) {
	if t == nil || t.Runtime == nil || t.Runtime.Overall == nil {
		return 0, false
	}
	return *t.Runtime.Overall, true
}

func parseTechnical(el *etree.Element, log *zap.Logger) Technical {
	tech := Technical{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "runtime":
			rt := parseRuntime(child, log)
			tech.Runtime = &rt
		case "audio":
			tech.Audio = append(tech.Audio, parseLanguage(child, log))
		case "subtitle":
			tech.Subtitles = append(tech.Subtitles, parseLanguage(child, log))
		case "aspectRatio":
			tech.AspectRatio = textOf(child)
		default:
			skipTag(log, el, child)
		}
	}
	return tech
}

func parseRuntime(el *etree.Element, log *zap.Logger) Runtime {
	rt := Runtime{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "overall":
			rt.Overall = parseDurationField(child, log)
		case "credits":
			rt.Credits = parseDurationField(child, log)
		default:
			skipTag(log, el, child)
		}
	}
	return rt
}

func parseDurationField(el *etree.Element, log *zap.Logger) *time.Duration {
	d, ok := ParseDuration(textOf(el))
	if !ok {
		log.Debug("Unable to parse duration, ignoring", zap.String("tag", el.Tag), zap.String("value", textOf(el)))
		return nil
	}
	return &d
}

// parseLanguage accepts either <audio>en</audio> or <audio><language>en</language></audio>.
func parseLanguage(el *etree.Element, log *zap.Logger) language.Tag {
	raw := textOf(el)
	if lang := el.SelectElement("language"); lang != nil {
		raw = textOf(lang)
	}
	if raw == "" {
		return language.Und
	}
	tag, err := language.Parse(raw)
	if err != nil {
		log.Debug("Unable to parse language", zap.String("tag", el.Tag), zap.String("lang", raw), zap.Error(err))
		return language.Und
	}
	return tag
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
