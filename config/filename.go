package config

import (
	"path/filepath"
	"strings"
)

// badSegment replaces path segment which has nothing left after cleaning.
const badSegment = "_"

// CleanPath turns expanded name template into relative path. Template
// separator is always '/', every segment is cleaned for current OS, empty,
// "." and ".." segments are dropped so result never escapes its root.
func CleanPath(name string) string {
	var segments []string
	for _, seg := range strings.Split(name, "/") {
		seg = strings.TrimSpace(seg)
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		segments = append(segments, CleanFileName(seg))
	}
	if len(segments) == 0 {
		return badSegment
	}
	return filepath.Join(segments...)
}
