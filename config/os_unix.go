//go:build !windows

package config

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// CleanFileName makes single path segment safe: separators and NUL are
// removed, leading dots are trimmed so segment cannot become hidden.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		switch sym {
		case 0, os.PathSeparator, os.PathListSeparator:
			return -1
		}
		return sym
	}, in)
	if out = strings.TrimSpace(strings.TrimLeft(out, ".")); out == "" {
		return badSegment
	}
	return out
}

// EnableColorOutput reports whether stream is a terminal.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
