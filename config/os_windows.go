//go:build windows

package config

import (
	"os"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

// reserved by Windows file systems in addition to control characters
const reservedRunes = `<>":/\|?*`

// CleanFileName makes single path segment safe for Windows file systems,
// trailing dots and spaces are not allowed there either.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym < ' ' || strings.ContainsRune(reservedRunes, sym) {
			return -1
		}
		return sym
	}, in)
	if out = strings.TrimRight(strings.TrimSpace(out), ". "); out == "" {
		return badSegment
	}
	return out
}

// EnableColorOutput reports whether stream is a console capable of VT100
// sequences and switches their processing on.
func EnableColorOutput(stream *os.File) bool {
	if !vtCapable() || !term.IsTerminal(int(stream.Fd())) {
		return false
	}

	const enableVirtualTerminalProcessing uint32 = 0x4

	h := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|enableVirtualTerminalProcessing) == nil
}

// vtCapable checks for Windows 10 or newer console.
func vtCapable() bool {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("CurrentMajorVersionNumber")
	return err == nil && v >= 10
}
