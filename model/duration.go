package model

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Only hours, minutes and seconds are supported, seconds may have fraction.
var durationRE = regexp.MustCompile(`^PT(?:(\d{1,2})H)?(?:(\d{1,2})M)?(?:(\d{1,2}(?:\.\d+)?)S)?$`)

// ParseDuration parses restricted xs:duration notation (PT2H12M05S). When
// value does not match, false is returned - this is not an error.
func ParseDuration(value string) (time.Duration, bool) {
	m := durationRE.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil || m[1] == "" && m[2] == "" && m[3] == "" {
		// bare "PT" carries no value
		return 0, false
	}

	var d time.Duration
	if m[1] != "" {
		h, _ := strconv.Atoi(m[1])
		d += time.Duration(h) * time.Hour
	}
	if m[2] != "" {
		mins, _ := strconv.Atoi(m[2])
		d += time.Duration(mins) * time.Minute
	}
	if m[3] != "" {
		whole, frac, _ := strings.Cut(m[3], ".")
		secs, _ := strconv.Atoi(whole)
		d += time.Duration(secs) * time.Second
		if frac != "" {
			// keep nanosecond precision, float math would lose it
			if len(frac) > 9 {
				frac = frac[:9]
			}
			nanos, _ := strconv.Atoi(frac + strings.Repeat("0", 9-len(frac)))
			d += time.Duration(nanos)
		}
	}
	return d, true
}

// FormatDuration renders duration back in the same restricted notation.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	var b strings.Builder
	b.WriteString("PT")
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	if h > 0 {
		b.WriteString(strconv.FormatInt(int64(h), 10) + "H")
	}
	if m > 0 {
		b.WriteString(strconv.FormatInt(int64(m), 10) + "M")
	}
	if d > 0 || (h == 0 && m == 0) {
		b.WriteString(strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "S")
	}
	return b.String()
}
