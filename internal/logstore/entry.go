package logstore

import (
	"strings"
	"time"
)

// splitEntries breaks raw file contents into individual entries,
// preserving order. Entries are the non-empty lines; the blank lines the
// formatter writes between entries are framing, not content.
func splitEntries(raw string) []string {
	lines := strings.Split(raw, "\n")
	entries := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			entries = append(entries, line)
		}
	}
	return entries
}

// joinEntries restores the blank-line framing the formatter produces, so
// a compacted file is byte-identical to one written entry by entry.
func joinEntries(entries []string) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteByte('\n')
		b.WriteString(e)
		b.WriteByte('\n')
	}
	return b.String()
}

// extractStamp returns the bracketed timestamp text of a formatted entry.
func extractStamp(entry string) (string, bool) {
	if !strings.HasPrefix(entry, "[") {
		return "", false
	}
	end := strings.Index(entry, "]")
	if end < 0 {
		return "", false
	}
	return entry[1:end], true
}

// parseStamp parses "DD<d>MM<d>YYYY[ HH<t>MM<t>SS.mmm]" in a single pass,
// validating and extracting the components together. The time portion is
// optional and defaults to midnight. The whole input must be consumed.
func parseStamp(s, dateDelim, timeDelim string) (time.Time, bool) {
	c := &cursor{s: s}

	day, ok := c.twoDigits()
	if !ok || !c.literal(dateDelim) {
		return time.Time{}, false
	}
	month, ok := c.twoDigits()
	if !ok || !c.literal(dateDelim) {
		return time.Time{}, false
	}
	year, ok := c.digits(4)
	if !ok {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	hour, minute, second, milli := 0, 0, 0, 0
	if !c.done() {
		if !c.literal(" ") {
			return time.Time{}, false
		}
		if hour, ok = c.twoDigits(); !ok || !c.literal(timeDelim) {
			return time.Time{}, false
		}
		if minute, ok = c.twoDigits(); !ok || !c.literal(timeDelim) {
			return time.Time{}, false
		}
		if second, ok = c.twoDigits(); !ok || !c.literal(".") {
			return time.Time{}, false
		}
		if milli, ok = c.milliseconds(); !ok {
			return time.Time{}, false
		}
		if hour > 23 || minute > 59 || second > 59 {
			return time.Time{}, false
		}
	}
	if !c.done() {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, second,
		milli*int(time.Millisecond), time.Local), true
}

// cursor is a minimal scanner over the stamp text.
type cursor struct {
	s   string
	pos int
}

func (c *cursor) done() bool {
	return c.pos >= len(c.s)
}

func (c *cursor) literal(lit string) bool {
	if strings.HasPrefix(c.s[c.pos:], lit) {
		c.pos += len(lit)
		return true
	}
	return false
}

func (c *cursor) digits(n int) (int, bool) {
	if c.pos+n > len(c.s) {
		return 0, false
	}
	v := 0
	for i := 0; i < n; i++ {
		ch := c.s[c.pos+i]
		if ch < '0' || ch > '9' {
			return 0, false
		}
		v = v*10 + int(ch-'0')
	}
	c.pos += n
	return v, true
}

func (c *cursor) twoDigits() (int, bool) {
	return c.digits(2)
}

// milliseconds reads one to three digits; the formatter writes them
// unpadded.
func (c *cursor) milliseconds() (int, bool) {
	v := 0
	n := 0
	for n < 3 && c.pos < len(c.s) {
		ch := c.s[c.pos]
		if ch < '0' || ch > '9' {
			break
		}
		v = v*10 + int(ch-'0')
		c.pos++
		n++
	}
	if n == 0 {
		return 0, false
	}
	return v, true
}
