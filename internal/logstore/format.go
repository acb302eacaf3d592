package logstore

import (
	"fmt"
	"strings"
	"time"
)

// formatEntry builds the on-disk line for a message:
//
//	"\n[DD<d>MM<d>YYYY HH<t>MM<t>SS.mmm] - message\n"
//
// The surrounding newlines keep entries separated by blank lines in the
// file. Date and time components are zero-padded to two digits, the year
// is four digits, milliseconds are written unpadded.
func formatEntry(message string, ts time.Time, dateDelim, timeDelim string) string {
	var b strings.Builder
	b.WriteString("\n[")
	writePadded(&b, ts.Day())
	b.WriteString(dateDelim)
	writePadded(&b, int(ts.Month()))
	b.WriteString(dateDelim)
	fmt.Fprintf(&b, "%04d", ts.Year())
	b.WriteByte(' ')
	writePadded(&b, ts.Hour())
	b.WriteString(timeDelim)
	writePadded(&b, ts.Minute())
	b.WriteString(timeDelim)
	writePadded(&b, ts.Second())
	b.WriteByte('.')
	fmt.Fprintf(&b, "%d", ts.Nanosecond()/int(time.Millisecond))
	b.WriteString("] - ")
	b.WriteString(message)
	b.WriteByte('\n')
	return b.String()
}

func writePadded(b *strings.Builder, v int) {
	if v < 10 {
		b.WriteByte('0')
	}
	fmt.Fprintf(b, "%d", v)
}
