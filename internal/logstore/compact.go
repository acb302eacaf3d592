package logstore

import (
	"time"
)

// compactResult summarizes one compaction pass.
type compactResult struct {
	retained int
	dropped  int
	text     string
}

// compactEntries keeps the entries still inside the retention window.
// Each entry's bracketed timestamp is parsed with the configured
// delimiters; an entry whose timestamp cannot be parsed is dropped, the
// same as an expired one. An entry exactly retention old is retained;
// strictly older is dropped. Survivors keep their original order and
// blank-line framing.
func compactEntries(raw string, retention time.Duration, now time.Time, dateDelim, timeDelim string) compactResult {
	entries := splitEntries(raw)
	kept := make([]string, 0, len(entries))
	dropped := 0
	for _, e := range entries {
		stamp, ok := extractStamp(e)
		if !ok {
			dropped++
			continue
		}
		ts, ok := parseStamp(stamp, dateDelim, timeDelim)
		if !ok {
			dropped++
			continue
		}
		if now.Sub(ts) <= retention {
			kept = append(kept, e)
		} else {
			dropped++
		}
	}
	return compactResult{
		retained: len(kept),
		dropped:  dropped,
		text:     joinEntries(kept),
	}
}
