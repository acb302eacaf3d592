package logstore

import (
	"strings"
)

// QueryOptions narrows a query and optionally adds a second delivery
// channel for its result.
type QueryOptions struct {
	// Content keeps entries containing this substring.
	Content string
	// Date keeps entries containing this date text. It must match
	// "DD<dateDelim>MM<dateDelim>YYYY", optionally followed by
	// " HH<timeDelim>MM<timeDelim>SS.mmm", using the store delimiters.
	Date string
	// Callback, if set, also receives the entries and error the call
	// returns. Using both the return value and the callback yields two
	// independent deliveries of the same data; that is the contract,
	// not an accident.
	Callback func(entries []string, err error)
}

// filterEntries returns the entries matching the query, preserving file
// order. With no filters every entry matches. With filters, an entry is
// kept when it contains the content substring OR the date substring.
func filterEntries(entries []string, content, date string) []string {
	if content == "" && date == "" {
		return entries
	}
	matched := make([]string, 0, len(entries))
	for _, e := range entries {
		if content != "" && strings.Contains(e, content) {
			matched = append(matched, e)
			continue
		}
		if date != "" && strings.Contains(e, date) {
			matched = append(matched, e)
		}
	}
	return matched
}

// validateDateFilter rejects a malformed date filter before any task is
// enqueued, so a bad filter never costs file I/O.
func validateDateFilter(date, dateDelim, timeDelim string) error {
	if date == "" {
		return nil
	}
	if _, ok := parseStamp(date, dateDelim, timeDelim); !ok {
		return &ValidationError{
			Field:   "date filter",
			Value:   date,
			Message: "must be DD" + dateDelim + "MM" + dateDelim + "YYYY with an optional HH" + timeDelim + "MM" + timeDelim + "SS.mmm time",
		}
	}
	return nil
}
