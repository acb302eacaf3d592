package logstore

import (
	"testing"
	"time"
)

func TestFormatEntry(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		ts        time.Time
		dateDelim string
		timeDelim string
		want      string
	}{
		{
			name:      "default delimiters with padding",
			message:   "service started",
			ts:        time.Date(2024, time.March, 5, 9, 4, 7, 12*int(time.Millisecond), time.Local),
			dateDelim: "/",
			timeDelim: ":",
			want:      "\n[05/03/2024 09:04:07.12] - service started\n",
		},
		{
			name:      "no padding needed",
			message:   "x",
			ts:        time.Date(2023, time.December, 31, 23, 59, 58, 999*int(time.Millisecond), time.Local),
			dateDelim: "/",
			timeDelim: ":",
			want:      "\n[31/12/2023 23:59:58.999] - x\n",
		},
		{
			name:      "millisecond stays unpadded",
			message:   "tick",
			ts:        time.Date(2024, time.January, 1, 0, 0, 0, 5*int(time.Millisecond), time.Local),
			dateDelim: "/",
			timeDelim: ":",
			want:      "\n[01/01/2024 00:00:00.5] - tick\n",
		},
		{
			name:      "custom delimiters",
			message:   "custom",
			ts:        time.Date(2024, time.June, 2, 1, 2, 3, 0, time.Local),
			dateDelim: "-",
			timeDelim: ".",
			want:      "\n[02-06-2024 01.02.03.0] - custom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatEntry(tt.message, tt.ts, tt.dateDelim, tt.timeDelim)
			if got != tt.want {
				t.Errorf("formatEntry() = %q, want %q", got, tt.want)
			}
		})
	}
}
