package logstore

import (
	"errors"
	"reflect"
	"testing"
)

func TestFilterEntries(t *testing.T) {
	entries := []string{
		"[01/01/2024 10:00:00.0] - user alice logged in",
		"[01/01/2024 10:00:01.0] - user bob logged in",
		"[02/01/2024 08:30:00.0] - cache flushed",
	}

	tests := []struct {
		name    string
		content string
		date    string
		want    []string
	}{
		{
			name: "no filters returns everything",
			want: entries,
		},
		{
			name:    "content substring",
			content: "alice",
			want:    entries[:1],
		},
		{
			name: "date substring",
			date: "02/01/2024",
			want: entries[2:],
		},
		{
			name:    "content OR date keeps a match of either",
			content: "cache",
			date:    "01/01/2024",
			want:    entries,
		},
		{
			name:    "no matches",
			content: "nothing here",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterEntries(entries, tt.content, tt.date)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("filterEntries() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateDateFilter(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "empty filter is fine", date: "", wantErr: false},
		{name: "date only", date: "31/12/2099", wantErr: false},
		{name: "date with time", date: "31/12/2099 23:59:59.999", wantErr: false},
		{name: "wrong delimiter", date: "31-12-2099", wantErr: true},
		{name: "free text", date: "yesterday", wantErr: true},
		{name: "partial time", date: "31/12/2099 23:59", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDateFilter(tt.date, "/", ":")
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateDateFilter(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected *ValidationError, got %T", err)
				}
			}
		})
	}
}
