package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidemark/linelog/internal/logstore"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stores.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "valid catalog",
			yaml: `
stores:
  app:
    path: /var/log/app.log
    write_mode: append
    retention_seconds: 3600
  audit:
    path: /var/log/audit.log
    date_delimiter: "-"
`,
			wantErr: false,
		},
		{
			name:    "empty catalog",
			yaml:    "stores: {}\n",
			wantErr: false,
		},
		{
			name: "missing path",
			yaml: `
stores:
  broken:
    write_mode: append
`,
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "stores: [not a map",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalog(t, tt.yaml)
			c, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && c.Stores == nil {
				t.Error("Stores map not initialized")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing catalog file")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")
	path := writeCatalog(t, `
stores:
  app:
    path: `+logPath+`
    write_mode: append
    retention_seconds: 60
`)

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	s, err := c.Open("app")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if err := s.Log("from catalog").Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	entries, err := s.Query(context.Background(), logstore.QueryOptions{})
	if err != nil || len(entries) != 1 || !strings.Contains(entries[0], "from catalog") {
		t.Errorf("catalog-built store misbehaved: %v %v", entries, err)
	}
}

func TestOpenUnknownStore(t *testing.T) {
	c := &Catalog{Stores: map[string]StoreDef{}}
	if _, err := c.Open("ghost"); err == nil {
		t.Fatal("expected error for unknown store name")
	}
}

func TestOpenBadWriteMode(t *testing.T) {
	c := &Catalog{Stores: map[string]StoreDef{
		"bad": {Path: "/tmp/x.log", WriteMode: "sideways"},
	}}
	if _, err := c.Open("bad"); err == nil {
		t.Fatal("expected error for unrecognized write mode")
	}
}

func TestParseWriteMode(t *testing.T) {
	tests := []struct {
		in      string
		want    logstore.WriteMode
		wantErr bool
	}{
		{in: "append", want: logstore.ModeAppend},
		{in: "append-exclusive", want: logstore.ModeAppendExclusive},
		{in: "truncate", want: logstore.ModeTruncate},
		{in: "truncate-exclusive", want: logstore.ModeTruncateExclusive},
		{in: "w+", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseWriteMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseWriteMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseWriteMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
