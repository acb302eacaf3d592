package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tidemark/linelog/internal/logstore"
)

// StoreDef declares one named log store in the catalog file. Zero values
// fall back to the store defaults (append mode, 90 day retention, "/"
// and ":" delimiters, auto-formatting on).
type StoreDef struct {
	Path             string `yaml:"path"`
	WriteMode        string `yaml:"write_mode"`
	RetentionSeconds int64  `yaml:"retention_seconds"`
	DateDelimiter    string `yaml:"date_delimiter"`
	TimeDelimiter    string `yaml:"time_delimiter"`
	AutoFormat       *bool  `yaml:"auto_format"`
}

// Catalog maps store names to their definitions
type Catalog struct {
	Stores map[string]StoreDef `yaml:"stores"`
}

// Load reads a catalog YAML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse store catalog: %w", err)
	}

	if c.Stores == nil {
		c.Stores = make(map[string]StoreDef)
	}

	for name, def := range c.Stores {
		if def.Path == "" {
			return nil, fmt.Errorf("store %q: path is required", name)
		}
	}

	return &c, nil
}

// Names returns the declared store names
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Stores))
	for name := range c.Stores {
		names = append(names, name)
	}
	return names
}

// Open builds a logstore.Store from a named definition. Extra options
// (a compaction recorder, a test clock) are appended after the ones the
// definition implies.
func (c *Catalog) Open(name string, extra ...logstore.Option) (*logstore.Store, error) {
	def, ok := c.Stores[name]
	if !ok {
		return nil, fmt.Errorf("store %q is not in the catalog", name)
	}

	opts := make([]logstore.Option, 0, 5+len(extra))
	if def.WriteMode != "" {
		mode, err := parseWriteMode(def.WriteMode)
		if err != nil {
			return nil, fmt.Errorf("store %q: %w", name, err)
		}
		opts = append(opts, logstore.WithWriteMode(mode))
	}
	if def.RetentionSeconds > 0 {
		opts = append(opts, logstore.WithRetention(def.RetentionSeconds))
	}
	if def.DateDelimiter != "" {
		opts = append(opts, logstore.WithDateDelimiter(def.DateDelimiter))
	}
	if def.TimeDelimiter != "" {
		opts = append(opts, logstore.WithTimeDelimiter(def.TimeDelimiter))
	}
	if def.AutoFormat != nil {
		opts = append(opts, logstore.WithAutoFormat(*def.AutoFormat))
	}
	opts = append(opts, extra...)

	return logstore.New(def.Path, opts...)
}

func parseWriteMode(s string) (logstore.WriteMode, error) {
	switch s {
	case "append":
		return logstore.ModeAppend, nil
	case "append-exclusive":
		return logstore.ModeAppendExclusive, nil
	case "truncate":
		return logstore.ModeTruncate, nil
	case "truncate-exclusive":
		return logstore.ModeTruncateExclusive, nil
	}
	return "", fmt.Errorf("unrecognized write_mode %q", s)
}
