package logstore

import (
	"os"
)

// WriteMode is the file-open discipline for appends, fixed when the
// store is constructed.
type WriteMode string

const (
	// ModeAppend appends to the file, creating it if missing.
	ModeAppend WriteMode = "append"
	// ModeAppendExclusive appends but fails if the file already exists.
	ModeAppendExclusive WriteMode = "append-exclusive"
	// ModeTruncate truncates (or creates) the file on every append open.
	ModeTruncate WriteMode = "truncate"
	// ModeTruncateExclusive truncates but fails if the file already exists.
	ModeTruncateExclusive WriteMode = "truncate-exclusive"
)

// openFlags maps a write mode to os.OpenFile flags. Unknown modes are
// rejected at construction, so ok is only consulted there.
func openFlags(mode WriteMode) (int, bool) {
	switch mode {
	case ModeAppend:
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND, true
	case ModeAppendExclusive:
		return os.O_WRONLY | os.O_CREATE | os.O_EXCL | os.O_APPEND, true
	case ModeTruncate:
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC, true
	case ModeTruncateExclusive:
		return os.O_WRONLY | os.O_CREATE | os.O_EXCL | os.O_TRUNC, true
	}
	return 0, false
}

// fileAccessor performs all I/O against the backing file. It is unaware
// of ordering; the task queue guarantees at most one call is in flight.
type fileAccessor struct {
	path  string
	flags int
}

// appendLine writes one formatted line using the configured open mode.
func (f *fileAccessor) appendLine(line string) error {
	file, err := os.OpenFile(f.path, f.flags, 0644)
	if err != nil {
		return &IOError{Op: "append", Path: f.path, Err: err}
	}
	_, werr := file.WriteString(line)
	cerr := file.Close()
	if werr != nil {
		return &IOError{Op: "append", Path: f.path, Err: werr}
	}
	if cerr != nil {
		return &IOError{Op: "append", Path: f.path, Err: cerr}
	}
	return nil
}

// readAll returns the full raw contents. A missing or unreadable file is
// an IOError for the caller of that specific operation.
func (f *fileAccessor) readAll() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", &IOError{Op: "read", Path: f.path, Err: err}
	}
	return string(data), nil
}

// overwrite replaces the whole file. Only compaction uses it; it always
// truncates regardless of the configured append mode.
func (f *fileAccessor) overwrite(text string) error {
	if err := os.WriteFile(f.path, []byte(text), 0644); err != nil {
		return &IOError{Op: "overwrite", Path: f.path, Err: err}
	}
	return nil
}
