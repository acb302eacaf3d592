package meta

import (
	"time"
)

// CompactionRecord is the sidecar metadata kept for one backing file.
// It is advisory: the log file itself stays the sole source of truth and
// nothing on the read path consults these records.
type CompactionRecord struct {
	Path        string    `json:"path"`
	CompactedAt time.Time `json:"compacted_at"`
	Retained    int       `json:"retained"`
	Dropped     int       `json:"dropped"`
}

// Journal stores and retrieves compaction records per backing file.
type Journal interface {
	// RecordCompaction saves the outcome of one compaction pass,
	// replacing any previous record for the same path.
	RecordCompaction(path string, at time.Time, retained, dropped int) error

	// Get retrieves the last record for a file. Returns nil if the file
	// has never been compacted.
	Get(path string) (*CompactionRecord, error)

	// List returns all stored records.
	List() ([]CompactionRecord, error)

	// Close closes the journal
	Close() error
}
