package meta

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.etcd.io/bbolt"
)

const (
	bucketName = "compactions"
)

// BoltJournal implements Journal using BoltDB
type BoltJournal struct {
	db *bbolt.DB
}

// NewBoltJournal opens (or creates) the journal database
func NewBoltJournal(dbPath string) (*BoltJournal, error) {
	// Try to open with short timeout
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		// A locked file means another process holds the journal,
		// usually after a kill without graceful shutdown
		return nil, fmt.Errorf("failed to open boltdb (file may be locked by another process): %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	log.Info().
		Str("db_path", dbPath).
		Msg("Compaction journal initialized")

	return &BoltJournal{db: db}, nil
}

// RecordCompaction saves the outcome of one compaction pass
func (j *BoltJournal) RecordCompaction(path string, at time.Time, retained, dropped int) error {
	rec := CompactionRecord{
		Path:        path,
		CompactedAt: at,
		Retained:    retained,
		Dropped:     dropped,
	}
	val, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode compaction record: %w", err)
	}

	err = j.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket not found")
		}
		return b.Put([]byte(path), val)
	})
	if err != nil {
		return fmt.Errorf("failed to save compaction record: %w", err)
	}

	log.Debug().
		Str("path", path).
		Int("retained", retained).
		Int("dropped", dropped).
		Msg("Compaction record saved")

	return nil
}

// Get retrieves the last compaction record for a file
func (j *BoltJournal) Get(path string) (*CompactionRecord, error) {
	var rec *CompactionRecord

	err := j.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket not found")
		}

		val := b.Get([]byte(path))
		if val == nil {
			return nil
		}

		var r CompactionRecord
		if err := json.Unmarshal(val, &r); err != nil {
			return fmt.Errorf("invalid compaction record: %w", err)
		}
		rec = &r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get compaction record: %w", err)
	}

	return rec, nil
}

// List returns all stored compaction records
func (j *BoltJournal) List() ([]CompactionRecord, error) {
	var records []CompactionRecord

	err := j.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket not found")
		}

		return b.ForEach(func(k, v []byte) error {
			var r CompactionRecord
			if err := json.Unmarshal(v, &r); err != nil {
				// Skip unreadable records rather than failing the listing
				log.Warn().Str("path", string(k)).Msg("Skipping invalid compaction record")
				return nil
			}
			records = append(records, r)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list compaction records: %w", err)
	}

	return records, nil
}

// Close closes the BoltDB database
func (j *BoltJournal) Close() error {
	log.Info().Msg("Closing compaction journal")
	return j.db.Close()
}
