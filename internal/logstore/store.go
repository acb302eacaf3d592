// Package logstore implements a single-file, append-oriented log store.
// Every operation against the backing file goes through one serialized
// task queue, so concurrent callers never interleave I/O and entries land
// in the file in exact submission order.
package logstore

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// DefaultRetentionSeconds is 90 days.
	DefaultRetentionSeconds = 7776000
	// DefaultDateDelimiter separates day, month and year in entry stamps.
	DefaultDateDelimiter = "/"
	// DefaultTimeDelimiter separates hour, minute and second in entry stamps.
	DefaultTimeDelimiter = ":"
)

// CompactionRecorder receives the outcome of each compaction pass. The
// backing file stays the sole source of truth; the recorder is advisory
// sidecar metadata and its failures never fail the compaction itself.
type CompactionRecorder interface {
	RecordCompaction(path string, at time.Time, retained, dropped int) error
}

// Store owns one backing log file. Create one Store per file; independent
// stores on different files impose no ordering on each other. The queue
// and path are never shared outside the struct.
type Store struct {
	path       string
	mode       WriteMode
	retention  time.Duration
	dateDelim  string
	timeDelim  string
	autoFormat bool

	file     *fileAccessor
	queue    *taskQueue
	recorder CompactionRecorder
	now      func() time.Time
}

// Option configures a Store at construction.
type Option func(*Store)

// WithWriteMode fixes the file-open discipline for the store lifetime.
func WithWriteMode(mode WriteMode) Option {
	return func(s *Store) { s.mode = mode }
}

// WithRetention sets the maximum entry age, in seconds, kept by CleanUp.
func WithRetention(seconds int64) Option {
	return func(s *Store) { s.retention = time.Duration(seconds) * time.Second }
}

// WithDateDelimiter sets the separator used inside the date portion of
// entry timestamps.
func WithDateDelimiter(d string) Option {
	return func(s *Store) { s.dateDelim = d }
}

// WithTimeDelimiter sets the separator used inside the time portion of
// entry timestamps.
func WithTimeDelimiter(d string) Option {
	return func(s *Store) { s.timeDelim = d }
}

// WithAutoFormat controls whether Log wraps messages with a timestamp by
// default. When false, callers choose per call via LogWith.
func WithAutoFormat(auto bool) Option {
	return func(s *Store) { s.autoFormat = auto }
}

// WithRecorder attaches a compaction recorder.
func WithRecorder(r CompactionRecorder) Option {
	return func(s *Store) { s.recorder = r }
}

// WithClock overrides the time source. Tests use it to pin "now".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store for the given backing file. The file itself is not
// touched until the first operation runs.
func New(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:       path,
		mode:       ModeAppend,
		retention:  DefaultRetentionSeconds * time.Second,
		dateDelim:  DefaultDateDelimiter,
		timeDelim:  DefaultTimeDelimiter,
		autoFormat: true,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.path == "" {
		return nil, &ConfigError{Field: "path", Message: "a backing file path is required"}
	}
	flags, ok := openFlags(s.mode)
	if !ok {
		return nil, &ConfigError{Field: "write mode", Message: "unrecognized mode " + string(s.mode)}
	}
	if s.retention < 0 {
		return nil, &ConfigError{Field: "retention", Message: "must not be negative"}
	}

	s.file = &fileAccessor{path: s.path, flags: flags}
	s.queue = newTaskQueue()

	log.Debug().
		Str("path", s.path).
		Str("mode", string(s.mode)).
		Dur("retention", s.retention).
		Msg("Log store created")

	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Log queues an append of text, timestamped and formatted when the store
// has auto-formatting on. It is fire-and-forget: a failed append is
// silent unless the caller inspects the returned handle. Reads stay
// strict, writes stay best-effort.
func (s *Store) Log(text string) *Result {
	return s.LogWith(text, false)
}

// LogWith is Log with a per-call formatting choice. The entry is
// formatted when either the store's auto-formatting or the per-call flag
// is on; only a store built with auto-formatting off can write verbatim.
func (s *Store) LogWith(text string, format bool) *Result {
	line := text
	if s.autoFormat || format {
		line = formatEntry(text, s.now(), s.dateDelim, s.timeDelim)
	}
	return s.queue.submit("append", func() error {
		_, span := startSpan(context.Background(), "logstore.append",
			attribute.String("file.path", s.path))
		err := s.file.appendLine(line)
		endSpan(span, err)
		return err
	})
}

// Query returns the entries matching opts, in file order. A malformed
// date filter is rejected with a *ValidationError before any task is
// enqueued — no file access happens. If opts.Callback is set it receives
// the same entries and error as the return values; both deliveries
// happen, independently.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]string, error) {
	if err := validateDateFilter(opts.Date, s.dateDelim, s.timeDelim); err != nil {
		if opts.Callback != nil {
			opts.Callback(nil, err)
		}
		return nil, err
	}

	// The worker fills reply before the Result completes; the caller
	// reads it only after a successful Wait. A waiter that gives up via
	// ctx returns without touching reply — the task may still be queued
	// or running, and it keeps sole ownership of reply until it
	// completes.
	reply := &queryReply{}
	res := s.queue.submit("query", func() error {
		_, span := startSpan(ctx, "logstore.query",
			attribute.String("file.path", s.path))
		raw, err := s.file.readAll()
		if err != nil {
			endSpan(span, err)
			return err
		}
		reply.entries = filterEntries(splitEntries(raw), opts.Content, opts.Date)
		endSpan(span, nil)
		return nil
	})

	if err := res.Wait(ctx); err != nil {
		if opts.Callback != nil {
			opts.Callback(nil, err)
		}
		return nil, err
	}
	if opts.Callback != nil {
		opts.Callback(reply.entries, nil)
	}
	return reply.entries, nil
}

// queryReply carries one query's entries from the worker to the waiting
// caller. Ownership transfers through the Result: written before the
// task completes, read only after Wait returns nil.
type queryReply struct {
	entries []string
}

// CleanUp queues a compaction: entries older than the retention window
// are dropped and the file is rewritten in place with a full truncate.
// Like Log it is fire-and-forget via the returned handle. Running it
// again with no writes in between leaves the file unchanged.
func (s *Store) CleanUp() *Result {
	return s.queue.submit("compact", func() error {
		_, span := startSpan(context.Background(), "logstore.compact",
			attribute.String("file.path", s.path))
		raw, err := s.file.readAll()
		if err != nil {
			endSpan(span, err)
			return err
		}
		now := s.now()
		out := compactEntries(raw, s.retention, now, s.dateDelim, s.timeDelim)
		if err := s.file.overwrite(out.text); err != nil {
			endSpan(span, err)
			return err
		}
		log.Debug().
			Str("path", s.path).
			Int("retained", out.retained).
			Int("dropped", out.dropped).
			Msg("Compaction finished")
		if s.recorder != nil {
			if rerr := s.recorder.RecordCompaction(s.path, now, out.retained, out.dropped); rerr != nil {
				log.Debug().Err(rerr).Str("path", s.path).Msg("Compaction record not saved")
			}
		}
		endSpan(span, nil)
		return nil
	})
}

// Close stops accepting new operations, waits for everything already
// queued to finish, then releases the worker. Close is idempotent.
func (s *Store) Close() error {
	s.queue.close()
	return nil
}
