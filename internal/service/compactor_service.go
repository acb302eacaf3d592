package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tidemark/linelog/internal/catalog"
	"github.com/tidemark/linelog/internal/config"
	"github.com/tidemark/linelog/internal/logstore"
	"github.com/tidemark/linelog/internal/meta"
)

// CompactorService sweeps every store in the catalog on an interval,
// dropping entries that have aged out of their retention windows.
type CompactorService struct {
	cfg     *config.Config
	journal *meta.BoltJournal
	stores  map[string]*logstore.Store
	stopped bool
}

// NewCompactorService opens the catalog stores and, if configured, the
// compaction journal.
func NewCompactorService(cfg *config.Config) (*CompactorService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load store catalog: %w", err)
	}

	s := &CompactorService{
		cfg:    cfg,
		stores: make(map[string]*logstore.Store),
	}

	if cfg.MetaDBPath != "" {
		journal, err := meta.NewBoltJournal(cfg.MetaDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open compaction journal: %w", err)
		}
		s.journal = journal
	}

	for _, name := range cat.Names() {
		var extra []logstore.Option
		if s.journal != nil {
			extra = append(extra, logstore.WithRecorder(s.journal))
		}
		store, err := cat.Open(name, extra...)
		if err != nil {
			s.closeAll()
			return nil, fmt.Errorf("failed to open store %q: %w", name, err)
		}
		s.stores[name] = store
	}

	log.Info().
		Int("stores", len(s.stores)).
		Dur("interval", cfg.CompactInterval).
		Msg("Compactor service created")

	return s, nil
}

// Start runs an immediate sweep, then one per interval until ctx ends.
func (s *CompactorService) Start(ctx context.Context) error {
	log.Info().Msg("Compactor service starting...")

	s.sweep(ctx)

	ticker := time.NewTicker(s.cfg.CompactInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep compacts every store. A failure on one store is logged and does
// not stop the sweep; the store's own queue already isolated it.
func (s *CompactorService) sweep(ctx context.Context) {
	names := make([]string, 0, len(s.stores))
	for name := range s.stores {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		store := s.stores[name]
		if err := store.CleanUp().Wait(ctx); err != nil {
			log.Warn().
				Err(err).
				Str("store", name).
				Str("path", store.Path()).
				Msg("Compaction sweep failed for store")
			continue
		}
		log.Debug().Str("store", name).Msg("Store compacted")
	}
}

// Stop stops the compactor service gracefully. Stop is idempotent.
func (s *CompactorService) Stop() error {
	if s.stopped {
		return nil
	}
	s.stopped = true
	log.Info().Msg("Compactor service stopping...")
	s.closeAll()
	return nil
}

func (s *CompactorService) closeAll() {
	for name, store := range s.stores {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Str("store", name).Msg("Error closing store")
		}
	}
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			log.Warn().Err(err).Msg("Error closing compaction journal")
		}
	}
}
