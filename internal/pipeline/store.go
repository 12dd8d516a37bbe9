package pipeline

import (
	"context"
	"sync"

	"github.com/nao1215/linkmap/internal/database"
	"github.com/nao1215/linkmap/internal/model"
)

// Store serializes writes to a LinkDB.
//
// The link graph store itself has no internal locking and assumes a
// single writer. When the batch processor runs pipelines concurrently,
// all of them share one Store, so every write still happens alone.
type Store struct {
	mu sync.Mutex
	db *database.LinkDB
}

// NewStore wraps a LinkDB in a write-serializing guard.
func NewStore(db *database.LinkDB) *Store {
	return &Store{db: db}
}

// UpsertSite serializes LinkDB.UpsertSite.
func (s *Store) UpsertSite(ctx context.Context, site model.Site) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.UpsertSite(ctx, site)
}

// UpsertLink serializes LinkDB.UpsertLink.
func (s *Store) UpsertLink(ctx context.Context, link model.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.UpsertLink(ctx, link)
}

// DeleteLinksBySource serializes LinkDB.DeleteLinksBySource.
func (s *Store) DeleteLinksBySource(ctx context.Context, srcURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.DeleteLinksBySource(ctx, srcURL)
}

// UpdateSiteCrawltime serializes LinkDB.UpdateSiteCrawltime.
func (s *Store) UpdateSiteCrawltime(ctx context.Context, site model.Site) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.UpdateSiteCrawltime(ctx, site)
}
