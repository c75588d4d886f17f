// Package locations implements the record store: an ordered collection of
// location documents persisted as one JSON snapshot per mutation.
package locations

import (
	"context"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tikaboopeak/weather-monitor/internal/common"
)

// Service owns the read-modify-persist critical section. Every operation,
// including pure reads, takes the mutex and works on a freshly loaded
// snapshot, so two concurrent mutations can never both read the same
// snapshot and persist results that discard each other.
type Service struct {
	mu   sync.Mutex
	repo Repository

	// test seam
	now func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) timestamp() string {
	return s.now().Format(time.RFC3339Nano)
}

// newID generates a "loc_" id from the first four bytes of a random UUID:
// eight lowercase hex characters.
func newID() string {
	u := uuid.New()
	return "loc_" + hex.EncodeToString(u[:4])
}

func findIndex(records []Record, id string) int {
	for i, rec := range records {
		if rec.ID() == id {
			return i
		}
	}
	return -1
}

// List returns a point-in-time copy of all records.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Record, len(snap.Locations))
	for i, rec := range snap.Locations {
		out[i] = rec.Clone()
	}
	return out, nil
}

// Get returns the record with the given id, or common.ErrorNotFound.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := findIndex(snap.Locations, id)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	return snap.Locations[i].Clone(), nil
}

// Insert assigns a fresh unique id, stamps the record, appends it and
// persists the snapshot. The stored record is returned.
func (s *Service) Insert(ctx context.Context, candidate Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Collision odds are negligible at 32 bits, but retrying is cheap.
	id := newID()
	for findIndex(snap.Locations, id) >= 0 {
		id = newID()
	}

	ts := s.timestamp()
	stored := candidate.Clone()
	stored[FieldID] = id
	stored[FieldLastUpdated] = ts

	snap.Locations = append(snap.Locations, stored)
	snap.LastUpdated = &ts

	if err := s.repo.Save(ctx, snap); err != nil {
		return nil, err
	}
	return stored.Clone(), nil
}

// Update replaces the record with the given id in place. The candidate's own
// id field is overwritten with the path id regardless of payload. Returns
// common.ErrorNotFound, with no write, when the id is absent.
func (s *Service) Update(ctx context.Context, id string, candidate Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := findIndex(snap.Locations, id)
	if i < 0 {
		return nil, common.ErrorNotFound
	}

	ts := s.timestamp()
	stored := candidate.Clone()
	stored[FieldID] = id
	stored[FieldLastUpdated] = ts

	snap.Locations[i] = stored
	snap.LastUpdated = &ts

	if err := s.repo.Save(ctx, snap); err != nil {
		return nil, err
	}
	return stored.Clone(), nil
}

// Delete removes the record with the given id, preserving the order of the
// rest, and returns the removed record.
func (s *Service) Delete(ctx context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := findIndex(snap.Locations, id)
	if i < 0 {
		return nil, common.ErrorNotFound
	}

	removed := snap.Locations[i]
	snap.Locations = append(snap.Locations[:i], snap.Locations[i+1:]...)
	ts := s.timestamp()
	snap.LastUpdated = &ts

	if err := s.repo.Save(ctx, snap); err != nil {
		return nil, err
	}
	return removed, nil
}

// BulkUpdate replaces each candidate whose id matches an existing record,
// in place, and persists once for the whole batch. Candidates with unknown
// ids are skipped silently; the returned count says how many matched.
func (s *Service) BulkUpdate(ctx context.Context, candidates []Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repo.Load(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, candidate := range candidates {
		i := findIndex(snap.Locations, candidate.ID())
		if i < 0 {
			continue
		}
		stored := candidate.Clone()
		stored[FieldLastUpdated] = s.timestamp()
		snap.Locations[i] = stored
		updated++
	}

	ts := s.timestamp()
	snap.LastUpdated = &ts
	if err := s.repo.Save(ctx, snap); err != nil {
		return 0, err
	}
	return updated, nil
}

// Info returns the record count and the store-level timestamp.
func (s *Service) Info(ctx context.Context) (*Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Info{TotalLocations: len(snap.Locations), LastUpdated: snap.LastUpdated}, nil
}
