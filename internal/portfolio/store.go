package portfolio

import (
	"sort"
	"sync"

	"github.com/vora-labs/voradash/internal/models"
)

// Store holds the set of pools a user is tracking, keyed by composite
// identity (symbol, chain, protocol) rather than row position. Membership
// is mutated only through explicit operations; filtering and re-fetching
// never evict an entry, so a selected pool that vanishes from a later
// snapshot is retained with its last known values.
//
// The service runs two independent stores, one for the selection and one
// for favorites.
type Store struct {
	mu    sync.Mutex
	pools map[models.PoolKey]models.PoolRecord
}

func NewStore() *Store {
	return &Store{
		pools: make(map[models.PoolKey]models.PoolRecord),
	}
}

// Toggle adds or removes one pool. Idempotent: toggling an existing member
// on refreshes its values, toggling a non-member off is a no-op.
func (s *Store) Toggle(record models.PoolRecord, selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if selected {
		s.pools[record.Key()] = record
	} else {
		delete(s.pools, record.Key())
	}
}

// Merge unions the given records into the store. On a key conflict the
// incoming record's values win.
func (s *Store) Merge(records []models.PoolRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		s.pools[r.Key()] = r
	}
}

// ReconcileAgainstView synchronizes membership with the selection flags of
// the currently displayed view: flagged view rows are added, unflagged view
// rows are removed, and members absent from the view are left untouched.
func (s *Store) ReconcileAgainstView(view []models.PoolRecord, selected map[models.PoolKey]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range view {
		key := r.Key()
		if selected[key] {
			s.pools[key] = r
		} else {
			delete(s.pools, key)
		}
	}
}

// Contains reports membership by composite key.
func (s *Store) Contains(key models.PoolKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.pools[key]
	return ok
}

// Get returns the stored record for a key, if present.
func (s *Store) Get(key models.PoolKey) (models.PoolRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.pools[key]
	return r, ok
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.pools)
}

// Snapshot returns the members ordered by score descending, composite key
// as tie-breaker so output is deterministic across calls.
func (s *Store) Snapshot() []models.PoolRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]models.PoolRecord, 0, len(s.pools))
	for _, r := range s.pools {
		records = append(records, r)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		ki, kj := records[i].Key(), records[j].Key()
		if ki.Symbol != kj.Symbol {
			return ki.Symbol < kj.Symbol
		}
		if ki.Chain != kj.Chain {
			return ki.Chain < kj.Chain
		}
		return ki.Protocol < kj.Protocol
	})

	return records
}
