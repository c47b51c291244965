package memory

import (
	"context"
	"sync"

	"github.com/commonsgame/commons-go/internal/model"
	"github.com/commonsgame/commons-go/internal/recordstore"
)

// Store is an in-memory implementation of the record store.
// A single instance shared between peers stands in for the replicated
// substrate in tests and single-process runs.
type Store struct {
	mu sync.RWMutex

	records map[model.Ref]*recordstore.Record
	tags    map[recordstore.Tag][]model.Ref
	authors map[authorKey][]model.Ref
	held    map[model.Ref]struct{}
	seq     uint64
}

type authorKey struct {
	author model.PlayerID
	kind   model.Kind
}

// New creates a new in-memory store instance
func New() *Store {
	return &Store{
		records: make(map[model.Ref]*recordstore.Record),
		tags:    make(map[recordstore.Tag][]model.Ref),
		authors: make(map[authorKey][]model.Ref),
		held:    make(map[model.Ref]struct{}),
	}
}

// Ensure Store implements the interface
var _ recordstore.Store = (*Store)(nil)

func (s *Store) Append(ctx context.Context, rec *recordstore.Record, tags ...recordstore.Tag) (model.Ref, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := rec.Ref()
	if _, ok := s.records[ref]; ok {
		// Same content already stored: idempotent no-op
		return ref, nil
	}

	s.seq++
	stored := *rec
	stored.Seq = s.seq
	s.records[ref] = &stored

	for _, tag := range tags {
		s.tags[tag] = append(s.tags[tag], ref)
	}
	if rec.Author != "" {
		key := authorKey{author: rec.Author, kind: rec.Kind}
		s.authors[key] = append(s.authors[key], ref)
	}

	return ref, nil
}

func (s *Store) Fetch(ctx context.Context, ref model.Ref) (*recordstore.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[ref]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	if _, heldBack := s.held[ref]; heldBack {
		return nil, model.ErrRecordNotFound
	}
	return rec, nil
}

func (s *Store) ListTag(ctx context.Context, tag recordstore.Tag) ([]*recordstore.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*recordstore.Record
	for _, ref := range s.tags[tag] {
		if _, heldBack := s.held[ref]; heldBack {
			continue
		}
		result = append(result, s.records[ref])
	}
	return result, nil
}

func (s *Store) ListByAuthor(ctx context.Context, author model.PlayerID, kind model.Kind) ([]*recordstore.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*recordstore.Record
	for _, ref := range s.authors[authorKey{author: author, kind: kind}] {
		if _, heldBack := s.held[ref]; heldBack {
			continue
		}
		result = append(result, s.records[ref])
	}
	return result, nil
}

// Hold hides a stored record from Fetch and list operations, simulating
// a record that has not yet propagated to the observing peer.
// Only for tests.
func (s *Store) Hold(ref model.Ref) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held[ref] = struct{}{}
}

// Release makes a held record visible again. Its sequence number is
// unchanged, matching monotonic eventual visibility.
func (s *Store) Release(ref model.Ref) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.held, ref)
}

// ReleaseAll makes every held record visible
func (s *Store) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held = make(map[model.Ref]struct{})
}
