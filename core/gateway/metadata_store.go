package gateway

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/pyropy/chunkstore/core/model"
)

var ErrObjectNotFound = errors.New("object not found")

// MetadataStore maps object keys to chunk manifests. Get hands back a
// copy, never a live reference, so callers cannot observe a Set in
// progress. Set replaces any prior manifest wholesale; concurrent Sets
// on one key race and the last one wins.
type MetadataStore interface {
	Get(ctx context.Context, key string) (*model.ObjectMeta, error)
	Set(ctx context.Context, key string, meta model.ObjectMeta) error
	Remove(ctx context.Context, key string) error
	All(ctx context.Context) ([]string, error)
}

// MemoryMetadataStore keeps manifests in a process-local map guarded by
// a single mutex. The lock is held only for map access, never across
// chunk I/O, so contention stays uncorrelated with transfer latency.
type MemoryMetadataStore struct {
	mutex   sync.Mutex
	objects map[string]model.ObjectMeta
}

func NewMemoryMetadataStore() *MemoryMetadataStore {
	return &MemoryMetadataStore{
		objects: make(map[string]model.ObjectMeta),
	}
}

func (s *MemoryMetadataStore) Get(_ context.Context, key string) (*model.ObjectMeta, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	meta, exists := s.objects[key]
	if !exists {
		return nil, ErrObjectNotFound
	}

	clone := meta.Clone()
	return &clone, nil
}

func (s *MemoryMetadataStore) Set(_ context.Context, key string, meta model.ObjectMeta) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.objects[key] = meta.Clone()
	return nil
}

func (s *MemoryMetadataStore) Remove(_ context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.objects, key)
	return nil
}

func (s *MemoryMetadataStore) All(_ context.Context) ([]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	keys := make([]string, 0, len(s.objects))
	for key := range s.objects {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys, nil
}
