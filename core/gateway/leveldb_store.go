package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	ds "github.com/ipfs/go-datastore"
	dsq "github.com/ipfs/go-datastore/query"
	dslvl "github.com/ipfs/go-ds-leveldb"

	"github.com/pyropy/chunkstore/core/model"
)

// LevelDBMetadataStore persists manifests in a leveldb datastore so
// objects survive gateway restarts. The contract is identical to the
// in-memory store.
type LevelDBMetadataStore struct {
	objects *dslvl.Datastore
}

func NewLevelDBMetadataStore(path string) (*LevelDBMetadataStore, error) {
	store, err := dslvl.NewDatastore(path, nil)
	if err != nil {
		return nil, err
	}

	return &LevelDBMetadataStore{
		objects: store,
	}, nil
}

func (s *LevelDBMetadataStore) Get(ctx context.Context, key string) (*model.ObjectMeta, error) {
	b, err := s.objects.Get(ctx, ds.NewKey(key))
	if err != nil {
		if errors.Is(err, ds.ErrNotFound) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}

	var meta model.ObjectMeta
	err = json.Unmarshal(b, &meta)
	if err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *LevelDBMetadataStore) Set(ctx context.Context, key string, meta model.ObjectMeta) error {
	b, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	return s.objects.Put(ctx, ds.NewKey(key), b)
}

func (s *LevelDBMetadataStore) Remove(ctx context.Context, key string) error {
	return s.objects.Delete(ctx, ds.NewKey(key))
}

func (s *LevelDBMetadataStore) All(ctx context.Context) ([]string, error) {
	keys := make([]string, 0)

	res, err := s.objects.Query(ctx, dsq.Query{KeysOnly: true})
	if err != nil {
		return keys, err
	}
	defer res.Close()

	for {
		r, hasNext := res.NextSync()
		if !hasNext {
			break
		}
		if r.Error != nil {
			return keys, r.Error
		}

		keys = append(keys, strings.TrimPrefix(r.Key, "/"))
	}

	sort.Strings(keys)
	return keys, nil
}

func (s *LevelDBMetadataStore) Close() error {
	return s.objects.Close()
}
