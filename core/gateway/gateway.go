package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"

	"github.com/pyropy/chunkstore/core/chunker"
	"github.com/pyropy/chunkstore/core/constants"
	"github.com/pyropy/chunkstore/core/model"
	"github.com/pyropy/chunkstore/core/placement"
	"github.com/pyropy/chunkstore/core/transport"
	"github.com/pyropy/chunkstore/lib/checksum"
)

var (
	ErrNoDataNodes = errors.New("no datanodes configured")
	ErrStreamRead  = errors.New("failed to read object stream")
)

// Gateway composes the chunker, placement, chunk transport and metadata
// store into the object API.
type Gateway struct {
	nodes     []model.DataNode
	placement *placement.RoundRobin
	transport ChunkTransport
	fetcher   *ChunkFetcher
	store     MetadataStore
	chunkSize int
}

func NewGateway(nodes []model.DataNode, chunkTransport ChunkTransport, store MetadataStore) (*Gateway, error) {
	if len(nodes) == 0 {
		return nil, ErrNoDataNodes
	}

	return &Gateway{
		nodes:     nodes,
		placement: placement.NewRoundRobin(),
		transport: chunkTransport,
		fetcher:   NewChunkFetcher(chunkTransport),
		store:     store,
		chunkSize: constants.MAX_CHUNK_SIZE_BYTES,
	}, nil
}

// NewChunkID synthesizes a globally unique chunk id for an object key.
func NewChunkID(key string) string {
	return fmt.Sprintf("%s-%s", key, uuid.New())
}

// PutObject streams body through the chunker, uploading chunks one at a
// time to nodes picked by placement. The manifest becomes visible only
// after every chunk upload succeeded, so readers never observe a
// partial object. Chunks already uploaded when a later one fails are
// not rolled back.
func (g *Gateway) PutObject(ctx context.Context, key string, body io.Reader) (*model.ObjectMeta, error) {
	etag := checksum.NewETag()
	chunks := chunker.NewWithSize(io.TeeReader(body, etag), g.chunkSize)

	meta := model.ObjectMeta{
		Chunks: []model.ChunkMeta{},
	}

	for index := 0; ; index++ {
		data, err := chunks.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStreamRead, err)
		}

		chunkID := NewChunkID(key)
		node := g.placement.Select(g.nodes)

		err = g.transport.PutChunk(ctx, node.BaseURL, chunkID, data)
		if err != nil {
			return nil, fmt.Errorf("upload chunk %d: %w", index, err)
		}

		chunksUploaded.Inc()
		meta.Chunks = append(meta.Chunks, model.ChunkMeta{
			Index:   index,
			Size:    int64(len(data)),
			ChunkID: chunkID,
			Node:    node.BaseURL,
		})
		meta.Size += int64(len(data))
	}

	meta.ETag = etag.Sum()

	err := g.store.Set(ctx, key, meta)
	if err != nil {
		return nil, err
	}

	objectsUploaded.Inc()
	return &meta, nil
}

// GetObject returns the object's metadata and a stream of its bytes,
// reconstructed from chunks fetched in parallel but emitted in index
// order. The caller must close the stream.
func (g *Gateway) GetObject(ctx context.Context, key string) (*model.ObjectMeta, io.ReadCloser, error) {
	meta, err := g.store.Get(ctx, key)
	if err != nil {
		return nil, nil, err
	}

	// Manifests are stored in insertion order but reconstruction
	// requires index order.
	chunks := make([]model.ChunkMeta, len(meta.Chunks))
	copy(chunks, meta.Chunks)
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Index < chunks[j].Index
	})

	objectsFetched.Inc()
	return meta, g.fetcher.Fetch(ctx, chunks), nil
}

// HeadObject returns the object's metadata without touching any chunk.
func (g *Gateway) HeadObject(ctx context.Context, key string) (*model.ObjectMeta, error) {
	return g.store.Get(ctx, key)
}

// DeleteObject removes every chunk and then the manifest. The first
// chunk delete failure aborts with the metadata intact, so the object
// is not forgotten while chunks still exist. A chunk that is already
// gone counts as deleted.
func (g *Gateway) DeleteObject(ctx context.Context, key string) error {
	meta, err := g.store.Get(ctx, key)
	if err != nil {
		return err
	}

	for _, chunk := range meta.Chunks {
		err := g.transport.DeleteChunk(ctx, chunk.Node, chunk.ChunkID)
		if err != nil && !errors.Is(err, transport.ErrChunkNotFound) {
			return fmt.Errorf("delete chunk %d: %w", chunk.Index, err)
		}
	}

	err = g.store.Remove(ctx, key)
	if err != nil {
		return err
	}

	objectsDeleted.Inc()
	return nil
}

// ListObjects returns all known object keys.
func (g *Gateway) ListObjects(ctx context.Context) ([]string, error) {
	return g.store.All(ctx)
}
