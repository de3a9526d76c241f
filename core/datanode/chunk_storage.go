package datanode

import (
	"errors"
	"io"
	"os"
	fp "path/filepath"
	"syscall"

	"github.com/pyropy/chunkstore/core/constants"
	"github.com/pyropy/chunkstore/lib/cmap"
)

var (
	ErrInvalidChunkID   = errors.New("invalid chunk id")
	ErrChunkExists      = errors.New("chunk already exists")
	ErrChunkNotFound    = errors.New("chunk does not exist")
	ErrChunkTooLarge    = errors.New("chunk exceeds maximum chunk size")
	ErrStorageExhausted = errors.New("insufficient storage")
)

// ChunkStorage persists chunks on local disk. A chunk is either fully
// absent or fully present: bytes stream into a temp file which is
// fsynced and renamed into place, the rename being the single commit
// point. Chunks are immutable once committed.
type ChunkStorage struct {
	root     string
	maxSize  int64
	inflight cmap.Map[string, struct{}]
}

func NewChunkStorage(root string) (*ChunkStorage, error) {
	abs, err := fp.Abs(root)
	if err != nil {
		return nil, err
	}

	err = os.MkdirAll(abs, 0750)
	if err != nil {
		return nil, err
	}

	return &ChunkStorage{
		root:     abs,
		maxSize:  constants.MAX_CHUNK_SIZE_BYTES,
		inflight: cmap.NewMap[string, struct{}](),
	}, nil
}

func (cs *ChunkStorage) Root() string {
	return cs.root
}

// GetChunkPath maps a chunk id to its sharded on-disk location. The
// first four characters split into two directory levels to keep
// directory entry counts bounded.
func (cs *ChunkStorage) GetChunkPath(chunkID string) string {
	return fp.Join(cs.root, "chunks", chunkID[0:2], chunkID[2:4], chunkID)
}

// WriteChunk streams body into a new chunk. Oversized bodies, id
// conflicts and exhausted disk space each surface as their own error so
// the API layer can map them to distinct outcomes.
func (cs *ChunkStorage) WriteChunk(chunkID string, body io.Reader) (int64, error) {
	if len(chunkID) < constants.MIN_CHUNK_ID_LENGTH {
		return 0, ErrInvalidChunkID
	}

	// Guards two concurrent uploads of the same id racing for the same
	// temp file.
	if ok := cs.inflight.SetIfAbsent(chunkID, struct{}{}); !ok {
		return 0, ErrChunkExists
	}
	defer cs.inflight.Delete(chunkID)

	path := cs.GetChunkPath(chunkID)
	_, err := os.Stat(path)
	if err == nil {
		return 0, ErrChunkExists
	}

	err = os.MkdirAll(fp.Dir(path), 0750)
	if err != nil {
		return 0, err
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		if isDiskFull(err) {
			return 0, ErrStorageExhausted
		}
		return 0, err
	}

	written, err := io.Copy(f, io.LimitReader(body, cs.maxSize+1))
	if err != nil {
		f.Close()
		os.Remove(tmpPath)

		if isDiskFull(err) {
			return 0, ErrStorageExhausted
		}

		return 0, err
	}

	if written > cs.maxSize {
		f.Close()
		os.Remove(tmpPath)
		return 0, ErrChunkTooLarge
	}

	// Force durability before the rename commits the chunk.
	err = f.Sync()
	if err != nil {
		f.Close()
		os.Remove(tmpPath)

		if isDiskFull(err) {
			return 0, ErrStorageExhausted
		}

		return 0, err
	}

	err = f.Close()
	if err != nil {
		os.Remove(tmpPath)
		return 0, err
	}

	return written, os.Rename(tmpPath, path)
}

// ReadChunk opens a committed chunk for streaming. The caller owns the
// returned reader and must close it.
func (cs *ChunkStorage) ReadChunk(chunkID string) (io.ReadCloser, error) {
	if len(chunkID) < constants.MIN_CHUNK_ID_LENGTH {
		return nil, ErrChunkNotFound
	}

	f, err := os.Open(cs.GetChunkPath(chunkID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrChunkNotFound
		}
		return nil, err
	}

	return f, nil
}

func (cs *ChunkStorage) DeleteChunk(chunkID string) error {
	if len(chunkID) < constants.MIN_CHUNK_ID_LENGTH {
		return ErrChunkNotFound
	}

	err := os.Remove(cs.GetChunkPath(chunkID))
	if os.IsNotExist(err) {
		return ErrChunkNotFound
	}

	return err
}

func isDiskFull(err error) bool {
	return errors.Is(err, syscall.ENOSPC)
}
