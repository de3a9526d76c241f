package datanode

import (
	"bytes"
	"errors"
	"io"
	"os"
	fp "path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *ChunkStorage {
	t.Helper()

	cs, err := NewChunkStorage(t.TempDir())
	require.NoError(t, err)

	return cs
}

func TestGetChunkPathSharding(t *testing.T) {
	cs := newTestStorage(t)

	path := cs.GetChunkPath("abcd1234-rest")
	want := fp.Join(cs.Root(), "chunks", "ab", "cd", "abcd1234-rest")
	assert.Equal(t, want, path)
}

func TestWriteChunkRoundTrip(t *testing.T) {
	cs := newTestStorage(t)
	data := []byte("some chunk bytes")

	written, err := cs.WriteChunk("key-1234abcd", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), written)

	chunk, err := cs.ReadChunk("key-1234abcd")
	require.NoError(t, err)
	defer chunk.Close()

	got, err := io.ReadAll(chunk)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// No temp file left behind after commit.
	_, err = os.Stat(cs.GetChunkPath("key-1234abcd") + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteChunkEmptyBody(t *testing.T) {
	cs := newTestStorage(t)

	written, err := cs.WriteChunk("key-1234abcd", bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Zero(t, written)

	chunk, err := cs.ReadChunk("key-1234abcd")
	require.NoError(t, err)
	defer chunk.Close()

	got, err := io.ReadAll(chunk)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteChunkRejectsShortID(t *testing.T) {
	cs := newTestStorage(t)

	_, err := cs.WriteChunk("short", bytes.NewReader([]byte("data")))
	assert.ErrorIs(t, err, ErrInvalidChunkID)
}

func TestWriteChunkConflict(t *testing.T) {
	cs := newTestStorage(t)
	first := []byte("first payload")

	_, err := cs.WriteChunk("key-1234abcd", bytes.NewReader(first))
	require.NoError(t, err)

	_, err = cs.WriteChunk("key-1234abcd", bytes.NewReader([]byte("second payload")))
	assert.ErrorIs(t, err, ErrChunkExists)

	// Stored bytes still match the first write, chunks are immutable.
	chunk, err := cs.ReadChunk("key-1234abcd")
	require.NoError(t, err)
	defer chunk.Close()

	got, err := io.ReadAll(chunk)
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestWriteChunkTooLarge(t *testing.T) {
	cs := newTestStorage(t)
	cs.maxSize = 16

	_, err := cs.WriteChunk("key-1234abcd", bytes.NewReader(make([]byte, 17)))
	assert.ErrorIs(t, err, ErrChunkTooLarge)

	// Neither the temp nor the final file survives the abort.
	_, err = os.Stat(cs.GetChunkPath("key-1234abcd") + ".tmp")
	assert.True(t, os.IsNotExist(err))
	_, err = cs.ReadChunk("key-1234abcd")
	assert.ErrorIs(t, err, ErrChunkNotFound)
}

func TestWriteChunkExactMaxSize(t *testing.T) {
	cs := newTestStorage(t)
	cs.maxSize = 16

	written, err := cs.WriteChunk("key-1234abcd", bytes.NewReader(make([]byte, 16)))
	require.NoError(t, err)
	assert.Equal(t, int64(16), written)
}

func TestWriteChunkBodyErrorCleansUp(t *testing.T) {
	cs := newTestStorage(t)
	errBroken := errors.New("connection reset")
	body := io.MultiReader(bytes.NewReader([]byte("partial")), &failingReader{err: errBroken})

	_, err := cs.WriteChunk("key-1234abcd", body)
	assert.ErrorIs(t, err, errBroken)

	_, err = os.Stat(cs.GetChunkPath("key-1234abcd") + ".tmp")
	assert.True(t, os.IsNotExist(err))
	_, err = cs.ReadChunk("key-1234abcd")
	assert.ErrorIs(t, err, ErrChunkNotFound)
}

func TestWriteChunkDiskFull(t *testing.T) {
	cs := newTestStorage(t)
	body := io.MultiReader(
		bytes.NewReader([]byte("partial")),
		&failingReader{err: &os.PathError{Op: "write", Err: syscall.ENOSPC}},
	)

	_, err := cs.WriteChunk("key-1234abcd", body)
	assert.ErrorIs(t, err, ErrStorageExhausted)

	_, err = os.Stat(cs.GetChunkPath("key-1234abcd") + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteChunk(t *testing.T) {
	cs := newTestStorage(t)

	_, err := cs.WriteChunk("key-1234abcd", bytes.NewReader([]byte("data")))
	require.NoError(t, err)

	err = cs.DeleteChunk("key-1234abcd")
	require.NoError(t, err)

	_, err = cs.ReadChunk("key-1234abcd")
	assert.ErrorIs(t, err, ErrChunkNotFound)

	err = cs.DeleteChunk("key-1234abcd")
	assert.ErrorIs(t, err, ErrChunkNotFound)
}

func TestReadChunkNotFound(t *testing.T) {
	cs := newTestStorage(t)

	_, err := cs.ReadChunk("key-missing1")
	assert.ErrorIs(t, err, ErrChunkNotFound)
}

func TestIsDiskFull(t *testing.T) {
	assert.True(t, isDiskFull(&os.PathError{Op: "write", Err: syscall.ENOSPC}))
	assert.False(t, isDiskFull(&os.PathError{Op: "write", Err: syscall.EACCES}))
	assert.False(t, isDiskFull(io.ErrUnexpectedEOF))
}

type failingReader struct {
	err error
}

func (r *failingReader) Read(p []byte) (int, error) {
	return 0, r.err
}
