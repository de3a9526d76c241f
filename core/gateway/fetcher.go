package gateway

import (
	"context"
	"io"

	"github.com/pyropy/chunkstore/core/constants"
	"github.com/pyropy/chunkstore/core/model"
)

// fragmentSize is how much of a chunk body one channel item carries.
const fragmentSize = 32 * 1024

// ChunkTransport is the client surface the gateway needs from the
// transport layer.
type ChunkTransport interface {
	PutChunk(ctx context.Context, node, chunkID string, data []byte) error
	GetChunk(ctx context.Context, node, chunkID string) (io.ReadCloser, error)
	DeleteChunk(ctx context.Context, node, chunkID string) error
}

// fragment is one bounded unit of chunk data handed from a fetch
// goroutine to the sequencer. A non-nil err is terminal for its chunk.
type fragment struct {
	data []byte
	err  error
}

// ChunkFetcher reconstructs object bytes from a manifest. Every chunk
// is fetched concurrently; each fetch feeds its own bounded channel and
// the sequencer drains those channels strictly in manifest order, so
// output is always in chunk index order no matter which fetch finishes
// first. The channel bound gives backpressure: a fetch running ahead of
// the consumer blocks once its channel fills, keeping memory at
// chunks x capacity x fragment size rather than object size.
type ChunkFetcher struct {
	transport ChunkTransport
}

func NewChunkFetcher(transport ChunkTransport) *ChunkFetcher {
	return &ChunkFetcher{
		transport: transport,
	}
}

// Fetch starts one fetch task per chunk and returns a reader yielding
// the object bytes in manifest order. Chunks must already be sorted by
// index. Closing the reader cancels fetches still in flight.
func (f *ChunkFetcher) Fetch(ctx context.Context, chunks []model.ChunkMeta) io.ReadCloser {
	ctx, cancel := context.WithCancel(ctx)

	channels := make([]chan fragment, len(chunks))
	for i, chunk := range chunks {
		ch := make(chan fragment, constants.FETCH_BUFFER_SIZE)
		channels[i] = ch

		go f.fetchChunk(ctx, chunk, ch)
	}

	return &orderedReader{
		ctx:      ctx,
		cancel:   cancel,
		channels: channels,
	}
}

func (f *ChunkFetcher) fetchChunk(ctx context.Context, chunk model.ChunkMeta, out chan<- fragment) {
	defer close(out)

	body, err := f.transport.GetChunk(ctx, chunk.Node, chunk.ChunkID)
	if err != nil {
		send(ctx, out, fragment{err: err})
		return
	}
	defer body.Close()

	for {
		buf := make([]byte, fragmentSize)
		n, err := body.Read(buf)
		if n > 0 {
			if !send(ctx, out, fragment{data: buf[:n]}) {
				return
			}
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			send(ctx, out, fragment{err: err})
			return
		}
	}
}

// send blocks until the sequencer drains the channel or the fetch is
// cancelled. Reports whether the fragment was delivered.
func send(ctx context.Context, out chan<- fragment, frag fragment) bool {
	select {
	case out <- frag:
		return true
	case <-ctx.Done():
		return false
	}
}

// orderedReader is the sequencer side of the fetch pipeline. It holds a
// cursor over the per-chunk channels and only ever receives from the
// channel at the cursor, advancing when that channel closes. Later
// channels filling up never move the cursor, so output cannot reorder.
type orderedReader struct {
	ctx      context.Context
	cancel   context.CancelFunc
	channels []chan fragment
	cursor   int
	pending  []byte
	err      error
}

func (r *orderedReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}

	for len(r.pending) == 0 {
		if r.cursor >= len(r.channels) {
			r.err = io.EOF
			return 0, io.EOF
		}

		frag, more := <-r.channels[r.cursor]
		if !more {
			// Fetch tasks also close their channel when cancelled, so a
			// closed channel only means a clean finish if the context is
			// still live.
			if err := r.ctx.Err(); err != nil {
				r.err = err
				return 0, err
			}

			r.cursor++
			continue
		}

		if frag.err != nil {
			// Terminal error at the cursor ends the whole stream; tasks
			// for later chunks get cancelled.
			r.err = frag.err
			r.cancel()
			return 0, frag.err
		}

		r.pending = frag.data
	}

	n := copy(p, r.pending)
	r.pending = r.pending[n:]

	return n, nil
}

func (r *orderedReader) Close() error {
	r.cancel()
	return nil
}
