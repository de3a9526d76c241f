package chunker

import (
	"io"

	"github.com/pyropy/chunkstore/core/constants"
)

// Chunker splits an unbounded byte stream into chunks of at most
// maxSize bytes. Only the final chunk may be shorter. At most one
// chunk is buffered at any time, regardless of object size.
type Chunker struct {
	r       io.Reader
	maxSize int
	done    bool
}

func New(r io.Reader) *Chunker {
	return NewWithSize(r, constants.MAX_CHUNK_SIZE_BYTES)
}

func NewWithSize(r io.Reader, maxSize int) *Chunker {
	return &Chunker{
		r:       r,
		maxSize: maxSize,
	}
}

// Next returns the next chunk of the stream. io.EOF signals a clean end
// of the sequence; any other error comes from the underlying reader and
// terminates the sequence. A zero length input yields no chunks.
func (c *Chunker) Next() ([]byte, error) {
	if c.done {
		return nil, io.EOF
	}

	buf := make([]byte, c.maxSize)
	n, err := io.ReadFull(c.r, buf)

	switch err {
	case nil:
		return buf, nil
	case io.ErrUnexpectedEOF:
		// Remainder chunk, stream is exhausted.
		c.done = true
		return buf[:n], nil
	case io.EOF:
		c.done = true
		return nil, io.EOF
	default:
		c.done = true
		return nil, err
	}
}
