package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

// ETag accumulates a SHA-256 digest over bytes streamed through it.
// It implements io.Writer so it can sit on a TeeReader.
type ETag struct {
	h hash.Hash
}

func NewETag() *ETag {
	return &ETag{h: sha256.New()}
}

func (e *ETag) Write(p []byte) (int, error) {
	return e.h.Write(p)
}

// Sum returns the hex encoded digest of everything written so far.
func (e *ETag) Sum() string {
	return hex.EncodeToString(e.h.Sum(nil))
}
