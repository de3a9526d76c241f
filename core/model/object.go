package model

// DataNode identifies a chunk storage node by its base URL.
type DataNode struct {
	BaseURL string
}

// ChunkMeta describes one chunk of an object. Index is the chunk's
// position within the object, assigned in upload order starting at 0.
type ChunkMeta struct {
	Index   int    `json:"index"`
	Size    int64  `json:"size"`
	ChunkID string `json:"chunk_id"`
	Node    string `json:"node"`
}

// ObjectMeta is the manifest describing how to reconstruct an object.
// Size always equals the sum of the chunk sizes.
type ObjectMeta struct {
	Size   int64       `json:"size"`
	ETag   string      `json:"etag"`
	Chunks []ChunkMeta `json:"chunks"`
}

// Clone returns a copy that shares no mutable state with the receiver.
func (o ObjectMeta) Clone() ObjectMeta {
	chunks := make([]ChunkMeta, len(o.Chunks))
	copy(chunks, o.Chunks)
	o.Chunks = chunks

	return o
}
