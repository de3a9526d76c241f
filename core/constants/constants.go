package constants

const (
	// MAX_CHUNK_SIZE_BYTES caps a single chunk. Only the final chunk of
	// an object may be shorter.
	MAX_CHUNK_SIZE_BYTES = 64 * 1024 * 1024

	// MIN_CHUNK_ID_LENGTH is enforced by datanodes before touching disk.
	MIN_CHUNK_ID_LENGTH = 8

	// FETCH_BUFFER_SIZE bounds each per-chunk fragment channel during
	// parallel reconstruction.
	FETCH_BUFFER_SIZE = 8
)
