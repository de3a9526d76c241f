package datanode

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chunksWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "datanode_chunks_written_total",
		Help: "Number of chunks committed to disk.",
	})
	chunksServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "datanode_chunks_served_total",
		Help: "Number of chunk reads served.",
	})
	chunksDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "datanode_chunks_deleted_total",
		Help: "Number of chunks deleted.",
	})
	bytesWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "datanode_chunk_bytes_written_total",
		Help: "Total chunk bytes committed to disk.",
	})
)
