package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	objectsUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_objects_uploaded_total",
		Help: "Number of objects fully uploaded.",
	})
	objectsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_objects_fetched_total",
		Help: "Number of object reconstructions started.",
	})
	objectsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_objects_deleted_total",
		Help: "Number of objects deleted.",
	})
	chunksUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_chunks_uploaded_total",
		Help: "Number of chunks uploaded to datanodes.",
	})
)
