package datanode

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pyropy/chunkstore/lib/logger"
)

var log, _ = logger.New("datanode")

type API struct {
	storage *ChunkStorage
}

func NewAPI(storage *ChunkStorage) *API {
	return &API{
		storage: storage,
	}
}

func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/chunk/{id}", a.PutChunk).Methods(http.MethodPut)
	r.HandleFunc("/chunk/{id}", a.GetChunk).Methods(http.MethodGet)
	r.HandleFunc("/chunk/{id}", a.DeleteChunk).Methods(http.MethodDelete)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

func (a *API) PutChunk(w http.ResponseWriter, r *http.Request) {
	chunkID := mux.Vars(r)["id"]
	log.Infow("api", "event", "PutChunk", "chunkID", chunkID)

	written, err := a.storage.WriteChunk(chunkID, r.Body)
	switch {
	case err == nil:
		chunksWritten.Inc()
		bytesWritten.Add(float64(written))
		w.WriteHeader(http.StatusCreated)
	case errors.Is(err, ErrInvalidChunkID):
		http.Error(w, "invalid chunk id", http.StatusBadRequest)
	case errors.Is(err, ErrChunkExists):
		w.WriteHeader(http.StatusConflict)
	case errors.Is(err, ErrChunkTooLarge):
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	case errors.Is(err, ErrStorageExhausted):
		w.WriteHeader(http.StatusInsufficientStorage)
	default:
		log.Errorw("api", "event", "PutChunk", "chunkID", chunkID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (a *API) GetChunk(w http.ResponseWriter, r *http.Request) {
	chunkID := mux.Vars(r)["id"]
	log.Infow("api", "event", "GetChunk", "chunkID", chunkID)

	chunk, err := a.storage.ReadChunk(chunkID)
	switch {
	case err == nil:
	case errors.Is(err, ErrChunkNotFound):
		w.WriteHeader(http.StatusNotFound)
		return
	default:
		log.Errorw("api", "event", "GetChunk", "chunkID", chunkID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer chunk.Close()

	chunksServed.Inc()

	_, err = io.Copy(w, chunk)
	if err != nil {
		// Response is already committed, nothing left to signal.
		log.Errorw("api", "event", "GetChunk", "chunkID", chunkID, "error", err)
	}
}

func (a *API) DeleteChunk(w http.ResponseWriter, r *http.Request) {
	chunkID := mux.Vars(r)["id"]
	log.Infow("api", "event", "DeleteChunk", "chunkID", chunkID)

	err := a.storage.DeleteChunk(chunkID)
	switch {
	case err == nil:
		chunksDeleted.Inc()
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, ErrChunkNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		log.Errorw("api", "event", "DeleteChunk", "chunkID", chunkID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
