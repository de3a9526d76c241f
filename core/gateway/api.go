package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pyropy/chunkstore/lib/logger"
)

var log, _ = logger.New("gateway")

type API struct {
	gateway *Gateway
}

func NewAPI(gateway *Gateway) *API {
	return &API{
		gateway: gateway,
	}
}

func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/object/{key}", a.PutObject).Methods(http.MethodPut)
	r.HandleFunc("/object/{key}", a.GetObject).Methods(http.MethodGet)
	r.HandleFunc("/object/{key}", a.HeadObject).Methods(http.MethodHead)
	r.HandleFunc("/object/{key}", a.DeleteObject).Methods(http.MethodDelete)
	r.HandleFunc("/objects", a.ListObjects).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

func (a *API) PutObject(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	log.Infow("api", "event", "PutObject", "key", key)

	meta, err := a.gateway.PutObject(r.Context(), key, r.Body)
	switch {
	case err == nil:
		w.Header().Set("ETag", meta.ETag)
		w.WriteHeader(http.StatusCreated)
	case errors.Is(err, ErrStreamRead):
		http.Error(w, "bad request body", http.StatusBadRequest)
	default:
		log.Errorw("api", "event", "PutObject", "key", key, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (a *API) GetObject(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	log.Infow("api", "event", "GetObject", "key", key)

	meta, body, err := a.gateway.GetObject(r.Context(), key)
	switch {
	case err == nil:
	case errors.Is(err, ErrObjectNotFound):
		w.WriteHeader(http.StatusNotFound)
		return
	default:
		log.Errorw("api", "event", "GetObject", "key", key, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Length", strconv.FormatInt(meta.Size, 10))
	w.Header().Set("ETag", meta.ETag)
	w.WriteHeader(http.StatusOK)

	_, err = io.Copy(w, body)
	if err != nil {
		// Headers are already out, the client sees a truncated body.
		log.Errorw("api", "event", "GetObject", "key", key, "error", err)
	}
}

func (a *API) HeadObject(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	meta, err := a.gateway.HeadObject(r.Context(), key)
	switch {
	case err == nil:
		w.Header().Set("Content-Length", strconv.FormatInt(meta.Size, 10))
		w.Header().Set("ETag", meta.ETag)
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, ErrObjectNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		log.Errorw("api", "event", "HeadObject", "key", key, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (a *API) DeleteObject(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	log.Infow("api", "event", "DeleteObject", "key", key)

	err := a.gateway.DeleteObject(r.Context(), key)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, ErrObjectNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		log.Errorw("api", "event", "DeleteObject", "key", key, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (a *API) ListObjects(w http.ResponseWriter, r *http.Request) {
	keys, err := a.gateway.ListObjects(r.Context())
	if err != nil {
		log.Errorw("api", "event", "ListObjects", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(keys)
}
