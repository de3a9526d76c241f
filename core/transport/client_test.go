package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeDataNode(t *testing.T, chunks map[string][]byte) *httptest.Server {
	t.Helper()

	r := mux.NewRouter()
	r.HandleFunc("/chunk/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := mux.Vars(req)["id"]

		switch req.Method {
		case http.MethodPut:
			body, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			chunks[id] = body
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			data, exists := chunks[id]
			if !exists {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write(data)
		case http.MethodDelete:
			if _, exists := chunks[id]; !exists {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			delete(chunks, id)
			w.WriteHeader(http.StatusNoContent)
		}
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv
}

func TestClientPutGetDelete(t *testing.T) {
	chunks := map[string][]byte{}
	node := newFakeDataNode(t, chunks)
	client := NewClient()
	ctx := context.Background()

	data := []byte("chunk payload")
	err := client.PutChunk(ctx, node.URL, "key-1234abcd", data)
	require.NoError(t, err)
	assert.Equal(t, data, chunks["key-1234abcd"])

	body, err := client.GetChunk(ctx, node.URL, "key-1234abcd")
	require.NoError(t, err)
	defer body.Close()

	got, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	err = client.DeleteChunk(ctx, node.URL, "key-1234abcd")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestClientGetChunkNotFound(t *testing.T) {
	node := newFakeDataNode(t, map[string][]byte{})
	client := NewClient()

	_, err := client.GetChunk(context.Background(), node.URL, "key-missing1")
	assert.ErrorIs(t, err, ErrChunkNotFound)
}

func TestClientDeleteChunkNotFound(t *testing.T) {
	node := newFakeDataNode(t, map[string][]byte{})
	client := NewClient()

	err := client.DeleteChunk(context.Background(), node.URL, "key-missing1")
	assert.ErrorIs(t, err, ErrChunkNotFound)
}

func TestClientRemoteErrorIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := NewClient()
	ctx := context.Background()

	err := client.PutChunk(ctx, srv.URL, "key-1234abcd", []byte("data"))
	assert.ErrorIs(t, err, ErrTransport)

	_, err = client.GetChunk(ctx, srv.URL, "key-1234abcd")
	assert.ErrorIs(t, err, ErrTransport)

	err = client.DeleteChunk(ctx, srv.URL, "key-1234abcd")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestClientNetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient()

	err := client.PutChunk(context.Background(), url, "key-1234abcd", []byte("data"))
	assert.ErrorIs(t, err, ErrTransport)
}
