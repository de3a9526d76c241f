package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 30 * time.Second

var (
	ErrChunkNotFound = errors.New("chunk not found")
	ErrTransport     = errors.New("chunk transport failed")
)

// Client performs chunk operations against datanode HTTP APIs. A non-2xx
// response and a network level failure both surface as ErrTransport; the
// orchestration layer aborts the enclosing object operation either way
// and no retries happen here.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func chunkURL(node, chunkID string) string {
	return fmt.Sprintf("%s/chunk/%s", node, chunkID)
}

func (c *Client) PutChunk(ctx context.Context, node, chunkID string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, chunkURL(node, chunkID), bytes.NewReader(data))
	if err != nil {
		return err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer res.Body.Close()

	io.Copy(io.Discard, res.Body)

	if !isSuccess(res.StatusCode) {
		return fmt.Errorf("%w: datanode returned %s", ErrTransport, res.Status)
	}

	return nil
}

// GetChunk streams chunk bytes back from a node. The caller owns the
// returned body and must close it.
func (c *Client) GetChunk(ctx context.Context, node, chunkID string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, chunkURL(node, chunkID), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if res.StatusCode == http.StatusNotFound {
		res.Body.Close()
		return nil, ErrChunkNotFound
	}

	if !isSuccess(res.StatusCode) {
		res.Body.Close()
		return nil, fmt.Errorf("%w: datanode returned %s", ErrTransport, res.Status)
	}

	return res.Body, nil
}

func (c *Client) DeleteChunk(ctx context.Context, node, chunkID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, chunkURL(node, chunkID), nil)
	if err != nil {
		return err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer res.Body.Close()

	io.Copy(io.Discard, res.Body)

	if res.StatusCode == http.StatusNotFound {
		return ErrChunkNotFound
	}

	if !isSuccess(res.StatusCode) {
		return fmt.Errorf("%w: datanode returned %s", ErrTransport, res.Status)
	}

	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
