// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/danielhkuo/festival-ballot/models"
)

// ErrStorageUnavailable is the single error condition the storage layer
// surfaces: network failure, bad credentials, unexpected status, or a
// malformed document. Callers degrade to local state, they never abort.
var ErrStorageUnavailable = errors.New("remote storage unavailable")

// Client reads and overwrites a single JSON document hosted on a
// JSONBin-style bin API. There are no partial updates and no
// compare-and-swap: Save sends the whole document and the last writer wins.
type Client struct {
	baseURL string
	binID   string
	apiKey  string
	httpc   *http.Client
}

// NewClient builds a client for one bin. baseURL is the API root
// (for JSONBin v3: https://api.jsonbin.io/v3).
func NewClient(baseURL, binID, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		binID:   binID,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// envelope is the bin API read response: the document lives under "record".
type envelope struct {
	Record models.Document `json:"record"`
}

// Load issues an authenticated GET of the latest document version.
func (c *Client) Load(ctx context.Context) (models.Document, error) {
	url := c.baseURL + "/b/" + c.binID + "/latest"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: build load request: %v", ErrStorageUnavailable, err)
	}
	c.setHeaders(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: load: %v", ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Document{}, fmt.Errorf("%w: load returned status %d", ErrStorageUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return models.Document{}, fmt.Errorf("%w: decode document: %v", ErrStorageUnavailable, err)
	}

	doc := env.Record
	doc.Normalize()
	return doc, nil
}

// Save overwrites the remote document with the full new content.
func (c *Client) Save(ctx context.Context, doc models.Document) error {
	url := c.baseURL + "/b/" + c.binID

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode document: %v", ErrStorageUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build save request: %v", ErrStorageUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: save: %v", ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: save returned status %d", ErrStorageUnavailable, resp.StatusCode)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-Master-Key", c.apiKey)
	}
}
