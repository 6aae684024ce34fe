// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/festival-ballot/ballot"
	"github.com/danielhkuo/festival-ballot/bin"
	"github.com/danielhkuo/festival-ballot/cliparse"
	"github.com/danielhkuo/festival-ballot/models"
)

// TestBinID and TestAPIKey are the credentials every fake bin accepts.
const (
	TestBinID  = "test-bin"
	TestAPIKey = "test-key"
)

// FakeBin is an in-memory stand-in for the remote bin API. It speaks the
// same wire shape as the real service: GET /b/{id}/latest wraps the
// document in {"record": ...}, PUT /b/{id} overwrites it.
type FakeBin struct {
	mu  sync.Mutex
	doc models.Document

	// FailLoads / FailSaves make the corresponding calls return 500.
	FailLoads bool
	FailSaves bool

	// Loads / Saves count completed (non-failed) calls.
	Loads int
	Saves int

	srv *httptest.Server
}

// NewFakeBin starts a fake bin serving an empty bootstrap document.
// The server is shut down automatically when the test finishes.
func NewFakeBin(t *testing.T) *FakeBin {
	t.Helper()

	fb := &FakeBin{doc: models.NewDocument()}
	fb.srv = httptest.NewServer(http.HandlerFunc(fb.handle))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *FakeBin) handle(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if r.Header.Get("X-Master-Key") != TestAPIKey {
		http.Error(w, "bad key", http.StatusUnauthorized)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/b/"+TestBinID+"/latest":
		if fb.FailLoads {
			http.Error(w, "bin down", http.StatusInternalServerError)
			return
		}
		fb.Loads++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"record": fb.doc,
			"metadata": map[string]interface{}{
				"id": TestBinID,
			},
		})

	case r.Method == http.MethodPut && r.URL.Path == "/b/"+TestBinID:
		if fb.FailSaves {
			http.Error(w, "bin down", http.StatusInternalServerError)
			return
		}
		var doc models.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		doc.Normalize()
		fb.doc = doc
		fb.Saves++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"record": fb.doc})

	default:
		http.NotFound(w, r)
	}
}

// URL returns the fake bin's base URL.
func (fb *FakeBin) URL() string {
	return fb.srv.URL
}

// Document returns a copy of the currently stored document.
func (fb *FakeBin) Document() models.Document {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.doc.Clone()
}

// SetDocument replaces the stored document.
func (fb *FakeBin) SetDocument(doc models.Document) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	doc.Normalize()
	fb.doc = doc
}

// SetFailing toggles both load and save failures.
func (fb *FakeBin) SetFailing(failing bool) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.FailLoads = failing
	fb.FailSaves = failing
}

// NewTestClient returns a storage client pointed at the fake bin.
func NewTestClient(fb *FakeBin) *bin.Client {
	return bin.NewClient(fb.URL(), TestBinID, TestAPIKey, time.Second)
}

// NewTestManager returns a manager backed by the fake bin, with no local
// snapshot cache and no deadline.
func NewTestManager(t *testing.T, fb *FakeBin) *ballot.Manager {
	t.Helper()
	return ballot.NewManager(NewTestClient(fb), nil, time.Time{})
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(fb *FakeBin) cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		BinURL:         fb.URL(),
		BinID:          TestBinID,
		APIKey:         TestAPIKey,
		AdminCode:      "1320",
		IPHashSalt:     "test-ip-salt",
		CachePath:      "",
		Roster:         []string{"Bowe", "Drew", "Derek"},
		RequestTimeout: time.Second,
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
