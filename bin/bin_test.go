// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/danielhkuo/festival-ballot/models"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoad(t *testing.T) {
	doc := models.NewDocument()
	doc.Nominations["Bob"] = 2
	doc.Nominators = []string{"Alice", "Carol"}

	var gotKey, gotPath string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Master-Key")
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]interface{}{"record": doc})
	})

	client := NewClient(srv.URL, "abc123", "secret", time.Second)
	loaded, err := client.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if gotKey != "secret" {
		t.Errorf("Expected X-Master-Key 'secret', got %q", gotKey)
	}
	if gotPath != "/b/abc123/latest" {
		t.Errorf("Expected path /b/abc123/latest, got %q", gotPath)
	}
	if loaded.Nominations["Bob"] != 2 {
		t.Errorf("Expected Bob to have 2 votes, got %d", loaded.Nominations["Bob"])
	}
	if len(loaded.Nominators) != 2 {
		t.Errorf("Expected 2 nominators, got %d", len(loaded.Nominators))
	}
}

func TestLoad_NormalizesNilFields(t *testing.T) {
	// A freshly bootstrapped bin may hold {"record": {}}
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"record": {}}`))
	})

	client := NewClient(srv.URL, "abc123", "secret", time.Second)
	doc, err := client.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if doc.Nominations == nil || doc.Nominators == nil ||
		doc.WriteInCandidates == nil || doc.NominationReasons == nil {
		t.Error("Expected all document fields to be non-nil after Load")
	}
}

func TestLoad_StorageUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "down", http.StatusInternalServerError)
			},
		},
		{
			name: "bad credentials",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusUnauthorized)
			},
		},
		{
			name: "malformed JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"record": not-json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.handler)
			client := NewClient(srv.URL, "abc123", "secret", time.Second)

			_, err := client.Load(context.Background())
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !errors.Is(err, ErrStorageUnavailable) {
				t.Errorf("Expected ErrStorageUnavailable, got %v", err)
			}
		})
	}
}

func TestLoad_NetworkError(t *testing.T) {
	// Point at a server that is already closed
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, "abc123", "secret", time.Second)
	_, err := client.Load(context.Background())
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("Expected ErrStorageUnavailable, got %v", err)
	}
}

func TestSave(t *testing.T) {
	var gotMethod, gotPath, gotKey string
	var gotBody models.Document
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Master-Key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{"record": gotBody})
	})

	doc := models.NewDocument()
	doc.Nominations["Emily"] = 1
	doc.Nominators = []string{"Josh"}

	client := NewClient(srv.URL, "abc123", "secret", time.Second)
	if err := client.Save(context.Background(), doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Errorf("Expected PUT, got %s", gotMethod)
	}
	if gotPath != "/b/abc123" {
		t.Errorf("Expected path /b/abc123, got %q", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("Expected X-Master-Key 'secret', got %q", gotKey)
	}
	if gotBody.Nominations["Emily"] != 1 {
		t.Errorf("Expected saved doc to have Emily=1, got %v", gotBody.Nominations)
	}
}

func TestSave_StorageUnavailable(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})

	client := NewClient(srv.URL, "abc123", "secret", time.Second)
	err := client.Save(context.Background(), models.NewDocument())
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("Expected ErrStorageUnavailable, got %v", err)
	}
}

// TestSaveLoadRoundTrip verifies that saving back an unmodified loaded
// document leaves the remote document unchanged.
func TestSaveLoadRoundTrip(t *testing.T) {
	stored := models.NewDocument()
	stored.Nominations = map[string]int{"Bob": 1, "Drew": 3}
	stored.Nominators = []string{"Alice", "Carol", "Dan", "Eve"}
	stored.WriteInCandidates = []string{"Bob"}
	stored.NominationReasons = map[string]string{"Bob": "great fiddler"}

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]interface{}{"record": stored})
		case http.MethodPut:
			json.NewDecoder(r.Body).Decode(&stored)
			json.NewEncoder(w).Encode(map[string]interface{}{"record": stored})
		}
	})

	client := NewClient(srv.URL, "abc123", "secret", time.Second)

	before := stored.Clone()
	doc, err := client.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := client.Save(context.Background(), doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !reflect.DeepEqual(before, stored) {
		t.Errorf("Round trip changed the remote document:\nbefore: %+v\nafter:  %+v", before, stored)
	}
}
