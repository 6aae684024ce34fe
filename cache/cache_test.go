// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/danielhkuo/festival-ballot/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "ballot.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutLatest(t *testing.T) {
	store := openTestStore(t)

	doc := models.NewDocument()
	doc.Nominations = map[string]int{"Bob": 1}
	doc.Nominators = []string{"Alice"}
	doc.WriteInCandidates = []string{"Bob"}
	doc.NominationReasons = map[string]string{"Bob": "great fiddler"}

	if err := store.Put(doc); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, savedAt, err := store.Latest()
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if savedAt.IsZero() {
		t.Error("Expected a saved_at timestamp")
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("Snapshot mismatch:\ngot:  %+v\nwant: %+v", got, doc)
	}
}

func TestLatest_Empty(t *testing.T) {
	store := openTestStore(t)

	_, _, err := store.Latest()
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Expected ErrNoSnapshot, got %v", err)
	}
}

func TestPut_KeepsOnlyLatest(t *testing.T) {
	store := openTestStore(t)

	first := models.NewDocument()
	first.Nominations["Drew"] = 1
	if err := store.Put(first); err != nil {
		t.Fatal(err)
	}

	second := models.NewDocument()
	second.Nominations["Drew"] = 2
	if err := store.Put(second); err != nil {
		t.Fatal(err)
	}

	got, _, err := store.Latest()
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if got.Nominations["Drew"] != 2 {
		t.Errorf("Expected the newer snapshot, got %+v", got)
	}

	var count int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM snapshot`).Scan(&count); err != nil {
		t.Fatalf("Failed to count snapshots: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected older snapshots pruned, found %d rows", count)
	}
}

func TestOpen_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ballot.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	doc := models.NewDocument()
	doc.Nominators = []string{"Alice"}
	if err := store.Put(doc); err != nil {
		t.Fatal(err)
	}
	store.Close()

	// Reopen the same file, the snapshot is still there
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	got, _, err := reopened.Latest()
	if err != nil {
		t.Fatalf("Latest failed after reopen: %v", err)
	}
	if len(got.Nominators) != 1 || got.Nominators[0] != "Alice" {
		t.Errorf("Expected snapshot to survive reopen, got %+v", got)
	}
}
