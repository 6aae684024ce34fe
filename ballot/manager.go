// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/looplab/fsm"

	"github.com/danielhkuo/festival-ballot/models"
)

var (
	// ErrVotingClosed means the deadline has passed.
	ErrVotingClosed = errors.New("voting is closed")
	// ErrAlreadyNominated means this nominator name already appears in the
	// document. Advisory only: storage enforces nothing, and a racing writer
	// on another device can still slip a duplicate in.
	ErrAlreadyNominated = errors.New("nominator has already cast a nomination")
)

// Store is the remote document store the manager syncs against.
type Store interface {
	Load(ctx context.Context) (models.Document, error)
	Save(ctx context.Context, doc models.Document) error
}

// SnapshotCache is the local fallback tier consulted when the remote load
// fails before any document has been held in memory.
type SnapshotCache interface {
	Put(doc models.Document) error
	Latest() (models.Document, time.Time, error)
}

// NominationResult reports what a successful Nominate did.
type NominationResult struct {
	Candidate string
	Votes     int
	Synced    bool
	SaveErr   error // non-nil when the vote is held locally only
}

// Manager holds the in-memory voting document between a load and the next
// save. Every vote-affecting action is a synchronous load-mutate-save round
// trip against the remote store; concurrent writers from other processes
// race and the last save wins. The mutex only keeps this process coherent.
type Manager struct {
	store  Store
	cache  SnapshotCache // may be nil
	window *fsm.FSM

	mu         sync.Mutex
	deadline   time.Time // zero means voting never closes
	doc        models.Document
	loaded     bool
	synced     bool
	lastSynced time.Time
}

// NewManager builds a manager around the given store. cache may be nil.
// A zero deadline leaves voting open indefinitely.
func NewManager(store Store, cache SnapshotCache, deadline time.Time) *Manager {
	m := &Manager{
		store:    store,
		cache:    cache,
		deadline: deadline,
		doc:      models.NewDocument(),
	}

	m.window = fsm.NewFSM(
		models.StatusOpen,
		fsm.Events{
			{Name: "close", Src: []string{models.StatusOpen}, Dst: models.StatusClosed},
			{Name: "reopen", Src: []string{models.StatusClosed}, Dst: models.StatusOpen},
		},
		fsm.Callbacks{
			"close": func(_ context.Context, _ *fsm.Event) {
				slog.Info("voting window closed", "deadline", m.deadline)
			},
			"reopen": func(_ context.Context, _ *fsm.Event) {
				slog.Info("voting window reopened")
			},
		},
	)

	return m
}

// syncWindowLocked fires the close event once the deadline passes.
func (m *Manager) syncWindowLocked(ctx context.Context) {
	if m.deadline.IsZero() {
		return
	}
	if !time.Now().Before(m.deadline) && m.window.Is(models.StatusOpen) {
		if err := m.window.Event(ctx, "close"); err != nil {
			slog.Error("failed to close voting window", "error", err)
		}
	}
}

// Status returns the current voting window state ("open" or "closed").
func (m *Manager) Status(ctx context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncWindowLocked(ctx)
	return m.window.Current()
}

// Deadline returns the current deadline (zero if none).
func (m *Manager) Deadline() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deadline
}

// Refresh re-fetches the document from the remote store. On failure the
// manager keeps whatever it has: the current in-memory document, else the
// last cached snapshot, else the empty default. The returned error is the
// load error, already wrapping bin.ErrStorageUnavailable; callers surface
// it as a warning, never as a fatal condition.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshLocked(ctx)
}

func (m *Manager) refreshLocked(ctx context.Context) error {
	doc, err := m.store.Load(ctx)
	if err != nil {
		slog.Warn("remote load failed, degrading to local state", "error", err)
		m.fallbackLocked()
		m.synced = false
		return err
	}

	m.doc = doc
	m.loaded = true
	m.synced = true
	m.lastSynced = time.Now()
	m.cachePut(doc)
	return nil
}

// fallbackLocked makes sure some document is in memory after a failed load.
func (m *Manager) fallbackLocked() {
	if m.loaded {
		return
	}
	if m.cache != nil {
		if cached, savedAt, err := m.cache.Latest(); err == nil {
			m.doc = cached
			m.loaded = true
			slog.Info("restored document from local snapshot", "saved_at", savedAt)
			return
		}
	}
	m.doc = models.NewDocument()
	m.loaded = true
}

func (m *Manager) cachePut(doc models.Document) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Put(doc); err != nil {
		slog.Warn("failed to write local snapshot", "error", err)
	}
}

// Nominate performs one vote-affecting round trip: load, mutate, save.
// The nominator is appended, the candidate's count incremented, a write-in
// registered, and a non-empty reason recorded (last reason wins). A save
// failure does not lose the vote: the mutation stays in local memory and
// the result carries the error as a warning.
func (m *Manager) Nominate(ctx context.Context, nominator, candidate, reason string, writeIn bool) (NominationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.syncWindowLocked(ctx)
	if m.window.Is(models.StatusClosed) {
		return NominationResult{}, ErrVotingClosed
	}

	// Best-effort re-fetch so the mutation applies to the freshest document;
	// on failure the current local document is mutated instead.
	_ = m.refreshLocked(ctx)

	if m.doc.HasNominator(nominator) {
		return NominationResult{}, ErrAlreadyNominated
	}

	m.doc.Nominators = append(m.doc.Nominators, nominator)
	if writeIn && !m.doc.HasWriteIn(candidate) {
		m.doc.WriteInCandidates = append(m.doc.WriteInCandidates, candidate)
	}
	if _, ok := m.doc.Nominations[candidate]; !ok {
		m.doc.Nominations[candidate] = 0
	}
	m.doc.Nominations[candidate]++
	if trimmed := strings.TrimSpace(reason); trimmed != "" {
		m.doc.NominationReasons[candidate] = trimmed
	}

	res := NominationResult{
		Candidate: candidate,
		Votes:     m.doc.Nominations[candidate],
	}

	if err := m.store.Save(ctx, m.doc); err != nil {
		slog.Warn("save failed, vote held locally", "error", err, "candidate", candidate)
		m.synced = false
		res.SaveErr = err
		m.cachePut(m.doc)
		return res, nil
	}

	m.synced = true
	m.lastSynced = time.Now()
	res.Synced = true
	m.cachePut(m.doc)

	slog.Info("nomination recorded", "nominator", nominator, "candidate", candidate, "votes", res.Votes)
	return res, nil
}

// Reset replaces the document with the empty bootstrap document and saves
// it. A non-nil newDeadline replaces the voting deadline, which reopens a
// closed window when the new deadline is absent or in the future; a nil
// newDeadline keeps the current one. Returns whether the reset reached the
// remote store.
func (m *Manager) Reset(ctx context.Context, newDeadline *time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.doc = models.NewDocument()
	m.loaded = true

	if newDeadline != nil {
		m.deadline = *newDeadline
	}

	m.syncWindowLocked(ctx)
	if m.window.Is(models.StatusClosed) && (m.deadline.IsZero() || time.Now().Before(m.deadline)) {
		if err := m.window.Event(ctx, "reopen"); err != nil {
			slog.Error("failed to reopen voting window", "error", err)
		}
	}

	m.cachePut(m.doc)

	if err := m.store.Save(ctx, m.doc); err != nil {
		slog.Warn("reset saved locally only", "error", err)
		m.synced = false
		return false, err
	}

	m.synced = true
	m.lastSynced = time.Now()
	return true, nil
}

// Snapshot returns a copy of the current document with sync information.
func (m *Manager) Snapshot() (models.Document, bool, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.Clone(), m.synced, m.lastSynced
}

// Nominators returns a copy of the nominator list in submission order.
func (m *Manager) Nominators() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.doc.Nominators...)
}

// Standings tallies the document into sorted results plus summary stats.
// Sorted by votes descending, name ascending for equal counts.
func (m *Manager) Standings() ([]models.Standing, models.BallotStats) {
	m.mu.Lock()
	defer m.mu.Unlock()

	standings := make([]models.Standing, 0, len(m.doc.Nominations))
	total := 0
	for name, votes := range m.doc.Nominations {
		standings = append(standings, models.Standing{
			Candidate: name,
			Votes:     votes,
			WriteIn:   m.doc.HasWriteIn(name),
			Reason:    m.doc.NominationReasons[name],
		})
		total += votes
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Votes != standings[j].Votes {
			return standings[i].Votes > standings[j].Votes
		}
		return standings[i].Candidate < standings[j].Candidate
	})

	unique := make(map[string]struct{}, len(m.doc.Nominators))
	for _, n := range m.doc.Nominators {
		unique[n] = struct{}{}
	}

	stats := models.BallotStats{
		TotalVotes: total,
		Nominators: len(unique),
		Candidates: len(m.doc.Nominations),
		WriteIns:   len(m.doc.WriteInCandidates),
	}

	return standings, stats
}

// Leaders returns the candidates tied for the highest vote count and that
// count. Candidates with zero votes never lead; an empty ballot has no
// leaders.
func (m *Manager) Leaders() ([]string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	top := 0
	for _, votes := range m.doc.Nominations {
		if votes > top {
			top = votes
		}
	}
	if top == 0 {
		return []string{}, 0
	}

	leaders := []string{}
	for name, votes := range m.doc.Nominations {
		if votes == top {
			leaders = append(leaders, name)
		}
	}
	sort.Strings(leaders)
	return leaders, top
}
