// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/festival-ballot/auth"
	"github.com/danielhkuo/festival-ballot/ballot"
	"github.com/danielhkuo/festival-ballot/cliparse"
	"github.com/danielhkuo/festival-ballot/middleware"
	"github.com/danielhkuo/festival-ballot/models"
)

type BallotHandler struct {
	mgr *ballot.Manager
	cfg cliparse.Config
}

func NewBallotHandler(mgr *ballot.Manager, cfg cliparse.Config) *BallotHandler {
	return &BallotHandler{mgr: mgr, cfg: cfg}
}

// GetBallot handles GET /ballot
// Returns the current document, the nominee roster, and sync/window status.
func (h *BallotHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	doc, synced, lastSynced := h.mgr.Snapshot()

	resp := models.BallotResponse{
		Document:   doc,
		Roster:     mergeRoster(h.cfg.Roster, doc.WriteInCandidates),
		Status:     h.mgr.Status(r.Context()),
		SyncStatus: syncLabel(synced),
	}
	if !lastSynced.IsZero() {
		resp.LastSynced = humanize.Time(lastSynced)
	}
	if d := h.mgr.Deadline(); !d.IsZero() {
		resp.Deadline = &d
		resp.ClosesIn = humanize.Time(d)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Nominate handles POST /ballot/nominations
func (h *BallotHandler) Nominate(w http.ResponseWriter, r *http.Request) {
	var req models.NominationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Nominator = strings.TrimSpace(req.Nominator)
	req.Candidate = strings.TrimSpace(req.Candidate)

	if req.Nominator == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nominator is required")
		return
	}
	if req.Candidate == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate is required")
		return
	}
	if len(req.Nominator) > 100 || len(req.Candidate) > 100 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "names must be at most 100 characters")
		return
	}

	res, err := h.mgr.Nominate(r.Context(), req.Nominator, req.Candidate, req.Reason, req.WriteIn)
	if errors.Is(err, ballot.ErrVotingClosed) {
		middleware.ErrorResponse(w, http.StatusConflict, "Voting has closed")
		return
	}
	if errors.Is(err, ballot.ErrAlreadyNominated) {
		middleware.ErrorResponse(w, http.StatusConflict, "You've already cast your nomination")
		return
	}
	if err != nil {
		slog.Error("nomination failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record nomination")
		return
	}

	// Correlate per device in logs without storing the address
	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
	slog.Info("nomination accepted",
		"candidate", res.Candidate,
		"write_in", req.WriteIn,
		"synced", res.Synced,
		"ip_hash", ipHash,
	)

	resp := models.NominationResponse{
		Candidate: res.Candidate,
		Votes:     res.Votes,
		Synced:    res.Synced,
	}

	if res.SaveErr != nil {
		// Vote is recorded locally; the save will catch up on a later action
		resp.Warning = "vote recorded locally but not synced to remote storage"
		middleware.JSONResponse(w, http.StatusAccepted, resp)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// Refresh handles POST /ballot/refresh
// Forces a re-fetch from the remote store (the "see latest votes" action).
func (h *BallotHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	err := h.mgr.Refresh(r.Context())

	resp := models.RefreshResponse{SyncStatus: models.SyncSynced}
	if err != nil {
		resp.SyncStatus = models.SyncUnsynced
		resp.Warning = "remote storage unavailable, showing local state"
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

func syncLabel(synced bool) string {
	if synced {
		return models.SyncSynced
	}
	return models.SyncUnsynced
}

// mergeRoster appends write-ins to the predefined nominees, skipping names
// already on the roster.
func mergeRoster(roster, writeIns []string) []string {
	out := append([]string{}, roster...)
	seen := make(map[string]struct{}, len(roster))
	for _, name := range roster {
		seen[name] = struct{}{}
	}
	for _, name := range writeIns {
		if _, ok := seen[name]; !ok {
			out = append(out, name)
			seen[name] = struct{}{}
		}
	}
	return out
}
