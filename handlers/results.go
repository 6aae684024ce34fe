// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/festival-ballot/ballot"
	"github.com/danielhkuo/festival-ballot/cliparse"
	"github.com/danielhkuo/festival-ballot/middleware"
	"github.com/danielhkuo/festival-ballot/models"
)

type ResultsHandler struct {
	mgr *ballot.Manager
	cfg cliparse.Config
}

func NewResultsHandler(mgr *ballot.Manager, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{mgr: mgr, cfg: cfg}
}

// GetResults handles GET /ballot/results
// Live standings are visible while voting is open; they only become final
// once the window closes.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	standings, stats := h.mgr.Standings()
	leaders, top := h.mgr.Leaders()
	_, synced, _ := h.mgr.Snapshot()

	resp := models.ResultsResponse{
		Standings:  standings,
		Leaders:    leaders,
		TopVotes:   top,
		Tie:        len(leaders) > 1,
		Stats:      stats,
		Status:     h.mgr.Status(r.Context()),
		SyncStatus: syncLabel(synced),
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
