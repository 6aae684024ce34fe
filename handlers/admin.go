// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/festival-ballot/auth"
	"github.com/danielhkuo/festival-ballot/ballot"
	"github.com/danielhkuo/festival-ballot/cliparse"
	"github.com/danielhkuo/festival-ballot/middleware"
	"github.com/danielhkuo/festival-ballot/models"
)

type AdminHandler struct {
	mgr *ballot.Manager
	cfg cliparse.Config
}

func NewAdminHandler(mgr *ballot.Manager, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{mgr: mgr, cfg: cfg}
}

// requireAdmin validates the X-Admin-Code header. Writes the error response
// itself and returns false when the code is missing or wrong.
func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	code := r.Header.Get("X-Admin-Code")
	if err := auth.ValidateAdminCode(code, h.cfg.AdminCode); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid code")
		return false
	}
	return true
}

// ListNominators handles GET /ballot/nominators
// Admin only: the nominator list is never shown to regular voters.
func (h *AdminHandler) ListNominators(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	nominators := h.mgr.Nominators()
	middleware.JSONResponse(w, http.StatusOK, models.NominatorListResponse{
		Nominators: nominators,
		Count:      len(nominators),
	})
}

// Reset handles POST /ballot/reset
// Admin only: replaces the document with the empty bootstrap document. An
// optional body {"deadline": ...} sets a new voting deadline, which
// reopens a closed window.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.ResetRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && err != io.EOF {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	synced, err := h.mgr.Reset(r.Context(), req.Deadline)

	resp := models.ResetResponse{
		Message: "Data reset successfully",
		Synced:  synced,
	}
	if err != nil {
		resp.Warning = "reset not synced to remote storage"
	}

	slog.Info("ballot reset", "synced", synced)
	middleware.JSONResponse(w, http.StatusOK, resp)
}
