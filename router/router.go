// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/festival-ballot/ballot"
	"github.com/danielhkuo/festival-ballot/cliparse"
	"github.com/danielhkuo/festival-ballot/handlers"
	"github.com/danielhkuo/festival-ballot/middleware"
)

func NewRouter(mgr *ballot.Manager, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	ballotHandler := handlers.NewBallotHandler(mgr, cfg)
	resultsHandler := handlers.NewResultsHandler(mgr, cfg)
	adminHandler := handlers.NewAdminHandler(mgr, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Ballot document and voting (public)
	mux.HandleFunc("GET /ballot", middleware.WithLogging(ballotHandler.GetBallot))
	mux.HandleFunc("POST /ballot/nominations", middleware.WithLogging(ballotHandler.Nominate))
	mux.HandleFunc("POST /ballot/refresh", middleware.WithLogging(ballotHandler.Refresh))

	// Live results (public)
	mux.HandleFunc("GET /ballot/results", middleware.WithLogging(resultsHandler.GetResults))

	// Admin operations (X-Admin-Code header)
	mux.HandleFunc("GET /ballot/nominators", middleware.WithLogging(adminHandler.ListNominators))
	mux.HandleFunc("POST /ballot/reset", middleware.WithLogging(adminHandler.Reset))

	// Root endpoint; {$} keeps this from becoming a catch-all subtree
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("festival-ballot API v1"))
	})

	return mux
}
