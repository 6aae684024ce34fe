// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Festival Ballot API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(mgr, cfg)

# Endpoints

Health:

	GET /health

Ballot (public):

	GET  /ballot             - Document, roster, sync and window status
	POST /ballot/nominations - Cast a nomination
	POST /ballot/refresh     - Force a re-fetch from the remote store

Results (public):

	GET /ballot/results - Live standings, leaders, stats

Admin (requires X-Admin-Code):

	GET  /ballot/nominators - Full nominator list
	POST /ballot/reset      - Reset the document to the empty default

# Handler Initialization

The router creates handler instances with dependency injection:

	ballotHandler := handlers.NewBallotHandler(mgr, cfg)
	resultsHandler := handlers.NewResultsHandler(mgr, cfg)
	adminHandler := handlers.NewAdminHandler(mgr, cfg)

All handlers receive the shared state manager and configuration.
*/
package router
