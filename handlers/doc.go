// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ballot API.

# Handler Groups

  - BallotHandler: document fetch, nomination submit, forced refresh
  - ResultsHandler: live standings, leaders, stats
  - AdminHandler: nominator list and reset (X-Admin-Code header)

Each handler holds the shared ballot.Manager and the server Config, injected
by the router.

# Response Conventions

Success responses are typed structs from models. Errors go through
middleware.ErrorResponse as {"error": ..., "message": ...}. A nomination
that mutated local state but failed to reach the remote store returns 202
with a warning instead of an error: the vote is kept, just not synced.
*/
package handlers
