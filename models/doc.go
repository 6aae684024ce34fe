// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the voting document and API request/response types.

# The Document

Document is the single JSON blob holding all voting state, stored as-is in
the remote bin:

  - nominations: candidate name -> vote count
  - nominators: ordered list of names that have voted
  - write_in_candidates: user-added candidates
  - nomination_reasons: candidate name -> free-text reason

Invariant: every write-in candidate has a nominations entry. Normalize
re-establishes this after decoding untrusted JSON.

# Request Types

  - NominationRequest: nominator, candidate, reason, write_in

# Response Types

  - NominationResponse: candidate, votes, synced, warning
  - BallotResponse: document, roster, status, sync_status, deadline
  - ResultsResponse: standings, leaders, tie, stats
  - NominatorListResponse, RefreshResponse, ResetResponse
  - ErrorResponse: error, message

# Constants

Voting window status:

	StatusOpen   = "open"
	StatusClosed = "closed"

Sync status:

	SyncSynced   = "synced"
	SyncUnsynced = "unsynced"
*/
package models
