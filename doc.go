// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Festival Ballot API server.

Festival Ballot is a small nomination/voting service: everyone votes on who
gets sent to the festival campsite before dawn. All voting state lives in a
single JSON document hosted on a remote bin API (JSONBin.io-style), so votes
survive restarts and show up on every device.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	BIN_ID=... BIN_API_KEY=... ADMIN_CODE=... IP_HASH_SALT=... go run main.go

Or with flags:

	go run main.go -p 3318 -bin-id 68a1... -api-key $2a$10...

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - BIN_ID (-bin-id): remote bin document ID
  - BIN_API_KEY (-api-key): bin API key
  - ADMIN_CODE (-admin-code): code for the admin endpoints
  - IP_HASH_SALT (-ip-salt): salt for hashing client IPs in logs

Optional settings:

  - PORT (-p): server port (default: 3318)
  - BIN_URL (-bin-url): bin API root (default: https://api.jsonbin.io/v3)
  - CACHE_PATH (-cache): local snapshot sqlite file (default: ballot.db)
  - ROSTER (-roster): comma-separated predefined nominees
  - VOTING_DEADLINE (-deadline): RFC3339 voting deadline
  - REQUEST_TIMEOUT (-timeout): remote request timeout in seconds (default: 5)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - bin: storage client for the remote JSON document
  - ballot: in-memory state manager, sync status, voting window
  - cache: sqlite-backed last-known-good snapshot (fallback tier)
  - handlers: HTTP request handlers (ballot, results, admin)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: document and request/response types
  - auth: admin code validation, IP hashing
  - cliparse: configuration parsing

Consistency model: last writer wins. Concurrent writers from different
devices race on the remote document and the last save silently overwrites
interleaved updates. Storage failures are never fatal; the app degrades to
local state and reports itself as unsynced.

See package documentation for each component.
*/
package main
