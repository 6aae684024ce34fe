// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p           Server port
	-bin-url     Remote bin API root
	-bin-id      Remote bin document ID
	-api-key     Bin API key (prefer env)
	-admin-code  Admin code (prefer env)
	-ip-salt     IP hash salt (prefer env)
	-cache       Local snapshot cache path
	-roster      Comma-separated predefined nominees
	-deadline    Voting deadline (RFC3339)
	-timeout     Remote request timeout in seconds

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	BIN_URL         → -bin-url
	BIN_ID          → -bin-id
	BIN_API_KEY     → -api-key
	ADMIN_CODE      → -admin-code
	IP_HASH_SALT    → -ip-salt
	CACHE_PATH      → -cache
	ROSTER          → -roster
	VOTING_DEADLINE → -deadline
	REQUEST_TIMEOUT → -timeout

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - BIN_ID must be provided
  - BIN_API_KEY must be provided
  - ADMIN_CODE must be provided
  - IP_HASH_SALT must be provided

VOTING_DEADLINE must parse as RFC3339 when set; an absent deadline means
voting never closes.
*/
package cliparse
