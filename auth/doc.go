// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package auth validates the admin code and hashes client IPs for logging.
//
// ValidateAdminCode uses a constant-time compare against the configured
// code. HashIP produces a short salted HMAC of an address so logs can
// correlate requests per device without storing the address itself.
package auth
