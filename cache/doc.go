// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package cache stores the last known document in a local sqlite file so
// the fallback tier survives restarts. The remote bin stays authoritative;
// the cache is only read when a load fails before any document is held in
// memory.
package cache
