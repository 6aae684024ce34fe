// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballot holds the application state between a load and the next save.

The Manager keeps the in-memory voting document, performs the synchronous
load-mutate-save round trip for every vote-affecting action, and tracks
whether local state matches the remote store ("synced"/"unsynced").

# Fallback Order

When a remote load fails the manager degrades instead of erroring out:

 1. the document already held in memory, if any
 2. the last snapshot in the local cache, if configured
 3. the empty bootstrap document

# Voting Window

An optional deadline drives a two-state machine (open -> closed). Once the
deadline passes, Nominate returns ErrVotingClosed. An admin reset may carry
a new deadline; a reset that clears or extends the deadline reopens the
window.

# Consistency

The mutex only serializes handlers inside this process. Writers on other
devices race on the remote document; the last save wins and the duplicate
nominator check is advisory only.
*/
package ballot
