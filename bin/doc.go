// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package bin is the storage client for the remote JSON document.

The document lives in a single hosted bin (JSONBin v3 wire shape):

	GET  {base}/b/{id}/latest   -> {"record": <document>, "metadata": {...}}
	PUT  {base}/b/{id}          <- <document>

Both calls authenticate with the X-Master-Key header.

# Error Taxonomy

Every failure mode - network error, bad credentials, unexpected status,
malformed JSON - wraps the single sentinel ErrStorageUnavailable:

	doc, err := client.Load(ctx)
	if errors.Is(err, bin.ErrStorageUnavailable) {
		// degrade to local state
	}

There are no retries, no backoff, and no compare-and-swap: Save overwrites
the whole document and the last writer wins.
*/
package bin
