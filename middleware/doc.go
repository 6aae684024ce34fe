// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Request Logging

WithLogging wraps a handler with start/completion log lines, tagged with a
short per-request correlation id and the response status:

	mux.HandleFunc("GET /ballot", middleware.WithLogging(handler.GetBallot))

# JSON Helpers

	JSONResponse(w, status, data)    - encode a JSON response
	ErrorResponse(w, status, msg)    - encode {"error": ..., "message": ...}
	ParseJSONBody(r, &target)        - decode a request body

# CORS

CORS wraps the whole mux and answers preflight requests, allowing the
Content-Type and X-Admin-Code headers.

# Client IP

GetClientIP checks X-Forwarded-For and X-Real-IP before falling back to
RemoteAddr. The address is only ever logged as a salted hash (auth.HashIP).
*/
package middleware
