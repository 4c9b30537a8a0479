// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware holds the HTTP plumbing shared by every printvote route.

# Request IDs and Logging

WithLogging tags each response with X-Request-ID (the caller's value when
present, a fresh UUID otherwise) and emits two slog records per request:

	request started    request_id method path
	request completed  request_id method path status duration_ms

The router applies it to every route except /health.

# Errors

Failures are written as models.ErrorResponse. The code field carries a
registry kind such as "already_voted" so clients can branch without parsing
messages:

	middleware.CodedErrorResponse(w, http.StatusConflict, "already_voted", err.Error())

ParseJSONBody returns ErrEmptyBody for a missing body and rejects trailing
data after the first JSON value.

# CORS

CORS wraps the whole mux in main. It reflects the request Origin, allows the
voter and admin headers (X-Voter-ID, X-Authorization, X-Admin-Key), exposes
X-Request-ID and answers OPTIONS preflights with 204.

# Client IP

GetClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then
RemoteAddr. The address is only ever logged as an auth.HashIP digest.
*/
package middleware
