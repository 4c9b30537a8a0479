// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/printvote/middleware"
	"github.com/danielhkuo/printvote/registry"
)

// Error kind codes produced by the HTTP layer itself
const (
	KindInvalidJSON     = "invalid_json"
	KindMissingAdminKey = "missing_admin_key"
	KindInvalidAdminKey = "invalid_admin_key"
)

// statusFor maps a registry error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, registry.ErrMissingField),
		errors.Is(err, registry.ErrUnderage),
		errors.Is(err, registry.ErrInvalidAge):
		return http.StatusBadRequest
	case errors.Is(err, registry.ErrUnknownVoter),
		errors.Is(err, registry.ErrUnknownCandidate):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrDuplicateVoter),
		errors.Is(err, registry.ErrAlreadyVoted):
		return http.StatusConflict
	case errors.Is(err, registry.ErrCredentialMismatch),
		errors.Is(err, registry.ErrNotAuthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeRegistryError writes err as a coded JSON error. Store faults are
// logged and hidden behind a generic message.
func writeRegistryError(w http.ResponseWriter, err error, op string, attrs ...any) {
	status := statusFor(err)
	kind := registry.Kind(err)

	if status == http.StatusInternalServerError {
		slog.Error(op+" failed", append(attrs, "error", err)...)
		middleware.CodedErrorResponse(w, status, kind, "Registry error")
		return
	}

	slog.Info(op+" rejected", append(attrs, "reason", kind)...)
	middleware.CodedErrorResponse(w, status, kind, err.Error())
}

// writeInvalidJSON answers a body that could not be decoded
func writeInvalidJSON(w http.ResponseWriter) {
	middleware.CodedErrorResponse(w, http.StatusBadRequest, KindInvalidJSON, "Invalid JSON")
}
