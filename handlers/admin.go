// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/printvote/auth"
	"github.com/danielhkuo/printvote/cliparse"
	"github.com/danielhkuo/printvote/middleware"
	"github.com/danielhkuo/printvote/models"
	"github.com/danielhkuo/printvote/registry"
)

// AdminKeyHeader carries the admin key on admin routes
const AdminKeyHeader = "X-Admin-Key"

type AdminHandler struct {
	reg *registry.Registry
	cfg cliparse.Config
}

func NewAdminHandler(reg *registry.Registry, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{reg: reg, cfg: cfg}
}

// Reset handles POST /admin/reset
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	adminKey := r.Header.Get(AdminKeyHeader)
	if adminKey == "" {
		middleware.CodedErrorResponse(w, http.StatusUnauthorized, KindMissingAdminKey, AdminKeyHeader+" header is required")
		return
	}
	if err := auth.ValidateAdminKey(adminKey, h.cfg.AdminKey); err != nil {
		slog.Warn("admin key rejected", "ip_hash", ipHash)
		middleware.CodedErrorResponse(w, http.StatusForbidden, KindInvalidAdminKey, "Invalid admin key")
		return
	}

	if err := h.reg.Reset(r.Context()); err != nil {
		writeRegistryError(w, err, "reset")
		return
	}

	slog.Info("registry reset", "ip_hash", ipHash)

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{
		Message: "Registry reset. All voters and votes have been cleared.",
		ResetAt: time.Now().UTC(),
	})
}
