package handler

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/nzoschke/healthmate/internal/ctxkeys"
	"github.com/nzoschke/healthmate/internal/response"
)

// HealthHandler answers load balancer probes.
type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		response.Error(w, http.StatusServiceUnavailable, "unavailable", "database unreachable")
		return
	}

	status := map[string]string{"status": "ok"}
	if cfg := ctxkeys.Config(r.Context()); cfg != nil {
		status["app"] = cfg.AppName
		status["env"] = cfg.AppEnv
	}
	response.JSON(w, http.StatusOK, status)
}
