package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nzoschke/healthmate/internal/response"
	"github.com/nzoschke/healthmate/internal/service"
)

const wsPingInterval = 25 * time.Second

type themeMessage struct {
	Dark bool `json:"dark"`
}

type PreferenceHandler struct {
	preferenceService *service.PreferenceService
	upgrader          websocket.Upgrader
}

// NewPreferenceHandler accepts WebSocket upgrades from any origin. The socket
// sits behind the bearer token check.
func NewPreferenceHandler(preferenceService *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *PreferenceHandler) Theme(w http.ResponseWriter, r *http.Request) {
	dark, err := h.preferenceService.DarkTheme()
	if err != nil {
		writeServiceError(w, r, err, "failed to get theme")
		return
	}

	response.JSON(w, http.StatusOK, themeMessage{Dark: dark})
}

func (h *PreferenceHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Dark *bool `json:"dark"`
	}
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if req.Dark == nil {
		badRequest(w, "dark is required")
		return
	}

	err := h.preferenceService.SetDarkTheme(*req.Dark)
	if err != nil {
		writeServiceError(w, r, err, "failed to set theme")
		return
	}

	response.JSON(w, http.StatusOK, themeMessage{Dark: *req.Dark})
}

// ThemeSocket sends the current theme, then every change until the client goes away.
func (h *PreferenceHandler) ThemeSocket(w http.ResponseWriter, r *http.Request) {
	changes, unsubscribe := h.preferenceService.Subscribe()
	defer unsubscribe()

	dark, err := h.preferenceService.DarkTheme()
	if err != nil {
		writeServiceError(w, r, err, "failed to get theme")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("failed to upgrade theme socket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	// The read loop only notices the client closing.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	err = conn.WriteJSON(themeMessage{Dark: dark})
	if err != nil {
		return
	}

	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case dark, ok := <-changes:
			if !ok {
				return
			}
			if err := conn.WriteJSON(themeMessage{Dark: dark}); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}
