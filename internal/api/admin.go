package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/ValueCharts/internal/session"
)

type AdminHandler struct {
	hub *session.Hub
}

func NewAdminHandler(hub *session.Hub) *AdminHandler {
	return &AdminHandler{hub: hub}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.hub.Stats())
}

// CloseSession evicts a chart from memory; it reloads from the store on next use.
func (h *AdminHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	if err := h.hub.Close(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed", "id": id.String()})
}
