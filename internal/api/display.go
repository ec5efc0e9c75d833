package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/ValueCharts/internal/session"
	"github.com/MikeSquared-Agency/ValueCharts/internal/view"
)

// DisplayHandler changes presentation settings. These never re-run the
// aggregation engine.
type DisplayHandler struct {
	hub *session.Hub
}

func NewDisplayHandler(hub *session.Hub) *DisplayHandler {
	return &DisplayHandler{hub: hub}
}

func (h *DisplayHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	v := view.DefaultConfig()
	if !decode(w, r, &v) {
		return
	}
	if err := h.hub.SetView(r.Context(), id, v); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *DisplayHandler) Interaction(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	ic := view.DefaultInteractionConfig()
	if !decode(w, r, &ic) {
		return
	}
	if err := h.hub.SetInteraction(r.Context(), id, ic); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ic)
}

func (h *DisplayHandler) Size(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	var size view.Size
	if !decode(w, r, &size) {
		return
	}
	if err := h.hub.SetSize(r.Context(), id, size); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, size)
}
