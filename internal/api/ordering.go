package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/ValueCharts/internal/ordering"
	"github.com/MikeSquared-Agency/ValueCharts/internal/session"
)

type OrderingHandler struct {
	hub *session.Hub
}

func NewOrderingHandler(hub *session.Hub) *OrderingHandler {
	return &OrderingHandler{hub: hub}
}

// Sort reorders the alternatives.
// POST /api/v1/charts/{id}/sort
func (h *OrderingHandler) Sort(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	var req session.SortRequest
	if !decode(w, r, &req) {
		return
	}
	changed, err := h.hub.Sort(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"strategy": req.Strategy, "changed": changed})
}

type ReorderObjectivesRequest struct {
	// Parent is the abstract objective whose children move; empty for roots.
	Parent string `json:"parent"`
	From   int    `json:"from"`
	To     int    `json:"to"`
}

// ReorderObjectives moves one child objective within its parent.
// POST /api/v1/charts/{id}/objectives/reorder
func (h *OrderingHandler) ReorderObjectives(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	var req ReorderObjectivesRequest
	if !decode(w, r, &req) {
		return
	}
	changed, err := h.hub.ReorderObjectives(r.Context(), id, req.Parent, req.From, req.To)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"parent": req.Parent, "changed": changed})
}

func (h *OrderingHandler) Undo(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.hub.Undo)
}

func (h *OrderingHandler) Redo(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.hub.Redo)
}

func (h *OrderingHandler) step(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id uuid.UUID) (ordering.Record, error)) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	rec, err := fn(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
