package api

import (
	"net/http"
	"strconv"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/session"
	"github.com/MikeSquared-Agency/ValueCharts/internal/store"
)

type ChartsHandler struct {
	hub   *session.Hub
	store store.Store
}

func NewChartsHandler(hub *session.Hub, s store.Store) *ChartsHandler {
	return &ChartsHandler{hub: hub, store: s}
}

// Create stores a new chart. Users may be omitted for a structure-only chart.
// POST /api/v1/charts
func (h *ChartsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c model.ValueChart
	if !decode(w, r, &c) {
		return
	}
	if c.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required"})
		return
	}
	if c.Creator == "" {
		c.Creator = r.Header.Get(ClientHeader)
	}
	if err := h.hub.Create(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &c)
}

func (h *ChartsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.ChartFilter{
		Creator: r.URL.Query().Get("creator"),
		Name:    r.URL.Query().Get("name"),
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		filter.Limit = n
	}

	charts, err := h.store.ListCharts(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, charts)
}

// Get returns the live chart, including edits not yet persisted elsewhere.
func (h *ChartsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	c, err := h.hub.Chart(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ChartsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	if err := h.hub.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id.String()})
}

// Render returns everything a renderer needs: rows, labels, the maximum
// weight map and the last change classification.
// GET /api/v1/charts/{id}/render
func (h *ChartsHandler) Render(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	out, err := h.hub.Render(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type StructureRequest struct {
	Objectives   []*model.Objective   `json:"objectives"`
	Alternatives []*model.Alternative `json:"alternatives,omitempty"`
}

// Structure replaces the objectives, and the alternatives when given.
// PUT /api/v1/charts/{id}/structure
func (h *ChartsHandler) Structure(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	var req StructureRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.hub.SetStructure(r.Context(), id, req.Objectives, req.Alternatives); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
