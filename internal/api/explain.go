package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/ValueCharts/internal/session"
)

type ExplainHandler struct {
	hub *session.Hub
}

func NewExplainHandler(hub *session.Hub) *ExplainHandler {
	return &ExplainHandler{hub: hub}
}

// Explain returns the utility breakdown of one alternative. The user query
// parameter defaults to the chart's first user.
// GET /api/v1/charts/{id}/alternatives/{alternative}/explain
func (h *ExplainHandler) Explain(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	score, err := h.hub.Explain(r.Context(), id, chi.URLParam(r, "alternative"), r.URL.Query().Get("user"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

// Ranking returns every alternative's breakdown, best first.
// GET /api/v1/charts/{id}/ranking
func (h *ExplainHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	ranking, err := h.hub.Ranking(r.Context(), id, r.URL.Query().Get("user"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

// Pareto returns the alternatives on the user's Pareto frontier.
// GET /api/v1/charts/{id}/pareto
func (h *ExplainHandler) Pareto(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	user := r.URL.Query().Get("user")
	frontier, err := h.hub.Pareto(r.Context(), id, user)
	if err != nil {
		writeError(w, err)
		return
	}
	if frontier == nil {
		frontier = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user, "pareto_frontier": frontier})
}
