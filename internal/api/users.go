package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/session"
)

type UsersHandler struct {
	hub *session.Hub
}

func NewUsersHandler(hub *session.Hub) *UsersHandler {
	return &UsersHandler{hub: hub}
}

// Put adds or replaces the named user. Missing score functions are filled
// with the chart defaults.
// PUT /api/v1/charts/{id}/users/{user}
func (h *UsersHandler) Put(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	var u model.User
	if !decode(w, r, &u) {
		return
	}
	u.Name = chi.URLParam(r, "user")

	added, err := h.hub.PutUser(r.Context(), id, &u)
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]interface{}{"user": u.Name, "added": added})
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "user")
	if err := h.hub.RemoveUser(r.Context(), id, name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed", "user": name})
}

type WeightRequest struct {
	Weight *float64 `json:"weight"`
}

// SetWeight sets one weight and rescales the user's others to keep the sum at 1.
// PUT /api/v1/charts/{id}/users/{user}/weights/{objective}
func (h *UsersHandler) SetWeight(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	var req WeightRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Weight == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight required"})
		return
	}
	user, objective := chi.URLParam(r, "user"), chi.URLParam(r, "objective")
	if err := h.hub.SetWeight(r.Context(), id, user, objective, *req.Weight); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user, "objective": objective, "weight": *req.Weight})
}

type DisplayedUsersRequest struct {
	Users []string `json:"users"`
}

// DisplayedUsers limits the rendered users; a null list shows everyone.
// PUT /api/v1/charts/{id}/displayed-users
func (h *UsersHandler) DisplayedUsers(w http.ResponseWriter, r *http.Request) {
	id, ok := chartID(w, r)
	if !ok {
		return
	}
	var req DisplayedUsersRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.hub.SetDisplayedUsers(r.Context(), id, req.Users); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": req.Users})
}
