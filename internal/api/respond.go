package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/ValueCharts/internal/hermes"
	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/ordering"
	"github.com/MikeSquared-Agency/ValueCharts/internal/scoring"
	"github.com/MikeSquared-Agency/ValueCharts/internal/session"
	"github.com/MikeSquared-Agency/ValueCharts/internal/store"
	"github.com/MikeSquared-Agency/ValueCharts/internal/view"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps engine errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

var badRequest = []error{
	model.ErrDuplicateObjective,
	model.ErrObjectiveCycle,
	model.ErrInvalidObjective,
	model.ErrNoPrimitive,
	model.ErrNoAlternatives,
	model.ErrDuplicateAlternative,
	model.ErrIncompleteAlternative,
	model.ErrIncompleteUser,
	model.ErrDuplicateUser,
	ordering.ErrIndexOutOfRange,
	ordering.ErrUnknownObjective,
	scoring.ErrInvalidWeight,
	session.ErrUnknownStrategy,
	view.ErrInvalidConfig,
	hermes.ErrInvalidEvent,
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, session.ErrUnknownUser),
		errors.Is(err, session.ErrUnknownAlternative):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNothingToUndo),
		errors.Is(err, session.ErrNothingToRedo),
		errors.Is(err, ordering.ErrNoUser),
		errors.Is(err, store.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, session.ErrStopped):
		return http.StatusServiceUnavailable
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func chartID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid chart id"})
		return uuid.Nil, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}
