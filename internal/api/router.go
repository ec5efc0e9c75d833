package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/ValueCharts/internal/session"
	"github.com/MikeSquared-Agency/ValueCharts/internal/store"
)

func NewRouter(hub *session.Hub, s store.Store, adminToken string, rateLimit int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(rateLimit))

	charts := NewChartsHandler(hub, s)
	users := NewUsersHandler(hub)
	orderings := NewOrderingHandler(hub)
	display := NewDisplayHandler(hub)
	explain := NewExplainHandler(hub)
	admin := NewAdminHandler(hub)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/charts", charts.Create)
		r.Get("/charts", charts.List)

		r.Route("/charts/{id}", func(r chi.Router) {
			r.Get("/", charts.Get)
			r.Get("/render", charts.Render)
			r.Put("/structure", charts.Structure)

			r.Put("/users/{user}", users.Put)
			r.Delete("/users/{user}", users.Delete)
			r.Put("/users/{user}/weights/{objective}", users.SetWeight)
			r.Put("/displayed-users", users.DisplayedUsers)

			r.Post("/sort", orderings.Sort)
			r.Post("/objectives/reorder", orderings.ReorderObjectives)
			r.Post("/undo", orderings.Undo)
			r.Post("/redo", orderings.Redo)

			r.Put("/view", display.View)
			r.Put("/interaction", display.Interaction)
			r.Put("/size", display.Size)

			r.Get("/alternatives/{alternative}/explain", explain.Explain)
			r.Get("/ranking", explain.Ranking)
			r.Get("/pareto", explain.Pareto)

			r.With(AdminAuthMiddleware(adminToken)).Delete("/", charts.Delete)
			r.With(AdminAuthMiddleware(adminToken)).Post("/close", admin.CloseSession)
		})

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
