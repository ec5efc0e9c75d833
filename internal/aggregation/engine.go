package aggregation

import (
	"log/slog"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/scoring"
)

// Engine derives everything a renderer needs from a chart and a set of
// displayed users. It never mutates the chart. It keeps two caches: the
// maximum weight map, and the last label tree so weight-only changes can be
// applied in place.
//
// An Engine is not safe for concurrent use; callers serialize access.
type Engine struct {
	logger *slog.Logger

	maxWeights *scoring.WeightMap
	maxKey     weightKey

	labels          []*LabelData
	labelsChart     *model.ValueChart
	labelsStructure uint64
}

// weightKey fingerprints every input of the maximum weight map.
type weightKey struct {
	chart     *model.ValueChart
	structure uint64
	users     uint64
	userPtrs  []*model.User
	revisions []uint64
}

func (k weightKey) equal(o weightKey) bool {
	if k.chart != o.chart || k.structure != o.structure || k.users != o.users ||
		len(k.userPtrs) != len(o.userPtrs) {
		return false
	}
	for i := range k.userPtrs {
		if k.userPtrs[i] != o.userPtrs[i] || k.revisions[i] != o.revisions[i] {
			return false
		}
	}
	return true
}

func keyFor(c *model.ValueChart) weightKey {
	k := weightKey{
		chart:     c,
		structure: c.StructureVersion(),
		users:     c.UsersVersion(),
		userPtrs:  make([]*model.User, len(c.Users)),
		revisions: make([]uint64, len(c.Users)),
	}
	for i, u := range c.Users {
		k.userPtrs[i] = u
		k.revisions[i] = u.Weights.Revision()
	}
	return k
}

// NewEngine creates an Engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Invalidate drops both caches.
func (e *Engine) Invalidate() {
	e.maxWeights = nil
	e.maxKey = weightKey{}
	e.labels = nil
	e.labelsChart = nil
}

// MaximumWeightMap returns the weight map used to size the shared layout:
// the default even split with no users, the user's own map with one user,
// and the per-objective maximum across users otherwise. The result is
// recomputed lazily, only when the user set, a user weight or the structure
// changed since the last call.
func (e *Engine) MaximumWeightMap(c *model.ValueChart) *scoring.WeightMap {
	key := keyFor(c)
	if e.maxWeights != nil && key.equal(e.maxKey) {
		return e.maxWeights
	}

	switch len(c.Users) {
	case 0:
		e.maxWeights = DefaultWeightMap(c)
	case 1:
		e.maxWeights = c.Users[0].Weights
	default:
		e.maxWeights = MaximumWeights(c.PrimitiveNames(), c.Users)
	}
	e.maxKey = key
	e.logger.Debug("recomputed maximum weight map",
		"chart_id", c.ID,
		"users", len(c.Users),
		"total", e.maxWeights.Total(),
	)
	return e.maxWeights
}
