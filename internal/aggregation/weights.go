package aggregation

import (
	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/scoring"
)

// DefaultWeightMap splits weight evenly between siblings, recursively, with
// the whole forest sharing a weight of 1.
func DefaultWeightMap(c *model.ValueChart) *scoring.WeightMap {
	m := scoring.NewWeightMap()
	if len(c.Objectives) == 0 {
		return m
	}
	share := 1.0 / float64(len(c.Objectives))
	for _, root := range c.Objectives {
		splitEvenly(m, root, share)
	}
	return m
}

func splitEvenly(m *scoring.WeightMap, o *model.Objective, share float64) {
	if o.IsPrimitive() {
		_ = m.Set(o.Name, share)
		return
	}
	if len(o.Children) == 0 {
		return
	}
	child := share / float64(len(o.Children))
	for _, c := range o.Children {
		splitEvenly(m, c, child)
	}
}

// MaximumWeights returns, for each primitive objective, the largest weight
// any of the users assigns to it. Missing entries count as 0.
func MaximumWeights(primitives []string, users []*model.User) *scoring.WeightMap {
	m := scoring.NewWeightMap()
	for _, name := range primitives {
		max := 0.0
		for _, u := range users {
			if w, ok := u.Weights.Weight(name); ok && w > max {
				max = w
			}
		}
		_ = m.Set(name, max)
	}
	return m
}
