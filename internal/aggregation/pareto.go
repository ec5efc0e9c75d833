package aggregation

import (
	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
)

// ComputeFrontier returns the alternatives that no other alternative
// dominates for u, in chart order. An alternative dominates another when it
// scores at least as well on every primitive objective and strictly better
// on at least one.
// O(n^2) dominance check; alternative counts are UI-sized.
func ComputeFrontier(c *model.ValueChart, u *model.User) []*model.Alternative {
	if len(c.Alternatives) <= 1 {
		return c.Alternatives
	}
	names := c.PrimitiveNames()
	scores := make([][]float64, len(c.Alternatives))
	for i, alt := range c.Alternatives {
		breakdown := ScoreAlternativeOn(names, u, alt)
		scores[i] = make([]float64, len(breakdown.Contributions))
		for k, contrib := range breakdown.Contributions {
			scores[i][k] = contrib.Score
		}
	}

	var frontier []*model.Alternative
	for i := range c.Alternatives {
		dominated := false
		for j := range c.Alternatives {
			if i == j {
				continue
			}
			if dominates(scores[j], scores[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, c.Alternatives[i])
		}
	}
	return frontier
}

// dominates reports whether a is >= b everywhere and > b somewhere.
func dominates(a, b []float64) bool {
	strict := false
	for k := range a {
		if a[k] < b[k] {
			return false
		}
		if a[k] > b[k] {
			strict = true
		}
	}
	return strict
}
