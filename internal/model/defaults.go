package model

import "github.com/MikeSquared-Agency/ValueCharts/internal/scoring"

// DefaultScoreFunction builds a linear score function for a domain.
// Categorical and interval elements are spread evenly from 0 to 1 in domain
// order; continuous domains map Min to 0 and Max to 1.
func DefaultScoreFunction(d *Domain) scoring.ScoreFunction {
	if d.Type == DomainContinuous {
		f := scoring.NewContinuousScoreFunction(d.Min, d.Max)
		if d.Min == d.Max {
			_ = f.SetScore(scoring.Number(d.Min), 1)
			return f
		}
		_ = f.SetScore(scoring.Number(d.Min), 0)
		_ = f.SetScore(scoring.Number(d.Max), 1)
		return f
	}

	f := scoring.NewDiscreteScoreFunction()
	outcomes := d.Outcomes()
	for i, o := range outcomes {
		score := 1.0
		if len(outcomes) > 1 {
			score = float64(i) / float64(len(outcomes)-1)
		}
		_ = f.SetScore(o, score)
	}
	return f
}

// DefaultScoreFunctions builds a default score function per primitive objective.
func (c *ValueChart) DefaultScoreFunctions() *scoring.ScoreFunctionMap {
	m := scoring.NewScoreFunctionMap()
	for _, p := range c.PrimitiveObjectives() {
		m.Set(p.Name, DefaultScoreFunction(p.Domain))
	}
	return m
}

// RescaleScoreFunctions rescales every user's score functions so each spans
// [0, 1] again and reports whether any user changed.
func (c *ValueChart) RescaleScoreFunctions() bool {
	changed := false
	for _, u := range c.Users {
		if u.ScoreFunctions != nil && u.ScoreFunctions.Rescale() {
			changed = true
		}
	}
	if changed {
		c.MarkUsersChanged()
	}
	return changed
}
