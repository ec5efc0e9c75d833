package aggregation

import (
	"math"
	"sort"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
)

// ObjectiveContribution captures one objective's share of an alternative's
// total utility for one user.
type ObjectiveContribution struct {
	Objective string  `json:"objective"`
	Score     float64 `json:"score"`
	Weight    float64 `json:"weight"`
	Weighted  float64 `json:"weighted"`
}

// AlternativeScore is the full utility breakdown of one alternative for one user.
type AlternativeScore struct {
	Alternative   string                  `json:"alternative"`
	User          string                  `json:"user"`
	TotalScore    float64                 `json:"total_score"`
	Contributions []ObjectiveContribution `json:"contributions"`
}

// ScoreAlternative computes the weighted additive utility of alt for u over
// the chart's primitive objectives, in row order.
func ScoreAlternative(c *model.ValueChart, u *model.User, alt *model.Alternative) AlternativeScore {
	return ScoreAlternativeOn(c.PrimitiveNames(), u, alt)
}

// ScoreAlternativeOn restricts ScoreAlternative to the named objectives.
func ScoreAlternativeOn(objectives []string, u *model.User, alt *model.Alternative) AlternativeScore {
	result := AlternativeScore{
		Alternative:   alt.Name,
		User:          u.Name,
		Contributions: make([]ObjectiveContribution, 0, len(objectives)),
	}
	for _, name := range objectives {
		score := math.NaN()
		if v, ok := alt.Value(name); ok {
			if s, ok := u.Score(name, v); ok {
				score = s
			}
		}
		weight, ok := u.Weights.Weight(name)
		if !ok {
			weight = math.NaN()
		}
		contrib := ObjectiveContribution{
			Objective: name,
			Score:     score,
			Weight:    weight,
			Weighted:  score * weight,
		}
		result.TotalScore += contrib.Weighted
		result.Contributions = append(result.Contributions, contrib)
	}
	return result
}

// ScoreAlternatives scores every alternative for u and returns them ranked by
// total utility, highest first. Ties keep chart order.
func ScoreAlternatives(c *model.ValueChart, u *model.User) []AlternativeScore {
	names := c.PrimitiveNames()
	out := make([]AlternativeScore, len(c.Alternatives))
	for i, alt := range c.Alternatives {
		out[i] = ScoreAlternativeOn(names, u, alt)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalScore > out[j].TotalScore
	})
	return out
}
