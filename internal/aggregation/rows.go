package aggregation

import (
	"math"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/scoring"
)

// RowData is one primitive objective's row in the stacked chart.
type RowData struct {
	Objective *model.Objective `json:"-"`
	Name      string           `json:"objective"`
	// WeightOffset is the sum of the maximum weights of every earlier row.
	WeightOffset float64    `json:"weight_offset"`
	Cells        []CellData `json:"cells"`
}

// CellData is the intersection of a row and an alternative.
type CellData struct {
	Alternative *model.Alternative `json:"-"`
	Name        string             `json:"alternative"`
	Value       scoring.Outcome    `json:"value"`
	UserScores  []UserScore        `json:"user_scores"`
}

// UserScore is one user's segment of a cell.
type UserScore struct {
	User  *model.User `json:"-"`
	Name  string      `json:"user"`
	Score float64     `json:"score"`
	// Weight is the user's weight for the row's objective.
	Weight float64 `json:"weight"`
	// Offset is the sum of weight*score over every earlier row for this user
	// and alternative.
	Offset float64 `json:"offset"`
}

// Contribution is the weighted score this segment adds to the user's total.
func (s UserScore) Contribution() float64 { return s.Weight * s.Score }

// RowData builds one row per primitive objective in the chart's current
// order. Each cell carries one segment per displayed user. A missing weight,
// score function or outcome shows up as NaN; charts are expected to be
// validated before they reach the engine.
func (e *Engine) RowData(c *model.ValueChart, users []*model.User) []RowData {
	primitives := c.PrimitiveObjectives()
	maxWeights := e.MaximumWeightMap(c)

	rows := make([]RowData, len(primitives))
	offsets := make([][]float64, len(c.Alternatives))
	for j := range offsets {
		offsets[j] = make([]float64, len(users))
	}

	weightOffset := 0.0
	for i, obj := range primitives {
		row := RowData{
			Objective:    obj,
			Name:         obj.Name,
			WeightOffset: weightOffset,
			Cells:        make([]CellData, len(c.Alternatives)),
		}
		for j, alt := range c.Alternatives {
			value, hasValue := alt.Value(obj.Name)
			cell := CellData{
				Alternative: alt,
				Name:        alt.Name,
				Value:       value,
				UserScores:  make([]UserScore, len(users)),
			}
			for k, u := range users {
				score := math.NaN()
				if hasValue {
					if s, ok := u.Score(obj.Name, value); ok {
						score = s
					}
				}
				weight, ok := u.Weights.Weight(obj.Name)
				if !ok {
					weight = math.NaN()
				}
				cell.UserScores[k] = UserScore{
					User:   u,
					Name:   u.Name,
					Score:  score,
					Weight: weight,
					Offset: offsets[j][k],
				}
				offsets[j][k] += weight * score
			}
			row.Cells[j] = cell
		}
		rows[i] = row

		w, ok := maxWeights.Weight(obj.Name)
		if !ok {
			w = math.NaN()
		}
		weightOffset += w
	}
	return rows
}
