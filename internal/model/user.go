package model

import (
	"fmt"

	"github.com/MikeSquared-Agency/ValueCharts/internal/scoring"
)

// User is one decision-maker: a weight per primitive objective plus a score
// function per primitive objective.
type User struct {
	Name           string                    `json:"name"`
	Color          string                    `json:"color,omitempty"`
	Weights        *scoring.WeightMap        `json:"weights"`
	ScoreFunctions *scoring.ScoreFunctionMap `json:"score_functions"`
}

// NewUser returns a user with empty weight and score function maps.
func NewUser(name, color string) *User {
	return &User{
		Name:           name,
		Color:          color,
		Weights:        scoring.NewWeightMap(),
		ScoreFunctions: scoring.NewScoreFunctionMap(),
	}
}

// Score applies the user's score function for objective to an outcome.
func (u *User) Score(objective string, o scoring.Outcome) (float64, bool) {
	return u.ScoreFunctions.Score(objective, o)
}

// Weight returns the user's weight for objective, or 0 when absent.
func (u *User) Weight(objective string) float64 {
	w, _ := u.Weights.Weight(objective)
	return w
}

// Complete checks that the user carries a weight and a score function for
// every named primitive objective and that the weights sum to ~1.
func (u *User) Complete(primitives []string) error {
	if u.Weights == nil || u.ScoreFunctions == nil {
		return fmt.Errorf("user %q: %w", u.Name, ErrIncompleteUser)
	}
	if err := u.Weights.Validate(primitives); err != nil {
		return fmt.Errorf("user %q: %w: %v", u.Name, ErrIncompleteUser, err)
	}
	for _, name := range primitives {
		if _, ok := u.ScoreFunctions.Get(name); !ok {
			return fmt.Errorf("user %q: %w: no score function for %q", u.Name, ErrIncompleteUser, name)
		}
	}
	return nil
}

func (u *User) Clone() *User {
	c := &User{Name: u.Name, Color: u.Color}
	if u.Weights != nil {
		c.Weights = u.Weights.Clone()
	}
	if u.ScoreFunctions != nil {
		c.ScoreFunctions = u.ScoreFunctions.Clone()
	}
	return c
}

func (u *User) Equal(o *User) bool {
	if u == nil || o == nil {
		return u == o
	}
	return u.Name == o.Name && u.Color == o.Color &&
		u.Weights.Equal(o.Weights) && u.ScoreFunctions.Equal(o.ScoreFunctions)
}
