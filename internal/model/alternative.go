package model

import "github.com/MikeSquared-Agency/ValueCharts/internal/scoring"

// Alternative is a candidate option with one raw outcome per primitive objective.
type Alternative struct {
	Name        string                     `json:"name"`
	Description string                     `json:"description,omitempty"`
	Values      map[string]scoring.Outcome `json:"values"`
}

// NewAlternative returns an alternative with an empty value map.
func NewAlternative(name, description string) *Alternative {
	return &Alternative{Name: name, Description: description, Values: make(map[string]scoring.Outcome)}
}

// Value returns the outcome recorded for a primitive objective.
func (a *Alternative) Value(objective string) (scoring.Outcome, bool) {
	v, ok := a.Values[objective]
	return v, ok
}

// SetValue records the outcome for a primitive objective.
func (a *Alternative) SetValue(objective string, v scoring.Outcome) {
	if a.Values == nil {
		a.Values = make(map[string]scoring.Outcome)
	}
	a.Values[objective] = v
}

func (a *Alternative) Clone() *Alternative {
	c := &Alternative{Name: a.Name, Description: a.Description, Values: make(map[string]scoring.Outcome, len(a.Values))}
	for k, v := range a.Values {
		c.Values[k] = v
	}
	return c
}

func (a *Alternative) Equal(o *Alternative) bool {
	if a == nil || o == nil {
		return a == o
	}
	if a.Name != o.Name || a.Description != o.Description || len(a.Values) != len(o.Values) {
		return false
	}
	for k, v := range a.Values {
		ov, ok := o.Values[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}
