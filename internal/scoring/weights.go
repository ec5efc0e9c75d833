package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
)

// ErrInvalidWeight is returned when a weight is negative, NaN or infinite.
var ErrInvalidWeight = errors.New("invalid weight")

// normalizedEpsilon is how far a total may sit from 1 and still count as normalized.
const normalizedEpsilon = 1e-12

// WeightMap maps objective names to non-negative weights.
//
// The running total is kept as an exact rational and updated incrementally on
// every Set and Remove, so Total always equals the sum of the stored entries.
type WeightMap struct {
	weights  map[string]float64
	total    *big.Rat
	revision uint64
}

// NewWeightMap returns an empty weight map.
func NewWeightMap() *WeightMap {
	return &WeightMap{
		weights: make(map[string]float64),
		total:   new(big.Rat),
	}
}

// WeightMapFrom builds a weight map from a plain map.
func WeightMapFrom(weights map[string]float64) (*WeightMap, error) {
	m := NewWeightMap()
	for name, w := range weights {
		if err := m.Set(name, w); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Len returns the number of stored entries.
func (m *WeightMap) Len() int { return len(m.weights) }

// Revision increases on every mutation. Caches key on it.
func (m *WeightMap) Revision() uint64 { return m.revision }

// Weight returns the stored weight for an objective.
func (m *WeightMap) Weight(name string) (float64, bool) {
	w, ok := m.weights[name]
	return w, ok
}

// Set stores the weight for an objective, replacing any previous value.
func (m *WeightMap) Set(name string, w float64) error {
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("%w: %s=%v", ErrInvalidWeight, name, w)
	}
	if old, ok := m.weights[name]; ok {
		m.total.Sub(m.total, ratOf(old))
	}
	m.weights[name] = w
	m.total.Add(m.total, ratOf(w))
	m.revision++
	return nil
}

// Remove deletes the weight for an objective. Removing a missing entry is a no-op.
func (m *WeightMap) Remove(name string) {
	old, ok := m.weights[name]
	if !ok {
		return
	}
	m.total.Sub(m.total, ratOf(old))
	delete(m.weights, name)
	m.revision++
}

// Total returns the running total of all stored weights.
func (m *WeightMap) Total() float64 {
	f, _ := m.total.Float64()
	return f
}

// Normalized returns weight / total. Missing entries return NaN; a zero total
// yields NaN or Inf and must be guarded by the caller.
func (m *WeightMap) Normalized(name string) float64 {
	w, ok := m.weights[name]
	if !ok {
		return math.NaN()
	}
	return w / m.Total()
}

// Weights returns the weights in the given objective order. The result has
// the same length as names; missing entries are NaN.
func (m *WeightMap) Weights(names []string) []float64 {
	out := make([]float64, len(names))
	for i, name := range names {
		w, ok := m.weights[name]
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = w
	}
	return out
}

// NormalizedWeights is Weights divided by the running total.
func (m *WeightMap) NormalizedWeights(names []string) []float64 {
	out := m.Weights(names)
	total := m.Total()
	for i := range out {
		out[i] /= total
	}
	return out
}

// Names returns the stored objective names in sorted order.
func (m *WeightMap) Names() []string {
	names := make([]string, 0, len(m.weights))
	for name := range m.weights {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Normalize rescales every entry so the total is 1. A map that is already
// normalized, or whose total is zero, is left untouched.
func (m *WeightMap) Normalize() {
	total := m.Total()
	if total == 0 || math.Abs(total-1) <= normalizedEpsilon {
		return
	}
	sum := new(big.Rat)
	for name, w := range m.weights {
		nw := w / total
		m.weights[name] = nw
		sum.Add(sum, ratOf(nw))
	}
	m.total = sum
	m.revision++
}

// Verify recomputes the total by a full scan and reports whether it matches
// the running total exactly.
func (m *WeightMap) Verify() bool {
	sum := new(big.Rat)
	for _, w := range m.weights {
		sum.Add(sum, ratOf(w))
	}
	return sum.Cmp(m.total) == 0
}

// Clone returns an independent deep copy.
func (m *WeightMap) Clone() *WeightMap {
	c := &WeightMap{
		weights:  make(map[string]float64, len(m.weights)),
		total:    new(big.Rat).Set(m.total),
		revision: m.revision,
	}
	for name, w := range m.weights {
		c.weights[name] = w
	}
	return c
}

// Equal reports whether both maps hold exactly the same entries.
func (m *WeightMap) Equal(other *WeightMap) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.weights) != len(other.weights) {
		return false
	}
	for name, w := range m.weights {
		ow, ok := other.weights[name]
		if !ok || ow != w {
			return false
		}
	}
	return true
}

// Validate checks that every named objective has a weight and that the
// weights sum to 1 within 0.001 per objective.
func (m *WeightMap) Validate(names []string) error {
	for _, name := range names {
		if _, ok := m.weights[name]; !ok {
			return fmt.Errorf("missing weight for objective %q", name)
		}
	}
	tolerance := 0.001 * float64(len(names))
	if math.Abs(m.Total()-1.0) > tolerance {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", m.Total())
	}
	return nil
}

// ToMap returns a plain copy of the entries.
func (m *WeightMap) ToMap() map[string]float64 {
	out := make(map[string]float64, len(m.weights))
	for name, w := range m.weights {
		out[name] = w
	}
	return out
}

func (m *WeightMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.weights)
}

func (m *WeightMap) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode weights: %w", err)
	}
	decoded, err := WeightMapFrom(raw)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}

func ratOf(v float64) *big.Rat {
	return new(big.Rat).SetFloat64(v)
}
