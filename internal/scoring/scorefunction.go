package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrInvalidScore is returned when a score falls outside [0, 1].
	ErrInvalidScore = errors.New("score must be within [0, 1]")
	// ErrOutOfDomain is returned when a continuous point lies outside the configured range.
	ErrOutOfDomain = errors.New("element outside domain range")
	// ErrNotNumeric is returned when a continuous score function is given a text outcome.
	ErrNotNumeric = errors.New("continuous score functions take numeric elements")
)

// Kind identifies a score function variant.
type Kind string

const (
	KindDiscrete   Kind = "discrete"
	KindContinuous Kind = "continuous"
)

// ScoreFunction maps raw outcomes of one objective to a utility in [0, 1].
type ScoreFunction interface {
	Kind() Kind
	// Score returns the utility for an outcome and whether one is defined.
	Score(o Outcome) (float64, bool)
	SetScore(o Outcome, score float64) error
	RemoveScore(o Outcome)
	// Elements returns the covered domain elements.
	Elements() []Outcome
	BestElement() (Outcome, bool)
	WorstElement() (Outcome, bool)
	// Rescale remaps stored scores so the worst becomes 0 and the best 1.
	// It reports whether anything changed.
	Rescale() bool
	Clone() ScoreFunction
	Equal(other ScoreFunction) bool
}

func checkScore(score float64) error {
	if math.IsNaN(score) || score < 0 || score > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidScore, score)
	}
	return nil
}

// rescale maps lo..hi onto 0..1 and pins the extremes so no rounding leaks in.
func rescale(s, lo, hi float64) float64 {
	switch s {
	case lo:
		return 0
	case hi:
		return 1
	}
	return (s - lo) / (hi - lo)
}

// --- Discrete ---

// DiscreteScoreFunction stores one score per categorical element.
type DiscreteScoreFunction struct {
	order  []Outcome
	scores map[string]float64
}

// NewDiscreteScoreFunction returns an empty discrete score function.
func NewDiscreteScoreFunction() *DiscreteScoreFunction {
	return &DiscreteScoreFunction{scores: make(map[string]float64)}
}

func (f *DiscreteScoreFunction) Kind() Kind { return KindDiscrete }

func (f *DiscreteScoreFunction) Score(o Outcome) (float64, bool) {
	s, ok := f.scores[o.Key()]
	return s, ok
}

func (f *DiscreteScoreFunction) SetScore(o Outcome, score float64) error {
	if err := checkScore(score); err != nil {
		return err
	}
	key := o.Key()
	if _, ok := f.scores[key]; !ok {
		f.order = append(f.order, o)
	}
	f.scores[key] = score
	return nil
}

func (f *DiscreteScoreFunction) RemoveScore(o Outcome) {
	key := o.Key()
	if _, ok := f.scores[key]; !ok {
		return
	}
	delete(f.scores, key)
	for i, e := range f.order {
		if e.Key() == key {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

func (f *DiscreteScoreFunction) Elements() []Outcome {
	out := make([]Outcome, len(f.order))
	copy(out, f.order)
	return out
}

func (f *DiscreteScoreFunction) BestElement() (Outcome, bool) {
	return extreme(f.order, f.Score, func(a, b float64) bool { return a > b })
}

func (f *DiscreteScoreFunction) WorstElement() (Outcome, bool) {
	return extreme(f.order, f.Score, func(a, b float64) bool { return a < b })
}

func (f *DiscreteScoreFunction) Rescale() bool {
	lo, hi, ok := bounds(f.scores)
	if !ok || (lo == 0 && hi == 1) || lo == hi {
		return false
	}
	for k, s := range f.scores {
		f.scores[k] = rescale(s, lo, hi)
	}
	return true
}

func (f *DiscreteScoreFunction) Clone() ScoreFunction {
	c := &DiscreteScoreFunction{
		order:  make([]Outcome, len(f.order)),
		scores: make(map[string]float64, len(f.scores)),
	}
	copy(c.order, f.order)
	for k, s := range f.scores {
		c.scores[k] = s
	}
	return c
}

func (f *DiscreteScoreFunction) Equal(other ScoreFunction) bool {
	o, ok := other.(*DiscreteScoreFunction)
	if !ok || len(o.order) != len(f.order) {
		return false
	}
	for i, e := range f.order {
		if o.order[i] != e || o.scores[e.Key()] != f.scores[e.Key()] {
			return false
		}
	}
	return true
}

// --- Continuous ---

// ContinuousScoreFunction is a piecewise linear interpolant over numeric
// points within [Min, Max].
type ContinuousScoreFunction struct {
	min    float64
	max    float64
	scores map[float64]float64
}

// NewContinuousScoreFunction returns an empty score function over [min, max].
func NewContinuousScoreFunction(min, max float64) *ContinuousScoreFunction {
	return &ContinuousScoreFunction{min: min, max: max, scores: make(map[float64]float64)}
}

func (f *ContinuousScoreFunction) Kind() Kind { return KindContinuous }

// Min returns the lower bound of the domain.
func (f *ContinuousScoreFunction) Min() float64 { return f.min }

// Max returns the upper bound of the domain.
func (f *ContinuousScoreFunction) Max() float64 { return f.max }

// Score clamps the query to the domain and to the stored points, then
// interpolates linearly between the two bracketing points.
func (f *ContinuousScoreFunction) Score(o Outcome) (float64, bool) {
	if !o.Numeric || len(f.scores) == 0 {
		return 0, false
	}
	v := clamp(o.Number, f.min, f.max)
	if s, ok := f.scores[v]; ok {
		return s, true
	}
	xs := f.sortedPoints()
	if v <= xs[0] {
		return f.scores[xs[0]], true
	}
	last := xs[len(xs)-1]
	if v >= last {
		return f.scores[last], true
	}
	i := sort.SearchFloat64s(xs, v)
	x1, x2 := xs[i-1], xs[i]
	s1, s2 := f.scores[x1], f.scores[x2]
	return s1 + (v-x1)*(s2-s1)/(x2-x1), true
}

func (f *ContinuousScoreFunction) SetScore(o Outcome, score float64) error {
	if !o.Numeric {
		return ErrNotNumeric
	}
	if o.Number < f.min || o.Number > f.max {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrOutOfDomain, o.Number, f.min, f.max)
	}
	if err := checkScore(score); err != nil {
		return err
	}
	f.scores[o.Number] = score
	return nil
}

func (f *ContinuousScoreFunction) RemoveScore(o Outcome) {
	if o.Numeric {
		delete(f.scores, o.Number)
	}
}

func (f *ContinuousScoreFunction) Elements() []Outcome {
	xs := f.sortedPoints()
	out := make([]Outcome, len(xs))
	for i, x := range xs {
		out[i] = Number(x)
	}
	return out
}

func (f *ContinuousScoreFunction) BestElement() (Outcome, bool) {
	return extreme(f.Elements(), f.Score, func(a, b float64) bool { return a > b })
}

func (f *ContinuousScoreFunction) WorstElement() (Outcome, bool) {
	return extreme(f.Elements(), f.Score, func(a, b float64) bool { return a < b })
}

func (f *ContinuousScoreFunction) Rescale() bool {
	lo, hi, ok := bounds(f.scores)
	if !ok || (lo == 0 && hi == 1) || lo == hi {
		return false
	}
	for x, s := range f.scores {
		f.scores[x] = rescale(s, lo, hi)
	}
	return true
}

func (f *ContinuousScoreFunction) Clone() ScoreFunction {
	c := NewContinuousScoreFunction(f.min, f.max)
	for x, s := range f.scores {
		c.scores[x] = s
	}
	return c
}

func (f *ContinuousScoreFunction) Equal(other ScoreFunction) bool {
	o, ok := other.(*ContinuousScoreFunction)
	if !ok || o.min != f.min || o.max != f.max || len(o.scores) != len(f.scores) {
		return false
	}
	for x, s := range f.scores {
		os, ok := o.scores[x]
		if !ok || os != s {
			return false
		}
	}
	return true
}

func (f *ContinuousScoreFunction) sortedPoints() []float64 {
	xs := make([]float64, 0, len(f.scores))
	for x := range f.scores {
		xs = append(xs, x)
	}
	sort.Float64s(xs)
	return xs
}

// --- helpers ---

func extreme(elements []Outcome, score func(Outcome) (float64, bool), better func(a, b float64) bool) (Outcome, bool) {
	var (
		best  Outcome
		bestS float64
		found bool
	)
	for _, e := range elements {
		s, ok := score(e)
		if !ok {
			continue
		}
		if !found || better(s, bestS) {
			best, bestS, found = e, s, true
		}
	}
	return best, found
}

func bounds[K comparable](scores map[K]float64) (lo, hi float64, ok bool) {
	for _, s := range scores {
		if !ok {
			lo, hi, ok = s, s, true
			continue
		}
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	return lo, hi, ok
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
