package scoring

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ScoreFunctionMap holds one score function per primitive objective name.
type ScoreFunctionMap struct {
	functions map[string]ScoreFunction
}

// NewScoreFunctionMap returns an empty map.
func NewScoreFunctionMap() *ScoreFunctionMap {
	return &ScoreFunctionMap{functions: make(map[string]ScoreFunction)}
}

func (m *ScoreFunctionMap) Get(objective string) (ScoreFunction, bool) {
	f, ok := m.functions[objective]
	return f, ok
}

func (m *ScoreFunctionMap) Set(objective string, f ScoreFunction) {
	m.functions[objective] = f
}

func (m *ScoreFunctionMap) Remove(objective string) {
	delete(m.functions, objective)
}

func (m *ScoreFunctionMap) Len() int { return len(m.functions) }

// Names returns the covered objective names in sorted order.
func (m *ScoreFunctionMap) Names() []string {
	names := make([]string, 0, len(m.functions))
	for name := range m.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Score looks up the score function for an objective and applies it.
func (m *ScoreFunctionMap) Score(objective string, o Outcome) (float64, bool) {
	f, ok := m.functions[objective]
	if !ok {
		return 0, false
	}
	return f.Score(o)
}

// Rescale rescales every score function and reports whether any changed.
func (m *ScoreFunctionMap) Rescale() bool {
	changed := false
	for _, f := range m.functions {
		if f.Rescale() {
			changed = true
		}
	}
	return changed
}

// Clone returns an independent deep copy.
func (m *ScoreFunctionMap) Clone() *ScoreFunctionMap {
	c := &ScoreFunctionMap{functions: make(map[string]ScoreFunction, len(m.functions))}
	for name, f := range m.functions {
		c.functions[name] = f.Clone()
	}
	return c
}

func (m *ScoreFunctionMap) Equal(other *ScoreFunctionMap) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.functions) != len(other.functions) {
		return false
	}
	for name, f := range m.functions {
		of, ok := other.functions[name]
		if !ok || !f.Equal(of) {
			return false
		}
	}
	return true
}

// --- JSON ---

type scorePoint struct {
	Element Outcome `json:"element"`
	Score   float64 `json:"score"`
}

type scoreFunctionJSON struct {
	Type   Kind         `json:"type"`
	Min    *float64     `json:"min,omitempty"`
	Max    *float64     `json:"max,omitempty"`
	Scores []scorePoint `json:"scores"`
}

// EncodeScoreFunction converts a score function to its wire form.
func EncodeScoreFunction(f ScoreFunction) ([]byte, error) {
	doc := scoreFunctionJSON{Type: f.Kind(), Scores: []scorePoint{}}
	if c, ok := f.(*ContinuousScoreFunction); ok {
		min, max := c.min, c.max
		doc.Min, doc.Max = &min, &max
	}
	for _, e := range f.Elements() {
		s, _ := f.Score(e)
		doc.Scores = append(doc.Scores, scorePoint{Element: e, Score: s})
	}
	return json.Marshal(doc)
}

// DecodeScoreFunction parses the wire form produced by EncodeScoreFunction.
func DecodeScoreFunction(data []byte) (ScoreFunction, error) {
	var doc scoreFunctionJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode score function: %w", err)
	}
	var f ScoreFunction
	switch doc.Type {
	case KindDiscrete:
		f = NewDiscreteScoreFunction()
	case KindContinuous:
		if doc.Min == nil || doc.Max == nil {
			return nil, fmt.Errorf("continuous score function requires min and max")
		}
		f = NewContinuousScoreFunction(*doc.Min, *doc.Max)
	default:
		return nil, fmt.Errorf("unknown score function type %q", doc.Type)
	}
	for _, p := range doc.Scores {
		if err := f.SetScore(p.Element, p.Score); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (m *ScoreFunctionMap) MarshalJSON() ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(m.functions))
	for name, f := range m.functions {
		data, err := EncodeScoreFunction(f)
		if err != nil {
			return nil, err
		}
		raw[name] = data
	}
	return json.Marshal(raw)
}

func (m *ScoreFunctionMap) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode score functions: %w", err)
	}
	decoded := NewScoreFunctionMap()
	for name, msg := range raw {
		f, err := DecodeScoreFunction(msg)
		if err != nil {
			return fmt.Errorf("objective %q: %w", name, err)
		}
		decoded.functions[name] = f
	}
	*m = *decoded
	return nil
}
