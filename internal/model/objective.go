package model

import (
	"math"

	"github.com/MikeSquared-Agency/ValueCharts/internal/scoring"
)

type ObjectiveType string

const (
	ObjectiveAbstract  ObjectiveType = "abstract"
	ObjectivePrimitive ObjectiveType = "primitive"
)

type DomainType string

const (
	DomainCategorical DomainType = "categorical"
	DomainContinuous  DomainType = "continuous"
	DomainInterval    DomainType = "interval"
)

// Domain is the set of outcomes a primitive objective can take.
type Domain struct {
	Type     DomainType `json:"type"`
	Elements []string   `json:"elements,omitempty"`
	Min      float64    `json:"min,omitempty"`
	Max      float64    `json:"max,omitempty"`
	Interval float64    `json:"interval,omitempty"`
	Unit     string     `json:"unit,omitempty"`
}

// Outcomes lists the discrete outcomes of the domain. Continuous domains
// return their two end points.
func (d *Domain) Outcomes() []scoring.Outcome {
	switch d.Type {
	case DomainCategorical:
		out := make([]scoring.Outcome, len(d.Elements))
		for i, e := range d.Elements {
			out[i] = scoring.Text(e)
		}
		return out
	case DomainInterval:
		if d.Interval <= 0 || d.Max < d.Min {
			return nil
		}
		steps := int(math.Floor((d.Max-d.Min)/d.Interval + 1e-9))
		out := make([]scoring.Outcome, 0, steps+1)
		for i := 0; i <= steps; i++ {
			out = append(out, scoring.Number(d.step(float64(i))))
		}
		return out
	default:
		if d.Min == d.Max {
			return []scoring.Outcome{scoring.Number(d.Min)}
		}
		return []scoring.Outcome{scoring.Number(d.Min), scoring.Number(d.Max)}
	}
}

// Contains reports whether an outcome belongs to the domain.
func (d *Domain) Contains(o scoring.Outcome) bool {
	switch d.Type {
	case DomainCategorical:
		if o.Numeric {
			return false
		}
		for _, e := range d.Elements {
			if e == o.Text {
				return true
			}
		}
		return false
	case DomainInterval:
		if !o.Numeric || o.Number < d.Min || o.Number > d.Max || d.Interval <= 0 {
			return false
		}
		return math.Abs(d.Snap(o.Number)-o.Number) < 1e-9
	default:
		return o.Numeric && o.Number >= d.Min && o.Number <= d.Max
	}
}

// Snap returns the interval step nearest v, rounded to the precision
// outcomes are compared at. Other domains return v unchanged.
func (d *Domain) Snap(v float64) float64 {
	if d.Type != DomainInterval || d.Interval <= 0 {
		return v
	}
	return d.step(math.Round((v - d.Min) / d.Interval))
}

func (d *Domain) step(i float64) float64 {
	return scoring.RoundNumber(d.Min + i*d.Interval)
}

func (d *Domain) clone() *Domain {
	if d == nil {
		return nil
	}
	c := *d
	c.Elements = append([]string(nil), d.Elements...)
	return &c
}

func (d *Domain) equal(o *Domain) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Type != o.Type || d.Min != o.Min || d.Max != o.Max || d.Interval != o.Interval || d.Unit != o.Unit {
		return false
	}
	if len(d.Elements) != len(o.Elements) {
		return false
	}
	for i := range d.Elements {
		if d.Elements[i] != o.Elements[i] {
			return false
		}
	}
	return true
}

// Objective is a named evaluation criterion. Abstract objectives own an
// ordered list of children; primitive objectives own a domain.
type Objective struct {
	Name        string        `json:"name"`
	Type        ObjectiveType `json:"type"`
	Description string        `json:"description,omitempty"`
	Color       string        `json:"color,omitempty"`
	Domain      *Domain       `json:"domain,omitempty"`
	Children    []*Objective  `json:"children,omitempty"`
}

// NewPrimitive returns a primitive objective over the given domain.
func NewPrimitive(name, color string, domain *Domain) *Objective {
	return &Objective{Name: name, Type: ObjectivePrimitive, Color: color, Domain: domain}
}

// NewAbstract returns an abstract objective owning the given children.
func NewAbstract(name string, children ...*Objective) *Objective {
	return &Objective{Name: name, Type: ObjectiveAbstract, Children: children}
}

func (o *Objective) IsPrimitive() bool { return o.Type == ObjectivePrimitive }

// Primitives returns the primitive objectives below o in depth-first order,
// including o itself when it is primitive.
func (o *Objective) Primitives() []*Objective {
	if o.IsPrimitive() {
		return []*Objective{o}
	}
	var out []*Objective
	for _, c := range o.Children {
		out = append(out, c.Primitives()...)
	}
	return out
}

// Walk visits o and every descendant depth-first, parents before children.
func (o *Objective) Walk(fn func(obj *Objective, depth int)) {
	o.walk(fn, 0)
}

func (o *Objective) walk(fn func(*Objective, int), depth int) {
	fn(o, depth)
	for _, c := range o.Children {
		c.walk(fn, depth+1)
	}
}

func (o *Objective) Clone() *Objective {
	c := &Objective{
		Name:        o.Name,
		Type:        o.Type,
		Description: o.Description,
		Color:       o.Color,
		Domain:      o.Domain.clone(),
	}
	if o.Children != nil {
		c.Children = make([]*Objective, len(o.Children))
		for i, child := range o.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

func (o *Objective) Equal(other *Objective) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.Name != other.Name || o.Type != other.Type || o.Description != other.Description || o.Color != other.Color {
		return false
	}
	if !o.Domain.equal(other.Domain) || len(o.Children) != len(other.Children) {
		return false
	}
	for i := range o.Children {
		if !o.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
