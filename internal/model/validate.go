package model

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateObjective    = errors.New("duplicate objective name")
	ErrObjectiveCycle        = errors.New("objective appears more than once in the tree")
	ErrInvalidObjective      = errors.New("invalid objective")
	ErrNoPrimitive           = errors.New("chart has no primitive objectives")
	ErrNoAlternatives        = errors.New("chart has no alternatives")
	ErrDuplicateAlternative  = errors.New("duplicate alternative name")
	ErrIncompleteAlternative = errors.New("alternative is missing outcomes")
	ErrIncompleteUser        = errors.New("user is incomplete")
	ErrDuplicateUser         = errors.New("duplicate user name")
)

// ValidateStructure checks the objective forest: unique names, no shared
// nodes, abstract objectives with children, primitive objectives with domains.
func (c *ValueChart) ValidateStructure() error {
	names := make(map[string]bool)
	seen := make(map[*Objective]bool)
	var check func(o *Objective) error
	check = func(o *Objective) error {
		if seen[o] {
			return fmt.Errorf("%w: %q", ErrObjectiveCycle, o.Name)
		}
		seen[o] = true
		if o.Name == "" {
			return fmt.Errorf("%w: empty name", ErrInvalidObjective)
		}
		if names[o.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateObjective, o.Name)
		}
		names[o.Name] = true
		switch o.Type {
		case ObjectivePrimitive:
			if o.Domain == nil {
				return fmt.Errorf("%w: primitive %q has no domain", ErrInvalidObjective, o.Name)
			}
			if len(o.Children) > 0 {
				return fmt.Errorf("%w: primitive %q has children", ErrInvalidObjective, o.Name)
			}
		case ObjectiveAbstract:
			if len(o.Children) == 0 {
				return fmt.Errorf("%w: abstract %q has no children", ErrInvalidObjective, o.Name)
			}
			for _, child := range o.Children {
				if err := check(child); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("%w: %q has unknown type %q", ErrInvalidObjective, o.Name, o.Type)
		}
		return nil
	}
	for _, root := range c.Objectives {
		if err := check(root); err != nil {
			return err
		}
	}
	if len(c.PrimitiveObjectives()) == 0 {
		return ErrNoPrimitive
	}
	return nil
}

// Validate checks everything the aggregation engine assumes about a chart.
func (c *ValueChart) Validate() error {
	if err := c.ValidateStructure(); err != nil {
		return err
	}
	if len(c.Alternatives) == 0 {
		return ErrNoAlternatives
	}
	primitives := c.PrimitiveObjectives()
	names := c.PrimitiveNames()

	altNames := make(map[string]bool)
	for _, a := range c.Alternatives {
		if altNames[a.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateAlternative, a.Name)
		}
		altNames[a.Name] = true
		for _, p := range primitives {
			v, ok := a.Value(p.Name)
			if !ok {
				return fmt.Errorf("%w: %q has no value for %q", ErrIncompleteAlternative, a.Name, p.Name)
			}
			if !p.Domain.Contains(v) {
				return fmt.Errorf("%w: %q value %s not in domain of %q", ErrIncompleteAlternative, a.Name, v, p.Name)
			}
		}
	}

	userNames := make(map[string]bool)
	for _, u := range c.Users {
		if userNames[u.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateUser, u.Name)
		}
		userNames[u.Name] = true
		if err := u.Complete(names); err != nil {
			return err
		}
	}
	return nil
}
