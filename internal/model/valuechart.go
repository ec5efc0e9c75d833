package model

import (
	"github.com/google/uuid"
)

// ChartType is derived from the number of users on a chart.
type ChartType string

const (
	ChartStructureOnly ChartType = "structure"
	ChartIndividual    ChartType = "individual"
	ChartGroup         ChartType = "group"
)

// ValueChart owns the objective forest, the alternatives and the users.
//
// Mutations that go through the methods below bump version counters that the
// aggregation engine uses to decide when its caches are stale. Callers that
// edit fields directly must call MarkStructureChanged or MarkUsersChanged.
type ValueChart struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Creator      string         `json:"creator,omitempty"`
	Objectives   []*Objective   `json:"objectives"`
	Alternatives []*Alternative `json:"alternatives"`
	Users        []*User        `json:"users"`

	structureVersion uint64
	usersVersion     uint64
}

// NewValueChart returns an empty chart with a fresh ID.
func NewValueChart(name, creator string) *ValueChart {
	return &ValueChart{ID: uuid.New(), Name: name, Creator: creator}
}

func (c *ValueChart) Type() ChartType {
	switch len(c.Users) {
	case 0:
		return ChartStructureOnly
	case 1:
		return ChartIndividual
	default:
		return ChartGroup
	}
}

// StructureVersion changes whenever the objective forest changes.
func (c *ValueChart) StructureVersion() uint64 { return c.structureVersion }

// UsersVersion changes whenever the user list changes.
func (c *ValueChart) UsersVersion() uint64 { return c.usersVersion }

func (c *ValueChart) MarkStructureChanged() { c.structureVersion++ }

func (c *ValueChart) MarkUsersChanged() { c.usersVersion++ }

// PrimitiveObjectives returns every primitive objective in row order.
func (c *ValueChart) PrimitiveObjectives() []*Objective {
	var out []*Objective
	for _, o := range c.Objectives {
		out = append(out, o.Primitives()...)
	}
	return out
}

// PrimitiveNames returns the names of PrimitiveObjectives.
func (c *ValueChart) PrimitiveNames() []string {
	prims := c.PrimitiveObjectives()
	names := make([]string, len(prims))
	for i, p := range prims {
		names[i] = p.Name
	}
	return names
}

// Objective finds an objective anywhere in the forest.
func (c *ValueChart) Objective(name string) *Objective {
	var found *Objective
	for _, root := range c.Objectives {
		root.Walk(func(o *Objective, _ int) {
			if found == nil && o.Name == name {
				found = o
			}
		})
	}
	return found
}

// Siblings returns the slice an objective lives in: the children of its
// parent, or the root list when parent is empty.
func (c *ValueChart) Siblings(parent string) ([]*Objective, bool) {
	if parent == "" {
		return c.Objectives, true
	}
	p := c.Objective(parent)
	if p == nil || p.IsPrimitive() {
		return nil, false
	}
	return p.Children, true
}

// SetObjectives replaces the objective forest.
func (c *ValueChart) SetObjectives(objectives []*Objective) {
	c.Objectives = objectives
	c.MarkStructureChanged()
}

func (c *ValueChart) Alternative(name string) *Alternative {
	for _, a := range c.Alternatives {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func (c *ValueChart) AlternativeNames() []string {
	names := make([]string, len(c.Alternatives))
	for i, a := range c.Alternatives {
		names[i] = a.Name
	}
	return names
}

// User returns the named user and its index, or nil and -1.
func (c *ValueChart) User(name string) (*User, int) {
	for i, u := range c.Users {
		if u.Name == name {
			return u, i
		}
	}
	return nil, -1
}

// PutUser adds a user, or replaces the existing user with the same name in place.
// It reports whether the user was newly added.
func (c *ValueChart) PutUser(u *User) bool {
	defer c.MarkUsersChanged()
	if _, i := c.User(u.Name); i >= 0 {
		c.Users[i] = u
		return false
	}
	c.Users = append(c.Users, u)
	return true
}

// RemoveUser deletes the named user and reports whether it existed.
func (c *ValueChart) RemoveUser(name string) bool {
	_, i := c.User(name)
	if i < 0 {
		return false
	}
	c.Users = append(c.Users[:i], c.Users[i+1:]...)
	c.MarkUsersChanged()
	return true
}

// Clone returns a deep copy sharing no mutable state with c.
func (c *ValueChart) Clone() *ValueChart {
	out := &ValueChart{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		Creator:          c.Creator,
		structureVersion: c.structureVersion,
		usersVersion:     c.usersVersion,
	}
	if c.Objectives != nil {
		out.Objectives = make([]*Objective, len(c.Objectives))
		for i, o := range c.Objectives {
			out.Objectives[i] = o.Clone()
		}
	}
	if c.Alternatives != nil {
		out.Alternatives = make([]*Alternative, len(c.Alternatives))
		for i, a := range c.Alternatives {
			out.Alternatives[i] = a.Clone()
		}
	}
	if c.Users != nil {
		out.Users = make([]*User, len(c.Users))
		for i, u := range c.Users {
			out.Users[i] = u.Clone()
		}
	}
	return out
}

// Equal deep-compares the content of two charts. Version counters are ignored.
func (c *ValueChart) Equal(o *ValueChart) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.ID != o.ID || c.Name != o.Name || c.Description != o.Description || c.Creator != o.Creator {
		return false
	}
	if len(c.Objectives) != len(o.Objectives) || len(c.Alternatives) != len(o.Alternatives) || len(c.Users) != len(o.Users) {
		return false
	}
	for i := range c.Objectives {
		if !c.Objectives[i].Equal(o.Objectives[i]) {
			return false
		}
	}
	for i := range c.Alternatives {
		if !c.Alternatives[i].Equal(o.Alternatives[i]) {
			return false
		}
	}
	for i := range c.Users {
		if !c.Users[i].Equal(o.Users[i]) {
			return false
		}
	}
	return true
}
