package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/ValueCharts/internal/aggregation"
	"github.com/MikeSquared-Agency/ValueCharts/internal/hermes"
	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/ordering"
	"github.com/MikeSquared-Agency/ValueCharts/internal/scoring"
	"github.com/MikeSquared-Agency/ValueCharts/internal/view"
)

// Create validates and stores a new chart. It is not opened until first used.
func (h *Hub) Create(ctx context.Context, c *model.ValueChart) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return h.store.CreateChart(ctx, c)
}

// Delete closes the chart's session and removes it from the store.
func (h *Hub) Delete(ctx context.Context, chartID uuid.UUID) error {
	if _, err := h.store.GetChart(ctx, chartID); err != nil {
		return err
	}
	if err := h.Close(ctx, chartID); err != nil {
		return err
	}
	return h.store.DeleteChart(ctx, chartID)
}

// Chart returns a deep copy of the live chart.
func (h *Hub) Chart(ctx context.Context, chartID uuid.UUID) (*model.ValueChart, error) {
	var out *model.ValueChart
	err := h.Do(ctx, "chart", chartID, func(s *Session) error {
		out = s.Chart.Clone()
		return nil
	})
	return out, err
}

func (h *Hub) Render(ctx context.Context, chartID uuid.UUID) (Render, error) {
	var out Render
	err := h.Do(ctx, "render", chartID, func(s *Session) error {
		out = s.Snapshot()
		return nil
	})
	return out, err
}

// ApplyEvent turns a chart event into the matching chart mutation. The
// aggregation engine always runs afterwards. Events without an Origin are
// local and are published once applied.
func (h *Hub) ApplyEvent(ctx context.Context, evt hermes.ChartEvent) error {
	if err := evt.Validate(); err != nil {
		return err
	}
	origin := "remote"
	if evt.Origin == "" {
		origin = "local"
	}
	err := h.Do(ctx, string(evt.Type), evt.ChartID, func(s *Session) error {
		if err := s.applyEvent(evt); err != nil {
			return err
		}
		s.ForceRender()
		if evt.Origin == "" {
			s.Emit(evt)
		}
		return nil
	})
	if err != nil {
		return err
	}
	h.applied.Add(1)
	h.metrics.Events.WithLabelValues(string(evt.Type), origin).Inc()
	return nil
}

func (s *Session) applyEvent(evt hermes.ChartEvent) error {
	switch evt.Type {
	case hermes.UserAdded, hermes.UserChanged:
		u := evt.User.Clone()
		if u.ScoreFunctions == nil || u.ScoreFunctions.Len() == 0 {
			u.ScoreFunctions = s.Chart.DefaultScoreFunctions()
		}
		if err := u.Complete(s.Chart.PrimitiveNames()); err != nil {
			return err
		}
		if s.rescaleOnEdit {
			u.ScoreFunctions.Rescale()
		}
		s.Chart.PutUser(u)
	case hermes.UserRemoved:
		if !s.Chart.RemoveUser(evt.UserName) {
			return fmt.Errorf("remove %q: %w", evt.UserName, ErrUnknownUser)
		}
		if s.Displayed != nil {
			s.Displayed = without(s.Displayed, evt.UserName)
		}
	case hermes.StructureChanged:
		return s.replaceStructure(evt.Objectives, evt.Alternatives)
	default:
		return fmt.Errorf("unknown event type %q", evt.Type)
	}
	return nil
}

// replaceStructure swaps in new objectives, and alternatives when given. The
// chart must still validate afterwards, otherwise nothing changes.
func (s *Session) replaceStructure(objectives []*model.Objective, alternatives []*model.Alternative) error {
	c := s.Chart
	prevObjectives, prevAlternatives := c.Objectives, c.Alternatives

	next := make([]*model.Objective, len(objectives))
	for i, o := range objectives {
		next[i] = o.Clone()
	}
	c.SetObjectives(next)
	if alternatives != nil {
		c.Alternatives = make([]*model.Alternative, len(alternatives))
		for i, a := range alternatives {
			c.Alternatives[i] = a.Clone()
		}
	}
	if err := c.Validate(); err != nil {
		c.SetObjectives(prevObjectives)
		c.Alternatives = prevAlternatives
		return err
	}
	if alternatives != nil {
		s.ordering.Rebase()
		if s.rescaleOnEdit && c.RescaleScoreFunctions() {
			s.logger.Info("score functions rescaled after alternatives changed", "chart_id", c.ID)
		}
	}
	s.journal.Clear()
	s.aggregation.Invalidate()
	return nil
}

// PutUser adds or replaces a user and broadcasts the matching event.
func (h *Hub) PutUser(ctx context.Context, chartID uuid.UUID, u *model.User) (bool, error) {
	var (
		added bool
		t     = hermes.UserChanged
	)
	err := h.Do(ctx, "put_user", chartID, func(s *Session) error {
		existing, _ := s.Chart.User(u.Name)
		if existing == nil {
			t = hermes.UserAdded
		}
		evt := hermes.NewChartEvent(t, chartID)
		evt.User = u.Clone()
		if err := s.applyEvent(evt); err != nil {
			return err
		}
		added = existing == nil
		s.ForceRender()
		s.Emit(evt)
		return nil
	})
	if err == nil {
		h.applied.Add(1)
		h.metrics.Events.WithLabelValues(string(t), "local").Inc()
	}
	return added, err
}

func (h *Hub) RemoveUser(ctx context.Context, chartID uuid.UUID, name string) error {
	evt := hermes.NewChartEvent(hermes.UserRemoved, chartID)
	evt.UserName = name
	return h.ApplyEvent(ctx, evt)
}

func (h *Hub) SetStructure(ctx context.Context, chartID uuid.UUID, objectives []*model.Objective, alternatives []*model.Alternative) error {
	evt := hermes.NewChartEvent(hermes.StructureChanged, chartID)
	evt.Objectives = objectives
	evt.Alternatives = alternatives
	return h.ApplyEvent(ctx, evt)
}

// SetWeight changes one of a user's weights, renormalizing the rest so the
// map still sums to 1. The change is journaled.
func (h *Hub) SetWeight(ctx context.Context, chartID uuid.UUID, user, objective string, weight float64) error {
	return h.Do(ctx, "set_weight", chartID, func(s *Session) error {
		if o := s.Chart.Objective(objective); o == nil || !o.IsPrimitive() {
			return fmt.Errorf("set weight: %w: %q", ordering.ErrUnknownObjective, objective)
		}
		primitives := s.Chart.PrimitiveNames()
		r, changed, err := s.ordering.EditWeights(user, func(m *scoring.WeightMap) error {
			return redistribute(m, objective, weight, primitives)
		})
		if err != nil {
			return mapOrderingError(err)
		}
		if !changed {
			return nil
		}
		s.journal.Push(r)
		s.emitUser(chartID, user)
		return nil
	})
}

// redistribute sets objective to weight and rescales the other primitives
// so the map sums to 1. When the others all weigh 0 the remainder is split
// evenly between them.
func redistribute(m *scoring.WeightMap, objective string, weight float64, primitives []string) error {
	if weight > 1 {
		return fmt.Errorf("%w: %s=%v exceeds 1", scoring.ErrInvalidWeight, objective, weight)
	}
	others := make([]string, 0, len(primitives))
	rest := 0.0
	for _, name := range primitives {
		if name == objective {
			continue
		}
		others = append(others, name)
		w, _ := m.Weight(name)
		rest += w
	}
	if len(others) == 0 && weight != 1 {
		return fmt.Errorf("%w: %s is the only objective and must weigh 1", scoring.ErrInvalidWeight, objective)
	}
	if err := m.Set(objective, weight); err != nil {
		return err
	}
	for _, name := range others {
		nw := (1 - weight) / float64(len(others))
		if rest > 0 {
			w, _ := m.Weight(name)
			nw = w * (1 - weight) / rest
		}
		if err := m.Set(name, nw); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) emitUser(chartID uuid.UUID, name string) {
	u, _ := s.Chart.User(name)
	if u == nil {
		return
	}
	evt := hermes.NewChartEvent(hermes.UserChanged, chartID)
	evt.User = u.Clone()
	s.Emit(evt)
}

func (s *Session) emitStructure(chartID uuid.UUID) {
	evt := hermes.NewChartEvent(hermes.StructureChanged, chartID)
	for _, o := range s.Chart.Objectives {
		evt.Objectives = append(evt.Objectives, o.Clone())
	}
	s.Emit(evt)
}

// SortRequest selects an alternative ordering strategy.
type SortRequest struct {
	Strategy   string   `json:"strategy"`
	Objectives []string `json:"objectives,omitempty"`
	From       int      `json:"from,omitempty"`
	To         int      `json:"to,omitempty"`
}

// Sort reorders the chart's alternatives and journals the change. It
// reports whether the order changed.
func (h *Hub) Sort(ctx context.Context, chartID uuid.UUID, req SortRequest) (bool, error) {
	var changed bool
	err := h.Do(ctx, "sort_"+req.Strategy, chartID, func(s *Session) error {
		var (
			r   ordering.Record
			err error
		)
		e := s.ordering
		switch req.Strategy {
		case ordering.StrategyObjectives:
			objectives := req.Objectives
			if len(objectives) == 0 {
				objectives = s.Chart.PrimitiveNames()
			}
			r, changed, err = e.SortByObjectives(objectives, s.rows)
		case ordering.StrategyAlphabetical:
			r, changed = e.SortAlphabetically(s.rows)
		case ordering.StrategyManual:
			r, changed, err = e.Move(req.From, req.To, s.rows)
		case ordering.StrategyReset:
			r, changed = e.Reset(s.rows)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownStrategy, req.Strategy)
		}
		if err != nil {
			return err
		}
		if changed {
			s.journal.Push(r)
		}
		return nil
	})
	return changed, err
}

// ReorderObjectives moves a child objective within its parent and journals it.
func (h *Hub) ReorderObjectives(ctx context.Context, chartID uuid.UUID, parent string, from, to int) (bool, error) {
	var changed bool
	err := h.Do(ctx, "reorder_objectives", chartID, func(s *Session) error {
		r, ok, err := s.ordering.ReorderObjectives(parent, from, to)
		if err != nil {
			return err
		}
		changed = ok
		if ok {
			s.journal.Push(r)
			s.emitStructure(chartID)
		}
		return nil
	})
	return changed, err
}

// Undo reverts the most recent journaled change.
func (h *Hub) Undo(ctx context.Context, chartID uuid.UUID) (ordering.Record, error) {
	var out ordering.Record
	err := h.Do(ctx, "undo", chartID, func(s *Session) error {
		r, ok := s.journal.Undo()
		if !ok {
			return ErrNothingToUndo
		}
		if err := s.ordering.Revert(r, s.rows); err != nil {
			return err
		}
		s.emitFor(chartID, r)
		out = detach(r)
		return nil
	})
	return out, err
}

// Redo reapplies the most recently undone change.
func (h *Hub) Redo(ctx context.Context, chartID uuid.UUID) (ordering.Record, error) {
	var out ordering.Record
	err := h.Do(ctx, "redo", chartID, func(s *Session) error {
		r, ok := s.journal.Redo()
		if !ok {
			return ErrNothingToRedo
		}
		if err := s.ordering.Reapply(r, s.rows); err != nil {
			return err
		}
		s.emitFor(chartID, r)
		out = detach(r)
		return nil
	})
	return out, err
}

// detach copies the weight snapshots so the record can leave the writer.
func detach(r ordering.Record) ordering.Record {
	if r.BeforeWeights != nil {
		r.BeforeWeights = r.BeforeWeights.Clone()
	}
	if r.AfterWeights != nil {
		r.AfterWeights = r.AfterWeights.Clone()
	}
	return r
}

func (s *Session) emitFor(chartID uuid.UUID, r ordering.Record) {
	switch r.Kind {
	case ordering.KindWeights:
		s.emitUser(chartID, r.User)
	case ordering.KindObjectives:
		s.emitStructure(chartID)
	}
}

func (h *Hub) SetView(ctx context.Context, chartID uuid.UUID, v view.Config) error {
	if err := v.Validate(); err != nil {
		return err
	}
	return h.Do(ctx, "set_view", chartID, func(s *Session) error {
		s.View = v
		return nil
	})
}

func (h *Hub) SetInteraction(ctx context.Context, chartID uuid.UUID, ic view.InteractionConfig) error {
	if err := ic.Validate(); err != nil {
		return err
	}
	return h.Do(ctx, "set_interaction", chartID, func(s *Session) error {
		s.Interaction = ic
		return nil
	})
}

func (h *Hub) SetSize(ctx context.Context, chartID uuid.UUID, size view.Size) error {
	if err := size.Validate(); err != nil {
		return err
	}
	return h.Do(ctx, "set_size", chartID, func(s *Session) error {
		s.Size = size
		return nil
	})
}

// SetDisplayedUsers limits the rendered users; nil shows everyone.
func (h *Hub) SetDisplayedUsers(ctx context.Context, chartID uuid.UUID, names []string) error {
	return h.Do(ctx, "set_displayed_users", chartID, func(s *Session) error {
		for _, name := range names {
			if u, _ := s.Chart.User(name); u == nil {
				return fmt.Errorf("display %q: %w", name, ErrUnknownUser)
			}
		}
		if names == nil {
			s.Displayed = nil
		} else {
			s.Displayed = append([]string{}, names...)
		}
		return nil
	})
}

// Explain returns the utility breakdown of one alternative for one user.
func (h *Hub) Explain(ctx context.Context, chartID uuid.UUID, alternative, user string) (aggregation.AlternativeScore, error) {
	var out aggregation.AlternativeScore
	err := h.Do(ctx, "explain", chartID, func(s *Session) error {
		u, err := s.user(user)
		if err != nil {
			return err
		}
		alt := s.Chart.Alternative(alternative)
		if alt == nil {
			return fmt.Errorf("explain %q: %w", alternative, ErrUnknownAlternative)
		}
		out = aggregation.ScoreAlternative(s.Chart, u, alt)
		return nil
	})
	return out, err
}

// Ranking returns every alternative scored for user, best first.
func (h *Hub) Ranking(ctx context.Context, chartID uuid.UUID, user string) ([]aggregation.AlternativeScore, error) {
	var out []aggregation.AlternativeScore
	err := h.Do(ctx, "ranking", chartID, func(s *Session) error {
		u, err := s.user(user)
		if err != nil {
			return err
		}
		out = aggregation.ScoreAlternatives(s.Chart, u)
		return nil
	})
	return out, err
}

// Pareto returns the names of the alternatives no other alternative
// dominates for user.
func (h *Hub) Pareto(ctx context.Context, chartID uuid.UUID, user string) ([]string, error) {
	var out []string
	err := h.Do(ctx, "pareto", chartID, func(s *Session) error {
		u, err := s.user(user)
		if err != nil {
			return err
		}
		for _, alt := range aggregation.ComputeFrontier(s.Chart, u) {
			out = append(out, alt.Name)
		}
		return nil
	})
	return out, err
}

// user resolves name, or the first user when name is empty.
func (s *Session) user(name string) (*model.User, error) {
	if name == "" {
		if len(s.Chart.Users) == 0 {
			return nil, ordering.ErrNoUser
		}
		return s.Chart.Users[0], nil
	}
	u, _ := s.Chart.User(name)
	if u == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUser, name)
	}
	return u, nil
}

func mapOrderingError(err error) error {
	if errors.Is(err, ordering.ErrUnknownUser) {
		return fmt.Errorf("%w: %v", ErrUnknownUser, err)
	}
	return err
}

func without(names []string, name string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
