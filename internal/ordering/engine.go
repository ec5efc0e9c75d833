package ordering

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/cases"

	"github.com/MikeSquared-Agency/ValueCharts/internal/aggregation"
	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/scoring"
)

var (
	ErrNoUser           = errors.New("chart has no users")
	ErrUnknownObjective = errors.New("unknown objective")
	ErrUnknownUser      = errors.New("unknown user")
)

// Strategy names, as used in Records and by the HTTP API.
const (
	StrategyObjectives   = "objectives"
	StrategyAlphabetical = "alphabetical"
	StrategyManual       = "manual"
	StrategyReset        = "reset"
	StrategyReorder      = "reorder"
	StrategyUndo         = "undo"
	StrategyRedo         = "redo"
)

// Engine is the single ordering authority for one chart. Alternative
// permutations are applied to the chart's alternative list and to the cells
// of any row data passed in, so columns and cells stay index-aligned.
type Engine struct {
	chart   *model.ValueChart
	initial []string
}

// NewEngine snapshots the chart's current alternative order as the order
// Reset returns to.
func NewEngine(c *model.ValueChart) *Engine {
	return &Engine{chart: c, initial: c.AlternativeNames()}
}

// Rebase retakes the reset snapshot, for when the alternatives were replaced.
func (e *Engine) Rebase() {
	e.initial = e.chart.AlternativeNames()
}

// InitialOrder returns a copy of the alternative order captured at load.
func (e *Engine) InitialOrder() []string {
	return append([]string(nil), e.initial...)
}

// SortByObjectives orders alternatives by the first user's weighted score
// summed over the given objectives, highest first. Ties keep their current
// relative order.
func (e *Engine) SortByObjectives(objectives []string, rows []aggregation.RowData) (Record, bool, error) {
	if len(e.chart.Users) == 0 {
		return Record{}, false, ErrNoUser
	}
	for _, name := range objectives {
		if o := e.chart.Objective(name); o == nil || !o.IsPrimitive() {
			return Record{}, false, fmt.Errorf("sort by %q: %w", name, ErrUnknownObjective)
		}
	}
	u := e.chart.Users[0]
	totals := make([]float64, len(e.chart.Alternatives))
	for i, alt := range e.chart.Alternatives {
		totals[i] = aggregation.ScoreAlternativeOn(objectives, u, alt).TotalScore
	}
	order := identity(len(totals))
	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})
	return e.applyAlternatives(StrategyObjectives, order, rows), !isIdentity(order), nil
}

// SortAlphabetically orders alternatives by name, ascending, ignoring case.
func (e *Engine) SortAlphabetically(rows []aggregation.RowData) (Record, bool) {
	fold := cases.Fold()
	keys := make([]string, len(e.chart.Alternatives))
	for i, alt := range e.chart.Alternatives {
		keys[i] = fold.String(alt.Name)
	}
	order := identity(len(keys))
	sort.SliceStable(order, func(i, j int) bool {
		return keys[order[i]] < keys[order[j]]
	})
	return e.applyAlternatives(StrategyAlphabetical, order, rows), !isIdentity(order)
}

// Move removes the alternative at from and reinserts it at to.
func (e *Engine) Move(from, to int, rows []aggregation.RowData) (Record, bool, error) {
	order, err := moveOrder(len(e.chart.Alternatives), from, to)
	if err != nil {
		return Record{}, false, err
	}
	return e.applyAlternatives(StrategyManual, order, rows), !isIdentity(order), nil
}

// Reset restores the alternative order captured by NewEngine or Rebase.
func (e *Engine) Reset(rows []aggregation.RowData) (Record, bool) {
	order := orderByNames(e.chart.AlternativeNames(), e.initial)
	return e.applyAlternatives(StrategyReset, order, rows), !isIdentity(order)
}

// applyAlternatives records the current order, then permutes. Nothing is
// touched and an empty Record is returned when order is the identity.
func (e *Engine) applyAlternatives(strategy string, order []int, rows []aggregation.RowData) Record {
	if isIdentity(order) {
		return Record{}
	}
	r := newRecord(KindAlternatives, strategy)
	r.Before = e.chart.AlternativeNames()
	e.permuteAlternatives(order, rows)
	r.After = e.chart.AlternativeNames()
	return r
}

func (e *Engine) permuteAlternatives(order []int, rows []aggregation.RowData) {
	permuteInPlace(e.chart.Alternatives, order)
	for i := range rows {
		if len(rows[i].Cells) == len(order) {
			permuteInPlace(rows[i].Cells, order)
		}
	}
}

// ReorderObjectives moves the child at from to to within parent's children,
// or within the root list when parent is empty. Rows and labels follow the
// objective order, so the chart is marked structurally changed.
func (e *Engine) ReorderObjectives(parent string, from, to int) (Record, bool, error) {
	siblings, ok := e.chart.Siblings(parent)
	if !ok {
		return Record{}, false, fmt.Errorf("reorder children of %q: %w", parent, ErrUnknownObjective)
	}
	order, err := moveOrder(len(siblings), from, to)
	if err != nil {
		return Record{}, false, err
	}
	if isIdentity(order) {
		return Record{}, false, nil
	}
	r := newRecord(KindObjectives, StrategyReorder)
	r.Parent = parent
	r.Before = objectiveNames(siblings)
	permuteInPlace(siblings, order)
	r.After = objectiveNames(siblings)
	e.chart.MarkStructureChanged()
	return r, true, nil
}

// EditWeights applies edit to a copy of the user's weights and, when it
// succeeds and changes something, installs the copy and returns a Record of
// the change.
func (e *Engine) EditWeights(user string, edit func(*scoring.WeightMap) error) (Record, bool, error) {
	u, _ := e.chart.User(user)
	if u == nil {
		return Record{}, false, fmt.Errorf("edit weights of %q: %w", user, ErrUnknownUser)
	}
	next := u.Weights.Clone()
	if err := edit(next); err != nil {
		return Record{}, false, err
	}
	if next.Equal(u.Weights) {
		return Record{}, false, nil
	}
	r := newRecord(KindWeights, "")
	r.User = user
	r.BeforeWeights = u.Weights.Clone()
	r.AfterWeights = next.Clone()
	u.Weights = next
	e.chart.MarkUsersChanged()
	return r, true, nil
}

// Revert undoes r against the chart.
func (e *Engine) Revert(r Record, rows []aggregation.RowData) error {
	return e.restore(r, r.Before, r.BeforeWeights, rows)
}

// Reapply redoes r against the chart.
func (e *Engine) Reapply(r Record, rows []aggregation.RowData) error {
	return e.restore(r, r.After, r.AfterWeights, rows)
}

func (e *Engine) restore(r Record, names []string, weights *scoring.WeightMap, rows []aggregation.RowData) error {
	switch r.Kind {
	case KindAlternatives:
		order := orderByNames(e.chart.AlternativeNames(), names)
		if !isIdentity(order) {
			e.permuteAlternatives(order, rows)
		}
	case KindObjectives:
		siblings, ok := e.chart.Siblings(r.Parent)
		if !ok {
			return fmt.Errorf("restore children of %q: %w", r.Parent, ErrUnknownObjective)
		}
		order := orderByNames(objectiveNames(siblings), names)
		if !isIdentity(order) {
			permuteInPlace(siblings, order)
			e.chart.MarkStructureChanged()
		}
	case KindWeights:
		u, _ := e.chart.User(r.User)
		if u == nil {
			return fmt.Errorf("restore weights of %q: %w", r.User, ErrUnknownUser)
		}
		u.Weights = weights.Clone()
		e.chart.MarkUsersChanged()
	default:
		return fmt.Errorf("unknown record kind %q", r.Kind)
	}
	return nil
}

func objectiveNames(objectives []*model.Objective) []string {
	names := make([]string, len(objectives))
	for i, o := range objectives {
		names[i] = o.Name
	}
	return names
}
