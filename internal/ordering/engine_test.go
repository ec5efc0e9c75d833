package ordering

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/ValueCharts/internal/aggregation"
	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/model/modeltest"
	"github.com/MikeSquared-Agency/ValueCharts/internal/scoring"
)

func rowsFor(c *model.ValueChart) []aggregation.RowData {
	e := aggregation.NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return e.RowData(c, c.Users)
}

func assertAligned(t *testing.T, c *model.ValueChart, rows []aggregation.RowData) {
	t.Helper()
	for _, row := range rows {
		for i, cell := range row.Cells {
			assert.Same(t, c.Alternatives[i], cell.Alternative, "row %s column %d", row.Name, i)
		}
	}
}

func TestPermute(t *testing.T) {
	assert.Equal(t, []string{"c", "a", "b"}, Permute([]string{"a", "b", "c"}, []int{2, 0, 1}))
	assert.Empty(t, Permute([]int{}, nil))
}

func TestMoveOrder(t *testing.T) {
	order, err := moveOrder(4, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0, 3}, order)

	order, err = moveOrder(4, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0, 1, 2}, order)

	_, err = moveOrder(4, 4, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = moveOrder(4, 0, -1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSortByObjectives(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	rows := rowsFor(c)
	e := NewEngine(c)

	r, changed, err := e.SortByObjectives([]string{"rate"}, rows)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, KindAlternatives, r.Kind)
	assert.Equal(t, StrategyObjectives, r.Strategy)
	assert.Equal(t, []string{"Sheraton", "BestWestern", "Hyatt", "Marriott", "HolidayInn", "Ramada"}, r.Before)
	assert.Equal(t, []string{"BestWestern", "HolidayInn", "Ramada", "Sheraton", "Marriott", "Hyatt"}, r.After)
	assert.Equal(t, r.After, c.AlternativeNames())
	assertAligned(t, c, rows)
}

func TestSortByObjectivesIsStable(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	e := NewEngine(c)

	// BestWestern and HolidayInn tie on rate; put HolidayInn first.
	_, _, err := e.Move(4, 0, nil)
	require.NoError(t, err)

	_, _, err = e.SortByObjectives([]string{"rate"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"HolidayInn", "BestWestern", "Ramada", "Sheraton", "Marriott", "Hyatt"}, c.AlternativeNames())
}

func TestSortByObjectivesErrors(t *testing.T) {
	_, _, err := NewEngine(modeltest.HotelChart()).SortByObjectives([]string{"rate"}, nil)
	assert.ErrorIs(t, err, ErrNoUser)

	_, _, err = NewEngine(modeltest.HotelChart("Aaron")).SortByObjectives([]string{"room"}, nil)
	assert.ErrorIs(t, err, ErrUnknownObjective)
}

func TestSortAlphabeticallyIgnoresCase(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	c.Alternative("Ramada").Name = "ramada"
	rows := rowsFor(c)
	e := NewEngine(c)

	_, changed := e.SortAlphabetically(rows)
	assert.True(t, changed)
	assert.Equal(t, []string{"BestWestern", "HolidayInn", "Hyatt", "Marriott", "ramada", "Sheraton"}, c.AlternativeNames())
	assertAligned(t, c, rows)

	r, changed := e.SortAlphabetically(rows)
	assert.False(t, changed, "already sorted")
	assert.Equal(t, Record{}, r)
}

func TestResetRestoresLoadOrder(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	original := append([]*model.Alternative(nil), c.Alternatives...)
	rows := rowsFor(c)
	e := NewEngine(c)

	e.SortAlphabetically(rows)
	_, changed := e.Reset(rows)
	assert.True(t, changed)

	require.Len(t, c.Alternatives, len(original))
	for i := range original {
		assert.Same(t, original[i], c.Alternatives[i])
	}
	assertAligned(t, c, rows)
	assert.Equal(t, c.AlternativeNames(), e.InitialOrder())
}

func TestMove(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	rows := rowsFor(c)
	e := NewEngine(c)

	r, changed, err := e.Move(0, 5, rows)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StrategyManual, r.Strategy)
	assert.Equal(t, []string{"BestWestern", "Hyatt", "Marriott", "HolidayInn", "Ramada", "Sheraton"}, c.AlternativeNames())
	assertAligned(t, c, rows)

	_, changed, err = e.Move(2, 2, rows)
	require.NoError(t, err)
	assert.False(t, changed)

	_, _, err = e.Move(0, 6, rows)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestUndoRedoAlternatives(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	rows := rowsFor(c)
	e := NewEngine(c)
	j := NewJournal(0)
	loaded := c.AlternativeNames()

	r, _ := e.SortAlphabetically(rows)
	j.Push(r)
	sorted := c.AlternativeNames()

	undo, ok := j.Undo()
	require.True(t, ok)
	require.NoError(t, e.Revert(undo, rows))
	assert.Equal(t, loaded, c.AlternativeNames())
	assertAligned(t, c, rows)

	redo, ok := j.Redo()
	require.True(t, ok)
	require.NoError(t, e.Reapply(redo, rows))
	assert.Equal(t, sorted, c.AlternativeNames())
	assertAligned(t, c, rows)
}

func TestReorderObjectives(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	e := NewEngine(c)
	v := c.StructureVersion()

	r, changed, err := e.ReorderObjectives("hotel", 2, 0)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "hotel", r.Parent)
	assert.Equal(t, []string{"location", "room", "rate"}, r.Before)
	assert.Equal(t, []string{"rate", "location", "room"}, r.After)
	assert.Equal(t, []string{"rate", "area", "skytrain-distance", "size", "internet-access"}, c.PrimitiveNames())
	assert.Greater(t, c.StructureVersion(), v)

	require.NoError(t, e.Revert(r, nil))
	assert.Equal(t, []string{"area", "skytrain-distance", "size", "internet-access", "rate"}, c.PrimitiveNames())

	_, _, err = e.ReorderObjectives("rate", 0, 0)
	assert.ErrorIs(t, err, ErrUnknownObjective)
	_, _, err = e.ReorderObjectives("", 0, 1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestEditWeightsRecordsSnapshots(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	e := NewEngine(c)
	before := c.Users[0].Weights

	r, changed, err := e.EditWeights("Aaron", func(m *scoring.WeightMap) error {
		return m.Set("rate", 0.5)
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, KindWeights, r.Kind)
	assert.Equal(t, 0.5, c.Users[0].Weight("rate"))
	assert.Equal(t, 0.4, before.ToMap()["rate"], "previous map is not mutated")

	// Mutating the live map must not leak into the record.
	require.NoError(t, c.Users[0].Weights.Set("rate", 0.7))
	w, _ := r.AfterWeights.Weight("rate")
	assert.Equal(t, 0.5, w)

	require.NoError(t, e.Revert(r, nil))
	assert.Equal(t, 0.4, c.Users[0].Weight("rate"))
	require.NoError(t, e.Reapply(r, nil))
	assert.Equal(t, 0.5, c.Users[0].Weight("rate"))

	_, changed, err = e.EditWeights("Aaron", func(m *scoring.WeightMap) error { return nil })
	require.NoError(t, err)
	assert.False(t, changed)

	_, _, err = e.EditWeights("Aaron", func(m *scoring.WeightMap) error { return m.Set("rate", -1) })
	assert.ErrorIs(t, err, scoring.ErrInvalidWeight)

	_, _, err = e.EditWeights("Nobody", func(m *scoring.WeightMap) error { return nil })
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestJournal(t *testing.T) {
	j := NewJournal(2)
	assert.False(t, j.CanUndo())
	_, ok := j.Undo()
	assert.False(t, ok)

	a, b, c := newRecord(KindAlternatives, "a"), newRecord(KindAlternatives, "b"), newRecord(KindAlternatives, "c")
	j.Push(a)
	j.Push(b)
	j.Push(c)

	got, _ := j.Undo()
	assert.Equal(t, c.ID, got.ID)
	got, _ = j.Undo()
	assert.Equal(t, b.ID, got.ID)
	_, ok = j.Undo()
	assert.False(t, ok, "limit dropped the oldest entry")

	assert.True(t, j.CanRedo())
	j.Push(a)
	assert.False(t, j.CanRedo(), "push clears redo")

	j.Clear()
	assert.False(t, j.CanUndo())
}
