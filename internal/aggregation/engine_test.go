package aggregation

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/model/modeltest"
	"github.com/MikeSquared-Agency/ValueCharts/internal/scoring"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func twoObjectiveChart(t *testing.T, weights ...map[string]float64) *model.ValueChart {
	t.Helper()
	dom := &model.Domain{Type: model.DomainContinuous, Min: 0, Max: 1}
	c := model.NewValueChart("two", "test")
	c.Objectives = []*model.Objective{model.NewPrimitive("A", "", dom), model.NewPrimitive("B", "", dom)}
	alt := model.NewAlternative("x", "")
	alt.SetValue("A", scoring.Number(1))
	alt.SetValue("B", scoring.Number(1))
	c.Alternatives = []*model.Alternative{alt}
	for i, w := range weights {
		u := model.NewUser(string(rune('p'+i)), "")
		for name, v := range w {
			require.NoError(t, u.Weights.Set(name, v))
		}
		u.ScoreFunctions = c.DefaultScoreFunctions()
		c.PutUser(u)
	}
	return c
}

func TestMaximumWeightMapGroup(t *testing.T) {
	c := twoObjectiveChart(t,
		map[string]float64{"A": 0.2, "B": 0.05},
		map[string]float64{"A": 0.05, "B": 0.4},
	)
	e := NewEngine(discardLogger())

	m := e.MaximumWeightMap(c)
	assert.Equal(t, map[string]float64{"A": 0.2, "B": 0.4}, m.ToMap())
}

func TestMaximumWeightMapMissingEntriesCountAsZero(t *testing.T) {
	c := twoObjectiveChart(t,
		map[string]float64{"A": 0.2},
		map[string]float64{"A": 0.1},
	)
	m := NewEngine(discardLogger()).MaximumWeightMap(c)
	w, ok := m.Weight("B")
	assert.True(t, ok)
	assert.Equal(t, 0.0, w)
}

func TestMaximumWeightMapIndividualIsByReference(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	m := NewEngine(discardLogger()).MaximumWeightMap(c)
	assert.Same(t, c.Users[0].Weights, m)
}

func TestMaximumWeightMapDefault(t *testing.T) {
	c := modeltest.HotelChart()
	m := NewEngine(discardLogger()).MaximumWeightMap(c)

	sixth, third := 1.0/6, 1.0/3
	for name, want := range map[string]float64{
		"area": sixth, "skytrain-distance": sixth, "size": sixth, "internet-access": sixth, "rate": third,
	} {
		got, ok := m.Weight(name)
		require.True(t, ok, name)
		assert.InDelta(t, want, got, 1e-12, name)
	}
	assert.InDelta(t, 1.0, m.Total(), 1e-12)
}

func TestMaximumWeightMapCaching(t *testing.T) {
	c := modeltest.HotelChart("Aaron", "Bob")
	e := NewEngine(discardLogger())

	first := e.MaximumWeightMap(c)
	assert.Same(t, first, e.MaximumWeightMap(c), "reused while nothing changed")

	require.NoError(t, c.Users[1].Weights.Set("rate", 0.6))
	second := e.MaximumWeightMap(c)
	assert.NotSame(t, first, second)
	w, _ := second.Weight("rate")
	assert.Equal(t, 0.6, w)

	c.RemoveUser("Bob")
	assert.Same(t, c.Users[0].Weights, e.MaximumWeightMap(c))

	c.PutUser(modeltest.HotelUser("Bob", "", modeltest.BobWeights))
	third := e.MaximumWeightMap(c)
	w, _ = third.Weight("size")
	assert.Equal(t, 0.3, w)
}

func TestRowDataOffsets(t *testing.T) {
	c := modeltest.HotelChart("Aaron", "Bob")
	e := NewEngine(discardLogger())
	rows := e.RowData(c, c.Users)

	require.Len(t, rows, 5)
	wantOrder := []string{"area", "skytrain-distance", "size", "internet-access", "rate"}
	wantWeightOffsets := []float64{0, 0.2, 0.5, 0.8, 1.0}
	for i, row := range rows {
		assert.Equal(t, wantOrder[i], row.Name)
		assert.InDelta(t, wantWeightOffsets[i], row.WeightOffset, 1e-12, row.Name)
		require.Len(t, row.Cells, 6)
	}

	// Sheraton for Aaron: contributions .05, .025, .1, .2, .2
	wantOffsets := []float64{0, 0.05, 0.075, 0.175, 0.375}
	for i, row := range rows {
		cell := row.Cells[0]
		assert.Equal(t, "Sheraton", cell.Name)
		require.Len(t, cell.UserScores, 2)
		aaron := cell.UserScores[0]
		assert.Equal(t, "Aaron", aaron.Name)
		assert.InDelta(t, wantOffsets[i], aaron.Offset, 1e-12, row.Name)
	}
	last := rows[4].Cells[0].UserScores[0]
	assert.InDelta(t, 0.575, last.Offset+last.Contribution(), 1e-12)
}

func TestRowDataOffsetExcludesOwnRow(t *testing.T) {
	dom := &model.Domain{Type: model.DomainContinuous, Min: 0, Max: 1}
	c := model.NewValueChart("r", "test")
	c.Objectives = []*model.Objective{model.NewPrimitive("R1", "", dom), model.NewPrimitive("R2", "", dom)}
	alt := model.NewAlternative("x", "")
	alt.SetValue("R1", scoring.Number(0.5))
	alt.SetValue("R2", scoring.Number(1))
	c.Alternatives = []*model.Alternative{alt}
	u := model.NewUser("u", "")
	require.NoError(t, u.Weights.Set("R1", 0.3))
	require.NoError(t, u.Weights.Set("R2", 0.2))
	u.ScoreFunctions = c.DefaultScoreFunctions()
	c.PutUser(u)

	rows := NewEngine(discardLogger()).RowData(c, c.Users)
	assert.Equal(t, 0.0, rows[0].Cells[0].UserScores[0].Offset)
	assert.InDelta(t, 0.15, rows[1].Cells[0].UserScores[0].Offset, 1e-12)
	assert.InDelta(t, 0.3, rows[1].WeightOffset, 1e-12)
}

func TestRowDataOffsetsResetPerUserAndAlternative(t *testing.T) {
	c := modeltest.HotelChart("Aaron", "Bob")
	rows := NewEngine(discardLogger()).RowData(c, c.Users)
	for j := range c.Alternatives {
		for k := range c.Users {
			assert.Equal(t, 0.0, rows[0].Cells[j].UserScores[k].Offset)
		}
	}
	// Bob's Sheraton offset on the second row is his own area contribution only.
	bob := rows[1].Cells[0].UserScores[1]
	assert.Equal(t, "Bob", bob.Name)
	assert.InDelta(t, 0.05*0.25, bob.Offset, 1e-12)
}

func TestRowDataDisplayedSubset(t *testing.T) {
	c := modeltest.HotelChart("Aaron", "Bob")
	rows := NewEngine(discardLogger()).RowData(c, c.Users[1:])
	for _, row := range rows {
		for _, cell := range row.Cells {
			require.Len(t, cell.UserScores, 1)
			assert.Equal(t, "Bob", cell.UserScores[0].Name)
		}
	}
}

func TestRowDataMissingScoreIsNaN(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	c.Users[0].ScoreFunctions.Remove("size")
	rows := NewEngine(discardLogger()).RowData(c, c.Users)
	assert.True(t, math.IsNaN(rows[2].Cells[0].UserScores[0].Score))
	assert.True(t, math.IsNaN(rows[3].Cells[0].UserScores[0].Offset), "NaN propagates to later offsets")
}

func TestLabelData(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	e := NewEngine(discardLogger())
	labels := e.LabelData(c)

	require.Len(t, labels, 1)
	hotel := labels[0]
	assert.Equal(t, "hotel", hotel.Name)
	assert.InDelta(t, 1.0, hotel.Weight, 1e-12)
	assert.Equal(t, 0, hotel.Depth)
	assert.Equal(t, 2, hotel.DepthOfChildren)

	location := Find(labels, "location")
	require.NotNil(t, location)
	assert.InDelta(t, 0.3, location.Weight, 1e-12)
	assert.Equal(t, 1, location.Depth)
	assert.Equal(t, 1, location.DepthOfChildren)

	area := Find(labels, "area")
	require.NotNil(t, area)
	assert.Equal(t, 2, area.Depth)
	assert.Equal(t, 0, area.DepthOfChildren)

	rate := Find(labels, "rate")
	assert.Equal(t, 1, rate.Depth)
	assert.InDelta(t, 0.4, rate.Weight, 1e-12)
	assert.Nil(t, Find(labels, "missing"))
}

func TestLabelDataRefreshesInPlace(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	e := NewEngine(discardLogger())
	first := e.LabelData(c)
	rateLabel := Find(first, "rate")

	require.NoError(t, c.Users[0].Weights.Set("rate", 0.5))
	second := e.LabelData(c)
	assert.Same(t, first[0], second[0], "topology reused")
	assert.Same(t, rateLabel, Find(second, "rate"))
	assert.InDelta(t, 0.5, rateLabel.Weight, 1e-12)
	assert.InDelta(t, 1.1, second[0].Weight, 1e-12)
}

func TestLabelDataRebuildsOnStructureChange(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	e := NewEngine(discardLogger())
	first := e.LabelData(c)

	objectives := modeltest.HotelObjectives()
	hotel := objectives[0]
	hotel.Children = hotel.Children[:2]
	c.SetObjectives(objectives)

	second := e.LabelData(c)
	assert.NotSame(t, first[0], second[0])
	assert.Nil(t, Find(second, "rate"))
	assert.InDelta(t, 0.6, second[0].Weight, 1e-12)

	e.Invalidate()
	third := e.LabelData(c)
	assert.NotSame(t, second[0], third[0])
}

func TestLabelDataChildlessAbstractStaysZero(t *testing.T) {
	c := twoObjectiveChart(t, map[string]float64{"A": 0.5, "B": 0.5})
	c.Objectives = append(c.Objectives, model.NewAbstract("empty"))
	e := NewEngine(discardLogger())

	first := e.LabelData(c)
	empty := Find(first, "empty")
	require.NotNil(t, empty)
	assert.Equal(t, 0.0, empty.Weight)

	require.NoError(t, c.Users[0].Weights.Set("A", 0.7))
	second := e.LabelData(c)
	assert.Same(t, empty, Find(second, "empty"))
	assert.Equal(t, 0.0, empty.Weight)
	assert.InDelta(t, 0.7, Find(second, "A").Weight, 1e-12)
}
