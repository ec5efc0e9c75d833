package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/model/modeltest"
)

func TestScoreAlternativeBreakdown(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	result := ScoreAlternative(c, c.Users[0], c.Alternative("Sheraton"))

	assert.Equal(t, "Sheraton", result.Alternative)
	assert.Equal(t, "Aaron", result.User)
	assert.InDelta(t, 0.575, result.TotalScore, 1e-12)
	require.Len(t, result.Contributions, 5)

	want := []float64{0.05, 0.025, 0.1, 0.2, 0.2}
	sum := 0.0
	for i, contrib := range result.Contributions {
		assert.InDelta(t, want[i], contrib.Weighted, 1e-12, contrib.Objective)
		sum += contrib.Weighted
	}
	assert.InDelta(t, result.TotalScore, sum, 1e-12)
}

func TestScoreAlternativesRanked(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	ranked := ScoreAlternatives(c, c.Users[0])

	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Alternative
	}
	assert.Equal(t, []string{"Ramada", "BestWestern", "Sheraton", "HolidayInn", "Hyatt", "Marriott"}, names)
	assert.InDelta(t, 0.87, ranked[0].TotalScore, 1e-12)
	assert.InDelta(t, 0.26, ranked[5].TotalScore, 1e-12)
}

func TestComputeFrontier(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	frontier := ComputeFrontier(c, c.Users[0])

	names := make([]string, len(frontier))
	for i, alt := range frontier {
		names[i] = alt.Name
	}
	// Ramada dominates Hyatt; BestWestern dominates Marriott.
	assert.Equal(t, []string{"Sheraton", "BestWestern", "HolidayInn", "Ramada"}, names)
}

func TestComputeFrontierSingleAlternative(t *testing.T) {
	c := modeltest.HotelChart("Aaron")
	c.Alternatives = c.Alternatives[:1]
	assert.Equal(t, []*model.Alternative{c.Alternatives[0]}, ComputeFrontier(c, c.Users[0]))
}

func TestDominates(t *testing.T) {
	assert.True(t, dominates([]float64{1, 0.5}, []float64{1, 0.4}))
	assert.False(t, dominates([]float64{1, 0.5}, []float64{1, 0.5}), "equal vectors do not dominate")
	assert.False(t, dominates([]float64{1, 0.3}, []float64{0.9, 0.4}))
}
