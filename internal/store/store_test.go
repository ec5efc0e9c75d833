package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/model/modeltest"
)

func TestCreateAndGetAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	c := modeltest.HotelChart("Aaron")
	require.NoError(t, s.CreateChart(ctx, c))

	c.Name = "changed after create"
	got, err := s.GetChart(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hotel", got.Name)

	got.Users[0].Color = "#ffffff"
	again, err := s.GetChart(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "#0000ff", again.Users[0].Color)
}

func TestCreateAssignsID(t *testing.T) {
	s := NewMemoryStore()
	c := model.NewValueChart("empty", "carol")
	c.ID = uuid.Nil
	require.NoError(t, s.CreateChart(context.Background(), c))
	assert.NotEqual(t, uuid.Nil, c.ID)
}

func TestCreateRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateChart(ctx, modeltest.HotelChart()))
	assert.ErrorIs(t, s.CreateChart(ctx, modeltest.HotelChart()), ErrAlreadyExists)
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	id := uuid.New()

	_, err := s.GetChart(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteChart(ctx, id), ErrNotFound)

	c := modeltest.HotelChart()
	c.ID = id
	assert.ErrorIs(t, s.SaveChart(ctx, c), ErrNotFound)
}

func TestSaveAndList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	hotel := modeltest.HotelChart()
	require.NoError(t, s.CreateChart(ctx, hotel))
	other := model.NewValueChart("Laptops", "dana")
	require.NoError(t, s.CreateChart(ctx, other))

	hotel.PutUser(modeltest.HotelUser("Aaron", "", modeltest.AaronWeights))
	require.NoError(t, s.SaveChart(ctx, hotel))

	all, err := s.ListCharts(ctx, ChartFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Hotel", all[0].Name)
	assert.Equal(t, model.ChartIndividual, all[0].Type)
	assert.Equal(t, 1, all[0].Users)
	assert.True(t, all[0].UpdatedAt.After(all[0].CreatedAt))

	byCreator, err := s.ListCharts(ctx, ChartFilter{Creator: "dana"})
	require.NoError(t, err)
	require.Len(t, byCreator, 1)
	assert.Equal(t, "Laptops", byCreator[0].Name)

	byName, err := s.ListCharts(ctx, ChartFilter{Name: "hot"})
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	limited, err := s.ListCharts(ctx, ChartFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	require.NoError(t, s.DeleteChart(ctx, other.ID))
	all, _ = s.ListCharts(ctx, ChartFilter{})
	assert.Len(t, all, 1)
}
