package hermes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model/modeltest"
)

func TestSubjects(t *testing.T) {
	id := modeltest.HotelChartID.String()
	assert.Equal(t, "valuecharts.chart."+id+".event.user.added", SubjectFor(UserAdded, id))
	assert.Equal(t, "valuecharts.chart."+id+".event.user.changed", SubjectFor(UserChanged, id))
	assert.Equal(t, "valuecharts.chart."+id+".event.user.removed", SubjectFor(UserRemoved, id))
	assert.Equal(t, "valuecharts.chart."+id+".event.structure.changed", SubjectFor(StructureChanged, id))
	assert.Equal(t, "valuecharts.chart."+id+".rendered", SubjectChartRendered(id))
}

func TestChartEventRoundTrip(t *testing.T) {
	evt := NewChartEvent(UserAdded, modeltest.HotelChartID)
	evt.Origin = "node-a"
	evt.User = modeltest.HotelUser("Aaron", "#0000ff", modeltest.AaronWeights)

	data, err := json.Marshal(evt)
	require.NoError(t, err)

	got, err := DecodeChartEvent(data)
	require.NoError(t, err)
	assert.Equal(t, evt.ID, got.ID)
	assert.Equal(t, "node-a", got.Origin)
	assert.True(t, evt.User.Equal(got.User))
}

func TestChartEventValidate(t *testing.T) {
	tests := []struct {
		name    string
		evt     ChartEvent
		wantErr bool
	}{
		{"user added", ChartEvent{Type: UserAdded, User: modeltest.HotelUser("Bob", "", modeltest.BobWeights)}, false},
		{"user added without user", ChartEvent{Type: UserAdded}, true},
		{"user changed without user", ChartEvent{Type: UserChanged}, true},
		{"user removed", ChartEvent{Type: UserRemoved, UserName: "Bob"}, false},
		{"user removed without name", ChartEvent{Type: UserRemoved}, true},
		{"structure", ChartEvent{Type: StructureChanged, Objectives: modeltest.HotelObjectives()}, false},
		{"structure without objectives", ChartEvent{Type: StructureChanged}, true},
		{"unknown", ChartEvent{Type: "renamed"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.evt.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeChartEventRejectsGarbage(t *testing.T) {
	_, err := DecodeChartEvent([]byte("{not json"))
	assert.Error(t, err)

	_, err = DecodeChartEvent([]byte(`{"type":"user_removed"}`))
	assert.Error(t, err)
}
