package hermes

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
)

// ErrInvalidEvent is returned for events missing the fields their type needs.
var ErrInvalidEvent = errors.New("invalid chart event")

// EventType names a chart mutation delivered over the session transport.
type EventType string

const (
	UserAdded        EventType = "user_added"
	UserChanged      EventType = "user_changed"
	UserRemoved      EventType = "user_removed"
	StructureChanged EventType = "structure_changed"
)

// ChartEvent is one mutation of a hosted chart. Each type maps 1:1 onto a
// chart operation: add or replace a user, remove a user, replace the
// objectives and alternatives.
type ChartEvent struct {
	ID      uuid.UUID `json:"id"`
	Type    EventType `json:"type"`
	ChartID uuid.UUID `json:"chart_id"`
	// Origin identifies the publishing instance so it can skip its own echoes.
	Origin    string    `json:"origin,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	User     *model.User `json:"user,omitempty"`
	UserName string      `json:"user_name,omitempty"`

	Objectives   []*model.Objective   `json:"objectives,omitempty"`
	Alternatives []*model.Alternative `json:"alternatives,omitempty"`
}

// NewChartEvent stamps a new event with an ID and the current time.
func NewChartEvent(t EventType, chartID uuid.UUID) ChartEvent {
	return ChartEvent{ID: uuid.New(), Type: t, ChartID: chartID, Timestamp: time.Now().UTC()}
}

// Validate checks that the payload required by the event type is present.
func (e ChartEvent) Validate() error {
	switch e.Type {
	case UserAdded, UserChanged:
		if e.User == nil || e.User.Name == "" {
			return fmt.Errorf("%w: %s without user", ErrInvalidEvent, e.Type)
		}
	case UserRemoved:
		if e.UserName == "" {
			return fmt.Errorf("%w: %s without user_name", ErrInvalidEvent, e.Type)
		}
	case StructureChanged:
		if len(e.Objectives) == 0 {
			return fmt.Errorf("%w: %s without objectives", ErrInvalidEvent, e.Type)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
	return nil
}

// RenderedEvent summarizes a structural recompute.
type RenderedEvent struct {
	ChartID    string   `json:"chart_id"`
	Rows       int      `json:"rows"`
	Users      []string `json:"users"`
	DurationMs int64    `json:"duration_ms"`
}

// StatsEvent is the hub's periodic heartbeat.
type StatsEvent struct {
	Charts        int       `json:"charts"`
	EventsApplied uint64    `json:"events_applied"`
	QueueDepth    int       `json:"queue_depth"`
	Timestamp     time.Time `json:"timestamp"`
}
