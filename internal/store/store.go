package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
)

var (
	ErrNotFound      = errors.New("chart not found")
	ErrAlreadyExists = errors.New("chart already exists")
)

// ChartSummary is the listing view of a stored chart.
type ChartSummary struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Creator      string          `json:"creator"`
	Type         model.ChartType `json:"type"`
	Users        int             `json:"users"`
	Alternatives int             `json:"alternatives"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type ChartFilter struct {
	Creator string
	Name    string
	Limit   int
}

// Store keeps charts by ID. Charts go in and come out as independent copies;
// callers never share a chart with the store.
type Store interface {
	CreateChart(ctx context.Context, c *model.ValueChart) error
	GetChart(ctx context.Context, id uuid.UUID) (*model.ValueChart, error)
	ListCharts(ctx context.Context, filter ChartFilter) ([]ChartSummary, error)
	SaveChart(ctx context.Context, c *model.ValueChart) error
	DeleteChart(ctx context.Context, id uuid.UUID) error
	Close() error
}
