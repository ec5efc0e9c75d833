package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
)

type entry struct {
	chart     *model.ValueChart
	createdAt time.Time
	updatedAt time.Time
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu     sync.RWMutex
	charts map[uuid.UUID]*entry
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		charts: make(map[uuid.UUID]*entry),
		now:    time.Now,
	}
}

// CreateChart stores a copy of c, assigning an ID when c has none.
func (s *MemoryStore) CreateChart(_ context.Context, c *model.ValueChart) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.charts[c.ID]; ok {
		return fmt.Errorf("create chart %s: %w", c.ID, ErrAlreadyExists)
	}
	now := s.now().UTC()
	s.charts[c.ID] = &entry{chart: c.Clone(), createdAt: now, updatedAt: now}
	return nil
}

func (s *MemoryStore) GetChart(_ context.Context, id uuid.UUID) (*model.ValueChart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.charts[id]
	if !ok {
		return nil, fmt.Errorf("get chart %s: %w", id, ErrNotFound)
	}
	return e.chart.Clone(), nil
}

// ListCharts returns summaries sorted by creation time, oldest first.
func (s *MemoryStore) ListCharts(_ context.Context, filter ChartFilter) ([]ChartSummary, error) {
	s.mu.RLock()
	out := make([]ChartSummary, 0, len(s.charts))
	for _, e := range s.charts {
		c := e.chart
		if filter.Creator != "" && c.Creator != filter.Creator {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Name)) {
			continue
		}
		out = append(out, ChartSummary{
			ID:           c.ID,
			Name:         c.Name,
			Creator:      c.Creator,
			Type:         c.Type(),
			Users:        len(c.Users),
			Alternatives: len(c.Alternatives),
			CreatedAt:    e.createdAt,
			UpdatedAt:    e.updatedAt,
		})
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// SaveChart replaces a stored chart with a copy of c.
func (s *MemoryStore) SaveChart(_ context.Context, c *model.ValueChart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.charts[c.ID]
	if !ok {
		return fmt.Errorf("save chart %s: %w", c.ID, ErrNotFound)
	}
	e.chart = c.Clone()
	e.updatedAt = s.now().UTC()
	return nil
}

func (s *MemoryStore) DeleteChart(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.charts[id]; !ok {
		return fmt.Errorf("delete chart %s: %w", id, ErrNotFound)
	}
	delete(s.charts, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
