package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/ValueCharts/internal/config"
	"github.com/MikeSquared-Agency/ValueCharts/internal/hermes"
	"github.com/MikeSquared-Agency/ValueCharts/internal/store"
)

var (
	ErrStopped       = errors.New("session hub stopped")
	ErrUnknownUser   = errors.New("unknown user")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")

	ErrUnknownAlternative = errors.New("unknown alternative")
	ErrUnknownStrategy    = errors.New("unknown sort strategy")
)

// Hub hosts every open chart behind one writer goroutine. All mutations are
// queued and applied one at a time, each followed by change classification
// and, when the chart changed, a recompute of the derived projections.
type Hub struct {
	store    store.Store
	hermes   hermes.Client
	metrics  *Metrics
	logger   *slog.Logger
	defaults Defaults
	origin   string

	statsInterval time.Duration
	idleTimeout   time.Duration
	now           func() time.Time
	applied       atomic.Uint64
	open          atomic.Int64

	queue    chan op
	sessions map[uuid.UUID]*Session

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

type op struct {
	ctx     context.Context
	name    string
	chartID uuid.UUID
	fn      func(*Session) error
	// sweep, when set, runs instead of fn without loading a session.
	sweep func()
	done  chan error
}

// New builds a hub. h may be nil to run without a transport.
func New(s store.Store, h hermes.Client, cfg *config.Config, metrics *Metrics, logger *slog.Logger) *Hub {
	return &Hub{
		store:   s,
		hermes:  h,
		metrics: metrics,
		logger:  logger,
		defaults: Defaults{
			View:          cfg.View,
			Interaction:   cfg.Interaction,
			Size:          cfg.Size,
			JournalLimit:  cfg.Engine.JournalLimit,
			RescaleOnEdit: cfg.Engine.RescaleOnEdit,
		},
		origin:        uuid.NewString(),
		statsInterval: cfg.StatsInterval(),
		idleTimeout:   cfg.IdleTimeout(),
		now:           time.Now,
		queue:         make(chan op, cfg.Engine.QueueSize),
		sessions:      make(map[uuid.UUID]*Session),
		stopCh:        make(chan struct{}),
	}
}

// Origin identifies this hub on the transport.
func (h *Hub) Origin() string { return h.origin }

func (h *Hub) Start(ctx context.Context) {
	h.wg.Add(1)
	go h.writeLoop(ctx)
	if h.hermes != nil && h.statsInterval > 0 {
		h.wg.Add(1)
		go h.statsLoop(ctx)
	}
	if h.idleTimeout > 0 {
		h.wg.Add(1)
		go h.idleLoop(ctx)
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stopCh) })
	h.wg.Wait()
}

// Do runs fn against the chart's session on the writer goroutine and waits
// for it. The chart is loaded from the store on first use. When fn succeeds
// the session is refreshed, persisted if the chart changed, and any emitted
// events are published.
func (h *Hub) Do(ctx context.Context, name string, chartID uuid.UUID, fn func(*Session) error) error {
	return h.submit(op{ctx: ctx, name: name, chartID: chartID, fn: fn, done: make(chan error, 1)})
}

func (h *Hub) submit(o op) error {
	ctx := o.ctx
	select {
	case h.queue <- o:
		h.metrics.QueueDepth.Set(float64(len(h.queue)))
	case <-h.stopCh:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-o.done:
		return err
	case <-h.stopCh:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) writeLoop(ctx context.Context) {
	defer h.wg.Done()
	for {
		select {
		case <-h.stopCh:
			return
		case <-ctx.Done():
			return
		case o := <-h.queue:
			h.metrics.QueueDepth.Set(float64(len(h.queue)))
			err := h.apply(o)
			result := "ok"
			if err != nil {
				result = "error"
			}
			h.metrics.Operations.WithLabelValues(o.name, result).Inc()
			o.done <- err
		}
	}
}

func (h *Hub) apply(o op) error {
	if err := o.ctx.Err(); err != nil {
		return err
	}
	if o.sweep != nil {
		o.sweep()
		return nil
	}
	s, err := h.session(o.ctx, o.chartID)
	if err != nil {
		return err
	}
	s.lastUsed = h.now()
	s.outbox = s.outbox[:0]
	if err := o.fn(s); err != nil {
		s.outbox = s.outbox[:0]
		return err
	}

	cls, took := s.refresh()
	if took > 0 {
		h.metrics.Recomputes.Observe(took.Seconds())
		h.publish(hermes.SubjectChartRendered(s.ID().String()), hermes.RenderedEvent{
			ChartID:    s.ID().String(),
			Rows:       len(s.rows),
			Users:      s.displayedNames(),
			DurationMs: took.Milliseconds(),
		})
	}
	h.logger.Debug("operation applied",
		"op", o.name,
		"chart_id", o.chartID,
		"class", cls.Class,
		"duration_ms", took.Milliseconds(),
	)

	if s.dirty {
		if err := h.store.SaveChart(o.ctx, s.Chart); err != nil {
			h.logger.Error("failed to save chart", "chart_id", o.chartID, "error", err)
		} else {
			s.dirty = false
		}
	}
	for _, evt := range s.outbox {
		evt.Origin = h.origin
		h.publish(hermes.SubjectFor(evt.Type, evt.ChartID.String()), evt)
	}
	s.outbox = s.outbox[:0]
	return nil
}

func (h *Hub) session(ctx context.Context, id uuid.UUID) (*Session, error) {
	if s, ok := h.sessions[id]; ok {
		return s, nil
	}
	c, err := h.store.GetChart(ctx, id)
	if err != nil {
		return nil, err
	}
	s := newSession(c, h.defaults, h.logger)
	h.sessions[id] = s
	h.sessionsChanged()
	h.logger.Info("session opened", "chart_id", id, "users", len(c.Users))
	return s, nil
}

// Close drops a chart's session; the next operation reloads it from the store.
func (h *Hub) Close(ctx context.Context, chartID uuid.UUID) error {
	return h.Do(ctx, "close", chartID, func(s *Session) error {
		delete(h.sessions, chartID)
		h.sessionsChanged()
		return nil
	})
}

func (h *Hub) sessionsChanged() {
	h.open.Store(int64(len(h.sessions)))
	h.metrics.OpenSessions.Set(float64(len(h.sessions)))
}

func (h *Hub) publish(subject string, data interface{}) {
	if h.hermes == nil {
		return
	}
	if err := h.hermes.Publish(subject, data); err != nil {
		h.logger.Warn("failed to publish", "subject", subject, "error", err)
	}
}

// SetupSubscriptions applies chart events published by other hubs.
func (h *Hub) SetupSubscriptions() error {
	if h.hermes == nil {
		return nil
	}
	return h.hermes.Subscribe(hermes.SubjectAllChartEvents, func(subject string, data []byte) {
		evt, err := hermes.DecodeChartEvent(data)
		if err != nil {
			h.logger.Warn("dropping chart event", "subject", subject, "error", err)
			return
		}
		if evt.Origin == h.origin {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.ApplyEvent(ctx, evt); err != nil {
			h.logger.Warn("failed to apply remote chart event",
				"chart_id", evt.ChartID,
				"event", evt.Type,
				"error", err,
			)
		}
	})
}

func (h *Hub) statsLoop(ctx context.Context) {
	defer h.wg.Done()
	ticker := time.NewTicker(h.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.publish(hermes.SubjectHubStats, h.Stats())
		}
	}
}

// Stats reports the hub's counters without going through the writer.
func (h *Hub) Stats() hermes.StatsEvent {
	return hermes.StatsEvent{
		Charts:        int(h.open.Load()),
		EventsApplied: h.applied.Load(),
		QueueDepth:    len(h.queue),
		Timestamp:     time.Now().UTC(),
	}
}
