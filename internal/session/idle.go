package session

import (
	"context"
	"time"
)

const maxSweepInterval = 30 * time.Second

func (h *Hub) idleLoop(ctx context.Context) {
	defer h.wg.Done()
	interval := h.idleTimeout / 2
	if interval > maxSweepInterval {
		interval = maxSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := h.EvictIdle(ctx); err != nil && err != ErrStopped {
				h.logger.Warn("idle sweep failed", "error", err)
			}
		}
	}
}

// EvictIdle drops every session unused for longer than the idle timeout and
// reports how many went. Charts are already persisted after each change, so
// only undo history and display settings are lost.
func (h *Hub) EvictIdle(ctx context.Context) (int, error) {
	var evicted int
	err := h.submit(op{
		ctx:  ctx,
		name: "evict_idle",
		sweep: func() {
			evicted = h.evictIdle()
		},
		done: make(chan error, 1),
	})
	return evicted, err
}

func (h *Hub) evictIdle() int {
	if h.idleTimeout <= 0 {
		return 0
	}
	cutoff := h.now().Add(-h.idleTimeout)
	evicted := 0
	for id, s := range h.sessions {
		if !s.lastUsed.Before(cutoff) {
			continue
		}
		delete(h.sessions, id)
		evicted++
		h.logger.Info("session evicted", "chart_id", id, "idle_since", s.lastUsed)
	}
	if evicted > 0 {
		h.sessionsChanged()
	}
	return evicted
}
