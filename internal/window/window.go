// Package window implements the look-ahead ring buffer that keeps the K
// most recent graph snapshots a routing algorithm needs: 1 for FREE-GS, K
// for NAIVE-LMSR/ANCHOR-LMSR.
package window

import (
	"context"
	"fmt"

	"leoroute/internal/domain"
	"leoroute/internal/graphprovider"
	"leoroute/internal/logger"
)

// Window holds exactly K snapshots covering timesteps [t, t+1, ..., t+K-1]
// at the start of processing timestep t, and advances by one each step.
type Window struct {
	provider graphprovider.Provider
	log      logger.Logger

	k         int
	ring      []*domain.Snapshot
	headIndex int // slots headIndex..headIndex+K-1 (mod K) hold t..t+K-1 in order
}

// Option configures a Window at construction time.
type Option func(*Window)

// WithLogger attaches a logger; defaults to logger.NopLogger.
func WithLogger(l logger.Logger) Option {
	return func(w *Window) { w.log = l }
}

// New creates a Window of size k backed by provider.
func New(provider graphprovider.Provider, k int, opts ...Option) *Window {
	w := &Window{
		provider: provider,
		log:      &logger.NopLogger{},
		k:        k,
		ring:     make([]*domain.Snapshot, k),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Init fetches snapshots for t0..t0+K-1 and places them in logical order
// starting at ring slot 0.
func (w *Window) Init(ctx context.Context, t0 int64) error {
	for i := 0; i < w.k; i++ {
		snap, err := w.provider.Get(ctx, t0+int64(i))
		if err != nil {
			return fmt.Errorf("window: init fetch t=%d: %w", t0+int64(i), err)
		}
		w.ring[i] = snap
	}
	w.headIndex = 0
	w.log.Debug("look-ahead window initialized", logger.FStep(t0), logger.F("k", w.k))
	return nil
}

// Advance moves the window to timestep t: it replaces the ring slot at
// headIndex (which held t-1) with the snapshot for t+K-1, then rotates
// headIndex forward by one. After this call, slots headIndex..headIndex+K-1
// (mod K) hold timesteps t..t+K-1 in logical order.
func (w *Window) Advance(ctx context.Context, t int64) error {
	newest := t + int64(w.k) - 1
	snap, err := w.provider.Get(ctx, newest)
	if err != nil {
		return fmt.Errorf("window: advance fetch t=%d: %w", newest, err)
	}
	w.ring[w.headIndex] = snap
	w.headIndex = (w.headIndex + 1) % w.k
	w.log.Debug("look-ahead window advanced", logger.FStep(t), logger.F("newest", newest))
	return nil
}

// Current returns the snapshot at logical offset 0: the topology used to
// decide routing for the timestep currently being processed.
func (w *Window) Current() *domain.Snapshot {
	return w.ring[w.headIndex]
}

// All returns the K snapshots in logical order (offset 0 first).
func (w *Window) All() []*domain.Snapshot {
	out := make([]*domain.Snapshot, w.k)
	for i := 0; i < w.k; i++ {
		out[i] = w.ring[(w.headIndex+i)%w.k]
	}
	return out
}

// Size returns K.
func (w *Window) Size() int { return w.k }
