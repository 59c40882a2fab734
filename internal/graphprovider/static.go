package graphprovider

import (
	"context"
	"fmt"

	"leoroute/internal/domain"
)

// Static serves a precomputed, in-memory sequence of snapshots, one per
// timestep, indexed by position. Used by cmd/scenario and unit tests that
// need deterministic, hand-built topologies.
type Static struct {
	snapshots []*domain.Snapshot
}

// NewStatic wraps an ordered slice of snapshots. snapshots[i] is returned
// for Get(ctx, int64(i)).
func NewStatic(snapshots []*domain.Snapshot) *Static {
	return &Static{snapshots: snapshots}
}

func (s *Static) Get(ctx context.Context, t int64) (*domain.Snapshot, error) {
	if t < 0 || t >= int64(len(s.snapshots)) {
		return nil, fmt.Errorf("graphprovider: timestep %d out of range [0,%d)", t, len(s.snapshots))
	}
	return s.snapshots[t], nil
}
