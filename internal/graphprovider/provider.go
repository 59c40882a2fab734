// Package graphprovider supplies per-timestep graph snapshots to the
// router controller. It mirrors the teacher's bootstrap.Bootstrap pattern:
// one interface, multiple interchangeable implementations.
package graphprovider

import (
	"context"

	"leoroute/internal/domain"
)

// Provider returns the graph snapshot for timestep t. Implementations MUST
// be pure functions of t: the same t always yields an equal snapshot.
type Provider interface {
	Get(ctx context.Context, t int64) (*domain.Snapshot, error)
}
