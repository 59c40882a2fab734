package forwarding

import (
	"leoroute/internal/distkernel"
	"leoroute/internal/domain"
	"leoroute/internal/logger"
)

// BuildFreeGS builds the forwarding table for one timestep using the
// single-snapshot APSP matrix (baseline shortest-path router, no
// look-ahead).
func BuildFreeGS(snap *domain.Snapshot, numSats, numGS int64, dm *distkernel.DistanceMatrix, log logger.Logger) domain.ForwardingTable {
	cost := func(u, v domain.NodeID) (float64, bool) {
		if u == v {
			return 0, true
		}
		d := dm.Dist(u, v)
		if distkernel.IsUnreachable(d) {
			return 0, false
		}
		return d, true
	}
	return BuildSimple(snap, numSats, numGS, cost, log)
}
