package forwarding

import (
	"leoroute/internal/distkernel"
	"leoroute/internal/domain"
	"leoroute/internal/logger"
)

// BuildNaiveLMSR builds the forwarding table for one timestep using the
// max-over-window objective against the full K-snapshot APSP window.
func BuildNaiveLMSR(snap *domain.Snapshot, numSats, numGS int64, win distkernel.WindowMatrices, log logger.Logger) domain.ForwardingTable {
	cost := func(u, v domain.NodeID) (float64, bool) {
		if u == v {
			return 0, true
		}
		return distkernel.MaxOverWindow(win, u, v)
	}
	return BuildSimple(snap, numSats, numGS, cost, log)
}
