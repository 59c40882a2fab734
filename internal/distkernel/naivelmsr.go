package distkernel

import (
	"fmt"

	"leoroute/internal/domain"
)

// WindowMatrices holds one DistanceMatrix per snapshot in a look-ahead
// window, in logical order (offset 0 = current timestep).
type WindowMatrices []*DistanceMatrix

// NaiveLMSR computes the full APSP matrix for every snapshot in the
// window. The incremental rule (advance by one, recompute only the newest
// matrix) is implemented by the caller via AdvanceWindow, not here: this
// function is also the one used to build the window from scratch at
// controller start.
func NaiveLMSR(snapshots []*domain.Snapshot) (WindowMatrices, error) {
	out := make(WindowMatrices, len(snapshots))
	for i, snap := range snapshots {
		m, err := FreeGS(snap)
		if err != nil {
			return nil, fmt.Errorf("distkernel: NaiveLMSR snapshot %d: %w", i, err)
		}
		out[i] = m
	}
	return out, nil
}

// AdvanceWindow drops the oldest matrix and appends a newly computed one
// for the newest snapshot, matching the Window's own ring rotation.
func AdvanceWindow(prev WindowMatrices, newest *domain.Snapshot) (WindowMatrices, error) {
	m, err := FreeGS(newest)
	if err != nil {
		return nil, fmt.Errorf("distkernel: AdvanceWindow: %w", err)
	}
	out := make(WindowMatrices, len(prev))
	copy(out, prev[1:])
	out[len(out)-1] = m
	return out, nil
}

// MaxOverWindow returns the maximum distance between u and v across all
// matrices in the window (the jitter-minimization objective), and whether
// any window entry was unreachable (in which case the candidate must be
// rejected per the forwarding-table builder's rule).
func MaxOverWindow(win WindowMatrices, u, v domain.NodeID) (maxDist float64, reachable bool) {
	maxDist = 0
	for _, m := range win {
		d := m.Dist(u, v)
		if IsUnreachable(d) {
			return 0, false
		}
		if d > maxDist {
			maxDist = d
		}
	}
	return maxDist, true
}
