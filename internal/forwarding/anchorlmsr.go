package forwarding

import (
	"leoroute/internal/domain"
	"leoroute/internal/logger"
)

// anchorCost computes D(s,b,t) = dist(s->nearest_a(s)) + dist(nearest_a(s)
// ->nearest_a(b)) + dist(nearest_a(b)->b) for every snapshot t in the
// window and returns the max, per spec §4.3. When s and b share a nearest
// anchor the middle (anchor-to-anchor) term is zero and the cost is the sum
// of the first and last terms.
func anchorCost(win []*domain.AnchorData) DistanceFn {
	return func(s, b domain.NodeID) (float64, bool) {
		if s == b {
			return 0, true
		}
		maxDist := 0.0
		for _, ad := range win {
			ns, ok := ad.Nearest(s)
			if !ok {
				return 0, false
			}
			nb, ok := ad.Nearest(b)
			if !ok {
				return 0, false
			}
			mid := 0.0
			if ns.AnchorID != nb.AnchorID {
				pair, ok := ad.Pair(ns.AnchorID, nb.AnchorID)
				if !ok {
					return 0, false
				}
				mid = float64(pair.DistanceM)
			}
			total := float64(ns.DistanceM) + mid + float64(nb.DistanceM)
			if total > maxDist {
				maxDist = total
			}
		}
		return maxDist, true
	}
}

// BuildAnchorLMSR builds the forwarding table for one timestep using the
// anchor-accelerated objective. win holds one AnchorData per window
// snapshot in logical order (offset 0 = current timestep); current is
// win[0], used to pick the CURRENT-timestep next hop per spec §4.3's
// sat->sat case analysis. emitSatToSat controls whether sat->sat entries
// are written (they multiply output size by ~S).
func BuildAnchorLMSR(snap *domain.Snapshot, numSats, numGS int64, anchors []domain.NodeID, win []*domain.AnchorData, emitSatToSat bool, log logger.Logger) domain.ForwardingTable {
	cost := anchorCost(win)
	table := BuildSimple(snap, numSats, numGS, cost, log)

	if !emitSatToSat {
		return table
	}

	current := win[0]
	isAnchor := make(map[domain.NodeID]bool, len(anchors))
	for _, a := range anchors {
		isAnchor[a] = true
	}

	for s := int64(0); s < numSats; s++ {
		src := domain.NodeID(s)
		for d := int64(0); d < numSats; d++ {
			if s == d {
				continue
			}
			dst := domain.NodeID(d)

			if _, ok := cost(src, dst); !ok {
				table[domain.ForwardingKey{Src: src, Dst: dst}] = domain.DropEntry
				continue
			}

			nextHop, ok := anchorNextHop(current, isAnchor, src, dst)
			key := domain.ForwardingKey{Src: src, Dst: dst}
			if !ok || !snap.IsAdjacent(src, nextHop) {
				table[key] = domain.DropEntry
				continue
			}
			outIf, _ := snap.InterfaceFor(src, nextHop)
			inIf, _ := snap.InterfaceFor(nextHop, src)
			table[key] = domain.ForwardingEntry{NextHop: nextHop, OutIface: int32(outIf), InIface: int32(inIf)}
		}
	}
	return table
}

// anchorNextHop picks the current-timestep next hop for a sat->sat entry
// per spec §4.3's four-way case split.
func anchorNextHop(cur *domain.AnchorData, isAnchor map[domain.NodeID]bool, s, d domain.NodeID) (domain.NodeID, bool) {
	nd, ok := cur.Nearest(d)
	if !ok {
		return 0, false
	}

	if isAnchor[s] {
		if nd.AnchorID == s {
			path := cur.PathFromAnchor(s, d)
			if len(path) < 2 {
				return 0, false
			}
			return path[1], true
		}
		pair, ok := cur.Pair(s, nd.AnchorID)
		if !ok {
			return 0, false
		}
		return pair.NextHop, true
	}

	egress := cur.PathFromAnchor(nd.AnchorID, d)
	if idx := indexOf(egress, s); idx >= 0 && idx+1 < len(egress) {
		return egress[idx+1], true
	}

	ns, ok := cur.Nearest(s)
	if !ok {
		return 0, false
	}
	pred, ok := cur.Pred(s, ns.AnchorID)
	if !ok {
		return 0, false
	}
	return pred, true
}

func indexOf(path []domain.NodeID, v domain.NodeID) int {
	for i, n := range path {
		if n == v {
			return i
		}
	}
	return -1
}
