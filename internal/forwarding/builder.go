// Package forwarding turns distance data into forwarding-table entries for
// one timestep: sat->gs, gs->gs, and (ANCHOR-LMSR only) sat->sat.
package forwarding

import (
	"math"

	"leoroute/internal/domain"
	"leoroute/internal/logger"
)

// DistanceFn returns the routing objective's candidate distance between two
// satellites u and v (the max-over-window cost for LMSR variants, or the
// single-snapshot distance for FREE-GS), and whether they are connected at
// all within that objective.
type DistanceFn func(u, v domain.NodeID) (distM float64, reachable bool)

// satGSKey pairs a satellite with a ground station for the side-output
// distance table the gs->gs pass consumes.
type satGSKey struct {
	Sat domain.NodeID
	GS  domain.NodeID
}

// Result holds everything one Build pass produces.
type Result struct {
	Table domain.ForwardingTable
}

// buildSatToGS implements spec §4.3's sat->gs pass, shared by all three
// algorithms through the DistanceFn abstraction. It also returns the
// side-output dist_sat_to_gs table the gs->gs pass needs.
func buildSatToGS(snap *domain.Snapshot, numSats, numGS int64, cost DistanceFn, table domain.ForwardingTable, log logger.Logger) map[satGSKey]float64 {
	distSatToGS := make(map[satGSKey]float64, int(numSats)*int(numGS))

	for s := int64(0); s < numSats; s++ {
		src := domain.NodeID(s)
		for g := int64(0); g < numGS; g++ {
			gid := domain.NodeID(numSats + g)
			candidates := snap.GSInRange(gid)

			bestB := domain.NodeID(-1)
			bestTotal := math.Inf(1)
			for _, c := range candidates {
				d, ok := cost(src, c.SatID)
				if !ok {
					continue
				}
				total := d + float64(c.DistanceM)
				if total < bestTotal || (total == bestTotal && c.SatID < bestB) {
					bestTotal, bestB = total, c.SatID
				}
			}

			key := domain.ForwardingKey{Src: src, Dst: gid}
			if bestB < 0 {
				table[key] = domain.DropEntry
				continue
			}
			distSatToGS[satGSKey{Sat: src, GS: gid}] = bestTotal

			if src == bestB {
				table[key] = domain.ForwardingEntry{
					NextHop:  gid,
					OutIface: int32(snap.NumISLs(src)) + int32(g),
					InIface:  0,
				}
				continue
			}

			neighbors, weights := snap.Neighbors(src)
			bestN := domain.NodeID(-1)
			bestScore := math.Inf(1)
			for i, n := range neighbors {
				d, ok := cost(n, bestB)
				if !ok {
					continue
				}
				score := float64(weights[i]) + d
				if score < bestScore || (score == bestScore && n < bestN) {
					bestScore, bestN = score, n
				}
			}
			if bestN < 0 {
				table[key] = domain.DropEntry
				log.Debug("sat->gs drop: no viable current-snapshot next hop", logger.F("src", src), logger.F("dst_gs", gid))
				continue
			}
			outIf, _ := snap.InterfaceFor(src, bestN)
			inIf, _ := snap.InterfaceFor(bestN, src)
			table[key] = domain.ForwardingEntry{NextHop: bestN, OutIface: int32(outIf), InIface: int32(inIf)}
		}
	}
	return distSatToGS
}

// buildGSToGS implements spec §4.3's gs->gs pass.
func buildGSToGS(snap *domain.Snapshot, numSats, numGS int64, distSatToGS map[satGSKey]float64, table domain.ForwardingTable) {
	for sg := int64(0); sg < numGS; sg++ {
		srcGID := domain.NodeID(numSats + sg)
		for dg := int64(0); dg < numGS; dg++ {
			if sg == dg {
				continue
			}
			dstGID := domain.NodeID(numSats + dg)
			candidates := snap.GSInRange(srcGID)

			bestA := domain.NodeID(-1)
			bestTotal := math.Inf(1)
			for _, c := range candidates {
				side, ok := distSatToGS[satGSKey{Sat: c.SatID, GS: dstGID}]
				if !ok {
					continue
				}
				total := float64(c.DistanceM) + side
				if total < bestTotal || (total == bestTotal && c.SatID < bestA) {
					bestTotal, bestA = total, c.SatID
				}
			}

			key := domain.ForwardingKey{Src: srcGID, Dst: dstGID}
			if bestA < 0 {
				table[key] = domain.DropEntry
				continue
			}
			table[key] = domain.ForwardingEntry{
				NextHop:  bestA,
				OutIface: 0,
				InIface:  int32(snap.NumISLs(bestA)) + int32(sg),
			}
		}
	}
}

// BuildSimple runs the sat->gs and gs->gs passes shared by FREE-GS and
// NAIVE-LMSR (no sat->sat entries).
func BuildSimple(snap *domain.Snapshot, numSats, numGS int64, cost DistanceFn, log logger.Logger) domain.ForwardingTable {
	table := make(domain.ForwardingTable, int(numSats)*int(numGS)*2)
	distSatToGS := buildSatToGS(snap, numSats, numGS, cost, table, log)
	buildGSToGS(snap, numSats, numGS, distSatToGS, table)
	return table
}
