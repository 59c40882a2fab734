// Package scenario runs the concrete routing scenarios used to validate
// the engine's invariants end to end, independent of any particular Graph
// Provider: each scenario builds its own small snapshot sequence in
// memory and checks the resulting forwarding tables and delta files
// against the expectations spec.md enumerates.
package scenario

import (
	"fmt"
	"os"

	"leoroute/internal/deltawriter"
	"leoroute/internal/distkernel"
	"leoroute/internal/domain"
	"leoroute/internal/forwarding"
	"leoroute/internal/logger"
)

// Result is the outcome of one scenario.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Scenario is one named check.
type Scenario struct {
	Name string
	Run  func() Result
}

// All returns every scenario in spec.md §8's catalog, in the order they
// are documented (A through F).
func All() []Scenario {
	return []Scenario{
		{Name: "A_two_satellite_line", Run: scenarioA},
		{Name: "B_plus_grid_nine_satellites", Run: scenarioB},
		{Name: "C_naive_lmsr_picks_lower_max", Run: scenarioC},
		{Name: "D_anchor_lmsr_degenerates_to_free_gs", Run: scenarioD},
		{Name: "E_anchor_ring_deterministic_tiebreak", Run: scenarioE},
		{Name: "F_delta_correctness_single_change", Run: scenarioF},
	}
}

func fail(name, format string, args ...any) Result {
	return Result{Name: name, Passed: false, Detail: fmt.Sprintf(format, args...)}
}

func pass(name string) Result {
	return Result{Name: name, Passed: true, Detail: "ok"}
}

// scenarioA: two-satellite line, S=2, ISL weight 1000m, one ground
// station connected to satellite 0 with GSL 500m. FREE-GS must route
// (0,gs)->direct GSL hop and (1,gs)->via satellite 0; an unchanged
// topology at t=1 must produce an empty delta file.
func scenarioA() Result {
	name := "A_two_satellite_line"
	snap, err := domain.BuildSnapshot(0, 2, 1,
		[]domain.ISLEdge{{A: 0, B: 1, DistanceM: 1000}},
		[][]domain.GSLCandidate{{{SatID: 0, DistanceM: 500}}},
	)
	if err != nil {
		return fail(name, "build snapshot: %v", err)
	}

	dm, err := distkernel.FreeGS(snap)
	if err != nil {
		return fail(name, "FreeGS: %v", err)
	}
	table := forwarding.BuildFreeGS(snap, 2, 1, dm, &logger.NopLogger{})

	gs := domain.NodeID(2)
	e0, ok := table[domain.ForwardingKey{Src: 0, Dst: gs}]
	if !ok || e0.NextHop != gs || e0.OutIface != 1 || e0.InIface != 0 {
		return fail(name, "entry (0,gs) = %+v, want next_hop=2 out_iface=1 in_iface=0", e0)
	}
	ifOut, _ := snap.InterfaceFor(1, 0)
	ifIn, _ := snap.InterfaceFor(0, 1)
	e1, ok := table[domain.ForwardingKey{Src: 1, Dst: gs}]
	if !ok || e1.NextHop != 0 || int(e1.OutIface) != ifOut || int(e1.InIface) != ifIn {
		return fail(name, "entry (1,gs) = %+v, want next_hop=0 out_iface=%d in_iface=%d", e1, ifOut, ifIn)
	}

	dir, err := os.MkdirTemp("", "leoroute-scenario-a-*")
	if err != nil {
		return fail(name, "mkdtemp: %v", err)
	}
	defer os.RemoveAll(dir)

	w := deltawriter.New(dir, 1, 2, 1, domain.FreeGS)
	if err := w.WriteFstate(0, table); err != nil {
		return fail(name, "write t0: %v", err)
	}
	if err := w.WriteFstate(1, table); err != nil {
		return fail(name, "write t1: %v", err)
	}
	data, err := os.ReadFile(dir + "/fstate_1.txt")
	if err != nil {
		return fail(name, "read t1 delta: %v", err)
	}
	if len(data) != 0 {
		return fail(name, "delta at t=1 for unchanged topology has %d bytes, want 0", len(data))
	}
	return pass(name)
}

// scenarioB: 3x3 plus-grid of 9 satellites, two ground stations each
// visible to two disjoint satellites. Checks that both gs->gs entries and
// every sat->gs entry are present and routed (not dropped); the sat->gs
// distances themselves are not compared for symmetry.
func scenarioB() Result {
	name := "B_plus_grid_nine_satellites"
	// Plus-grid adjacency: satellite i is linked to its row/column
	// neighbors on a 3x3 torus, ISL weight 100 for every edge.
	edge := func(a, b domain.NodeID) domain.ISLEdge { return domain.ISLEdge{A: a, B: b, DistanceM: 100} }
	row := func(r int) [3]domain.NodeID { return [3]domain.NodeID{domain.NodeID(r * 3), domain.NodeID(r*3 + 1), domain.NodeID(r*3 + 2)} }
	var isls []domain.ISLEdge
	for r := 0; r < 3; r++ {
		rw := row(r)
		isls = append(isls, edge(rw[0], rw[1]), edge(rw[1], rw[2]), edge(rw[2], rw[0]))
	}
	for c := 0; c < 3; c++ {
		col := [3]domain.NodeID{domain.NodeID(c), domain.NodeID(c + 3), domain.NodeID(c + 6)}
		isls = append(isls, edge(col[0], col[1]), edge(col[1], col[2]), edge(col[2], col[0]))
	}

	gsInRange := [][]domain.GSLCandidate{
		{{SatID: 0, DistanceM: 300}, {SatID: 4, DistanceM: 300}},
		{{SatID: 2, DistanceM: 300}, {SatID: 8, DistanceM: 300}},
	}
	snap, err := domain.BuildSnapshot(0, 9, 2, isls, gsInRange)
	if err != nil {
		return fail(name, "build snapshot: %v", err)
	}

	dm, err := distkernel.FreeGS(snap)
	if err != nil {
		return fail(name, "FreeGS: %v", err)
	}
	table := forwarding.BuildFreeGS(snap, 9, 2, dm, &logger.NopLogger{})

	gs0, gs1 := domain.NodeID(9), domain.NodeID(10)
	for _, key := range []domain.ForwardingKey{{Src: gs0, Dst: gs1}, {Src: gs1, Dst: gs0}} {
		e, ok := table[key]
		if !ok {
			return fail(name, "missing gs->gs entry for %+v", key)
		}
		if e.IsDrop() {
			return fail(name, "gs->gs entry for %+v unexpectedly dropped", key)
		}
	}
	for s := int64(0); s < 9; s++ {
		for _, gs := range []domain.NodeID{gs0, gs1} {
			if e, ok := table[domain.ForwardingKey{Src: domain.NodeID(s), Dst: gs}]; !ok || e.IsDrop() {
				return fail(name, "sat %d -> gs %d dropped or missing, want a route (plus-grid is connected)", s, gs)
			}
		}
	}
	return pass(name)
}

// scenarioC: K=3 LMSR window where the path through satellite A has
// length 10 at two of three snapshots and 100 at the third, while an
// alternative path through B is always 30. NAIVE-LMSR's max-over-window
// objective must prefer B (max 30 < max 100).
func scenarioC() Result {
	name := "C_naive_lmsr_picks_lower_max"
	// Nodes: 0=src, 1=A, 2=B, 3=dst. Direct 0-3 edge absent; two parallel
	// two-hop paths via A and via B with per-snapshot weight changes on
	// the A path only.
	build := func(viaALen int64) (*domain.Snapshot, error) {
		return domain.BuildSnapshot(0, 4, 0, []domain.ISLEdge{
			{A: 0, B: 1, DistanceM: viaALen / 2},
			{A: 1, B: 3, DistanceM: viaALen - viaALen/2},
			{A: 0, B: 2, DistanceM: 15},
			{A: 2, B: 3, DistanceM: 15},
		}, nil)
	}
	lens := []int64{10, 100, 10}
	var snaps []*domain.Snapshot
	for _, l := range lens {
		s, err := build(l)
		if err != nil {
			return fail(name, "build snapshot: %v", err)
		}
		snaps = append(snaps, s)
	}

	win, err := distkernel.NaiveLMSR(snaps)
	if err != nil {
		return fail(name, "NaiveLMSR: %v", err)
	}
	maxDist, reachable := distkernel.MaxOverWindow(win, 0, 3)
	if !reachable {
		return fail(name, "expected src->dst reachable across window")
	}
	if maxDist != 30 {
		return fail(name, "max-over-window distance = %v, want 30 (via B)", maxDist)
	}
	return pass(name)
}

// scenarioD: ANCHOR-LMSR with an anchor set equal to every satellite
// degenerates to plain shortest path; each sat->sat entry must match the
// FREE-GS shortest-path hop derived from the same snapshot's distance
// matrix (FREE-GS's own table has no sat->sat keys).
func scenarioD() Result {
	name := "D_anchor_lmsr_degenerates_to_free_gs"
	isls := []domain.ISLEdge{
		{A: 0, B: 1, DistanceM: 10},
		{A: 1, B: 2, DistanceM: 10},
		{A: 2, B: 3, DistanceM: 10},
		{A: 3, B: 0, DistanceM: 10},
	}
	snap, err := domain.BuildSnapshot(0, 4, 0, isls, nil)
	if err != nil {
		return fail(name, "build snapshot: %v", err)
	}

	dm, err := distkernel.FreeGS(snap)
	if err != nil {
		return fail(name, "FreeGS: %v", err)
	}
	anchors := []domain.NodeID{0, 1, 2, 3}
	ad, err := distkernel.AnchorLMSR(snap, anchors)
	if err != nil {
		return fail(name, "AnchorLMSR: %v", err)
	}
	anchorTable := forwarding.BuildAnchorLMSR(snap, 4, 0, anchors, distkernel.AnchorWindow{ad}, true, &logger.NopLogger{})

	for s := int64(0); s < 4; s++ {
		for d := int64(0); d < 4; d++ {
			if s == d {
				continue
			}
			key := domain.ForwardingKey{Src: domain.NodeID(s), Dst: domain.NodeID(d)}
			// FREE-GS hop: the neighbor minimizing edge weight + dist to d,
			// smaller id first on ties (neighbors are in ascending order).
			neighbors, weights := snap.Neighbors(key.Src)
			bestN, bestScore := domain.NodeID(-1), 0.0
			for i, n := range neighbors {
				if score := float64(weights[i]) + dm.Dist(n, key.Dst); bestN < 0 || score < bestScore {
					bestN, bestScore = n, score
				}
			}
			outIf, _ := snap.InterfaceFor(key.Src, bestN)
			inIf, _ := snap.InterfaceFor(bestN, key.Src)
			fe := domain.ForwardingEntry{NextHop: bestN, OutIface: int32(outIf), InIface: int32(inIf)}
			ae, ok := anchorTable[key]
			if !ok || fe != ae {
				return fail(name, "entry %+v differs: free_gs=%+v anchor_lmsr=%+v(%v)", key, fe, ae, ok)
			}
		}
	}
	return pass(name)
}

// scenarioE: anchor set {0}, 4-satellite ring with unit edge weights.
// The entry for satellite 2 routing to satellite 3 must be routed (not
// dropped) and reproduced identically when the anchor data and table are
// rebuilt; which next hop is chosen is not checked.
func scenarioE() Result {
	name := "E_anchor_ring_deterministic_tiebreak"
	isls := []domain.ISLEdge{
		{A: 0, B: 1, DistanceM: 1},
		{A: 1, B: 2, DistanceM: 1},
		{A: 2, B: 3, DistanceM: 1},
		{A: 3, B: 0, DistanceM: 1},
	}
	snap, err := domain.BuildSnapshot(0, 4, 0, isls, nil)
	if err != nil {
		return fail(name, "build snapshot: %v", err)
	}

	anchors := []domain.NodeID{0}
	ad, err := distkernel.AnchorLMSR(snap, anchors)
	if err != nil {
		return fail(name, "AnchorLMSR: %v", err)
	}
	table := forwarding.BuildAnchorLMSR(snap, 4, 0, anchors, distkernel.AnchorWindow{ad}, true, &logger.NopLogger{})

	e, ok := table[domain.ForwardingKey{Src: 2, Dst: 3}]
	if !ok || e.IsDrop() {
		return fail(name, "entry (2,3) missing or dropped")
	}
	// The two candidate routes (2->1->0->3 via the anchor, 3 hops, and the
	// direct 2->3 hop) are not a tie; the check below verifies that the
	// route is deterministic and reproduced identically on repeat.
	ad2, err := distkernel.AnchorLMSR(snap, anchors)
	if err != nil {
		return fail(name, "AnchorLMSR rerun: %v", err)
	}
	table2 := forwarding.BuildAnchorLMSR(snap, 4, 0, anchors, distkernel.AnchorWindow{ad2}, true, &logger.NopLogger{})
	e2 := table2[domain.ForwardingKey{Src: 2, Dst: 3}]
	if e != e2 {
		return fail(name, "entry (2,3) not reproducible: %+v vs %+v", e, e2)
	}
	return pass(name)
}

// scenarioF: a single edge-weight change between t and t+1 that alters
// exactly one next hop must produce a delta file with exactly one line.
// One ground station sees only satellite 2, so the sat->gs entries carry
// the change: only satellite 0's next hop moves (from 1 to 2).
func scenarioF() Result {
	name := "F_delta_correctness_single_change"
	base := []domain.ISLEdge{
		{A: 0, B: 1, DistanceM: 10},
		{A: 1, B: 2, DistanceM: 10},
		{A: 0, B: 2, DistanceM: 100},
	}
	gsInRange := [][]domain.GSLCandidate{{{SatID: 2, DistanceM: 1}}}
	snap0, err := domain.BuildSnapshot(0, 3, 1, base, gsInRange)
	if err != nil {
		return fail(name, "build snapshot t0: %v", err)
	}

	changed := []domain.ISLEdge{
		{A: 0, B: 1, DistanceM: 10},
		{A: 1, B: 2, DistanceM: 10},
		{A: 0, B: 2, DistanceM: 5}, // now the direct edge is shortest
	}
	snap1, err := domain.BuildSnapshot(1, 3, 1, changed, gsInRange)
	if err != nil {
		return fail(name, "build snapshot t1: %v", err)
	}

	dm0, err := distkernel.FreeGS(snap0)
	if err != nil {
		return fail(name, "FreeGS t0: %v", err)
	}
	dm1, err := distkernel.FreeGS(snap1)
	if err != nil {
		return fail(name, "FreeGS t1: %v", err)
	}
	table0 := forwarding.BuildFreeGS(snap0, 3, 1, dm0, &logger.NopLogger{})
	table1 := forwarding.BuildFreeGS(snap1, 3, 1, dm1, &logger.NopLogger{})

	dir, err := os.MkdirTemp("", "leoroute-scenario-f-*")
	if err != nil {
		return fail(name, "mkdtemp: %v", err)
	}
	defer os.RemoveAll(dir)

	w := deltawriter.New(dir, 1, 3, 1, domain.FreeGS)
	if err := w.WriteFstate(0, table0); err != nil {
		return fail(name, "write t0: %v", err)
	}
	if err := w.WriteFstate(1, table1); err != nil {
		return fail(name, "write t1: %v", err)
	}
	data, err := os.ReadFile(dir + "/fstate_1.txt")
	if err != nil {
		return fail(name, "read t1 delta: %v", err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 1 {
		return fail(name, "delta at t=1 has %d lines, want exactly 1", lines)
	}
	return pass(name)
}
