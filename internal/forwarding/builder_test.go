package forwarding

import (
	"testing"

	"leoroute/internal/distkernel"
	"leoroute/internal/domain"
	"leoroute/internal/logger"
)

// twoSatOneGS builds a 2-satellite ISL line with one ground station visible
// to both satellites, at different distances.
func twoSatOneGS(t *testing.T) *domain.Snapshot {
	t.Helper()
	isls := []domain.ISLEdge{{A: 0, B: 1, DistanceM: 1000}}
	gsInRange := [][]domain.GSLCandidate{
		{{SatID: 0, DistanceM: 500}, {SatID: 1, DistanceM: 100}},
	}
	snap, err := domain.BuildSnapshot(0, 2, 1, isls, gsInRange)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	return snap
}

func TestBuildFreeGSDirectGSLWhenCheapest(t *testing.T) {
	snap := twoSatOneGS(t)
	dm, err := distkernel.FreeGS(snap)
	if err != nil {
		t.Fatalf("FreeGS: %v", err)
	}
	table := BuildFreeGS(snap, 2, 1, dm, &logger.NopLogger{})

	// Satellite 1 is 100m from the ground station directly, versus
	// 1000+500=1500m via satellite 0: it must use its own GSL interface.
	entry := table[domain.ForwardingKey{Src: 1, Dst: 2}]
	if entry.IsDrop() {
		t.Fatal("sat1->gs should not be a drop")
	}
	if entry.NextHop != 2 {
		t.Fatalf("sat1->gs NextHop = %d, want 2 (direct GSL)", entry.NextHop)
	}
	if entry.OutIface != int32(snap.NumISLs(1)) {
		t.Fatalf("sat1->gs OutIface = %d, want %d (first GSL interface)", entry.OutIface, snap.NumISLs(1))
	}
}

func TestBuildFreeGSKeepsDirectGSLWhenISLDetourCostsMore(t *testing.T) {
	snap := twoSatOneGS(t)
	dm, err := distkernel.FreeGS(snap)
	if err != nil {
		t.Fatalf("FreeGS: %v", err)
	}
	table := BuildFreeGS(snap, 2, 1, dm, &logger.NopLogger{})

	// Satellite 0 is 500m from the GS directly; via satellite 1 it would be
	// 1000+100=1100m, so it should still prefer its own direct GSL.
	entry := table[domain.ForwardingKey{Src: 0, Dst: 2}]
	if entry.NextHop != 2 {
		t.Fatalf("sat0->gs NextHop = %d, want 2 (its own GSL is cheaper)", entry.NextHop)
	}
}

func TestBuildFreeGSDropsWhenGSUnreachable(t *testing.T) {
	isls := []domain.ISLEdge{{A: 0, B: 1, DistanceM: 10}}
	gsInRange := [][]domain.GSLCandidate{{}} // no satellite sees the GS
	snap, err := domain.BuildSnapshot(0, 2, 1, isls, gsInRange)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	dm, err := distkernel.FreeGS(snap)
	if err != nil {
		t.Fatalf("FreeGS: %v", err)
	}
	table := BuildFreeGS(snap, 2, 1, dm, &logger.NopLogger{})

	entry := table[domain.ForwardingKey{Src: 0, Dst: 2}]
	if !entry.IsDrop() {
		t.Fatalf("sat0->gs should drop when no satellite can see the GS, got %+v", entry)
	}
}

func TestBuildFreeGSGSToGS(t *testing.T) {
	isls := []domain.ISLEdge{{A: 0, B: 1, DistanceM: 1000}}
	gsInRange := [][]domain.GSLCandidate{
		{{SatID: 0, DistanceM: 100}}, // gs index 0 -> node 2
		{{SatID: 1, DistanceM: 100}}, // gs index 1 -> node 3
	}
	snap, err := domain.BuildSnapshot(0, 2, 2, isls, gsInRange)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	dm, err := distkernel.FreeGS(snap)
	if err != nil {
		t.Fatalf("FreeGS: %v", err)
	}
	table := BuildFreeGS(snap, 2, 2, dm, &logger.NopLogger{})

	entry := table[domain.ForwardingKey{Src: 2, Dst: 3}]
	if entry.IsDrop() {
		t.Fatal("gs->gs should find a route through the ISL-connected satellites")
	}
	if entry.NextHop != 0 {
		t.Fatalf("gs(2)->gs(3) NextHop = %d, want 0 (the satellite it can see)", entry.NextHop)
	}
}
