package forwarding

import (
	"testing"

	"leoroute/internal/distkernel"
	"leoroute/internal/domain"
	"leoroute/internal/logger"
)

func ringSnapshot(t *testing.T, w int64) *domain.Snapshot {
	t.Helper()
	isls := []domain.ISLEdge{
		{A: 0, B: 1, DistanceM: w},
		{A: 1, B: 2, DistanceM: w},
		{A: 2, B: 3, DistanceM: w},
		{A: 3, B: 0, DistanceM: w},
	}
	snap, err := domain.BuildSnapshot(0, 4, 0, isls, [][]domain.GSLCandidate{})
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	return snap
}

func TestBuildAnchorLMSRSatToSatGatedByFlag(t *testing.T) {
	snap := ringSnapshot(t, 10)
	anchors := []domain.NodeID{0, 2}
	win, err := distkernel.AnchorLMSRWindow([]*domain.Snapshot{snap}, anchors)
	if err != nil {
		t.Fatalf("AnchorLMSRWindow: %v", err)
	}

	withFlag := BuildAnchorLMSR(snap, 4, 0, anchors, win, true, &logger.NopLogger{})
	if _, ok := withFlag[domain.ForwardingKey{Src: 0, Dst: 1}]; !ok {
		t.Fatal("sat->sat entries should be present when emitSatToSat=true")
	}

	withoutFlag := BuildAnchorLMSR(snap, 4, 0, anchors, win, false, &logger.NopLogger{})
	if _, ok := withoutFlag[domain.ForwardingKey{Src: 0, Dst: 1}]; ok {
		t.Fatal("sat->sat entries should be absent when emitSatToSat=false")
	}
}

func TestBuildAnchorLMSRSatToSatFollowsRing(t *testing.T) {
	snap := ringSnapshot(t, 10)
	anchors := []domain.NodeID{0}
	win, err := distkernel.AnchorLMSRWindow([]*domain.Snapshot{snap}, anchors)
	if err != nil {
		t.Fatalf("AnchorLMSRWindow: %v", err)
	}

	table := BuildAnchorLMSR(snap, 4, 0, anchors, win, true, &logger.NopLogger{})

	entry := table[domain.ForwardingKey{Src: 1, Dst: 2}]
	if entry.IsDrop() {
		t.Fatal("1->2 should be directly reachable on the ring")
	}
	if entry.NextHop != 2 {
		t.Fatalf("1->2 NextHop = %d, want 2 (direct ring hop)", entry.NextHop)
	}
}
