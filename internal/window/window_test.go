package window

import (
	"context"
	"testing"

	"leoroute/internal/domain"
	"leoroute/internal/graphprovider"
)

func snapshotSeq(t *testing.T, n int) []*domain.Snapshot {
	t.Helper()
	out := make([]*domain.Snapshot, n)
	for i := 0; i < n; i++ {
		snap, err := domain.BuildSnapshot(int64(i), 1, 0, nil, [][]domain.GSLCandidate{})
		if err != nil {
			t.Fatalf("BuildSnapshot(%d): %v", i, err)
		}
		out[i] = snap
	}
	return out
}

func TestWindowInitAndCurrent(t *testing.T) {
	provider := graphprovider.NewStatic(snapshotSeq(t, 5))
	w := New(provider, 3)

	if err := w.Init(context.Background(), 0); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := w.Current().Timestep; got != 0 {
		t.Fatalf("Current().Timestep = %d, want 0", got)
	}
	all := w.All()
	if len(all) != 3 {
		t.Fatalf("All() length = %d, want 3", len(all))
	}
	for i, s := range all {
		if s.Timestep != int64(i) {
			t.Fatalf("All()[%d].Timestep = %d, want %d", i, s.Timestep, i)
		}
	}
}

func TestWindowAdvanceRotates(t *testing.T) {
	provider := graphprovider.NewStatic(snapshotSeq(t, 5))
	w := New(provider, 3)

	if err := w.Init(context.Background(), 0); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := w.Advance(context.Background(), 1); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	all := w.All()
	if len(all) != 3 {
		t.Fatalf("All() length = %d, want 3", len(all))
	}
	for i, s := range all {
		want := int64(i + 1)
		if s.Timestep != want {
			t.Fatalf("after Advance, All()[%d].Timestep = %d, want %d", i, s.Timestep, want)
		}
	}
	if w.Current().Timestep != 1 {
		t.Fatalf("Current().Timestep after Advance = %d, want 1", w.Current().Timestep)
	}
}

func TestWindowSize(t *testing.T) {
	provider := graphprovider.NewStatic(snapshotSeq(t, 2))
	w := New(provider, 2)
	if w.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", w.Size())
	}
}
