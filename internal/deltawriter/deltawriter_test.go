package deltawriter

import (
	"os"
	"path/filepath"
	"testing"

	"leoroute/internal/domain"
)

func twoSatOneGSSnapshot(t *testing.T) *domain.Snapshot {
	t.Helper()
	isls := []domain.ISLEdge{{A: 0, B: 1, DistanceM: 1000}}
	gsInRange := [][]domain.GSLCandidate{
		{{SatID: 0, DistanceM: 500}},
	}
	snap, err := domain.BuildSnapshot(0, 2, 1, isls, gsInRange)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	return snap
}

func sampleTable() domain.ForwardingTable {
	return domain.ForwardingTable{
		{Src: 0, Dst: 2}: {NextHop: 2, OutIface: 1, InIface: 0},
		{Src: 1, Dst: 2}: domain.DropEntry,
	}
}

func TestWriteFstateFirstWriteEmitsEverything(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, 1000, 2, 1, domain.FreeGS)

	if err := w.WriteFstate(0, sampleTable()); err != nil {
		t.Fatalf("WriteFstate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "fstate_0.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	got := string(data)
	want := "0,2,2,1,0\n1,2,-1,-1,-1\n"
	if got != want {
		t.Fatalf("fstate_0.txt = %q, want %q", got, want)
	}
}

func TestWriteFstateDeltaOmitsUnchangedEntries(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, 1000, 2, 1, domain.FreeGS)

	if err := w.WriteFstate(0, sampleTable()); err != nil {
		t.Fatalf("WriteFstate(t=0): %v", err)
	}

	changed := sampleTable()
	changed[domain.ForwardingKey{Src: 1, Dst: 2}] = domain.ForwardingEntry{NextHop: 0, OutIface: 0, InIface: 1}

	if err := w.WriteFstate(1, changed); err != nil {
		t.Fatalf("WriteFstate(t=1): %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "fstate_1000.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "1,2,0,0,1\n"
	if got := string(data); got != want {
		t.Fatalf("fstate_1000.txt = %q, want %q", got, want)
	}
}

func TestWriteFstateNoChangeIsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, 1000, 2, 1, domain.FreeGS)

	if err := w.WriteFstate(0, sampleTable()); err != nil {
		t.Fatalf("WriteFstate(t=0): %v", err)
	}
	if err := w.WriteFstate(1, sampleTable()); err != nil {
		t.Fatalf("WriteFstate(t=1): %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "fstate_1000.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("fstate_1000.txt should be empty when nothing changed, got %q", data)
	}
}

func TestWriteBandwidthDerivesFixedInvariant(t *testing.T) {
	dir := t.TempDir()
	snap := twoSatOneGSSnapshot(t)
	w := New(dir, 1000, 2, 1, domain.FreeGS)

	if err := w.WriteBandwidth(snap); err != nil {
		t.Fatalf("WriteBandwidth: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "gsl_if_bandwidth_0.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	// numGS=1: each satellite's single GSL interface (iface = NumISLs(sat)+0)
	// carries the full 1.0 aggregate; the ground station's interface 0
	// carries 1.0.
	want := "0,1,1\n1,1,1\n2,0,1\n"
	if got := string(data); got != want {
		t.Fatalf("gsl_if_bandwidth_0.txt = %q, want %q", got, want)
	}
}
