package fstate

import (
	"os"
	"path/filepath"
	"testing"

	"leoroute/internal/domain"
)

func writeFstateFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", name, err)
	}
}

func TestTableAtReplaysDeltasLastWriteWins(t *testing.T) {
	dir := t.TempDir()
	const timeStepNs = 1000

	writeFstateFile(t, dir, "fstate_0.txt", "0,2,2,1,0\n1,2,-1,-1,-1\n")
	writeFstateFile(t, dir, "fstate_1000.txt", "1,2,0,0,1\n")
	writeFstateFile(t, dir, "fstate_2000.txt", "") // no changes at t=2

	store, err := Open(dir, timeStepNs)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	table, err := store.TableAt(0)
	if err != nil {
		t.Fatalf("TableAt(0): %v", err)
	}
	if entry := table[domain.ForwardingKey{Src: 1, Dst: 2}]; !entry.IsDrop() {
		t.Fatalf("at t=0, (1,2) should still be the drop sentinel, got %+v", entry)
	}

	table, err = store.TableAt(1)
	if err != nil {
		t.Fatalf("TableAt(1): %v", err)
	}
	entry := table[domain.ForwardingKey{Src: 1, Dst: 2}]
	if entry.IsDrop() || entry.NextHop != 0 {
		t.Fatalf("at t=1, (1,2) should have been overwritten to NextHop=0, got %+v", entry)
	}
	// (0,2) is untouched by the t=1 delta, so it must still carry its t=0 value.
	if entry := table[domain.ForwardingKey{Src: 0, Dst: 2}]; entry.NextHop != 2 {
		t.Fatalf("at t=1, (0,2) should carry forward its t=0 value, got %+v", entry)
	}

	table, err = store.TableAt(2)
	if err != nil {
		t.Fatalf("TableAt(2): %v", err)
	}
	if entry := table[domain.ForwardingKey{Src: 1, Dst: 2}]; entry.NextHop != 0 {
		t.Fatalf("at t=2, (1,2) should still carry the t=1 value (t=2 had no changes), got %+v", entry)
	}
}

func TestTableAtIgnoresFutureSteps(t *testing.T) {
	dir := t.TempDir()
	writeFstateFile(t, dir, "fstate_0.txt", "0,2,2,1,0\n")
	writeFstateFile(t, dir, "fstate_1000.txt", "0,2,3,0,0\n")

	store, err := Open(dir, 1000)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	table, err := store.TableAt(0)
	if err != nil {
		t.Fatalf("TableAt(0): %v", err)
	}
	if entry := table[domain.ForwardingKey{Src: 0, Dst: 2}]; entry.NextHop != 2 {
		t.Fatalf("TableAt(0) must not see the t=1 delta, got NextHop=%d", entry.NextHop)
	}
}
