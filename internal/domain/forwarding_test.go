package domain

import "testing"

func TestDropEntryIsDrop(t *testing.T) {
	if !DropEntry.IsDrop() {
		t.Fatal("DropEntry.IsDrop() should be true")
	}
	real := ForwardingEntry{NextHop: 3, OutIface: 0, InIface: 1}
	if real.IsDrop() {
		t.Fatal("a real entry should not report IsDrop()")
	}
}

func TestForwardingTableKeying(t *testing.T) {
	table := make(ForwardingTable)
	k := ForwardingKey{Src: 0, Dst: 5}
	table[k] = ForwardingEntry{NextHop: 1, OutIface: 0, InIface: 0}

	if _, ok := table[ForwardingKey{Src: 5, Dst: 0}]; ok {
		t.Fatal("(src,dst) and (dst,src) must be distinct keys")
	}
	if entry := table[k]; entry.NextHop != 1 {
		t.Fatalf("table[k].NextHop = %d, want 1", entry.NextHop)
	}
}
