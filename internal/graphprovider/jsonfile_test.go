package graphprovider

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestJSONFileGetParsesSnapshot(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"num_sats": 2,
		"num_gs": 1,
		"isls": [{"a": 0, "b": 1, "distance_m": 1000}],
		"gs_in_range": [[{"sat_id": 0, "distance_m": 500}]]
	}`
	if err := os.WriteFile(filepath.Join(dir, "graph_0.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := NewJSONFile(dir)
	snap, err := p.Get(context.Background(), 0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if snap.NumSats != 2 || snap.NumGS != 1 {
		t.Fatalf("snap = {%d sats, %d gs}, want {2, 1}", snap.NumSats, snap.NumGS)
	}
	if !snap.IsAdjacent(0, 1) {
		t.Fatal("ISL edge from the JSON file should be reflected in the snapshot")
	}
}

func TestJSONFileGetMissingFile(t *testing.T) {
	p := NewJSONFile(t.TempDir())
	if _, err := p.Get(context.Background(), 99); err == nil {
		t.Fatal("expected an error for a missing graph_99.json")
	}
}

func TestStaticGetOutOfRange(t *testing.T) {
	p := NewStatic(nil)
	if _, err := p.Get(context.Background(), 0); err == nil {
		t.Fatal("expected an out-of-range error for an empty Static provider")
	}
}
