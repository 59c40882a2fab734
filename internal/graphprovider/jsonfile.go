package graphprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"leoroute/internal/domain"
)

// jsonSnapshot is the on-disk shape of one <dir>/graph_<t>.json file,
// produced upstream by TLE propagation and visibility computation (out of
// scope for this engine; see spec's Graph Provider boundary).
type jsonSnapshot struct {
	NumSats int64 `json:"num_sats"`
	NumGS   int64 `json:"num_gs"`
	ISLs    []struct {
		A         int64 `json:"a"`
		B         int64 `json:"b"`
		DistanceM int64 `json:"distance_m"`
	} `json:"isls"`
	GSInRange [][]struct {
		SatID     int64 `json:"sat_id"`
		DistanceM int64 `json:"distance_m"`
	} `json:"gs_in_range"`
}

// JSONFile reads one JSON file per timestep from a directory. No JSON
// library appears anywhere in the retrieved example pack, so this
// implementation uses the standard encoding/json package (see DESIGN.md).
type JSONFile struct {
	Dir string
}

// NewJSONFile returns a Provider reading graph_<t>.json files from dir.
func NewJSONFile(dir string) *JSONFile {
	return &JSONFile{Dir: dir}
}

func (p *JSONFile) Get(ctx context.Context, t int64) (*domain.Snapshot, error) {
	path := filepath.Join(p.Dir, fmt.Sprintf("graph_%d.json", t))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graphprovider: reading %s: %w", path, err)
	}

	var js jsonSnapshot
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, fmt.Errorf("graphprovider: parsing %s: %w", path, err)
	}

	isls := make([]domain.ISLEdge, 0, len(js.ISLs))
	for _, e := range js.ISLs {
		isls = append(isls, domain.ISLEdge{A: domain.NodeID(e.A), B: domain.NodeID(e.B), DistanceM: e.DistanceM})
	}

	gsInRange := make([][]domain.GSLCandidate, len(js.GSInRange))
	for g, cands := range js.GSInRange {
		row := make([]domain.GSLCandidate, 0, len(cands))
		for _, c := range cands {
			row = append(row, domain.GSLCandidate{SatID: domain.NodeID(c.SatID), DistanceM: c.DistanceM})
		}
		gsInRange[g] = row
	}

	return domain.BuildSnapshot(t, js.NumSats, js.NumGS, isls, gsInRange)
}
