package domain

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvlath/core"
)

// GSLCandidate is one satellite within range of a ground station.
type GSLCandidate struct {
	SatID     NodeID
	DistanceM int64
}

// ISLEdge is one inter-satellite link present in a single snapshot.
type ISLEdge struct {
	A, B      NodeID
	DistanceM int64
}

// Snapshot is an immutable bundle describing one timestep's topology: the
// satellite-only ISL graph plus per-ground-station visibility. Internally
// the ISL graph is stored as compressed sparse row (CSR) adjacency for
// cache-friendly traversal by the distance kernel; it is constructed from a
// core.Graph so that fixtures and tests build it the same way any other
// graph-shaped data in this codebase is built.
type Snapshot struct {
	Timestep int64
	NumSats  int64
	NumGS    int64

	// CSR adjacency over satellite vertices 0..NumSats-1.
	offsets   []int32  // len NumSats+1
	neighbors []NodeID // len = 2*numISLs
	weights   []int64  // meters, parallel to neighbors

	numISLsPerSat   []int32
	satNeighborToIf map[[2]NodeID]int32

	// gsInRange[g] holds the in-range satellites for ground station g
	// (local index 0..NumGS-1, i.e. NodeID - NumSats).
	gsInRange [][]GSLCandidate
}

// BuildSnapshot constructs a Snapshot for timestep t from an ISL edge list
// and per-ground-station visibility. Self-loops and non-positive weights are
// rejected before insertion; the remaining edges go through a core.Graph
// before the CSR arrays are derived, so any edge core.Graph refuses fails
// fast with the error core.Graph raises.
func BuildSnapshot(t int64, numSats, numGS int64, isls []ISLEdge, gsInRange [][]GSLCandidate) (*Snapshot, error) {
	if numSats <= 0 {
		return nil, fmt.Errorf("domain: numSats must be > 0, got %d", numSats)
	}
	if int64(len(gsInRange)) != numGS {
		return nil, fmt.Errorf("domain: gsInRange has %d entries, want %d", len(gsInRange), numGS)
	}

	g := core.NewGraph(core.WithWeighted())
	for i := int64(0); i < numSats; i++ {
		if err := g.AddVertex(vid(NodeID(i))); err != nil {
			return nil, fmt.Errorf("domain: AddVertex(%d): %w", i, err)
		}
	}
	for _, e := range isls {
		if e.A == e.B {
			return nil, fmt.Errorf("domain: self-loop ISL edge at satellite %d", e.A)
		}
		if e.DistanceM <= 0 {
			return nil, fmt.Errorf("domain: non-positive ISL weight %d between %d and %d", e.DistanceM, e.A, e.B)
		}
		if _, err := g.AddEdge(vid(e.A), vid(e.B), e.DistanceM); err != nil {
			return nil, fmt.Errorf("domain: AddEdge(%d,%d): %w", e.A, e.B, err)
		}
	}

	snap := &Snapshot{
		Timestep:      t,
		NumSats:       numSats,
		NumGS:         numGS,
		numISLsPerSat: make([]int32, numSats),
		gsInRange:     gsInRange,
	}
	if err := snap.buildCSR(g); err != nil {
		return nil, err
	}
	return snap, nil
}

func vid(n NodeID) string { return fmt.Sprintf("%d", int64(n)) }

func (s *Snapshot) buildCSR(g *core.Graph) error {
	n := int(s.NumSats)
	adj := make([][]ISLEdge, n)
	for i := int64(0); i < s.NumSats; i++ {
		edges, err := g.Neighbors(vid(NodeID(i)))
		if err != nil {
			return fmt.Errorf("domain: Neighbors(%d): %w", i, err)
		}
		self := vid(NodeID(i))
		for _, e := range edges {
			other := e.To
			if other == self {
				other = e.From
			}
			var nb int64
			if _, err := fmt.Sscanf(other, "%d", &nb); err != nil {
				return fmt.Errorf("domain: malformed vertex id %q: %w", other, err)
			}
			adj[i] = append(adj[i], ISLEdge{A: NodeID(i), B: NodeID(nb), DistanceM: e.Weight})
		}
		sort.Slice(adj[i], func(a, b int) bool { return adj[i][a].B < adj[i][b].B })
	}

	s.offsets = make([]int32, n+1)
	total := 0
	for i := 0; i < n; i++ {
		total += len(adj[i])
	}
	s.neighbors = make([]NodeID, 0, total)
	s.weights = make([]int64, 0, total)
	s.satNeighborToIf = make(map[[2]NodeID]int32, total)

	for i := 0; i < n; i++ {
		s.offsets[i] = int32(len(s.neighbors))
		s.numISLsPerSat[i] = int32(len(adj[i]))
		for ifIdx, e := range adj[i] {
			s.neighbors = append(s.neighbors, e.B)
			s.weights = append(s.weights, e.DistanceM)
			s.satNeighborToIf[[2]NodeID{NodeID(i), e.B}] = int32(ifIdx)
		}
	}
	s.offsets[n] = int32(len(s.neighbors))
	return nil
}

// Neighbors returns the ISL neighbors of satellite sat with their edge
// weights, in ascending neighbor-id order.
func (s *Snapshot) Neighbors(sat NodeID) (ids []NodeID, weightsM []int64) {
	i := int(sat)
	lo, hi := s.offsets[i], s.offsets[i+1]
	return s.neighbors[lo:hi], s.weights[lo:hi]
}

// NumISLs returns the number of ISL interfaces on satellite sat.
func (s *Snapshot) NumISLs(sat NodeID) int {
	return int(s.numISLsPerSat[sat])
}

// InterfaceFor returns the ISL interface index satellite `from` uses to
// reach neighbor `to`, and whether that adjacency exists in this snapshot.
func (s *Snapshot) InterfaceFor(from, to NodeID) (int, bool) {
	idx, ok := s.satNeighborToIf[[2]NodeID{from, to}]
	return int(idx), ok
}

// GSInRange returns the satellites in range of ground station gid
// (NumSats <= gid < NumSats+NumGS).
func (s *Snapshot) GSInRange(gid NodeID) []GSLCandidate {
	return s.gsInRange[int64(gid)-s.NumSats]
}

// IsAdjacent reports whether a and b are ISL-connected in this snapshot.
func (s *Snapshot) IsAdjacent(a, b NodeID) bool {
	_, ok := s.InterfaceFor(a, b)
	return ok
}
