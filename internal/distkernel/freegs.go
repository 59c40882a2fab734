// Package distkernel computes the distance data each routing algorithm
// needs over satellite-only graph snapshots: single-snapshot APSP for
// FREE-GS, windowed APSP for NAIVE-LMSR, and multi-source anchor search for
// ANCHOR-LMSR.
package distkernel

import (
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/matrix"

	"leoroute/internal/domain"
)

// DistanceMatrix is a symmetric all-pairs shortest-path result over
// satellites 0..NumSats-1. Dist(u,v) is +Inf when u cannot reach v.
type DistanceMatrix struct {
	numSats int64
	dense   *matrix.Dense
}

// Dist returns the shortest-path distance between satellites u and v.
func (m *DistanceMatrix) Dist(u, v domain.NodeID) float64 {
	d, _ := m.dense.At(int(u), int(v))
	return d
}

// NumSats returns the satellite count the matrix was built over.
func (m *DistanceMatrix) NumSats() int64 { return m.numSats }

// FreeGS computes the single-snapshot all-pairs shortest-path matrix
// required by FREE-GS, using the Floyd-Warshall metric closure built into
// lvlath's matrix.BuildDenseAdjacency.
func FreeGS(snap *domain.Snapshot) (*DistanceMatrix, error) {
	n := int(snap.NumSats)
	vertices := make([]string, n)
	for i := 0; i < n; i++ {
		vertices[i] = strconv.FormatInt(int64(i), 10)
	}

	var edges []*core.Edge
	for i := int64(0); i < snap.NumSats; i++ {
		neighbors, weights := snap.Neighbors(domain.NodeID(i))
		for k, nb := range neighbors {
			if int64(nb) <= i {
				continue // each undirected edge once, from the lower-numbered endpoint
			}
			edges = append(edges, &core.Edge{
				From:   strconv.FormatInt(i, 10),
				To:     strconv.FormatInt(int64(nb), 10),
				Weight: weights[k],
			})
		}
	}

	opts := matrix.NewMatrixOptions(
		matrix.WithWeighted(true),
		matrix.WithMetricClosure(true),
	)
	_, dense, err := matrix.BuildDenseAdjacency(vertices, edges, opts)
	if err != nil {
		return nil, fmt.Errorf("distkernel: FreeGS BuildDenseAdjacency: %w", err)
	}
	return &DistanceMatrix{numSats: snap.NumSats, dense: dense}, nil
}

// IsUnreachable reports whether d represents "no path".
func IsUnreachable(d float64) bool { return math.IsInf(d, 1) }
