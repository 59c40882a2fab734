package distkernel

import (
	"container/heap"
	"fmt"
	"sort"

	"leoroute/internal/domain"
)

// AnchorLMSR computes nearest-anchor and anchor-to-anchor data for one
// snapshot via a single multi-source Dijkstra seeded from every anchor in
// anchors, tagged with its source anchor. Matches spec §4.2.3: each
// (node, source_anchor) pair is relaxed at most once; equal-distance pops
// are resolved by (source_anchor asc, node asc) for deterministic output.
func AnchorLMSR(snap *domain.Snapshot, anchors []domain.NodeID) (*domain.AnchorData, error) {
	if len(anchors) == 0 {
		return nil, fmt.Errorf("distkernel: AnchorLMSR requires a non-empty anchor set")
	}
	sorted := append([]domain.NodeID(nil), anchors...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	ad := domain.NewAnchorData(sorted)
	isAnchor := make(map[domain.NodeID]bool, len(sorted))
	for _, a := range sorted {
		isAnchor[a] = true
	}

	type tag struct{ node, src domain.NodeID }
	finalized := make(map[tag]bool)
	tentative := make(map[tag]int64)

	pq := &anchorPQ{}
	heap.Init(pq)
	for _, a := range sorted {
		t := tag{node: a, src: a}
		tentative[t] = 0
		heap.Push(pq, anchorItem{dist: 0, node: a, src: a})
	}

	for pq.Len() > 0 {
		it := heap.Pop(pq).(anchorItem)
		t := tag{node: it.node, src: it.src}
		if finalized[t] {
			continue
		}
		finalized[t] = true

		if it.node == it.src {
			ad.SetNearest(it.node, domain.NearestAnchor{AnchorID: it.src, DistanceM: 0})
		} else if !isAnchor[it.node] {
			if _, ok := ad.Nearest(it.node); !ok {
				ad.SetNearest(it.node, domain.NearestAnchor{AnchorID: it.src, DistanceM: it.dist})
			}
		} else {
			// it.node is an anchor different from it.src: record the pair.
			path := ad.PathFromAnchor(it.src, it.node)
			if len(path) >= 2 {
				ad.SetPair(it.src, it.node, domain.AnchorPair{DistanceM: it.dist, NextHop: path[1]})
				if pred, ok := ad.Pred(it.node, it.src); ok {
					ad.SetPair(it.node, it.src, domain.AnchorPair{DistanceM: it.dist, NextHop: pred})
				}
			}
		}

		neighbors, weights := snap.Neighbors(it.node)
		for i, nb := range neighbors {
			cand := it.dist + weights[i]
			nt := tag{node: nb, src: it.src}
			if finalized[nt] {
				continue
			}
			if best, ok := tentative[nt]; !ok || cand < best {
				tentative[nt] = cand
				ad.SetPred(nb, it.src, it.node)
				heap.Push(pq, anchorItem{dist: cand, node: nb, src: it.src})
			}
		}
	}

	return ad, nil
}

// AnchorWindow holds one AnchorData per window snapshot, in logical order
// (offset 0 = current timestep), mirroring WindowMatrices.
type AnchorWindow []*domain.AnchorData

// AnchorLMSRWindow computes AnchorData for every snapshot in the window,
// used to build the window from scratch at controller start.
func AnchorLMSRWindow(snapshots []*domain.Snapshot, anchors []domain.NodeID) (AnchorWindow, error) {
	out := make(AnchorWindow, len(snapshots))
	for i, snap := range snapshots {
		ad, err := AnchorLMSR(snap, anchors)
		if err != nil {
			return nil, fmt.Errorf("distkernel: AnchorLMSRWindow snapshot %d: %w", i, err)
		}
		out[i] = ad
	}
	return out, nil
}

// AdvanceAnchorWindow drops the oldest AnchorData and appends a newly
// computed one for the newest snapshot, matching the Window's own ring
// rotation.
func AdvanceAnchorWindow(prev AnchorWindow, newest *domain.Snapshot, anchors []domain.NodeID) (AnchorWindow, error) {
	ad, err := AnchorLMSR(newest, anchors)
	if err != nil {
		return nil, fmt.Errorf("distkernel: AdvanceAnchorWindow: %w", err)
	}
	out := make(AnchorWindow, len(prev))
	copy(out, prev[1:])
	out[len(out)-1] = ad
	return out, nil
}

type anchorItem struct {
	dist int64
	node domain.NodeID
	src  domain.NodeID
}

// anchorPQ is a min-heap ordered by (dist, src asc, node asc), matching the
// deterministic tie-break the controller's ordering guarantees require.
type anchorPQ []anchorItem

func (pq anchorPQ) Len() int { return len(pq) }
func (pq anchorPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	if pq[i].src != pq[j].src {
		return pq[i].src < pq[j].src
	}
	return pq[i].node < pq[j].node
}
func (pq anchorPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *anchorPQ) Push(x any)   { *pq = append(*pq, x.(anchorItem)) }
func (pq *anchorPQ) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}
