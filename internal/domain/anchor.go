package domain

// AnchorPairKey identifies an ordered pair of distinct anchors.
type AnchorPairKey struct {
	Src, Dst NodeID
}

// AnchorPair records the shortest distance between two anchors and the
// first hop a packet at Src takes toward Dst.
type AnchorPair struct {
	DistanceM int64
	NextHop   NodeID
}

// NearestAnchor records, for one satellite, the anchor closest to it and
// the distance. Path is reconstructed on demand from the predecessor array
// (see AnchorData.pred) rather than stored inline, per the memory-bounded
// design: O(A*V) instead of O(A*V*depth).
type NearestAnchor struct {
	AnchorID  NodeID
	DistanceM int64
}

// AnchorData is the result of one multi-source Dijkstra pass from a fixed
// anchor set over a single snapshot: each node's nearest anchor plus
// pairwise anchor-to-anchor distances and next hops, both directions.
type AnchorData struct {
	Anchors []NodeID

	nearest map[NodeID]NearestAnchor
	pairs   map[AnchorPairKey]AnchorPair

	// pred[(node, sourceAnchor)] = previous node along the shortest path
	// from sourceAnchor to node. Anchors have no predecessor entry for
	// their own source tag (they are the path origin).
	pred map[predKey]NodeID
}

type predKey struct {
	Node         NodeID
	SourceAnchor NodeID
}

// NewAnchorData creates an empty AnchorData for the given anchor set.
func NewAnchorData(anchors []NodeID) *AnchorData {
	return &AnchorData{
		Anchors: anchors,
		nearest: make(map[NodeID]NearestAnchor),
		pairs:   make(map[AnchorPairKey]AnchorPair),
		pred:    make(map[predKey]NodeID),
	}
}

// Nearest returns v's nearest anchor, if the multi-source search reached v.
func (ad *AnchorData) Nearest(v NodeID) (NearestAnchor, bool) {
	na, ok := ad.nearest[v]
	return na, ok
}

// SetNearest records v's nearest anchor. The multi-source search calls it
// at most once per node: for an anchor when it is popped under its own
// tag, for a non-anchor the first time it is popped.
func (ad *AnchorData) SetNearest(v NodeID, na NearestAnchor) {
	ad.nearest[v] = na
}

// Pair returns the anchor-to-anchor distance/next-hop for an ordered pair.
func (ad *AnchorData) Pair(src, dst NodeID) (AnchorPair, bool) {
	p, ok := ad.pairs[AnchorPairKey{Src: src, Dst: dst}]
	return p, ok
}

// SetPair records an anchor-to-anchor entry for one direction.
func (ad *AnchorData) SetPair(src, dst NodeID, p AnchorPair) {
	ad.pairs[AnchorPairKey{Src: src, Dst: dst}] = p
}

// SetPred records the predecessor of v along the shortest path from
// sourceAnchor, as discovered during relaxation.
func (ad *AnchorData) SetPred(v, sourceAnchor, prev NodeID) {
	ad.pred[predKey{Node: v, SourceAnchor: sourceAnchor}] = prev
}

// Pred returns the predecessor of v along the shortest path rooted at
// sourceAnchor.
func (ad *AnchorData) Pred(v, sourceAnchor NodeID) (NodeID, bool) {
	p, ok := ad.pred[predKey{Node: v, SourceAnchor: sourceAnchor}]
	return p, ok
}

// PathFromAnchor reconstructs the full path [sourceAnchor, ..., v] by
// walking the predecessor array backward. Returns nil if v was never
// reached from sourceAnchor.
func (ad *AnchorData) PathFromAnchor(sourceAnchor, v NodeID) []NodeID {
	if v == sourceAnchor {
		return []NodeID{sourceAnchor}
	}
	var rev []NodeID
	cur := v
	for {
		rev = append(rev, cur)
		if cur == sourceAnchor {
			break
		}
		prev, ok := ad.pred[predKey{Node: cur, SourceAnchor: sourceAnchor}]
		if !ok {
			return nil
		}
		cur = prev
	}
	// rev is [v, ..., sourceAnchor]; reverse it in place.
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}
