// Package domain defines the core entities of the routing engine: node
// identifiers, graph snapshots, forwarding entries, and anchor data.
package domain

// NodeID identifies a satellite or a ground station. Ids 0..S-1 are
// satellites; ids S..S+G-1 are ground stations, where S = NumOrbits *
// NumSatsPerOrbit.
type NodeID int64

// DropIface is the interface value used in the drop sentinel.
const DropIface = -1

// DropNextHop is the next-hop value used in the drop sentinel.
const DropNextHop NodeID = -1

// IsSatellite reports whether id identifies a satellite given the total
// satellite count s.
func (id NodeID) IsSatellite(s int64) bool {
	return int64(id) >= 0 && int64(id) < s
}

// IsGroundStation reports whether id identifies a ground station given the
// total satellite count s and ground-station count g.
func (id NodeID) IsGroundStation(s, g int64) bool {
	v := int64(id)
	return v >= s && v < s+g
}
