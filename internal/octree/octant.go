package octree

import "github.com/litescript/ls-stellar/internal/fixed"

// Octant identifies one of the eight sub-regions of a cubic region by the
// sign of each axis relative to the region's centre: N is the low half,
// P the high half. The numeric code packs the axes as x<<2 | y<<1 | z and
// is the digit used in hierarchical sector IDs, so the values must not be
// reordered.
type Octant uint8

const (
	OctNxNyNz Octant = iota
	OctNxNyPz
	OctNxPyNz
	OctNxPyPz
	OctPxNyNz
	OctPxNyPz
	OctPxPyNz
	OctPxPyPz
)

// Octants lists all eight octants in code order.
var Octants = [8]Octant{
	OctNxNyNz, OctNxNyPz, OctNxPyNz, OctNxPyPz,
	OctPxNyNz, OctPxNyPz, OctPxPyNz, OctPxPyPz,
}

// octantOf builds an Octant from per-axis "high half" flags.
func octantOf(px, py, pz bool) Octant {
	var o Octant
	if px {
		o |= 4
	}
	if py {
		o |= 2
	}
	if pz {
		o |= 1
	}
	return o
}

// Offset returns the octant's unit offset from a region's minimum corner:
// 0 or 1 per axis. Multiplied by a region's half-extent it yields the
// minimum corner of the child region.
func (o Octant) Offset() fixed.Vec3 {
	var v fixed.Vec3
	if o&4 != 0 {
		v.X = fixed.One
	}
	if o&2 != 0 {
		v.Y = fixed.One
	}
	if o&1 != 0 {
		v.Z = fixed.One
	}
	return v
}

func (o Octant) String() string {
	if o > 7 {
		return "Oct?"
	}
	names := [8]string{
		"NxNyNz", "NxNyPz", "NxPyNz", "NxPyPz",
		"PxNyNz", "PxNyPz", "PxPyNz", "PxPyPz",
	}
	return names[o]
}
