package octree

import "github.com/litescript/ls-stellar/internal/fixed"

// Sector describes one axis-aligned cubic region of the tree: its
// hierarchical ID, bounds, derived centre, depth and aggregate luminosity.
// Bounds are half-open: a point belongs to the sector when it lies within
// [min, max) on every axis. The aggregate luminosity of a sector equals the
// elementwise sum of the colours of every body beneath it, plus whatever
// seed luminosity the sector was created with.
type Sector struct {
	id         ID
	min, max   fixed.Vec3
	centre     fixed.Vec3
	luminosity RGB
	depth      int
}

func newSector(id ID, min, max fixed.Vec3, luminosity RGB, depth int) Sector {
	return Sector{
		id:         id,
		min:        min,
		max:        max,
		centre:     min.Add(max).Half(),
		luminosity: luminosity,
		depth:      depth,
	}
}

// ID returns the sector's hierarchical identifier.
func (s Sector) ID() ID { return s.id }

// Bounds returns the sector's half-open bounds.
func (s Sector) Bounds() (min, max fixed.Vec3) { return s.min, s.max }

// Centre returns the sector's centre point.
func (s Sector) Centre() fixed.Vec3 { return s.centre }

// Depth returns the sector's depth below the root.
func (s Sector) Depth() int { return s.depth }

// Luminosity returns the sector's aggregate luminosity.
func (s Sector) Luminosity() RGB { return s.luminosity }

// Dimensions returns the sector's extent along each axis.
func (s Sector) Dimensions() fixed.Vec3 {
	return s.max.Sub(s.min)
}

// halfExtent is the vector from the minimum corner to the centre.
func (s Sector) halfExtent() fixed.Vec3 {
	return s.centre.Sub(s.min)
}

// Octant classifies p relative to the sector's centre. ok is false when p
// lies outside [min, max) on any axis.
func (s Sector) Octant(p fixed.Vec3) (o Octant, ok bool) {
	if p.X.Cmp(s.min.X) < 0 || p.Y.Cmp(s.min.Y) < 0 || p.Z.Cmp(s.min.Z) < 0 ||
		p.X.Cmp(s.max.X) >= 0 || p.Y.Cmp(s.max.Y) >= 0 || p.Z.Cmp(s.max.Z) >= 0 {
		return 0, false
	}
	return octantOf(
		p.X.Cmp(s.centre.X) >= 0,
		p.Y.Cmp(s.centre.Y) >= 0,
		p.Z.Cmp(s.centre.Z) >= 0,
	), true
}

// childBounds computes the bounds of the child region at o.
func (s Sector) childBounds(o Octant) (min, max fixed.Vec3) {
	half := s.halfExtent()
	min = s.min.Add(o.Offset().Mul(half))
	return min, min.Add(half)
}
