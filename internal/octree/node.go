package octree

import "github.com/litescript/ls-stellar/internal/fixed"

// Body is an inserted point light source. Immutable once inserted; the
// tree is the sole owner of its bodies.
type Body struct {
	Position fixed.Vec3
	Colour   RGB
}

// diameter is the rendered diameter of every real body, one unit.
func (b Body) diameter() fixed.Scalar {
	return fixed.One
}

// node is the closed sum of the three octree node variants. Only *Cell,
// *leaf and unloaded implement it.
type node interface {
	isNode()
}

// leaf is a terminal node holding bodies directly, in insertion order.
type leaf struct {
	sector Sector
	bodies []Body
}

// unloaded is a placeholder for a deeper region that has not been
// materialized yet. It carries only the region's ID; bounds and seed
// luminosity are derived from the parent when the region is generated.
type unloaded struct {
	id ID
}

func (*Cell) isNode()    {}
func (*leaf) isNode()    {}
func (unloaded) isNode() {}
