package octree

import (
	"errors"
	"fmt"

	"github.com/litescript/ls-stellar/internal/fixed"
)

// Insertion and paging errors.
var (
	// ErrOutOfBounds reports a body whose position lies outside the cell's
	// half-open bounds. The root is sized to cover the whole representable
	// coordinate domain, so this indicates malformed catalogue data.
	ErrOutOfBounds = errors.New("octree: body position outside cell bounds")

	// ErrUnloadedRegion reports an insertion that reached a region placed
	// behind an unloaded placeholder. Insertion must complete before any
	// region is paged in.
	ErrUnloadedRegion = errors.New("octree: insertion reached an unloaded region")

	// ErrNotPageable reports an attempt to mark a non-empty child as
	// unloaded.
	ErrNotPageable = errors.New("octree: only an empty leaf can be marked unloaded")
)

// Cell is an internal octree node owning exactly eight children, one per
// octant. A fresh cell starts with eight empty leaves.
//
// Cells are not safe for concurrent use: both insertion and the visibility
// traversal mutate the tree in place, so all operations must run on a
// single goroutine (see universe.Worker).
type Cell struct {
	sector   Sector
	children [8]node
}

// NewCell creates a root cell covering [min, max) with the given seed
// luminosity.
func NewCell(min, max fixed.Vec3, luminosity RGB) *Cell {
	return newCellAt(RootID, min, max, luminosity, 0)
}

// NewCellAt creates a cell for the region identified by id, covering
// [min, max). Its depth is derived from the id. Region generators use this
// to materialize unloaded regions with a sector that matches the bounds
// they were handed.
func NewCellAt(id ID, min, max fixed.Vec3, luminosity RGB) *Cell {
	return newCellAt(id, min, max, luminosity, id.Depth())
}

func newCellAt(id ID, min, max fixed.Vec3, luminosity RGB, depth int) *Cell {
	if min.X.Cmp(max.X) > 0 || min.Y.Cmp(max.Y) > 0 || min.Z.Cmp(max.Z) > 0 {
		panic(fmt.Sprintf("octree: invalid cell bounds %v %v", min, max))
	}

	c := &Cell{sector: newSector(id, min, max, luminosity, depth)}
	for i, o := range Octants {
		cmin, cmax := c.sector.childBounds(o)
		c.children[i] = &leaf{
			sector: newSector(id.Push(o), cmin, cmax, luminosity, depth+1),
		}
	}
	return c
}

// Sector returns a copy of the cell's sector metadata.
func (c *Cell) Sector() Sector {
	return c.sector
}

// AddBody inserts b into the subtree rooted at c, subdividing leaves as
// needed. The body's colour is accumulated into the aggregate luminosity of
// every sector along the path, keeping each sector's luminosity equal to
// the sum of the bodies beneath it.
//
// Returns ErrOutOfBounds if b.Position lies outside [min, max), and
// ErrUnloadedRegion if the path hits a paged-out region.
func (c *Cell) AddBody(b Body) error {
	oct, ok := c.sector.Octant(b.Position)
	if !ok {
		return fmt.Errorf("%w: %v not in [%v, %v)", ErrOutOfBounds, b.Position, c.sector.min, c.sector.max)
	}

	c.sector.luminosity = c.sector.luminosity.Add(b.Colour)

	switch child := c.children[oct].(type) {
	case *Cell:
		return child.AddBody(b)
	case *leaf:
		if len(child.bodies) > 0 && child.sector.depth < MaxDepth {
			c.subdivide(oct)
			return c.children[oct].(*Cell).AddBody(b)
		}
		// At MaxDepth the leaf saturates and keeps accumulating.
		child.sector.luminosity = child.sector.luminosity.Add(b.Colour)
		child.bodies = append(child.bodies, b)
		return nil
	case unloaded:
		return fmt.Errorf("%w: sector %v", ErrUnloadedRegion, child.id)
	}
	panic("octree: unknown node variant")
}

// subdivide replaces the leaf at oct with a cell of eight empty leaves and
// redistributes the bodies the leaf held. A leaf at MaxDepth is left alone.
func (c *Cell) subdivide(oct Octant) {
	if c.sector.depth >= MaxDepth {
		return
	}
	lf, ok := c.children[oct].(*leaf)
	if !ok {
		return
	}

	cmin, cmax := c.sector.childBounds(oct)
	cell := newCellAt(c.sector.id.Push(oct), cmin, cmax, RGB{}, c.sector.depth+1)
	c.children[oct] = cell

	for _, b := range lf.bodies {
		if err := cell.AddBody(b); err != nil {
			// The bodies were inside this region before the split.
			panic("octree: body escaped its sector during subdivision: " + err.Error())
		}
	}
}

// MarkUnloaded replaces the pristine child at oct with an unloaded
// placeholder carrying the child's sector ID. This is the paging hook:
// serializers and region generators use it to defer deep regions until a
// visibility query first reaches them. The child must be an empty leaf.
func (c *Cell) MarkUnloaded(oct Octant) error {
	lf, ok := c.children[oct].(*leaf)
	if !ok || len(lf.bodies) > 0 {
		return ErrNotPageable
	}
	c.children[oct] = unloaded{id: lf.sector.id}
	return nil
}

// BodyCount returns the number of bodies held beneath c. Unloaded regions
// count as zero.
func (c *Cell) BodyCount() int {
	n := 0
	for _, child := range c.children {
		switch child := child.(type) {
		case *Cell:
			n += child.BodyCount()
		case *leaf:
			n += len(child.bodies)
		}
	}
	return n
}
