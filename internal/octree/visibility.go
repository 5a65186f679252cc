package octree

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/litescript/ls-stellar/internal/fixed"
)

const (
	// MinBrightness is the attenuated peak-channel brightness below which a
	// light is culled. It is purposefully tiny: point lights composite
	// additively, so sources far below an ordinary per-pixel cutoff are
	// still collectively visible where they overlap.
	MinBrightness = 0.01 / 255.0

	// MeshCombineThreshold is the body count below which a child subtree's
	// visibility batches are flattened into the parent's batch instead of
	// being kept as separate draw batches.
	MeshCombineThreshold = 8192
)

// PointLight is one light in a visibility batch: either a real body
// (IsBody true) or an impostor approximating a whole subtree that is
// visible only in aggregate.
type PointLight struct {
	Position fixed.Vec3
	Diameter fixed.Scalar
	Colour   RGB
	IsBody   bool
}

// CellVisibility is one visible batch produced by a query: the emitting
// cell's centre and depth, and the point lights to draw for it. Positions
// are absolute; the renderer rebases them around the batch centre.
type CellVisibility struct {
	Centre fixed.Vec3
	Depth  int
	Bodies []PointLight
}

// Generator materializes an unloaded region on demand. It receives the
// region's ID, its half-open bounds, and one eighth of the parent's
// aggregate luminosity as a seed, and must return a cell whose sector
// matches (NewCellAt does). It is invoked at most once per unloaded node,
// and only beneath a cell that has already passed the visibility gate.
type Generator func(id ID, min, max fixed.Vec3, luminosity RGB) *Cell

// attenuation is the distance falloff used by the visibility gate:
// (1 + dist/radius)^2. The +1 keeps it finite at zero distance.
func attenuation(dist, radius float64) float64 {
	a := 1 + dist/radius
	return a * a
}

// visibleFrom is the cell-level visibility gate. A viewpoint inside or
// adjacent to the cell sees it whenever it holds any luminosity at all;
// otherwise the aggregate brightness must survive attenuation over the
// distance to the cell's near edge.
func (c *Cell) visibleFrom(viewpoint fixed.Vec3, fovFactor float64) bool {
	dist := c.sector.centre.Sub(viewpoint).LenFloat() - c.sector.Dimensions().MaxComponent().Float64()
	if dist <= 0 {
		return c.sector.luminosity.Max() > 0
	}
	att := attenuation(dist, 1) * fovFactor
	return c.sector.luminosity.Max()/att > MinBrightness
}

// AllVisibleFrom walks the subtree rooted at c and returns the visibility
// batches for a viewpoint. fovFactor scales the culling strictness: larger
// values cull more aggressively (narrower field of view / lower
// resolution).
//
// The traversal prunes whole subtrees that fail the visibility gate,
// flattens small visible subtrees into their parent's batch, and replaces
// a subtree that is visible only in aggregate with a single impostor
// light. Unloaded regions reached by the walk are materialized in place
// through generate; the fresh cell contributes from the next query on.
//
// The returned batches are in no particular order; ordering (for additive
// compositing back to front) is the renderer's concern. Ownership of the
// returned slice passes to the caller.
func (c *Cell) AllVisibleFrom(viewpoint fixed.Vec3, fovFactor float64, generate Generator) []CellVisibility {
	if !c.visibleFrom(viewpoint, fovFactor) {
		return nil
	}

	var points []PointLight
	var visibility []CellVisibility

	for i, o := range Octants {
		switch child := c.children[i].(type) {
		case *Cell:
			batches := child.AllVisibleFrom(viewpoint, fovFactor, generate)
			n := 0
			for _, b := range batches {
				n += len(b.Bodies)
			}
			if n < MeshCombineThreshold {
				// combine small subtrees into this cell's batch
				for _, b := range batches {
					points = append(points, b.Bodies...)
				}
			} else {
				visibility = append(visibility, batches...)
			}
		case *leaf:
			for _, b := range child.bodies {
				dist := b.Position.Sub(viewpoint).LenFloat()
				if b.Colour.Max()/attenuation(dist, 1) > MinBrightness {
					points = append(points, PointLight{
						Position: b.Position,
						Diameter: b.diameter(),
						Colour:   b.Colour,
						IsBody:   true,
					})
				}
			}
		case unloaded:
			cmin, cmax := c.sector.childBounds(o)
			c.children[i] = generate(child.id, cmin, cmax, c.sector.luminosity.Scale(1.0/8.0))
		}
	}

	if len(points) > 0 || len(visibility) > 0 {
		return append(visibility, CellVisibility{
			Centre: c.sector.centre,
			Depth:  c.sector.depth,
			Bodies: points,
		})
	}

	// Nothing beneath is visible in detail, but the cell itself passed the
	// gate: stand in for the whole subtree with one impostor light.
	return []CellVisibility{{
		Centre: c.sector.centre,
		Depth:  c.sector.depth,
		Bodies: []PointLight{{
			Position: c.sector.centre,
			Diameter: c.sector.Dimensions().MaxComponent(),
			Colour:   c.sector.luminosity,
			IsBody:   false,
		}},
	}}
}

// Equal reports value equality of two batches.
func (v CellVisibility) Equal(o CellVisibility) bool {
	if v.Centre != o.Centre || v.Depth != o.Depth || len(v.Bodies) != len(o.Bodies) {
		return false
	}
	for i := range v.Bodies {
		if v.Bodies[i] != o.Bodies[i] {
			return false
		}
	}
	return true
}

// Fingerprint returns a content hash over the batch's numeric fields.
// Equal batches hash equally, so mesh caches can key GPU resources by
// fingerprint and skip rebuilding unchanged regions across frames.
func (v CellVisibility) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte

	writeU64 := func(u uint64) {
		binary.LittleEndian.PutUint64(buf[:], u)
		_, _ = d.Write(buf[:])
	}
	writeScalar := func(s fixed.Scalar) {
		hi, lo := s.Bits()
		writeU64(hi)
		writeU64(lo)
	}
	writeVec := func(w fixed.Vec3) {
		writeScalar(w.X)
		writeScalar(w.Y)
		writeScalar(w.Z)
	}

	writeVec(v.Centre)
	writeU64(uint64(v.Depth))
	for _, p := range v.Bodies {
		writeVec(p.Position)
		writeScalar(p.Diameter)
		writeU64(math.Float64bits(p.Colour.R))
		writeU64(math.Float64bits(p.Colour.G))
		writeU64(math.Float64bits(p.Colour.B))
		if p.IsBody {
			writeU64(1)
		} else {
			writeU64(0)
		}
	}
	return d.Sum64()
}
