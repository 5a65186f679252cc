package octree

import (
	"errors"
	"math/bits"
)

// MaxDepth is the deepest octree level. At a root region of 2^92 m this
// leaves cells of 2^52 m, roughly half a light year, at the bottom. Leaves
// at MaxDepth never subdivide and accumulate bodies without bound.
const MaxDepth = 40

// idRootMarker is the fixed 3-bit prefix of every sector ID. It makes the
// bit length of an ID determine its depth, so the ID is bijective with the
// octant path. MaxDepth*3 + 3 = 123 bits, which fits the 128-bit ID with
// room to spare.
const idRootMarker = 0b111

// ID is a 128-bit hierarchical sector identifier: the root marker followed
// by one 3-bit octant code per level of descent.
type ID struct {
	hi, lo uint64
}

// RootID identifies the root sector.
var RootID = ID{lo: idRootMarker}

// ErrMalformedID reports an ID whose bit pattern cannot decode to an
// octant path. Unreachable for IDs produced by Push from RootID.
var ErrMalformedID = errors.New("octree: malformed sector id")

// Push appends one octant of descent to the path encoded by id.
func (id ID) Push(o Octant) ID {
	return ID{
		hi: id.hi<<3 | id.lo>>61,
		lo: id.lo<<3 | uint64(o),
	}
}

// Depth returns the number of levels of descent encoded by id.
func (id ID) Depth() int {
	var length int
	if id.hi != 0 {
		length = 128 - bits.LeadingZeros64(id.hi)
	} else {
		length = 64 - bits.LeadingZeros64(id.lo)
	}
	return (length - 3) / 3
}

// Path decodes id back into its octant path, root first. It fails only on
// bit patterns that no sequence of Push calls can produce.
func (id ID) Path() ([]Octant, error) {
	path := make([]Octant, 0, MaxDepth)
	for id != RootID {
		if id.hi == 0 && id.lo <= idRootMarker {
			return nil, ErrMalformedID
		}
		if len(path) > MaxDepth {
			return nil, ErrMalformedID
		}
		path = append(path, Octant(id.lo&7))
		id = ID{
			hi: id.hi >> 3,
			lo: id.lo>>3 | id.hi<<61,
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// String renders id as the root marker followed by the octant digits, e.g.
// "7.304" for the path [3 0 4].
func (id ID) String() string {
	path, err := id.Path()
	if err != nil {
		return "invalid"
	}
	buf := []byte{'7'}
	if len(path) > 0 {
		buf = append(buf, '.')
		for _, o := range path {
			buf = append(buf, '0'+byte(o))
		}
	}
	return string(buf)
}
