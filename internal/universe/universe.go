// Package universe owns the octree of star bodies: it sizes the root to the
// full representable coordinate domain, feeds catalogue records into the
// tree, runs visibility queries, and hosts the worker goroutine that gives
// the tree its single thread of control.
package universe

import (
	"errors"
	"math"

	"github.com/litescript/ls-stellar/internal/catalogue"
	"github.com/litescript/ls-stellar/internal/fixed"
	"github.com/litescript/ls-stellar/internal/logging"
	"github.com/litescript/ls-stellar/internal/octree"
)

// RegionSize is the edge length of the root region: 2^92 m, roughly 523
// billion light years. The root spans [-RegionSize/2, RegionSize/2) on
// every axis, so any representable position is insertable.
var RegionSize = fixed.FromBits(1<<(92+fixed.FracBits-64), 0)

// ErrSealed reports an insertion after the first visibility query. Queries
// page regions in and insertion cannot cross an unloaded region, so the
// tree seals itself once querying starts.
var ErrSealed = errors.New("universe: insertion after first query")

// Universe is the octree wrapped with its coordinate domain, star colour
// conversion and lazy region generation. Not safe for concurrent use; all
// access must go through one goroutine (see Worker).
type Universe struct {
	root      *octree.Cell
	sealed    bool
	generated int
	log       *logging.Logger
}

// New creates an empty universe. The root is seeded with a faint
// background luminosity so unexplored space still aggregates to a visible
// impostor instead of vanishing.
func New(log *logging.Logger) *Universe {
	half := fixed.Splat(RegionSize.Half())
	return &Universe{
		root: octree.NewCell(half.Neg(), half, backgroundLuminosity()),
		log:  log.With("universe"),
	}
}

// backgroundLuminosity is the seed colour of unexplored space: the tint of
// a very red star at a barely-perceptible brightness.
func backgroundLuminosity() octree.RGB {
	const colourIndex = 3.4
	brightness := math.Pow(2.512, -54)
	return temperatureRGB(ciTemperature(colourIndex)).Scale(brightness * 1e36)
}

// AddBody inserts a body. Fails with ErrSealed once any query has run, and
// with octree.ErrOutOfBounds for positions outside the root bounds.
func (u *Universe) AddBody(b octree.Body) error {
	if u.sealed {
		return ErrSealed
	}
	return u.root.AddBody(b)
}

// AddStar converts a catalogue record to a body and inserts it.
func (u *Universe) AddStar(rec catalogue.Record) error {
	return u.AddBody(octree.Body{
		Position: rec.Position,
		Colour:   StarColour(rec.ColourIndex, rec.AbsMag),
	})
}

// LoadCatalogue inserts a batch of catalogue records, stopping at the
// first failure.
func (u *Universe) LoadCatalogue(records []catalogue.Record) error {
	for _, rec := range records {
		if err := u.AddStar(rec); err != nil {
			return err
		}
	}
	u.log.Info("placed %d stars in octree", len(records))
	return nil
}

// AllVisibleFrom runs a visibility query and returns the render batches.
// The first call seals the universe against further insertion.
func (u *Universe) AllVisibleFrom(viewpoint fixed.Vec3, fovFactor float64) []octree.CellVisibility {
	u.sealed = true
	return u.root.AllVisibleFrom(viewpoint, fovFactor, u.generateCell)
}

// generateCell materializes an unloaded region. There is no deep structure
// to page in yet, so it produces an empty cell carrying the inherited
// luminosity; procedural content slots in here.
func (u *Universe) generateCell(id octree.ID, min, max fixed.Vec3, luminosity octree.RGB) *octree.Cell {
	u.generated++
	u.log.Debug("generating cell %v", id)
	return octree.NewCellAt(id, min, max, luminosity)
}

// BodyCount returns the number of bodies in the tree.
func (u *Universe) BodyCount() int {
	return u.root.BodyCount()
}

// GeneratedRegions returns how many unloaded regions queries have
// materialized so far.
func (u *Universe) GeneratedRegions() int {
	return u.generated
}
