package universe

import (
	"sort"
	"time"

	"github.com/litescript/ls-stellar/internal/fixed"
	"github.com/litescript/ls-stellar/internal/octree"
)

// Viewpoint is one visibility request: where the camera is and how strict
// the culling should be.
type Viewpoint struct {
	Position  fixed.Vec3
	FovFactor float64
}

// Result is one completed visibility pass. Batches are sorted by
// descending distance from the viewpoint, ready for additive compositing
// front to back of the paint order. Ownership transfers fully to the
// consumer; the worker keeps no alias.
type Result struct {
	Viewpoint Viewpoint
	Batches   []octree.CellVisibility
	Bodies    int // real bodies across all batches
	Impostors int // aggregated subtree lights
	Duration  time.Duration

	// GeneratedRegions is the total number of regions queries have paged
	// in so far, sampled after this pass.
	GeneratedRegions int
}

// Worker runs all tree operations on one dedicated goroutine, decoupling
// them from the render loop through two single-slot overwrite mailboxes.
//
// Requests coalesce: if several viewpoints arrive before the worker is
// ready, only the latest is processed. Results likewise: the consumer
// polls non-blockingly and keeps its previous snapshot when nothing new is
// ready. There is no cancellation; a query that has started runs to
// completion.
type Worker struct {
	requests chan Viewpoint
	results  chan Result
	done     chan struct{}
}

// StartWorker takes ownership of u and begins serving requests. No other
// goroutine may touch u afterwards.
func StartWorker(u *Universe) *Worker {
	w := &Worker{
		requests: make(chan Viewpoint, 1),
		results:  make(chan Result, 1),
		done:     make(chan struct{}),
	}
	go w.run(u)
	return w
}

func (w *Worker) run(u *Universe) {
	defer close(w.done)

	for {
		vp, ok := <-w.requests
		if !ok {
			return
		}

		// Coalesce any backlog down to the latest request.
	drain:
		for {
			select {
			case next, ok := <-w.requests:
				if !ok {
					return
				}
				vp = next
			default:
				break drain
			}
		}

		start := time.Now()
		batches := u.AllVisibleFrom(vp.Position, vp.FovFactor)
		res := Result{
			Viewpoint:        vp,
			Batches:          batches,
			Duration:         time.Since(start),
			GeneratedRegions: u.GeneratedRegions(),
		}
		for _, b := range batches {
			for _, p := range b.Bodies {
				if p.IsBody {
					res.Bodies++
				} else {
					res.Impostors++
				}
			}
		}

		sort.Slice(batches, func(i, j int) bool {
			di := batches[i].Centre.Sub(vp.Position).LenFloat()
			dj := batches[j].Centre.Sub(vp.Position).LenFloat()
			return di > dj
		})

		u.log.Debug("visibility pass: %d bodies, %d impostors, %d batches in %v",
			res.Bodies, res.Impostors, len(batches), res.Duration)

		// Overwrite the outbound slot. The worker is the only sender, so
		// after clearing a stale result the send cannot block.
		select {
		case w.results <- res:
		default:
			select {
			case <-w.results:
			default:
			}
			w.results <- res
		}
	}
}

// Request places a viewpoint in the inbound mailbox, overwriting any
// request the worker has not picked up yet. Must not be called after
// Close.
func (w *Worker) Request(vp Viewpoint) {
	for {
		select {
		case w.requests <- vp:
			return
		default:
			// Slot full: discard the stale request and retry.
			select {
			case <-w.requests:
			default:
			}
		}
	}
}

// Poll returns the latest result if a new one is ready.
func (w *Worker) Poll() (Result, bool) {
	select {
	case res := <-w.results:
		return res, true
	default:
		return Result{}, false
	}
}

// Close shuts the worker down: the inbound mailbox is closed, any
// in-flight query finishes, and the worker goroutine exits. Close blocks
// until it has.
func (w *Worker) Close() {
	close(w.requests)
	<-w.done
}
