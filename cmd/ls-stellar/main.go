// Command ls-stellar is a terminal viewer for an octree-indexed star
// field. It loads star catalogues into a fixed-point octree and renders
// the per-viewpoint visible set, either interactively or as a one-shot
// text summary / JSON snapshot.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-stellar/internal/catalogue"
	"github.com/litescript/ls-stellar/internal/fixed"
	"github.com/litescript/ls-stellar/internal/logging"
	"github.com/litescript/ls-stellar/internal/state"
	"github.com/litescript/ls-stellar/internal/ui"
	"github.com/litescript/ls-stellar/internal/universe"
)

// CLI flags for headless mode.
var (
	summaryMode  bool
	snapshotPath string
	viewpointArg string
)

const pollInterval = 50 * time.Millisecond // between worker polls in the TUI

func main() {
	catalogueDir := flag.String("catalogue", "", "Directory of star catalogue CSV files (.csv or .csv.gz)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	fovFactor := flag.Float64("fov", 1.0, "Field-of-view culling factor (larger = stricter)")
	flag.BoolVar(&summaryMode, "summary", false, "Print a text summary instead of the TUI")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export a JSON visibility snapshot to file (use - for stdout)")
	flag.StringVar(&viewpointArg, "viewpoint", "1.543e11,0,1e17", "Viewpoint as x,y,z in metres")
	flag.Parse()

	logger := logging.New(logging.ParseLevel(*logLevel))

	viewpoint, err := parseViewpoint(viewpointArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	u := universe.New(logger)

	stars := 0
	if *catalogueDir != "" {
		logger.Info("loading star catalogues from %s", *catalogueDir)
		records, err := catalogue.LoadDir(*catalogueDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := u.LoadCatalogue(records); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		stars = len(records)
	} else {
		logger.Warn("no -catalogue given, universe holds only background glow")
	}

	if summaryMode || snapshotPath != "" {
		runHeadless(u, viewpoint, *fovFactor)
		return
	}

	runTUI(u, stars, logger)
}

// runHeadless runs one query through the worker and writes the requested
// outputs.
func runHeadless(u *universe.Universe, viewpoint fixed.Vec3, fovFactor float64) {
	w := universe.StartWorker(u)
	defer w.Close()

	w.Request(universe.Viewpoint{Position: viewpoint, FovFactor: fovFactor})
	res := waitForResult(w)

	if snapshotPath != "" {
		export := universe.ExportSnapshot(res)
		if snapshotPath == "-" {
			if err := export.WriteJSON(os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: write JSON to stdout: %v\n", err)
				os.Exit(1)
			}
		} else {
			f, err := os.Create(snapshotPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: create snapshot file: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()
			if err := export.WriteJSON(f); err != nil {
				fmt.Fprintf(os.Stderr, "Error: write JSON to file: %v\n", err)
				os.Exit(1)
			}
		}
	}

	if summaryMode {
		writeSummary(os.Stdout, res)
	}
}

func waitForResult(w *universe.Worker) universe.Result {
	for {
		if res, ok := w.Poll(); ok {
			return res
		}
		time.Sleep(time.Millisecond)
	}
}

// maxBatchLinesTTY caps per-batch output on a terminal; piped output gets
// everything.
const maxBatchLinesTTY = 40

func writeSummary(f *os.File, res universe.Result) {
	x, y, z := res.Viewpoint.Position.Float64s()
	fmt.Fprintf(f, "viewpoint (%.4g, %.4g, %.4g) m, fov factor %g\n", x, y, z, res.Viewpoint.FovFactor)
	fmt.Fprintf(f, "%d batches, %d bodies, %d impostors, query took %v\n",
		len(res.Batches), res.Bodies, res.Impostors, res.Duration)

	limit := len(res.Batches)
	if term.IsTerminal(int(f.Fd())) && limit > maxBatchLinesTTY {
		limit = maxBatchLinesTTY
	}
	for _, b := range res.Batches[:limit] {
		cx, cy, cz := b.Centre.Float64s()
		fmt.Fprintf(f, "  depth %2d  centre (%.4g, %.4g, %.4g)  %d lights  fp %016x\n",
			b.Depth, cx, cy, cz, len(b.Bodies), b.Fingerprint())
	}
	if limit < len(res.Batches) {
		fmt.Fprintf(f, "  ... %d more batches\n", len(res.Batches)-limit)
	}
}

// runTUI starts the worker, the result pump and the Bubble Tea program.
func runTUI(u *universe.Universe, stars int, logger *logging.Logger) {
	worker := universe.StartWorker(u)

	stateMgr := state.NewManager()
	stateMgr.SetStars(stars)

	model := ui.New(stateMgr, worker.Request)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Pump worker results into the UI.
	quit := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
				if res, ok := worker.Poll(); ok {
					stateMgr.Update(res)
					p.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
				}
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	close(quit)
	worker.Close()
	logger.Debug("worker shut down")
}

func parseViewpoint(s string) (fixed.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fixed.Vec3{}, fmt.Errorf("viewpoint must be x,y,z, got %q", s)
	}
	var coords [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fixed.Vec3{}, fmt.Errorf("viewpoint component %d: %w", i+1, err)
		}
		coords[i] = v
	}
	return fixed.FromFloat64s(coords[0], coords[1], coords[2]), nil
}
