package universe

import (
	"io"

	"github.com/segmentio/encoding/json"
)

// SnapshotExport is the JSON-serializable form of one visibility result.
// Fixed-point coordinates are exported as float64 metres; exact positions
// belong to the binary pipeline, not diagnostics.
type SnapshotExport struct {
	Viewpoint  [3]float64    `json:"viewpoint_m"`
	FovFactor  float64       `json:"fov_factor"`
	DurationMs float64       `json:"duration_ms"`
	Bodies     int           `json:"bodies"`
	Impostors  int           `json:"impostors"`
	Batches    []BatchExport `json:"batches"`
}

// BatchExport is a JSON-friendly CellVisibility.
type BatchExport struct {
	Centre      [3]float64    `json:"centre_m"`
	Depth       int           `json:"depth"`
	Fingerprint uint64        `json:"fingerprint"`
	Lights      []LightExport `json:"lights"`
}

// LightExport is a JSON-friendly PointLight.
type LightExport struct {
	Position [3]float64 `json:"position_m"`
	Diameter float64    `json:"diameter_m"`
	Colour   [3]float64 `json:"colour"`
	IsBody   bool       `json:"is_body"`
}

// ExportSnapshot converts a worker result to its exportable form.
func ExportSnapshot(res Result) *SnapshotExport {
	export := &SnapshotExport{
		FovFactor:  res.Viewpoint.FovFactor,
		DurationMs: float64(res.Duration.Microseconds()) / 1000,
		Bodies:     res.Bodies,
		Impostors:  res.Impostors,
	}
	export.Viewpoint[0], export.Viewpoint[1], export.Viewpoint[2] = res.Viewpoint.Position.Float64s()

	for _, b := range res.Batches {
		batch := BatchExport{
			Depth:       b.Depth,
			Fingerprint: b.Fingerprint(),
			Lights:      make([]LightExport, 0, len(b.Bodies)),
		}
		batch.Centre[0], batch.Centre[1], batch.Centre[2] = b.Centre.Float64s()

		for _, p := range b.Bodies {
			light := LightExport{
				Diameter: p.Diameter.Float64(),
				Colour:   [3]float64{p.Colour.R, p.Colour.G, p.Colour.B},
				IsBody:   p.IsBody,
			}
			light.Position[0], light.Position[1], light.Position[2] = p.Position.Float64s()
			batch.Lights = append(batch.Lights, light)
		}
		export.Batches = append(export.Batches, batch)
	}
	return export
}

// WriteJSON writes the snapshot as indented JSON.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
