// Package catalogue loads star catalogue files.
//
// Catalogues are CSV files with a header row and the columns name, x, y, z,
// colour_index and abs_mag. Positions are heliocentric cartesian
// coordinates in parsecs and are converted to metres on load. Files ending
// in .gz are decompressed transparently.
package catalogue

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/litescript/ls-stellar/internal/fixed"
)

// MetresPerParsec converts catalogue distances to coordinate units.
const MetresPerParsec = 3.086e16

// Record is one decoded catalogue star. The position is already converted
// to fixed-point metres.
type Record struct {
	Name        string
	Position    fixed.Vec3
	ColourIndex float64 // B-V colour index
	AbsMag      float64 // absolute visual magnitude
}

// ErrMissingColumn reports a catalogue header without a required column.
var ErrMissingColumn = errors.New("catalogue: missing column")

var requiredColumns = []string{"name", "x", "y", "z", "colour_index", "abs_mag"}

// Read decodes a CSV catalogue from r.
func Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("catalogue: read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalogue: line %d: %w", line, err)
		}

		fields := [5]float64{}
		for i, name := range requiredColumns[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[col[name]]), 64)
			if err != nil {
				return nil, fmt.Errorf("catalogue: line %d, column %q: %w", line, name, err)
			}
			fields[i] = v
		}

		records = append(records, Record{
			Name: row[col["name"]],
			Position: fixed.FromFloat64s(
				fields[0]*MetresPerParsec,
				fields[1]*MetresPerParsec,
				fields[2]*MetresPerParsec,
			),
			ColourIndex: fields[3],
			AbsMag:      fields[4],
		})
	}
	return records, nil
}

// Open reads a catalogue file, decompressing it when the name ends in .gz.
func Open(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalogue: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("catalogue: %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	records, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// LoadDir loads every .csv and .csv.gz file in dir, in lexical order.
func LoadDir(dir string) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("catalogue: %w", err)
	}

	var records []Record
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".csv") && !strings.HasSuffix(name, ".csv.gz") {
			continue
		}
		recs, err := Open(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}
