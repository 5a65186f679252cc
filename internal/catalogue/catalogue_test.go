package catalogue

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `name,x,y,z,colour_index,abs_mag
Sirius,-0.494323,-1.301865,-2.307362,0.009,1.454
Vega,1.349518,6.938434,3.771589,-0.001,0.582
Betelgeuse,30.1,-110.2,-35.5,1.85,-5.85
`

func TestRead(t *testing.T) {
	records, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	sirius := records[0]
	require.Equal(t, "Sirius", sirius.Name)
	require.Equal(t, 0.009, sirius.ColourIndex)
	require.Equal(t, 1.454, sirius.AbsMag)

	x, y, z := sirius.Position.Float64s()
	require.InEpsilon(t, -0.494323*MetresPerParsec, x, 1e-9)
	require.InEpsilon(t, -1.301865*MetresPerParsec, y, 1e-9)
	require.InEpsilon(t, -2.307362*MetresPerParsec, z, 1e-9)

	require.Equal(t, "Betelgeuse", records[2].Name)
	require.Equal(t, -5.85, records[2].AbsMag)
}

func TestReadColumnOrderIrrelevant(t *testing.T) {
	csv := "abs_mag,name,z,colour_index,x,y\n4.83,Sol,0,0.65,0,0\n"
	records, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Sol", records[0].Name)
	require.Equal(t, 4.83, records[0].AbsMag)
	require.Equal(t, 0.65, records[0].ColourIndex)
	require.True(t, records[0].Position.IsZero())
}

func TestReadMissingColumn(t *testing.T) {
	csv := "name,x,y,colour_index,abs_mag\nSol,0,0,0.65,4.83\n"
	_, err := Read(strings.NewReader(csv))
	require.ErrorIs(t, err, ErrMissingColumn)
	require.Contains(t, err.Error(), `"z"`)
}

func TestReadBadNumber(t *testing.T) {
	csv := "name,x,y,z,colour_index,abs_mag\nSol,0,zero,0,0.65,4.83\n"
	_, err := Read(strings.NewReader(csv))
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}

func TestReadEmptyBody(t *testing.T) {
	records, err := Read(strings.NewReader("name,x,y,z,colour_index,abs_mag\n"))
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestOpenGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stars.csv.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	records, err := Open(path)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "Vega", records[1].Name)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	plain := "name,x,y,z,colour_index,abs_mag\nAlpha,1,0,0,0.1,1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte(plain), 0o644))

	f, err := os.Create(filepath.Join(dir, "b.csv.gz"))
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("name,x,y,z,colour_index,abs_mag\nBeta,0,1,0,0.2,2\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	// Non-catalogue files are skipped.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	records, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "Alpha", records[0].Name)
	require.Equal(t, "Beta", records[1].Name)
}

func TestParsecConversionMagnitude(t *testing.T) {
	// A star 10 pc out must land ~3e17 m from the origin.
	csv := "name,x,y,z,colour_index,abs_mag\nRef,10,0,0,0,0\n"
	records, err := Read(strings.NewReader(csv))
	require.NoError(t, err)

	dist := records[0].Position.LenFloat()
	require.InDelta(t, 3.086e17, dist, 1e6)
	require.False(t, math.Signbit(dist))
}
