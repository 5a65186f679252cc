package universe

import (
	"math"

	"github.com/litescript/ls-stellar/internal/octree"
)

// Star colour model: catalogues carry a B-V colour index and an absolute
// magnitude; rendering wants a linear RGB luminosity. The index maps to an
// effective temperature, the temperature to a normalised black-body RGB,
// and the magnitude to an overall brightness.

// blackBody approximates the normalised black-body spectral radiance at
// wavelength nm for a star of the given temperature.
func blackBody(wavelength, temp float64) float64 {
	peak := 2897771.955 / temp // Wien displacement, nm
	const xScale = 6.8e-8
	yScale := math.Pow(peak, 5) * (math.Exp(1/(peak*xScale*temp)) - 1)
	denom := math.Pow(wavelength, 5)*math.Exp(1/(wavelength*xScale*temp)) - 1
	return yScale / denom
}

// gaussianArea is the area of a gaussian with mean (a+b)/2 and standard
// deviation (b-a)/2, peaked at the black-body radiance of the mean
// wavelength. Stands in for integrating the spectrum against a colour
// matching band.
func gaussianArea(temp, a, b float64) float64 {
	mid := (a + b) / 2
	return blackBody(mid, temp) * (b - a) * math.Sqrt(2*math.Pi)
}

// temperatureRGB approximates the RGB colour of a black body at temp
// kelvin, normalised so the peak channel is 1.
func temperatureRGB(temp float64) octree.RGB {
	v := octree.RGB{
		R: gaussianArea(temp, 520, 630),
		G: gaussianArea(temp, 500, 590),
		B: gaussianArea(temp, 410, 480),
	}
	return v.Scale(1 / math.Max(v.Max(), 0.00001))
}

// ciTemperature converts a B-V colour index to an effective temperature in
// kelvin (Ballesteros' formula). A few catalogue stars sit below the
// formula's pole; those are clamped just above it.
func ciTemperature(bv float64) float64 {
	const epsilon = 0.001
	if min := -0.62/0.92 + epsilon; bv < min {
		bv = min
	}
	return 4600 * (1/(0.92*bv+1.7) + 1/(0.92*bv+0.62))
}

// absMagBrightness converts an absolute magnitude to the RGB brightness
// scale. The 1e36 factor is calibrated so the faintest catalogued stars
// sit just above the traversal's brightness cutoff at naked-eye distances.
func absMagBrightness(absMag float64) float64 {
	return math.Pow(2.512, -absMag) * 1e36
}

// StarColour converts a catalogue star's B-V colour index and absolute
// magnitude to its linear RGB luminosity.
func StarColour(colourIndex, absMag float64) octree.RGB {
	return temperatureRGB(ciTemperature(colourIndex)).Scale(absMagBrightness(absMag))
}
