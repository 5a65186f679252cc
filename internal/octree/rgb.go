package octree

// RGB is a non-negative, unbounded luminosity in three colour channels.
// Values are linear radiant intensities, not display colours; the renderer
// composites them additively and tone-maps afterwards.
type RGB struct {
	R, G, B float64
}

// Add returns the channelwise sum of c and o.
func (c RGB) Add(o RGB) RGB {
	return RGB{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// Scale returns c with every channel multiplied by f.
func (c RGB) Scale(f float64) RGB {
	return RGB{R: c.R * f, G: c.G * f, B: c.B * f}
}

// Max returns the peak channel value.
func (c RGB) Max() float64 {
	m := c.R
	if c.G > m {
		m = c.G
	}
	if c.B > m {
		m = c.B
	}
	return m
}

// IsZero reports whether all channels are zero.
func (c RGB) IsZero() bool {
	return c == RGB{}
}
