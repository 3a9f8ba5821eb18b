package core

import (
	"math"
)

// Color is a linear RGBA radiance or reflectance value.
// Channels are nominally in [0,1] but may exceed that while accumulating samples.
// Alpha is carried through shading untouched and defaults to 1.
type Color struct {
	R, G, B, A float64
}

var (
	Black   = Color{0, 0, 0, 1}
	White   = Color{1, 1, 1, 1}
	SkyBlue = Color{0.5, 0.7, 1.0, 1}
)

// NewColor creates an opaque color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A + other.A}
}

// Multiply scales every channel, alpha included, by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar, c.A * scalar}
}

// MultiplyColor returns the component-wise product, used for attenuation
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B, c.A * other.A}
}

// Lerp linearly interpolates from c (t=0) to other (t=1)
func (c Color) Lerp(other Color, t float64) Color {
	return c.Multiply(1 - t).Add(other.Multiply(t))
}

// GammaCorrect applies gamma 2.0 to the color channels, leaving alpha as is
func (c Color) GammaCorrect() Color {
	return Color{math.Sqrt(c.R), math.Sqrt(c.G), math.Sqrt(c.B), c.A}
}

// Clamp returns the color with every channel clamped to [lo, hi]
func (c Color) Clamp(lo, hi float64) Color {
	return Color{
		R: max(lo, min(hi, c.R)),
		G: max(lo, min(hi, c.G)),
		B: max(lo, min(hi, c.B)),
		A: max(lo, min(hi, c.A)),
	}
}

// HasNaN reports whether any channel is NaN
func (c Color) HasNaN() bool {
	return math.IsNaN(c.R) || math.IsNaN(c.G) || math.IsNaN(c.B) || math.IsNaN(c.A)
}

// Equals reports whether two colors match within tolerance
func (c Color) Equals(other Color, tolerance float64) bool {
	return math.Abs(c.R-other.R) <= tolerance &&
		math.Abs(c.G-other.G) <= tolerance &&
		math.Abs(c.B-other.B) <= tolerance &&
		math.Abs(c.A-other.A) <= tolerance
}

// RGBA implements color.Color. Channels are clamped to [0,1] and returned
// alpha-premultiplied in the 16-bit range.
func (c Color) RGBA() (r, g, b, a uint32) {
	cl := c.Clamp(0, 1)
	a = uint32(cl.A*0xffff + 0.5)
	r = uint32(cl.R*cl.A*0xffff + 0.5)
	g = uint32(cl.G*cl.A*0xffff + 0.5)
	b = uint32(cl.B*cl.A*0xffff + 0.5)
	return r, g, b, a
}
