package core

import "math"

// Color is an unclamped linear RGB radiance value.
// Components may exceed [0,1] while light is accumulated; clamping happens
// only when a pixel is exported.
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Black returns (0, 0, 0)
func Black() Color { return Color{} }

// White returns (1, 1, 1)
func White() Color { return Color{1, 1, 1} }

// Red returns (1, 0, 0)
func Red() Color { return Color{1, 0, 0} }

// Green returns (0, 1, 0)
func Green() Color { return Color{0, 1, 0} }

// Blue returns (0, 0, 1)
func Blue() Color { return Color{0, 0, 1} }

// Gray returns a color with all three components set to v
func Gray(v float64) Color {
	return Color{v, v, v}
}

// AddScaled accumulates target weighted by amount: c + target*amount.
// Direct lighting passes the cosine term, ambient light passes 1.
func (c Color) AddScaled(target Color, amount float64) Color {
	return Color{
		R: c.R + target.R*amount,
		G: c.G + target.G*amount,
		B: c.B + target.B*amount,
	}
}

// ChangeTowards linearly interpolates towards target: c + (target-c)*amount.
// amount is expected in [0,1].
func (c Color) ChangeTowards(target Color, amount float64) Color {
	return Color{
		R: c.R + (target.R-c.R)*amount,
		G: c.G + (target.G-c.G)*amount,
		B: c.B + (target.B-c.B)*amount,
	}
}

// Max returns the component-wise maximum of two colors
func (c Color) Max(other Color) Color {
	return Color{
		R: math.Max(c.R, other.R),
		G: math.Max(c.G, other.G),
		B: math.Max(c.B, other.B),
	}
}

// MultiplyColor returns the component-wise product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// Luminance returns the perceptual luminance of an RGB color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Clamp returns a color with components clamped to [minVal, maxVal]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
	}
}

// GammaCorrect applies gamma correction to color values.
// Negative components are treated as zero.
func (c Color) GammaCorrect(gamma float64) Color {
	invGamma := 1.0 / gamma
	return Color{
		R: math.Pow(max(0, c.R), invGamma),
		G: math.Pow(max(0, c.G), invGamma),
		B: math.Pow(max(0, c.B), invGamma),
	}
}

// ApproxEqual reports whether every component differs by at most tolerance
func (c Color) ApproxEqual(other Color, tolerance float64) bool {
	return math.Abs(c.R-other.R) <= tolerance &&
		math.Abs(c.G-other.G) <= tolerance &&
		math.Abs(c.B-other.B) <= tolerance
}
