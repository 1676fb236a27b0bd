package geom

import "math/rand"

// Border is the rectangular world boundary, anchored at the origin.
type Border struct {
	Width  float64
	Height float64
}

// NewBorder returns a Border spanning [0, width] x [0, height].
func NewBorder(width, height float64) Border {
	return Border{Width: width, Height: height}
}

// Sample returns a uniformly random point inside the border.
func (b Border) Sample(rng *rand.Rand) Vector2 {
	return Vector2{X: rng.Float64() * b.Width, Y: rng.Float64() * b.Height}
}

// SampleInset returns a uniformly random point at least margin away from
// every edge. If the border is too small for the margin, it falls back
// to the border's center.
func (b Border) SampleInset(rng *rand.Rand, margin float64) Vector2 {
	if 2*margin >= b.Width || 2*margin >= b.Height {
		return Vector2{X: b.Width / 2, Y: b.Height / 2}
	}
	return Vector2{
		X: margin + rng.Float64()*(b.Width-2*margin),
		Y: margin + rng.Float64()*(b.Height-2*margin),
	}
}

// Clamp returns pos moved so that a disc of the given radius centered
// on pos lies entirely within the border.
func (b Border) Clamp(pos Vector2, radius float64) Vector2 {
	return Vector2{
		X: clamp(pos.X, radius, b.Width-radius),
		Y: clamp(pos.Y, radius, b.Height-radius),
	}
}

// Contains reports whether a disc of the given radius centered on pos
// lies entirely within the border.
func (b Border) Contains(pos Vector2, radius float64) bool {
	return pos.X-radius >= -1e-6 && pos.X+radius <= b.Width+1e-6 &&
		pos.Y-radius >= -1e-6 && pos.Y+radius <= b.Height+1e-6
}

func clamp(value, min, max float64) float64 {
	if min > max {
		// degenerate: radius larger than half the border; pin to center
		mid := (min + max) / 2
		return mid
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
