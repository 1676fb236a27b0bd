// Package ball defines the tagged-union family of simulated bodies:
// Food, Spore, Thorn and Clone, all sharing a circle base.
package ball

import (
	"math"

	"github.com/arenasim/core/geom"
)

// Kind distinguishes the four body kinds without resorting to deep
// inheritance; the rules engine dispatches on a (Kind, Kind) pair.
type Kind uint8

const (
	KindFood Kind = iota
	KindSpore
	KindThorn
	KindClone
)

func (k Kind) String() string {
	switch k {
	case KindFood:
		return "food"
	case KindSpore:
		return "spore"
	case KindThorn:
		return "thorn"
	case KindClone:
		return "clone"
	default:
		return "unknown"
	}
}

// Base is the circle state shared by every ball kind.
type Base struct {
	ID      uint64
	Kind    Kind
	Pos     geom.Vector2
	Radius  float64
	Size    float64 // radius^2, the additive mass proxy
	Vel     geom.Vector2
	Moving  bool
	Removed bool
}

// SetSize sets Size and recomputes Radius as sqrt(Size).
func (b *Base) SetSize(size float64) {
	if size < 0 {
		size = 0
	}
	b.Size = size
	b.Radius = math.Sqrt(size)
}

// Overlaps reports whether the two discs intersect:
// ‖p_a - p_b‖ < r_a + r_b.
func Overlaps(a, b *Base) bool {
	rsum := a.Radius + b.Radius
	return a.Pos.DistanceSquared(b.Pos) < rsum*rsum
}

// Body is the interface the collision index and rules engine operate
// on; every ball kind's pointer type satisfies it via its embedded
// Base.
type Body interface {
	Ball() *Base
}
