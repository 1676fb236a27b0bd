package ball

import "github.com/arenasim/core/geom"

// Food is a static body; it never moves and contributes its size to
// whichever Clone eats it.
type Food struct {
	Base
}

// NewFood constructs a Food ball at pos with the given radius.
func NewFood(id uint64, pos geom.Vector2, radius float64) *Food {
	f := &Food{Base: Base{ID: id, Kind: KindFood, Pos: pos}}
	f.SetSize(radius * radius)
	return f
}
