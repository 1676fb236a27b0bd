package ball

import "github.com/arenasim/core/geom"

// Thorn is stationary until struck by a Spore, after which it carries
// the spore's momentum (capped at velMax) and decelerates to rest over
// zeroTime.
type Thorn struct {
	Base
	Dir       geom.Vector2
	InitSpeed float64
	Elapsed   float64
	ZeroTime  float64
}

// NewThorn constructs a resting Thorn at pos with the given radius.
func NewThorn(id uint64, pos geom.Vector2, radius float64) *Thorn {
	t := &Thorn{Base: Base{ID: id, Kind: KindThorn, Pos: pos}}
	t.SetSize(radius * radius)
	return t
}

// Strike sets the thorn in motion along dir (unit vector) at initSpeed
// (already capped by the caller at the thorn's configured vel_max),
// decaying to rest over zeroTime.
func (t *Thorn) Strike(dir geom.Vector2, initSpeed, zeroTime float64) {
	t.Dir = dir
	t.InitSpeed = initSpeed
	t.Elapsed = 0
	t.ZeroTime = zeroTime
	t.Vel = dir.Mul(initSpeed)
	t.Moving = true
}

// Step advances the thorn by dt when it is carrying spore momentum.
func (t *Thorn) Step(dt float64, border geom.Border) {
	if !t.Moving {
		return
	}
	t.Elapsed += dt
	frac := 1 - t.Elapsed/t.ZeroTime
	if frac <= 0 {
		t.Vel = geom.Zero()
		t.Moving = false
	} else {
		t.Vel = t.Dir.Mul(t.InitSpeed * frac)
	}
	t.Pos = border.Clamp(t.Pos.Add(t.Vel.Mul(dt)), t.Radius)
}
