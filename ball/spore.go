package ball

import "github.com/arenasim/core/geom"

// Spore is a short-lived projectile ejected by a Clone: it travels in
// a straight line with its speed decaying linearly to zero over
// zeroTime, then rests until consumed.
type Spore struct {
	Base
	Dir       geom.Vector2 // unit direction of travel
	InitSpeed float64
	Elapsed   float64
	ZeroTime  float64
}

// NewSpore constructs a Spore launched from pos in direction dir
// (expected to already be a unit vector) with the given radius, init
// speed and decay time.
func NewSpore(id uint64, pos, dir geom.Vector2, radius, initSpeed, zeroTime float64) *Spore {
	s := &Spore{
		Base:      Base{ID: id, Kind: KindSpore, Pos: pos, Moving: true},
		Dir:       dir,
		InitSpeed: initSpeed,
		ZeroTime:  zeroTime,
	}
	s.SetSize(radius * radius)
	s.Vel = dir.Mul(initSpeed)
	return s
}

// Step advances the spore by dt: straight-line motion with linear
// speed decay to zero.
func (s *Spore) Step(dt float64, border geom.Border) {
	if !s.Moving {
		return
	}
	s.Elapsed += dt
	frac := 1 - s.Elapsed/s.ZeroTime
	if frac <= 0 {
		s.Vel = geom.Zero()
		s.Moving = false
	} else {
		s.Vel = s.Dir.Mul(s.InitSpeed * frac)
	}
	s.Pos = border.Clamp(s.Pos.Add(s.Vel.Mul(dt)), s.Radius)
}
