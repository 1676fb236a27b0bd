package ball

import "github.com/arenasim/core/geom"

// Clone is one active cell of a player.
type Clone struct {
	Base
	Owner uint64
	Team  uint64
	Age   float64

	// InputDir is the last unit direction from a move action; the zero
	// vector means "no input".
	InputDir geom.Vector2
	// BaseVel is the velocity accumulated from input acceleration, or
	// decaying to zero after a stop action.
	BaseVel geom.Vector2

	Stopping      bool
	StopVelAtStop geom.Vector2
	StopElapsed   float64
	StopZeroTime  float64

	// Split-boost: a transient velocity added on top of BaseVel,
	// decaying linearly to zero over SplitZeroTime.
	SplitDir       geom.Vector2
	SplitInitSpeed float64
	SplitElapsed   float64
	SplitZeroTime  float64
}

// NewClone constructs a Clone at pos with the given radius, owned by
// owner on team.
func NewClone(id, owner, team uint64, pos geom.Vector2, radius float64) *Clone {
	c := &Clone{Base: Base{ID: id, Kind: KindClone, Pos: pos, Moving: true}, Owner: owner, Team: team}
	c.SetSize(radius * radius)
	return c
}

// SetInput records a move action's direction. The zero vector clears
// any existing input and also cancels a pending Stop.
func (c *Clone) SetInput(dir geom.Vector2) {
	c.InputDir = dir
	c.Stopping = false
}

// Stop begins decaying the clone's base velocity to zero over
// zeroTime, per the stop action; the stop wins over any concurrent
// direction per the action-priority rule.
func (c *Clone) Stop(zeroTime float64) {
	c.Stopping = true
	c.StopVelAtStop = c.BaseVel
	c.StopElapsed = 0
	c.StopZeroTime = zeroTime
	c.InputDir = geom.Zero()
}

// AddSplitBoost gives the clone a transient velocity of initSpeed
// along dir, decaying linearly to zero over zeroTime. Used both for a
// split child's boost and a thorn-explosion shard's outward boost.
func (c *Clone) AddSplitBoost(dir geom.Vector2, initSpeed, zeroTime float64) {
	c.SplitDir = dir
	c.SplitInitSpeed = initSpeed
	c.SplitElapsed = 0
	c.SplitZeroTime = zeroTime
}

// Step advances the clone's kinematics by dt: acceleration-driven base
// velocity (or stop decay), plus split-boost decay, position
// integration clamped to the border, and mass decay bounded below by
// radiusMin^2.
func (c *Clone) Step(dt, accMax, velMax, givenAccWeight, sizeDecayRate, radiusMin float64, border geom.Border) {
	if c.Stopping {
		frac := 1 - c.StopElapsed/c.StopZeroTime
		if frac <= 0 {
			c.BaseVel = geom.Zero()
			c.Stopping = false
		} else {
			c.BaseVel = c.StopVelAtStop.Mul(frac)
		}
		c.StopElapsed += dt
	} else {
		acc := c.InputDir.Mul(accMax * givenAccWeight)
		c.BaseVel = c.BaseVel.Add(acc.Mul(dt)).ClampMagnitude(velMax)
	}

	var splitVel geom.Vector2
	if c.SplitZeroTime > 0 {
		frac := 1 - c.SplitElapsed/c.SplitZeroTime
		if frac <= 0 {
			c.SplitZeroTime = 0
		} else {
			splitVel = c.SplitDir.Mul(c.SplitInitSpeed * frac)
			c.SplitElapsed += dt
		}
	}

	c.Vel = c.BaseVel.Add(splitVel)
	c.Pos = border.Clamp(c.Pos.Add(c.Vel.Mul(dt)), c.Radius)

	minSize := radiusMin * radiusMin
	decayed := c.Size - sizeDecayRate*c.Size*dt
	if decayed < minSize {
		decayed = minSize
	}
	c.SetSize(decayed)
	c.Age += dt
}
