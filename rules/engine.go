// Package rules implements the collision rules engine (spec §4.4): for
// each moving/other pair the collision index reports, it dispatches by
// kind and applies the eat/explode/no-op outcome, mutating bodies
// in place and removing losers through the owning manager's Remove
// capability. The engine never holds bodies itself (spec §9 DESIGN
// NOTES "Cross-manager mutation").
package rules

import (
	"math/rand"

	"github.com/arenasim/core/ball"
)

// PlayerOps is the capability the engine uses to resolve Clone/Clone
// and Clone/Thorn outcomes without importing the player package's
// concrete Manager type.
type PlayerOps interface {
	CellCount(ownerID uint64) int
	Remove(id uint64, rng *rand.Rand)
	Explode(cloneID uint64, rng *rand.Rand)
}

// FoodOps, SporeOps and ThornOps are the uniform single-kind remove
// capabilities the arena managers already expose.
type FoodOps interface{ Remove(id uint64) }
type SporeOps interface{ Remove(id uint64) }
type ThornOps interface{ Remove(id uint64) }

// Engine applies the rules dispatch table to a moving/hits report.
type Engine struct {
	Players PlayerOps
	Food    FoodOps
	Spore   SporeOps
	Thorn   ThornOps
	RNG     *rand.Rand

	// PartNumMax gates Clone/Thorn explosion: a Clone only explodes on
	// eating a Thorn if its owner has room for another cell.
	PartNumMax int
	// ThornVelMax, ThornEatSporeVelInit and ThornEatSporeVelZeroTime
	// parameterize Thorn/Spore momentum transfer.
	ThornVelMax              float64
	ThornEatSporeVelInit     float64
	ThornEatSporeVelZeroTime float64
}

// Apply walks moving in order (the caller must have sorted it size
// descending, then kind and id ascending, per collision.SortMoving) and resolves
// every reported hit. A moving body already removed by an earlier
// winner in this tick is skipped entirely; a moving body removed
// mid-way through its own hit list (it lost to one of its targets)
// stops processing its remaining hits.
func (e *Engine) Apply(moving []ball.Body, hits map[int][]ball.Body) {
	for i, m := range moving {
		mb := m.Ball()
		if mb.Removed {
			continue
		}
		for _, t := range hits[i] {
			if mb.Removed {
				break
			}
			tb := t.Ball()
			if tb.Removed {
				continue
			}
			e.Resolve(m, t)
		}
	}
}

// Resolve applies the outcome for one (a, b) pair. Kind dispatch
// mirrors the source's deal_with_collision: only a Clone or a Thorn
// ever initiates an outcome against most other kinds (a moving Food
// never does — it is only ever the target), so most other combinations
// are a deliberate no-op. The one exception is Spore/Thorn: a resting
// Thorn is never in `moving`, so an ejected Spore travelling into a
// stationary Thorn is only ever reported with the Spore as the moving
// side (spec §4.4 S4) — thornEatsSpore is routed from both directions
// so the outcome fires regardless of which body the collision index
// names as A. Clone/Clone same-owner pairs are also a no-op here by
// construction: PlayerManager.Adjust is the sole handler for
// same-owner separation and refusion (spec §9, Open Question 4).
func (e *Engine) Resolve(a, b ball.Body) {
	ab, bb := a.Ball(), b.Ball()
	if ab.Removed || bb.Removed {
		return
	}
	switch ab.Kind {
	case ball.KindClone:
		ac := a.(*ball.Clone)
		switch bb.Kind {
		case ball.KindClone:
			e.cloneVsClone(ac, b.(*ball.Clone))
		case ball.KindFood:
			e.eat(ab, bb)
			e.Food.Remove(bb.ID)
		case ball.KindSpore:
			e.eat(ab, bb)
			e.Spore.Remove(bb.ID)
		case ball.KindThorn:
			e.cloneVsThorn(ac, b.(*ball.Thorn))
		}
	case ball.KindThorn:
		at := a.(*ball.Thorn)
		switch bb.Kind {
		case ball.KindClone:
			e.cloneVsThorn(b.(*ball.Clone), at)
		case ball.KindSpore:
			e.thornEatsSpore(at, b.(*ball.Spore))
		}
	case ball.KindSpore:
		if bb.Kind == ball.KindThorn {
			e.thornEatsSpore(b.(*ball.Thorn), a.(*ball.Spore))
		}
	}
}

// eat transfers loser's size into winner and marks loser removed. The
// caller still owes a manager.Remove(loser.ID) call: eat only mutates
// the shared circle state, it never touches a manager's set (spec §9
// DESIGN NOTES).
func (e *Engine) eat(winner, loser *ball.Base) {
	winner.SetSize(winner.Size + loser.Size)
	loser.Removed = true
}

func (e *Engine) cloneVsClone(a, b *ball.Clone) {
	if a.Owner == b.Owner {
		return
	}
	if a.Team == b.Team {
		e.resolveSameTeam(a, b)
		return
	}
	if a.Size > b.Size {
		e.eat(&a.Base, &b.Base)
		e.Players.Remove(b.ID, e.RNG)
	} else {
		e.eat(&b.Base, &a.Base)
		e.Players.Remove(a.ID, e.RNG)
	}
}

// resolveSameTeam handles same-team, different-owner Clone/Clone
// pairs: the larger eats the smaller only if the loser's owner would
// still have at least one cell left afterward.
func (e *Engine) resolveSameTeam(a, b *ball.Clone) {
	if a.Size > b.Size {
		if e.Players.CellCount(b.Owner) > 1 {
			e.eat(&a.Base, &b.Base)
			e.Players.Remove(b.ID, e.RNG)
		}
		return
	}
	if e.Players.CellCount(a.Owner) > 1 {
		e.eat(&b.Base, &a.Base)
		e.Players.Remove(a.ID, e.RNG)
	}
}

// cloneVsThorn applies the center-hit discipline (spec §4.4, §9 Open
// Question 3): a grazing overlap where the thorn's center lies outside
// the clone is ignored entirely, regardless of size. A clone at or
// under the thorn's size never eats it.
func (e *Engine) cloneVsThorn(c *ball.Clone, th *ball.Thorn) {
	if c.Pos.Distance(th.Pos) > c.Radius {
		return
	}
	if c.Size <= th.Size {
		return
	}
	cellCountBefore := e.Players.CellCount(c.Owner)
	e.eat(&c.Base, &th.Base)
	e.Thorn.Remove(th.ID)
	if cellCountBefore < e.PartNumMax {
		e.Players.Explode(c.ID, e.RNG)
	}
}

func (e *Engine) thornEatsSpore(th *ball.Thorn, s *ball.Spore) {
	dir := s.Dir
	e.eat(&th.Base, &s.Base)
	e.Spore.Remove(s.ID)
	speed := e.ThornEatSporeVelInit
	if speed > e.ThornVelMax {
		speed = e.ThornVelMax
	}
	th.Strike(dir, speed, e.ThornEatSporeVelZeroTime)
}
