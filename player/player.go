// Package player owns Players, Teams and their CloneBalls. A Player's
// cells cross into the ball package's Clone type by stable id; the
// rules engine never imports this package, it only calls back through
// a small PlayerOps capability (see rules.PlayerOps).
package player

// Player owns an ordered set of clone ids (1..part_num_max). The order
// matters for split/eject iteration (spec 4.5 processes owned cells in
// a stable order), not for gameplay semantics.
type Player struct {
	ID      uint64
	Team    uint64
	CellIDs []uint64
}

// CellCount returns how many cells this player currently owns.
func (p *Player) CellCount() int {
	return len(p.CellIDs)
}

// Team aggregates a fixed set of players; membership never changes
// after construction.
type Team struct {
	ID        uint64
	PlayerIDs []uint64
}
