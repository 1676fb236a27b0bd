package player

import "github.com/arenasim/core/geom"

// Action is one player's command for an action-tick: a direction plus
// which of eject/split/stop/move it requests.
//
// The external wire encoding (spec: dx, dy, type in {0,1,2,3}) maps
// onto exactly one of Eject/Split/Stop/(plain move) at a time via the
// New*Action constructors below. Internally Action keeps Eject and
// Split as independent flags so the documented priority rules ("eject
// wins over split", "stop wins over a direction") are meaningful and
// testable even though the public constructors never produce both at
// once — see the decision recorded in the design notes.
type Action struct {
	// Dir is nil to mean "continue previous direction" (only
	// meaningful for a plain move); the zero vector means "clear
	// input". Eject and Split require a non-zero Dir.
	Dir   *geom.Vector2
	Eject bool
	Split bool
	Stop  bool
}

func dirPtr(dx, dy float64) *geom.Vector2 {
	d := geom.New(dx, dy)
	return &d
}

// NewEjectAction requests an eject along (dx, dy).
func NewEjectAction(dx, dy float64) Action {
	return Action{Dir: dirPtr(dx, dy), Eject: true}
}

// NewSplitAction requests a split along (dx, dy).
func NewSplitAction(dx, dy float64) Action {
	return Action{Dir: dirPtr(dx, dy), Split: true}
}

// NewStopAction requests a velocity stop.
func NewStopAction() Action {
	return Action{Stop: true}
}

// NewMoveAction requests a move toward (dx, dy). The zero vector
// clears input; use NewContinueAction to leave the previous direction
// unchanged.
func NewMoveAction(dx, dy float64) Action {
	return Action{Dir: dirPtr(dx, dy)}
}

// NewContinueAction requests no change: the previous direction (if
// any) remains in effect.
func NewContinueAction() Action {
	return Action{}
}
