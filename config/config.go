// Package config holds the simulation's tunable world parameters.
//
// Unlike the teacher's Configuration type, nothing here is loaded from
// environment variables: the core accepts no env vars, no file
// formats, no network wire format (see the External Interfaces
// section of the design doc this package implements). Callers build a
// World by value and pass it to sim.New.
package config

import (
	"github.com/arenasim/core/simerr"
)

// CollisionDetectionType selects the collision index backend.
type CollisionDetectionType string

const (
	// Precision is the direct O(n*m) reference backend.
	Precision CollisionDetectionType = "precision"
	// Spatial is the uniform-grid backend, used for scale.
	Spatial CollisionDetectionType = "spatial"
)

// FoodConfig tunes the food manager.
type FoodConfig struct {
	NumInit     int
	NumMin      int
	NumMax      int
	RefreshTime float64
	RefreshNum  int
	RadiusMin   float64
	RadiusMax   float64
}

// ThornConfig tunes the thorn manager.
type ThornConfig struct {
	NumInit             int
	NumMin              int
	NumMax              int
	RefreshTime         float64
	RefreshNum          int
	RadiusMin           float64
	RadiusMax           float64
	VelMax              float64
	EatSporeVelInit     float64
	EatSporeVelZeroTime float64
}

// PlayerConfig tunes clone physics and split/eject/recombine mechanics.
type PlayerConfig struct {
	AccMax                float64
	VelMax                float64
	RadiusMin             float64
	RadiusMax             float64
	RadiusInit            float64
	PartNumMax            int
	OnThornsPartNum       int
	OnThornsPartRadiusMax float64
	SplitRadiusMin        float64
	EjectRadiusMin        float64
	RecombineAge          float64
	SplitVelInit          float64
	SplitVelZeroTime      float64
	StopZeroTime          float64
	SizeDecayRate         float64
	GivenAccWeight        float64
}

// SporeConfig tunes spores ejected by clones.
type SporeConfig struct {
	RadiusMin      float64
	RadiusMax      float64
	VelInit        float64
	VelZeroTime    float64
	SporeRadiusInit float64
}

// World is the full set of parameters a Server is constructed with.
type World struct {
	TeamNum               int
	PlayerNumPerTeam      int
	MapWidth              float64
	MapHeight             float64
	MatchTime             float64
	StateTickPerSecond    int
	ActionTickPerSecond   int
	CollisionDetectionType CollisionDetectionType

	Food   FoodConfig
	Thorn  ThornConfig
	Player PlayerConfig
	Spore  SporeConfig

	// DebugChecks enables the internal invariant checker at the end of
	// every state-tick. Off by default; release callers should leave it
	// off, debug/test callers should turn it on.
	DebugChecks bool
}

// Default returns the reference configuration, matching the values of
// the original arena server this core implements.
func Default() World {
	return World{
		TeamNum:                4,
		PlayerNumPerTeam:       3,
		MapWidth:               1000,
		MapHeight:              1000,
		MatchTime:              600,
		StateTickPerSecond:     20,
		ActionTickPerSecond:    5,
		CollisionDetectionType: Precision,
		Food: FoodConfig{
			NumInit:     2000,
			NumMin:      2000,
			NumMax:      2500,
			RefreshTime: 2,
			RefreshNum:  30,
			RadiusMin:   2,
			RadiusMax:   2,
		},
		Thorn: ThornConfig{
			NumInit:             15,
			NumMin:              15,
			NumMax:              20,
			RefreshTime:         2,
			RefreshNum:          2,
			RadiusMin:           12,
			RadiusMax:           20,
			VelMax:              100,
			EatSporeVelInit:     10,
			EatSporeVelZeroTime: 1,
		},
		Player: PlayerConfig{
			AccMax:                30,
			VelMax:                20,
			RadiusMin:             3,
			RadiusMax:             100,
			RadiusInit:            3,
			PartNumMax:            16,
			OnThornsPartNum:       10,
			OnThornsPartRadiusMax: 20,
			SplitRadiusMin:        10,
			EjectRadiusMin:        10,
			RecombineAge:          20,
			SplitVelInit:          30,
			SplitVelZeroTime:      1,
			StopZeroTime:          1,
			SizeDecayRate:         0.00005,
			GivenAccWeight:        10,
		},
		Spore: SporeConfig{
			RadiusMin:       3,
			RadiusMax:       3,
			VelInit:         250,
			VelZeroTime:     0.3,
			SporeRadiusInit: 20,
		},
	}
}

// StateDT returns the duration of one state-tick.
func (w World) StateDT() float64 {
	return 1.0 / float64(w.StateTickPerSecond)
}

// TicksPerAction returns the number of state-ticks per action-tick.
func (w World) TicksPerAction() int {
	return w.StateTickPerSecond / w.ActionTickPerSecond
}

// Validate checks the configuration for internal consistency. A
// ConfigInvalid error here is fatal: the caller must not proceed to
// construct a Server.
func (w World) Validate() error {
	if w.MapWidth <= 0 || w.MapHeight <= 0 {
		return simerr.NewConfigInvalid("map dimensions must be positive, got %fx%f", w.MapWidth, w.MapHeight)
	}
	if w.MatchTime <= 0 {
		return simerr.NewConfigInvalid("match_time must be positive, got %f", w.MatchTime)
	}
	if w.TeamNum <= 0 || w.PlayerNumPerTeam <= 0 {
		return simerr.NewConfigInvalid("team_num and player_num_per_team must be positive")
	}
	if w.StateTickPerSecond <= 0 || w.ActionTickPerSecond <= 0 {
		return simerr.NewConfigInvalid("tick rates must be positive")
	}
	if w.StateTickPerSecond%w.ActionTickPerSecond != 0 {
		return simerr.NewConfigInvalid("state_tick_per_second (%d) must be divisible by action_tick_per_second (%d)",
			w.StateTickPerSecond, w.ActionTickPerSecond)
	}
	if w.CollisionDetectionType != Precision && w.CollisionDetectionType != Spatial {
		return simerr.NewConfigInvalid("collision_detection_type must be %q or %q, got %q", Precision, Spatial, w.CollisionDetectionType)
	}
	if err := validateRange("food", w.Food.NumMin, w.Food.NumMax, w.Food.RadiusMin, w.Food.RadiusMax); err != nil {
		return err
	}
	if err := validateRange("thorn", w.Thorn.NumMin, w.Thorn.NumMax, w.Thorn.RadiusMin, w.Thorn.RadiusMax); err != nil {
		return err
	}
	if w.Player.RadiusMin <= 0 || w.Player.RadiusMax < w.Player.RadiusMin {
		return simerr.NewConfigInvalid("player radius range empty or non-positive: [%f, %f]", w.Player.RadiusMin, w.Player.RadiusMax)
	}
	if w.Player.RadiusInit < w.Player.RadiusMin || w.Player.RadiusInit > w.Player.RadiusMax {
		return simerr.NewConfigInvalid("player radius_init (%f) outside [%f, %f]", w.Player.RadiusInit, w.Player.RadiusMin, w.Player.RadiusMax)
	}
	if w.Player.PartNumMax <= 0 {
		return simerr.NewConfigInvalid("player part_num_max must be positive")
	}
	if w.Spore.RadiusMin <= 0 || w.Spore.RadiusMax < w.Spore.RadiusMin {
		return simerr.NewConfigInvalid("spore radius range empty or non-positive: [%f, %f]", w.Spore.RadiusMin, w.Spore.RadiusMax)
	}
	return nil
}

func validateRange(name string, numMin, numMax int, radiusMin, radiusMax float64) error {
	if numMin > numMax {
		return simerr.NewConfigInvalid("%s num_min (%d) must be <= num_max (%d)", name, numMin, numMax)
	}
	if radiusMin <= 0 || radiusMax < radiusMin {
		return simerr.NewConfigInvalid("%s radius range empty or non-positive: [%f, %f]", name, radiusMin, radiusMax)
	}
	return nil
}
