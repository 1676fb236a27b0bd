// Package sim implements the simulation driver (spec §4.7): the
// fixed-step tick loop that wires the managers, the collision index
// and the rules engine together behind the five public operations
// (new/seed/reset/apply_actions/step, plus snapshot/player_ids/
// team_ids) spec.md §6 requires of the core.
package sim

import (
	"errors"
	"math/rand"

	"github.com/arenasim/core/arena"
	"github.com/arenasim/core/ball"
	"github.com/arenasim/core/collision"
	"github.com/arenasim/core/config"
	"github.com/arenasim/core/geom"
	"github.com/arenasim/core/player"
	"github.com/arenasim/core/rules"
	"github.com/arenasim/core/simerr"
)

// Server is the simulation core. It is not safe for concurrent use by
// multiple goroutines; every Step call is a complete synchronous state
// transition (spec §5).
type Server struct {
	cfg    config.World
	border geom.Border
	rng    *rand.Rand

	food    *arena.FoodManager
	thorn   *arena.ThornManager
	spore   *arena.SporeManager
	players *player.Manager

	backend collision.Backend
	engine  *rules.Engine

	lastTime float64
	pending  map[uint64]player.Action
}

// New constructs a Server from cfg, returning a *simerr.ConfigInvalid
// if cfg fails validation. The server starts seeded with 1 and already
// populated by an implicit Reset; callers that need a specific seed
// must call Seed followed by Reset before taking any action.
func New(cfg config.World) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	border := geom.NewBorder(cfg.MapWidth, cfg.MapHeight)
	s := &Server{cfg: cfg, border: border}

	s.food = arena.NewFoodManager(cfg.Food, border)
	s.thorn = arena.NewThornManager(cfg.Thorn, border)
	s.spore = arena.NewSporeManager(cfg.Spore)
	s.players = player.NewManager(cfg.Player, border)
	s.players.SetSporeRadiusInit(cfg.Spore.SporeRadiusInit)
	s.backend = collision.New(cfg.CollisionDetectionType)

	s.Seed(1)
	s.engine = &rules.Engine{
		Players:                  s.players,
		Food:                     s.food,
		Spore:                    s.spore,
		Thorn:                    s.thorn,
		RNG:                      s.rng,
		PartNumMax:               cfg.Player.PartNumMax,
		ThornVelMax:              cfg.Thorn.VelMax,
		ThornEatSporeVelInit:     cfg.Thorn.EatSporeVelInit,
		ThornEatSporeVelZeroTime: cfg.Thorn.EatSporeVelZeroTime,
	}
	s.Reset()
	return s, nil
}

// Seed resets the RNG to a fresh source derived from seedValue. Every
// stochastic draw the core makes (spawn positions, radii, explosion
// angles) pulls from this single source in a fixed order, so the same
// seed plus the same action stream reproduces an identical run (spec
// §5, testable property 6). Call Seed before Reset to start a match
// from a known seed.
func (s *Server) Seed(seedValue int64) {
	s.rng = rand.New(rand.NewSource(seedValue))
	if s.engine != nil {
		s.engine.RNG = s.rng
	}
}

// Reset clears all state and repopulates via each manager's Init, and
// respawns every player at radius_init, per spec §6.
func (s *Server) Reset() {
	s.lastTime = 0
	s.pending = nil

	s.food.Reset()
	s.thorn.Reset()
	s.spore.Reset()
	s.players.Reset(s.rng, s.cfg.TeamNum, s.cfg.PlayerNumPerTeam)

	s.food.Init(s.rng)
	s.thorn.Init(s.rng)
	s.spore.Init()
}

// ApplyActions stages actions for the next action-tick. An action
// addressed to a player id the world does not know about is rejected
// immediately with *simerr.UnknownPlayer and nothing is staged.
func (s *Server) ApplyActions(actions map[uint64]player.Action) error {
	for id := range actions {
		if !s.players.HasPlayer(id) {
			return &simerr.UnknownPlayer{PlayerID: id}
		}
	}
	if s.pending == nil {
		s.pending = make(map[uint64]player.Action, len(actions))
	}
	for id, a := range actions {
		s.pending[id] = a
	}
	return nil
}

// Step advances one action-tick: ticks_per_action state-ticks, the
// first carrying actions (or, if actions is nil, whatever was staged
// by ApplyActions) and the rest carrying none. It returns true once
// match_time is exhausted; a *simerr.UnknownPlayer in actions aborts
// before any state-tick runs, a *simerr.BadAction for an individual
// player is non-fatal — that player is treated as Stop for this
// action-tick and the returned error merely surfaces the condition.
func (s *Server) Step(actions map[uint64]player.Action) (bool, error) {
	if s.lastTime >= s.cfg.MatchTime {
		return true, nil
	}

	use := actions
	if use == nil {
		use = s.pending
	}
	for id := range use {
		if !s.players.HasPlayer(id) {
			return false, &simerr.UnknownPlayer{PlayerID: id}
		}
	}
	s.pending = nil

	var badActions []error
	ticksPerAction := s.cfg.TicksPerAction()
	for i := 0; i < ticksPerAction; i++ {
		var tickActions map[uint64]player.Action
		if i == 0 {
			tickActions = use
		}
		if err := s.stepStateTick(tickActions, &badActions); err != nil {
			return false, err
		}
	}

	done := s.lastTime >= s.cfg.MatchTime
	return done, errors.Join(badActions...)
}

// stepStateTick runs the seven-step state-tick body of spec §4.7.
func (s *Server) stepStateTick(actions map[uint64]player.Action, badActions *[]error) error {
	dt := s.cfg.StateDT()

	// 1. apply actions, integrate clone kinematics. Actions are applied
	// in player creation order, not map-iteration order: doSplit and
	// doEject allocate ids from the shared IDGen and draw spore radii
	// from the shared RNG, so ranging the actions map directly would
	// make id assignment and RNG draw order depend on Go's randomized
	// map iteration, breaking spec's determinism guarantee (same seed,
	// same actions -> same snapshot).
	for _, id := range s.players.PlayerIDs() {
		a, ok := actions[id]
		if !ok {
			continue
		}
		ejects, err := s.players.ApplyAction(id, a)
		if err != nil {
			*badActions = append(*badActions, err)
		}
		for _, spec := range ejects {
			s.spore.Spawn(s.rng, spec.Pos, spec.Dir)
		}
	}
	s.players.StepKinematics(dt)

	// 2. integrate spore and thorn kinematics
	for _, sp := range s.spore.All() {
		sp.Step(dt, s.border)
	}
	for _, th := range s.thorn.All() {
		th.Step(dt, s.border)
	}

	// 3. rigid separation + age-gated refusion
	s.players.Adjust()

	// 4. build moving (size desc, kind asc, id asc) and total sets
	moving := s.buildMoving()
	total := s.buildTotal()

	// 5. collision index + rules engine
	hits := s.backend.Solve(moving, total)
	s.engine.Apply(moving, hits)

	// 6. managers' spawn/refresh clocks
	s.food.Step(dt, s.rng)
	s.spore.Step(dt)
	s.thorn.Step(dt, s.rng)

	// 7. advance last_time
	s.lastTime += dt

	if s.cfg.DebugChecks {
		return s.checkInvariants()
	}
	return nil
}

func (s *Server) buildMoving() []ball.Body {
	var moving []ball.Body
	for _, c := range s.players.Clones() {
		moving = append(moving, c)
	}
	for _, th := range s.thorn.All() {
		if th.Moving {
			moving = append(moving, th)
		}
	}
	for _, sp := range s.spore.All() {
		if sp.Moving {
			moving = append(moving, sp)
		}
	}
	collision.SortMoving(moving)
	return moving
}

func (s *Server) buildTotal() []ball.Body {
	var total []ball.Body
	for _, c := range s.players.Clones() {
		total = append(total, c)
	}
	for _, th := range s.thorn.All() {
		total = append(total, th)
	}
	for _, sp := range s.spore.All() {
		total = append(total, sp)
	}
	for _, f := range s.food.All() {
		total = append(total, f)
	}
	return total
}

// PlayerIDs returns every player id, in creation order.
func (s *Server) PlayerIDs() []uint64 { return s.players.PlayerIDs() }

// TeamIDs returns every team id, in creation order.
func (s *Server) TeamIDs() []uint64 { return s.players.TeamIDs() }

// checkInvariants is the debug-only internal invariant checker (spec
// §7, §8 properties 1-4): containment, non-negative mass, cell bound,
// no ghosts. Off by default; enable via config.World.DebugChecks.
func (s *Server) checkInvariants() error {
	radiusMin := func(b *ball.Base, min float64) error {
		if b.Removed {
			return simerr.NewInvariant("removed %s %d still present in its manager", b.Kind, b.ID)
		}
		if !s.border.Contains(b.Pos, b.Radius) {
			return simerr.NewInvariant("%s %d at %s radius %f lies outside the border", b.Kind, b.ID, b.Pos, b.Radius)
		}
		minSize := min * min
		if b.Size < minSize-1e-6 {
			return simerr.NewInvariant("%s %d has size %f below minimum %f", b.Kind, b.ID, b.Size, minSize)
		}
		return nil
	}

	for _, f := range s.food.All() {
		if err := radiusMin(&f.Base, s.cfg.Food.RadiusMin); err != nil {
			return err
		}
	}
	for _, th := range s.thorn.All() {
		if err := radiusMin(&th.Base, s.cfg.Thorn.RadiusMin); err != nil {
			return err
		}
	}
	for _, sp := range s.spore.All() {
		if err := radiusMin(&sp.Base, s.cfg.Spore.RadiusMin); err != nil {
			return err
		}
	}
	for _, c := range s.players.Clones() {
		if err := radiusMin(&c.Base, s.cfg.Player.RadiusMin); err != nil {
			return err
		}
	}
	for _, p := range s.players.Players() {
		if n := p.CellCount(); n < 1 || n > s.cfg.Player.PartNumMax {
			return simerr.NewInvariant("player %d has %d cells, want [1,%d]", p.ID, n, s.cfg.Player.PartNumMax)
		}
	}
	return nil
}
