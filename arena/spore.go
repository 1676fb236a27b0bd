package arena

import (
	"math/rand"

	"github.com/arenasim/core/ball"
	"github.com/arenasim/core/config"
	"github.com/arenasim/core/geom"
)

// SporeManager owns the population of SporeBalls. Unlike Food and
// Thorn, spores have no num_init/refresh settings in the configuration
// schema — they only come into existence via a Clone's eject action —
// so Init and Step carry no spawn logic; they exist for lifecycle
// symmetry with the other managers.
type SporeManager struct {
	cfg config.SporeConfig
	ids ball.IDGen

	balls map[uint64]*ball.Spore
}

// NewSporeManager constructs an empty SporeManager.
func NewSporeManager(cfg config.SporeConfig) *SporeManager {
	return &SporeManager{cfg: cfg, balls: make(map[uint64]*ball.Spore)}
}

// Init is a no-op: spores never have an initial population.
func (m *SporeManager) Init() {}

// Step is a no-op: spores have no periodic refresh; their kinematics
// are advanced directly by the simulation driver each state-tick.
func (m *SporeManager) Step(dt float64) {}

// Spawn ejects a new spore from pos along dir (a unit vector). The
// spore's own radius is sampled from the manager's radius_min/
// radius_max range; spore_radius_init is a separate parameter naming
// how much size an ejecting Clone loses, not the spore's own radius.
func (m *SporeManager) Spawn(rng *rand.Rand, pos, dir geom.Vector2) *ball.Spore {
	radius := rangeFloat(rng, m.cfg.RadiusMin, m.cfg.RadiusMax)
	s := ball.NewSpore(m.ids.Next(), pos, dir, radius, m.cfg.VelInit, m.cfg.VelZeroTime)
	m.balls[s.ID] = s
	return s
}

// Add inserts an externally constructed Spore ball.
func (m *SporeManager) Add(s *ball.Spore) {
	m.balls[s.ID] = s
}

// Remove deletes a body by id.
func (m *SporeManager) Remove(id uint64) {
	delete(m.balls, id)
}

// All returns every live Spore ball.
func (m *SporeManager) All() []*ball.Spore {
	out := make([]*ball.Spore, 0, len(m.balls))
	for _, s := range m.balls {
		out = append(out, s)
	}
	return out
}

// Reset clears the manager back to empty.
func (m *SporeManager) Reset() {
	m.balls = make(map[uint64]*ball.Spore)
	m.ids.Reset()
}
