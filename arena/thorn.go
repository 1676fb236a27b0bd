package arena

import (
	"math/rand"

	"github.com/arenasim/core/ball"
	"github.com/arenasim/core/config"
	"github.com/arenasim/core/geom"
)

// ThornManager owns the population of ThornBalls: stationary hazards
// refreshed up to num_max every refresh_time, same shape as
// FoodManager but over a different radius range and able to be struck
// by spores (see rules.Engine).
type ThornManager struct {
	cfg    config.ThornConfig
	border geom.Border
	ids    ball.IDGen

	balls map[uint64]*ball.Thorn

	refreshElapsed float64
}

// NewThornManager constructs an empty ThornManager.
func NewThornManager(cfg config.ThornConfig, border geom.Border) *ThornManager {
	return &ThornManager{
		cfg:    cfg,
		border: border,
		balls:  make(map[uint64]*ball.Thorn),
	}
}

// Init populates the manager up to num_init.
func (m *ThornManager) Init(rng *rand.Rand) {
	for i := 0; i < m.cfg.NumInit; i++ {
		th := m.spawn(rng)
		m.balls[th.ID] = th
	}
}

// Step accumulates dt and, every refresh_time, spawns up to
// refresh_num new bodies bounded by num_max.
func (m *ThornManager) Step(dt float64, rng *rand.Rand) {
	m.refreshElapsed += dt
	if m.refreshElapsed < m.cfg.RefreshTime {
		return
	}
	m.refreshElapsed = 0
	todo := m.cfg.RefreshNum
	if room := m.cfg.NumMax - len(m.balls); room < todo {
		todo = room
	}
	for i := 0; i < todo; i++ {
		th := m.spawn(rng)
		m.balls[th.ID] = th
	}
}

func (m *ThornManager) spawn(rng *rand.Rand) *ball.Thorn {
	radius := rangeFloat(rng, m.cfg.RadiusMin, m.cfg.RadiusMax)
	pos := m.border.SampleInset(rng, radius)
	return ball.NewThorn(m.ids.Next(), pos, radius)
}

// Add inserts an externally constructed Thorn ball.
func (m *ThornManager) Add(th *ball.Thorn) {
	m.balls[th.ID] = th
}

// Remove deletes a body by id.
func (m *ThornManager) Remove(id uint64) {
	delete(m.balls, id)
}

// All returns every live Thorn ball.
func (m *ThornManager) All() []*ball.Thorn {
	out := make([]*ball.Thorn, 0, len(m.balls))
	for _, th := range m.balls {
		out = append(out, th)
	}
	return out
}

// Reset clears the manager back to empty.
func (m *ThornManager) Reset() {
	m.balls = make(map[uint64]*ball.Thorn)
	m.refreshElapsed = 0
	m.ids.Reset()
}
