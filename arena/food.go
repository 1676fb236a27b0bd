// Package arena holds the passive-entity managers: Food, Spore and
// Thorn. Each owns the bodies of its kind exclusively; the rules
// engine never mutates a manager's set directly, only through Add/
// Remove.
package arena

import (
	"math/rand"

	"github.com/arenasim/core/ball"
	"github.com/arenasim/core/config"
	"github.com/arenasim/core/geom"
)

// FoodManager owns the population of FoodBalls: a uniform scatter
// refreshed up to num_max every refresh_time.
type FoodManager struct {
	cfg    config.FoodConfig
	border geom.Border
	ids    ball.IDGen

	balls map[uint64]*ball.Food

	refreshElapsed float64
}

// NewFoodManager constructs an empty FoodManager.
func NewFoodManager(cfg config.FoodConfig, border geom.Border) *FoodManager {
	return &FoodManager{
		cfg:    cfg,
		border: border,
		balls:  make(map[uint64]*ball.Food),
	}
}

// Init populates the manager up to num_init.
func (m *FoodManager) Init(rng *rand.Rand) {
	for i := 0; i < m.cfg.NumInit; i++ {
		f := m.spawn(rng)
		m.balls[f.ID] = f
	}
}

// Step accumulates dt and, every refresh_time, spawns up to
// refresh_num new bodies bounded by num_max.
func (m *FoodManager) Step(dt float64, rng *rand.Rand) {
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
		f := m.spawn(rng)
		m.balls[f.ID] = f
	}
}

func (m *FoodManager) spawn(rng *rand.Rand) *ball.Food {
	radius := rangeFloat(rng, m.cfg.RadiusMin, m.cfg.RadiusMax)
	pos := m.border.SampleInset(rng, radius)
	return ball.NewFood(m.ids.Next(), pos, radius)
}

// Add inserts an externally constructed Food ball; the manager's own
// population comes from Init/Step.
func (m *FoodManager) Add(f *ball.Food) {
	m.balls[f.ID] = f
}

// Remove deletes a body by id.
func (m *FoodManager) Remove(id uint64) {
	delete(m.balls, id)
}

// All returns every live Food ball. The returned slice is a fresh copy
// safe to sort or retain across the call.
func (m *FoodManager) All() []*ball.Food {
	out := make([]*ball.Food, 0, len(m.balls))
	for _, f := range m.balls {
		out = append(out, f)
	}
	return out
}

// Reset clears the manager back to empty.
func (m *FoodManager) Reset() {
	m.balls = make(map[uint64]*ball.Food)
	m.refreshElapsed = 0
	m.ids.Reset()
}

func rangeFloat(rng *rand.Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	return rng.Float64()*(max-min) + min
}
