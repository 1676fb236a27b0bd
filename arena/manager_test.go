package arena

import (
	"math/rand"
	"testing"

	"github.com/arenasim/core/config"
	"github.com/arenasim/core/geom"
)

func TestFoodManagerInitFillsToNumInit(t *testing.T) {
	cfg := config.Default().Food
	cfg.NumInit = 50
	m := NewFoodManager(cfg, geom.NewBorder(1000, 1000))
	m.Init(rand.New(rand.NewSource(1)))
	if got := len(m.All()); got != 50 {
		t.Fatalf("len(All()) = %d, want 50", got)
	}
}

func TestFoodManagerRefreshRespectsNumMax(t *testing.T) {
	cfg := config.Default().Food
	cfg.NumInit = 0
	cfg.NumMax = 5
	cfg.RefreshNum = 100
	cfg.RefreshTime = 1
	m := NewFoodManager(cfg, geom.NewBorder(1000, 1000))
	rng := rand.New(rand.NewSource(1))
	m.Step(1.0, rng)
	if got := len(m.All()); got != 5 {
		t.Fatalf("refresh should cap at num_max=5, got %d", got)
	}
}

func TestFoodManagerRefreshWaitsForInterval(t *testing.T) {
	cfg := config.Default().Food
	cfg.NumInit = 0
	cfg.RefreshTime = 2
	cfg.RefreshNum = 10
	m := NewFoodManager(cfg, geom.NewBorder(1000, 1000))
	rng := rand.New(rand.NewSource(1))
	m.Step(1.0, rng)
	if got := len(m.All()); got != 0 {
		t.Fatalf("should not refresh before refresh_time elapses, got %d bodies", got)
	}
	m.Step(1.0, rng)
	if got := len(m.All()); got != 10 {
		t.Fatalf("should refresh once refresh_time elapses, got %d bodies", got)
	}
}

func TestFoodManagerRemove(t *testing.T) {
	cfg := config.Default().Food
	cfg.NumInit = 3
	m := NewFoodManager(cfg, geom.NewBorder(1000, 1000))
	m.Init(rand.New(rand.NewSource(1)))
	all := m.All()
	m.Remove(all[0].ID)
	if got := len(m.All()); got != 2 {
		t.Fatalf("len(All()) after Remove = %d, want 2", got)
	}
}

func TestThornManagerInit(t *testing.T) {
	cfg := config.Default().Thorn
	m := NewThornManager(cfg, geom.NewBorder(1000, 1000))
	m.Init(rand.New(rand.NewSource(1)))
	if got := len(m.All()); got != cfg.NumInit {
		t.Fatalf("len(All()) = %d, want %d", got, cfg.NumInit)
	}
}

func TestSporeManagerSpawn(t *testing.T) {
	cfg := config.Default().Spore
	m := NewSporeManager(cfg)
	rng := rand.New(rand.NewSource(1))
	s := m.Spawn(rng, geom.New(500, 500), geom.New(1, 0))
	if !s.Moving {
		t.Error("a freshly spawned spore should be moving")
	}
	if got := len(m.All()); got != 1 {
		t.Fatalf("len(All()) = %d, want 1", got)
	}
}

func TestManagerIDsAreStableAcrossReset(t *testing.T) {
	cfg := config.Default().Food
	cfg.NumInit = 2
	m := NewFoodManager(cfg, geom.NewBorder(1000, 1000))
	rng := rand.New(rand.NewSource(1))
	m.Init(rng)
	m.Reset()
	m.Init(rng)
	ids := map[uint64]bool{}
	for _, f := range m.All() {
		ids[f.ID] = true
	}
	if !ids[1] || !ids[2] {
		t.Errorf("ids should restart at 1 after Reset, got %v", ids)
	}
}
