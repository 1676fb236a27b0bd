package player

import (
	"math"
	"math/rand"
	"testing"

	"github.com/arenasim/core/ball"
	"github.com/arenasim/core/config"
	"github.com/arenasim/core/geom"
)

const epsilon = 1e-6

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// singlePlayerManager builds a Manager with one team of one player and
// returns the manager, the player id, and its lone clone's id.
func singlePlayerManager(t *testing.T, border geom.Border) (*Manager, uint64, uint64) {
	t.Helper()
	cfg := config.Default().Player
	m := NewManager(cfg, border)
	rng := rand.New(rand.NewSource(1))
	m.Init(rng, 1, 1)
	playerID := m.PlayerIDs()[0]
	cellID := m.players[playerID].CellIDs[0]
	return m, playerID, cellID
}

// growClone directly resizes a clone, bypassing the split/eject
// machinery, so tests can start directly from a size far above the
// default radius_init (3).
func growClone(m *Manager, id uint64, size float64) *ball.Clone {
	c := m.clones[id]
	c.SetSize(size)
	return c
}

func TestApplyActionSplitDoublesEligibleCellCount(t *testing.T) {
	border := geom.NewBorder(1000, 1000)
	m, playerID, cellID := singlePlayerManager(t, border)
	growClone(m, cellID, 2500) // radius 50, well above split_radius_min=10

	dir := geom.New(1, 0)
	if _, err := m.ApplyAction(playerID, Action{Dir: &dir, Split: true}); err != nil {
		t.Fatalf("ApplyAction: %v", err)
	}

	if got := m.CellCount(playerID); got != 2 {
		t.Fatalf("CellCount after split = %d, want 2", got)
	}
	for _, c := range m.ClonesOf(playerID) {
		if !floatEqual(c.Size, 1250) {
			t.Errorf("clone %d size = %f, want 1250 (half of 2500)", c.ID, c.Size)
		}
		if c.Age != 0 {
			t.Errorf("clone %d age = %f, want 0 right after split", c.ID, c.Age)
		}
	}
}

func TestSplitRespectsPartNumMax(t *testing.T) {
	border := geom.NewBorder(1000, 1000)
	cfg := config.Default().Player
	cfg.PartNumMax = 2
	m := NewManager(cfg, border)
	rng := rand.New(rand.NewSource(1))
	m.Init(rng, 1, 1)
	playerID := m.PlayerIDs()[0]
	cellID := m.players[playerID].CellIDs[0]
	growClone(m, cellID, 2500)

	dir := geom.New(1, 0)
	m.doSplit(m.players[playerID], dir)
	if got := m.CellCount(playerID); got != 2 {
		t.Fatalf("first split: CellCount = %d, want 2", got)
	}

	m.doSplit(m.players[playerID], dir)
	if got := m.CellCount(playerID); got != 2 {
		t.Fatalf("split at part_num_max should be a no-op, CellCount = %d, want 2", got)
	}
}

// TestApplyActionEjectWinsOverSplit covers spec scenario S6: both
// split and eject requested in the same action ⇒ only eject executes.
func TestApplyActionEjectWinsOverSplit(t *testing.T) {
	border := geom.NewBorder(1000, 1000)
	m, playerID, cellID := singlePlayerManager(t, border)
	m.SetSporeRadiusInit(20) // spore_radius_init^2 = 400
	growClone(m, cellID, 2500)

	dir := geom.New(1, 0)
	ejects, err := m.ApplyAction(playerID, Action{Dir: &dir, Split: true, Eject: true})
	if err != nil {
		t.Fatalf("ApplyAction: %v", err)
	}

	if got := m.CellCount(playerID); got != 1 {
		t.Fatalf("CellCount = %d, want 1 (split must not have run)", got)
	}
	if len(ejects) != 1 {
		t.Fatalf("len(ejects) = %d, want 1", len(ejects))
	}
	c := m.clones[cellID]
	if !floatEqual(c.Size, 2100) {
		t.Errorf("clone size = %f, want 2100 (2500 - spore_radius_init^2)", c.Size)
	}
}

func TestApplyActionStopWinsOverDirection(t *testing.T) {
	border := geom.NewBorder(1000, 1000)
	m, playerID, cellID := singlePlayerManager(t, border)

	dir := geom.New(1, 0)
	if _, err := m.ApplyAction(playerID, Action{Dir: &dir, Stop: true}); err != nil {
		t.Fatalf("ApplyAction: %v", err)
	}

	c := m.clones[cellID]
	if !c.Stopping {
		t.Error("clone should have entered the stop-decay state")
	}
	if !c.InputDir.IsZero() {
		t.Errorf("InputDir = %s, want zero after a winning stop", c.InputDir)
	}
}

func TestAdjustSeparatesYoungOverlappingCells(t *testing.T) {
	border := geom.NewBorder(1000, 1000)
	m, playerID, cellID := singlePlayerManager(t, border)
	a := m.clones[cellID]
	a.SetSize(400) // radius 20
	a.Pos = geom.New(500, 500)
	a.Age = 0

	b := ball.NewClone(m.ids.Next(), playerID, 0, geom.New(505, 500), 20)
	b.Age = 0
	m.clones[b.ID] = b
	m.players[playerID].CellIDs = append(m.players[playerID].CellIDs, b.ID)

	m.Adjust()

	if m.CellCount(playerID) != 2 {
		t.Fatalf("young overlapping cells must not fuse, CellCount = %d, want 2", m.CellCount(playerID))
	}
	if ball.Overlaps(&a.Base, &b.Base) {
		t.Error("rigid separation should have pushed the two discs apart")
	}
}

// TestAdjustFusesOldOverlappingCells covers spec scenario S5 and
// property 8 (the refusion age gate): two same-owner cells at or past
// recombine_age that overlap must fuse into one, summing size.
func TestAdjustFusesOldOverlappingCells(t *testing.T) {
	border := geom.NewBorder(1000, 1000)
	m, playerID, cellID := singlePlayerManager(t, border)
	recombineAge := m.cfg.RecombineAge

	a := m.clones[cellID]
	a.SetSize(400)
	a.Pos = geom.New(500, 500)
	a.Age = recombineAge

	b := ball.NewClone(m.ids.Next(), playerID, 0, geom.New(500, 500), 10)
	b.Age = recombineAge
	m.clones[b.ID] = b
	m.players[playerID].CellIDs = append(m.players[playerID].CellIDs, b.ID)

	wantSize := a.Size + b.Size
	m.Adjust()

	if got := m.CellCount(playerID); got != 1 {
		t.Fatalf("old overlapping cells should fuse into one, CellCount = %d, want 1", got)
	}
	survivor := m.ClonesOf(playerID)[0]
	if !floatEqual(survivor.Size, wantSize) {
		t.Errorf("fused size = %f, want %f", survivor.Size, wantSize)
	}
}

func TestAdjustDoesNotFuseBeforeRecombineAge(t *testing.T) {
	border := geom.NewBorder(1000, 1000)
	m, playerID, cellID := singlePlayerManager(t, border)
	recombineAge := m.cfg.RecombineAge

	a := m.clones[cellID]
	a.SetSize(400)
	a.Pos = geom.New(500, 500)
	a.Age = recombineAge

	b := ball.NewClone(m.ids.Next(), playerID, 0, geom.New(500, 500), 10)
	b.Age = recombineAge / 2 // one cell hasn't aged enough yet
	m.clones[b.ID] = b
	m.players[playerID].CellIDs = append(m.players[playerID].CellIDs, b.ID)

	m.Adjust()

	if got := m.CellCount(playerID); got != 2 {
		t.Fatalf("fusion before both cells reach recombine_age must not happen, CellCount = %d, want 2", got)
	}
}

// TestExplodePreservesTotalSize covers spec scenario S3: exploding a
// clone must conserve total size across the resulting shards.
func TestExplodePreservesTotalSize(t *testing.T) {
	border := geom.NewBorder(1000, 1000)
	m, _, cellID := singlePlayerManager(t, border)
	c := growClone(m, cellID, 2725) // 2500 (clone) + 225 (thorn), per S3
	playerID := c.Owner
	rng := rand.New(rand.NewSource(3))

	m.Explode(cellID, rng)

	clones := m.ClonesOf(playerID)
	if got := len(clones); got < 1 || got > m.cfg.PartNumMax {
		t.Fatalf("CellCount after explode = %d, want within [1, %d]", got, m.cfg.PartNumMax)
	}
	var total float64
	maxChildSize := m.cfg.OnThornsPartRadiusMax * m.cfg.OnThornsPartRadiusMax
	for _, cl := range clones {
		total += cl.Size
		if cl.ID != cellID && cl.Size > maxChildSize+epsilon {
			t.Errorf("shard %d size %f exceeds on_thorns_part_radius_max^2 = %f", cl.ID, cl.Size, maxChildSize)
		}
	}
	if !floatEqual(total, 2725) {
		t.Errorf("sum of shard sizes = %f, want 2725 (mass not conserved)", total)
	}
}

func TestExplodeBoundedByPartNumMaxRoom(t *testing.T) {
	border := geom.NewBorder(1000, 1000)
	cfg := config.Default().Player
	cfg.PartNumMax = 3
	m := NewManager(cfg, border)
	rng := rand.New(rand.NewSource(1))
	m.Init(rng, 1, 1)
	playerID := m.PlayerIDs()[0]
	cellID := m.players[playerID].CellIDs[0]
	growClone(m, cellID, 2725)

	m.Explode(cellID, rng)

	if got := m.CellCount(playerID); got != 3 {
		t.Fatalf("CellCount after explode with part_num_max=3 = %d, want 3", got)
	}
}

func TestRemoveRespawnsPlayerWithZeroCells(t *testing.T) {
	border := geom.NewBorder(1000, 1000)
	m, playerID, cellID := singlePlayerManager(t, border)
	rng := rand.New(rand.NewSource(1))

	m.Remove(cellID, rng)

	if got := m.CellCount(playerID); got != 1 {
		t.Fatalf("a player must never be left with zero cells, CellCount = %d, want 1", got)
	}
	newClone := m.ClonesOf(playerID)[0]
	if newClone.ID == cellID {
		t.Error("the respawned clone should have a fresh id")
	}
	if !floatEqual(newClone.Radius, m.cfg.RadiusInit) {
		t.Errorf("respawned clone radius = %f, want radius_init = %f", newClone.Radius, m.cfg.RadiusInit)
	}
}
