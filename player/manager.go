package player

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/arenasim/core/ball"
	"github.com/arenasim/core/config"
	"github.com/arenasim/core/geom"
	"github.com/arenasim/core/simerr"
)

// EjectSpec describes one spore that an eject action wants spawned;
// the caller (sim.Server) hands these to arena.SporeManager.Spawn
// since PlayerManager never owns spore bodies.
type EjectSpec struct {
	Pos geom.Vector2
	Dir geom.Vector2
}

// Manager owns every Player, Team and CloneBall.
type Manager struct {
	cfg    config.PlayerConfig
	border geom.Border
	ids    ball.IDGen

	clones  map[uint64]*ball.Clone
	players map[uint64]*Player
	teams   map[uint64]*Team

	playerOrder []uint64
	teamOrder   []uint64

	nextPlayerID uint64

	// sporeRadiusInitSquared is spore_radius_init^2 from the spore
	// manager's configuration: the size an ejecting clone loses per
	// spore. PlayerManager does not otherwise depend on the spore
	// package, so sim.Server supplies it via SetSporeRadiusInit.
	sporeRadiusInitSquared float64
}

// NewManager constructs an empty Manager.
func NewManager(cfg config.PlayerConfig, border geom.Border) *Manager {
	return &Manager{
		cfg:     cfg,
		border:  border,
		clones:  make(map[uint64]*ball.Clone),
		players: make(map[uint64]*Player),
		teams:   make(map[uint64]*Team),
	}
}

// Init creates teamNum teams of playerNumPerTeam players each, every
// player spawning one clone of radius_init at a random valid position.
func (m *Manager) Init(rng *rand.Rand, teamNum, playerNumPerTeam int) {
	for t := 0; t < teamNum; t++ {
		teamID := uint64(t)
		team := &Team{ID: teamID}
		for p := 0; p < playerNumPerTeam; p++ {
			m.nextPlayerID++
			playerID := m.nextPlayerID
			player := &Player{ID: playerID, Team: teamID}
			m.players[playerID] = player
			m.playerOrder = append(m.playerOrder, playerID)
			team.PlayerIDs = append(team.PlayerIDs, playerID)

			pos := m.border.SampleInset(rng, m.cfg.RadiusInit)
			clone := ball.NewClone(m.ids.Next(), playerID, teamID, pos, m.cfg.RadiusInit)
			m.clones[clone.ID] = clone
			player.CellIDs = append(player.CellIDs, clone.ID)
		}
		m.teams[teamID] = team
		m.teamOrder = append(m.teamOrder, teamID)
	}
}

// Reset clears all state back to empty, then re-inits.
func (m *Manager) Reset(rng *rand.Rand, teamNum, playerNumPerTeam int) {
	m.clones = make(map[uint64]*ball.Clone)
	m.players = make(map[uint64]*Player)
	m.teams = make(map[uint64]*Team)
	m.playerOrder = nil
	m.teamOrder = nil
	m.nextPlayerID = 0
	m.ids.Reset()
	m.Init(rng, teamNum, playerNumPerTeam)
}

// PlayerIDs returns every player id in creation order.
func (m *Manager) PlayerIDs() []uint64 {
	out := make([]uint64, len(m.playerOrder))
	copy(out, m.playerOrder)
	return out
}

// TeamIDs returns every team id in creation order.
func (m *Manager) TeamIDs() []uint64 {
	out := make([]uint64, len(m.teamOrder))
	copy(out, m.teamOrder)
	return out
}

// HasPlayer reports whether playerID is a known player.
func (m *Manager) HasPlayer(playerID uint64) bool {
	_, ok := m.players[playerID]
	return ok
}

// CellCount returns how many cells playerID currently owns.
func (m *Manager) CellCount(playerID uint64) int {
	p, ok := m.players[playerID]
	if !ok {
		return 0
	}
	return p.CellCount()
}

// Clones returns every live clone across all players, sorted by id
// ascending so callers get a deterministic order regardless of Go's
// randomized map iteration.
func (m *Manager) Clones() []*ball.Clone {
	out := make([]*ball.Clone, 0, len(m.clones))
	for _, c := range m.clones {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ClonesOf returns playerID's clones in stable cell order.
func (m *Manager) ClonesOf(playerID uint64) []*ball.Clone {
	p, ok := m.players[playerID]
	if !ok {
		return nil
	}
	out := make([]*ball.Clone, 0, len(p.CellIDs))
	for _, id := range p.CellIDs {
		if c, ok := m.clones[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Players returns every player, ordered by creation.
func (m *Manager) Players() []*Player {
	out := make([]*Player, 0, len(m.playerOrder))
	for _, id := range m.playerOrder {
		out = append(out, m.players[id])
	}
	return out
}

// Teams returns every team, ordered by creation.
func (m *Manager) Teams() []*Team {
	out := make([]*Team, 0, len(m.teamOrder))
	for _, id := range m.teamOrder {
		out = append(out, m.teams[id])
	}
	return out
}

// TeamSizes returns each team's score: the sum of every member
// player's cell sizes.
func (m *Manager) TeamSizes() map[uint64]float64 {
	sizes := make(map[uint64]float64, len(m.teamOrder))
	for _, teamID := range m.teamOrder {
		sizes[teamID] = 0
	}
	for _, c := range m.clones {
		sizes[c.Team] += c.Size
	}
	return sizes
}

// Remove deletes a clone by id, per the uniform manager Remove
// capability the rules engine calls through. If the owner is left
// with zero cells it is immediately respawned with one new cell at
// radius_init, per the lifecycle rule that a player is never
// destroyed.
func (m *Manager) Remove(id uint64, rng *rand.Rand) {
	c, ok := m.clones[id]
	if !ok {
		return
	}
	c.Removed = true
	delete(m.clones, id)

	p := m.players[c.Owner]
	if p == nil {
		return
	}
	p.CellIDs = removeID(p.CellIDs, id)
	if len(p.CellIDs) == 0 {
		m.respawn(rng, p)
	}
}

func (m *Manager) respawn(rng *rand.Rand, p *Player) {
	pos := m.border.SampleInset(rng, m.cfg.RadiusInit)
	clone := ball.NewClone(m.ids.Next(), p.ID, p.Team, pos, m.cfg.RadiusInit)
	m.clones[clone.ID] = clone
	p.CellIDs = append(p.CellIDs, clone.ID)
}

func removeID(ids []uint64, target uint64) []uint64 {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// StepKinematics advances every clone's motion by dt.
func (m *Manager) StepKinematics(dt float64) {
	for _, c := range m.clones {
		c.Step(dt, m.cfg.AccMax, m.cfg.VelMax, m.cfg.GivenAccWeight, m.cfg.SizeDecayRate, m.cfg.RadiusMin, m.border)
	}
}

// ApplyAction applies one player's action for this action-tick,
// returning any spores the action ejects for the caller to insert into
// arena.SporeManager. Eject wins over split; stop wins over a
// direction, both enforced by checking Eject/Stop before the other
// flags.
func (m *Manager) ApplyAction(playerID uint64, action Action) ([]EjectSpec, error) {
	p, ok := m.players[playerID]
	if !ok {
		return nil, &simerr.UnknownPlayer{PlayerID: playerID}
	}

	var ejects []EjectSpec
	var badAction error

	dir, dirErr := resolveDirection(action.Dir, action.Eject || action.Split)
	if dirErr != nil {
		badAction = &simerr.BadAction{PlayerID: playerID, Reason: dirErr.Error()}
		action = Action{Stop: true}
	}

	switch {
	case action.Eject:
		ejects = m.doEject(p, dir)
	case action.Split:
		m.doSplit(p, dir)
	}

	switch {
	case action.Stop:
		m.doStop(p)
	case action.Dir != nil:
		m.doMove(p, dir)
	}

	return ejects, badAction
}

// resolveDirection normalizes action.Dir. When requireUnit is true
// (eject/split) a nil or zero direction is a BadAction; for a plain
// move a nil direction means "continue previous" (returns the zero
// vector, ignored by the caller) and a zero direction is valid
// (clears input). The returned error is never surfaced on its own —
// the caller only reads its Error() string to build a BadAction — so
// it is a plain error, not one of simerr's typed kinds.
func resolveDirection(dir *geom.Vector2, requireUnit bool) (geom.Vector2, error) {
	if dir == nil {
		if requireUnit {
			return geom.Zero(), fmt.Errorf("direction required but none given")
		}
		return geom.Zero(), nil
	}
	if !dir.IsValid() {
		return geom.Zero(), fmt.Errorf("direction is not finite")
	}
	if requireUnit {
		if dir.IsZero() {
			return geom.Zero(), fmt.Errorf("direction must be non-zero")
		}
		return dir.Normalized(), nil
	}
	if dir.IsZero() {
		return geom.Zero(), nil
	}
	return dir.Normalized(), nil
}

func (m *Manager) doMove(p *Player, dir geom.Vector2) {
	for _, id := range p.CellIDs {
		if c, ok := m.clones[id]; ok {
			c.SetInput(dir)
		}
	}
}

func (m *Manager) doStop(p *Player) {
	for _, id := range p.CellIDs {
		if c, ok := m.clones[id]; ok {
			c.Stop(m.cfg.StopZeroTime)
		}
	}
}

func (m *Manager) doSplit(p *Player, dir geom.Vector2) {
	if dir.IsZero() {
		return
	}
	eligible := make([]*ball.Clone, 0, len(p.CellIDs))
	for _, id := range p.CellIDs {
		if c, ok := m.clones[id]; ok && c.Radius >= m.cfg.SplitRadiusMin {
			eligible = append(eligible, c)
		}
	}
	for _, c := range eligible {
		if len(p.CellIDs) >= m.cfg.PartNumMax {
			break
		}
		halfSize := c.Size / 2
		c.SetSize(halfSize)
		c.Age = 0

		childPos := m.border.Clamp(c.Pos.Add(dir.Mul(c.Radius)), 0)
		child := ball.NewClone(m.ids.Next(), p.ID, p.Team, childPos, 0)
		child.SetSize(halfSize)
		child.Age = 0
		child.AddSplitBoost(dir, m.cfg.SplitVelInit, m.cfg.SplitVelZeroTime)

		m.clones[child.ID] = child
		p.CellIDs = append(p.CellIDs, child.ID)
	}
}

func (m *Manager) doEject(p *Player, dir geom.Vector2) []EjectSpec {
	if dir.IsZero() {
		return nil
	}
	var ejects []EjectSpec
	minSize := m.cfg.RadiusMin * m.cfg.RadiusMin
	for _, id := range p.CellIDs {
		c, ok := m.clones[id]
		if !ok || c.Radius < m.cfg.EjectRadiusMin {
			continue
		}
		rim := c.Pos.Add(dir.Mul(c.Radius))
		ejects = append(ejects, EjectSpec{Pos: rim, Dir: dir})
		newSize := c.Size - m.sporeRadiusInitSquared
		if newSize < minSize {
			newSize = minSize
		}
		c.SetSize(newSize)
	}
	return ejects
}

// SetSporeRadiusInit records spore_radius_init^2, the size an ejecting
// clone loses per spore.
func (m *Manager) SetSporeRadiusInit(radius float64) {
	m.sporeRadiusInitSquared = radius * radius
}

// Adjust runs each tick after kinematics and before collisions: for
// every pair of a single player's cells, enforce rigid separation when
// younger than recombine_age, or fuse when both cells are at or past
// recombine_age and overlap.
func (m *Manager) Adjust() {
	for _, p := range m.players {
		m.adjustPlayer(p)
	}
}

func (m *Manager) adjustPlayer(p *Player) {
	cells := p.CellIDs
	removed := make(map[uint64]bool)

	for i := 0; i < len(cells); i++ {
		a, ok := m.clones[cells[i]]
		if !ok || removed[cells[i]] {
			continue
		}
		for j := i + 1; j < len(cells); j++ {
			b, ok := m.clones[cells[j]]
			if !ok || removed[cells[j]] {
				continue
			}
			if a.Removed || b.Removed {
				continue
			}
			bothOld := a.Age >= m.cfg.RecombineAge && b.Age >= m.cfg.RecombineAge
			if bothOld && ball.Overlaps(&a.Base, &b.Base) {
				winner, loser := a, b
				if loser.Size > winner.Size {
					winner, loser = b, a
				}
				winner.SetSize(winner.Size + loser.Size)
				loser.Removed = true
				removed[loser.ID] = true
				delete(m.clones, loser.ID)
				if loser.ID == a.ID {
					break
				}
			} else {
				separate(a, b, m.border)
			}
		}
	}

	if len(removed) == 0 {
		return
	}
	filtered := p.CellIDs[:0]
	for _, id := range p.CellIDs {
		if !removed[id] {
			filtered = append(filtered, id)
		}
	}
	p.CellIDs = filtered
}

func separate(a, b *ball.Clone, border geom.Border) {
	if !ball.Overlaps(&a.Base, &b.Base) {
		return
	}
	diff := a.Pos.Sub(b.Pos)
	dist := diff.Magnitude()
	if dist < 1e-9 {
		diff = geom.New(1, 0)
		dist = 0
	}
	overlap := a.Radius + b.Radius - dist
	if overlap <= 0 {
		return
	}
	push := diff.Normalized().Mul(overlap / 2)
	a.Pos = border.Clamp(a.Pos.Add(push), a.Radius)
	b.Pos = border.Clamp(b.Pos.Sub(push), b.Radius)
}

// Explode shatters cloneID into up to on_thorns_part_num children after
// it has eaten a thorn, preserving total size and staying within
// part_num_max. The clone remains as the (largest) surviving cell.
func (m *Manager) Explode(cloneID uint64, rng *rand.Rand) {
	c, ok := m.clones[cloneID]
	if !ok {
		return
	}
	p := m.players[c.Owner]
	if p == nil {
		return
	}

	room := m.cfg.PartNumMax - len(p.CellIDs) + 1
	n := m.cfg.OnThornsPartNum
	if n > room {
		n = room
	}
	if n < 1 {
		n = 1
	}

	totalSize := c.Size
	maxChildSize := m.cfg.OnThornsPartRadiusMax * m.cfg.OnThornsPartRadiusMax
	childSize := totalSize / float64(n)
	if childSize > maxChildSize {
		childSize = maxChildSize
	}
	// eaterSize is always >= childSize: childSize is at most
	// totalSize/n, so totalSize-childSize*(n-1) is at least totalSize/n.
	eaterSize := totalSize - childSize*float64(n-1)

	c.SetSize(eaterSize)
	c.Age = 0

	angleOffset := rng.Float64() * 2 * math.Pi
	for i := 1; i < n; i++ {
		angle := angleOffset + 2*math.Pi*float64(i)/float64(n)
		dir := geom.FromAngle(angle)
		childPos := m.border.Clamp(c.Pos.Add(dir.Mul(c.Radius)), 0)
		child := ball.NewClone(m.ids.Next(), c.Owner, c.Team, childPos, 0)
		child.SetSize(childSize)
		child.AddSplitBoost(dir, m.cfg.SplitVelInit, m.cfg.SplitVelZeroTime)
		m.clones[child.ID] = child
		p.CellIDs = append(p.CellIDs, child.ID)
	}
}
