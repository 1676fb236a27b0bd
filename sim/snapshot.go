package sim

import (
	"math"
	"sort"

	"github.com/arenasim/core/ball"
	"github.com/arenasim/core/geom"
)

// Visible-rectangle sizing is grounded on the source's
// RealtimePartialRender viewport (see DESIGN.md): a per-player
// rectangle centered on that player's cells' bounding box, scaled up
// by visionScaleUpRatio and never smaller than visionMinWidth x
// visionMinHeight. Spec.md §6 requires a per-player view; it does not
// fix the exact formula, so this is a documented design choice rather
// than a textual spec requirement.
const (
	visionScaleUpRatio = 1.5
	visionMinWidth     = 100
	visionMinHeight    = 100
)

// GlobalState is the match-wide portion of a Snapshot.
type GlobalState struct {
	BorderWidth  float64
	BorderHeight float64
	MatchTime    float64
	LastTime     float64
	Leaderboard  map[uint64]float64 // team id -> total size
}

// BodyView is a read-only projection of one live body.
type BodyView struct {
	ID      uint64
	Kind    ball.Kind
	Pos     geom.Vector2
	Radius  float64
	OwnerID uint64 // clone only
	TeamID  uint64 // clone only
}

// PlayerView is what one player can currently see: the bodies that
// intersect its visible rectangle.
type PlayerView struct {
	PlayerID uint64
	TeamID   uint64
	Rect     [4]float64 // minX, minY, maxX, maxY
	Bodies   []BodyView
}

// Snapshot is the complete, read-only state exposed to callers each
// tick (spec §6).
type Snapshot struct {
	Global    GlobalState
	PerPlayer map[uint64]PlayerView
}

// Snapshot renders the current state. It never mutates the server.
func (s *Server) Snapshot() Snapshot {
	all := s.allBodyViews()

	snap := Snapshot{
		Global: GlobalState{
			BorderWidth:  s.cfg.MapWidth,
			BorderHeight: s.cfg.MapHeight,
			MatchTime:    s.cfg.MatchTime,
			LastTime:     s.lastTime,
			Leaderboard:  s.players.TeamSizes(),
		},
		PerPlayer: make(map[uint64]PlayerView, len(s.players.PlayerIDs())),
	}

	for _, p := range s.players.Players() {
		rect := s.visibleRect(p.ID)
		snap.PerPlayer[p.ID] = PlayerView{
			PlayerID: p.ID,
			TeamID:   p.Team,
			Rect:     rect,
			Bodies:   visibleBodies(all, rect),
		}
	}
	return snap
}

func (s *Server) allBodyViews() []BodyView {
	var out []BodyView
	for _, f := range s.food.All() {
		out = append(out, BodyView{ID: f.ID, Kind: f.Kind, Pos: f.Pos, Radius: f.Radius})
	}
	for _, sp := range s.spore.All() {
		out = append(out, BodyView{ID: sp.ID, Kind: sp.Kind, Pos: sp.Pos, Radius: sp.Radius})
	}
	for _, th := range s.thorn.All() {
		out = append(out, BodyView{ID: th.ID, Kind: th.Kind, Pos: th.Pos, Radius: th.Radius})
	}
	for _, c := range s.players.Clones() {
		out = append(out, BodyView{ID: c.ID, Kind: c.Kind, Pos: c.Pos, Radius: c.Radius, OwnerID: c.Owner, TeamID: c.Team})
	}
	return out
}

// visibleRect computes playerID's viewport. A player with no clones
// (mid-respawn, which PlayerManager never actually leaves open, but
// kept defensive) sees the whole map.
func (s *Server) visibleRect(playerID uint64) [4]float64 {
	clones := s.players.ClonesOf(playerID)
	if len(clones) == 0 {
		return [4]float64{0, 0, s.cfg.MapWidth, s.cfg.MapHeight}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range clones {
		minX = math.Min(minX, c.Pos.X-c.Radius)
		minY = math.Min(minY, c.Pos.Y-c.Radius)
		maxX = math.Max(maxX, c.Pos.X+c.Radius)
		maxY = math.Max(maxY, c.Pos.Y+c.Radius)
	}

	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	halfW := math.Max((maxX-minX)*visionScaleUpRatio/2, visionMinWidth/2)
	halfH := math.Max((maxY-minY)*visionScaleUpRatio/2, visionMinHeight/2)
	return [4]float64{cx - halfW, cy - halfH, cx + halfW, cy + halfH}
}

func visibleBodies(all []BodyView, rect [4]float64) []BodyView {
	var out []BodyView
	for _, b := range all {
		if circleIntersectsRect(b.Pos, b.Radius, rect) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func circleIntersectsRect(pos geom.Vector2, radius float64, rect [4]float64) bool {
	closestX := math.Max(rect[0], math.Min(pos.X, rect[2]))
	closestY := math.Max(rect[1], math.Min(pos.Y, rect[3]))
	dx, dy := pos.X-closestX, pos.Y-closestY
	return dx*dx+dy*dy <= radius*radius
}
