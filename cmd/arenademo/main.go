// Command arenademo drives a short headless match against sim.Server
// and prints a few views of the resulting state, exercising every
// package the way main.go exercised the teacher's demo subsystems.
package main

import (
	"fmt"
	"time"

	"github.com/arenasim/core/ball"
	"github.com/arenasim/core/config"
	"github.com/arenasim/core/geom"
	"github.com/arenasim/core/player"
	"github.com/arenasim/core/sim"
)

func main() {
	fmt.Println("=== arenasim/core demo ===")

	demoConfig()
	demoGeometry()
	s := demoServerLifecycle()
	demoActionsAndTicks(s)
	demoSnapshot(s)

	fmt.Println("\n=== demo completed ===")
}

func demoConfig() {
	fmt.Println("\nPART 1: default configuration")
	cfg := config.Default()
	fmt.Printf("teams=%d players_per_team=%d map=%gx%g match_time=%gs\n",
		cfg.TeamNum, cfg.PlayerNumPerTeam, cfg.MapWidth, cfg.MapHeight, cfg.MatchTime)
	fmt.Printf("state_dt=%.4fs ticks_per_action=%d\n", cfg.StateDT(), cfg.TicksPerAction())
	if err := cfg.Validate(); err != nil {
		fmt.Printf("unexpected invalid default config: %v\n", err)
	}
}

func demoGeometry() {
	fmt.Println("\nPART 2: geometry primitives")
	border := geom.NewBorder(1000, 1000)
	a := geom.New(10, 10)
	b := geom.New(13, 14)
	fmt.Printf("distance(%s, %s) = %.2f\n", a, b, a.Distance(b))
	fmt.Printf("clamp((1200,500), r=20) = %s\n", border.Clamp(geom.New(1200, 500), 20))
}

func demoServerLifecycle() *sim.Server {
	fmt.Println("\nPART 3: server lifecycle")
	cfg := config.Default()
	cfg.TeamNum = 2
	cfg.PlayerNumPerTeam = 2
	cfg.MatchTime = 5
	cfg.Food.NumInit, cfg.Food.NumMin, cfg.Food.NumMax = 200, 200, 250

	s, err := sim.New(cfg)
	if err != nil {
		panic(err)
	}
	s.Seed(time.Now().UnixNano())
	s.Reset()

	fmt.Printf("players=%v teams=%v\n", s.PlayerIDs(), s.TeamIDs())
	return s
}

func demoActionsAndTicks(s *sim.Server) {
	fmt.Println("\nPART 4: staged actions and ticks")
	ids := s.PlayerIDs()
	if len(ids) == 0 {
		return
	}

	if err := s.ApplyActions(map[uint64]player.Action{
		ids[0]: player.NewMoveAction(1, 0),
	}); err != nil {
		fmt.Printf("ApplyActions error: %v\n", err)
	}

	for tick := 0; tick < 10; tick++ {
		done, err := s.Step(nil)
		if err != nil {
			fmt.Printf("tick %d: step error: %v\n", tick, err)
		}
		if done {
			fmt.Printf("match finished after %d action-ticks\n", tick+1)
			break
		}
	}
}

func demoSnapshot(s *sim.Server) {
	fmt.Println("\nPART 5: snapshot")
	snap := s.Snapshot()
	fmt.Printf("last_time=%.2f/%.2f\n", snap.Global.LastTime, snap.Global.MatchTime)
	for teamID, size := range snap.Global.Leaderboard {
		fmt.Printf("team %d total size = %.1f\n", teamID, size)
	}
	for _, id := range s.PlayerIDs() {
		view := snap.PerPlayer[id]
		counts := map[ball.Kind]int{}
		for _, b := range view.Bodies {
			counts[b.Kind]++
		}
		fmt.Printf("player %d rect=%v visible: food=%d spore=%d thorn=%d clone=%d\n",
			id, view.Rect, counts[ball.KindFood], counts[ball.KindSpore], counts[ball.KindThorn], counts[ball.KindClone])
	}
}
