// Package collision implements the collision index (spec §4.3): given
// the moving set and the full live-body set, return for each moving
// index the other bodies it overlaps. Two backends share identical
// semantics — Precision is a direct O(n*m) scan used as the reference
// and for small worlds, Spatial buckets bodies into a uniform grid for
// scale — and must return equal pair sets modulo iteration order.
package collision

import (
	"sort"

	"github.com/arenasim/core/ball"
	"github.com/arenasim/core/config"
)

// identity is a dedup/sort key: ids are only unique within a kind (see
// ball.IDGen), so identity requires both Kind and ID.
type identity struct {
	Kind ball.Kind
	ID   uint64
}

func idOf(b *ball.Base) identity {
	return identity{Kind: b.Kind, ID: b.ID}
}

// Dedup removes duplicate bodies from total by identity, addressing
// the source's risk of double-accumulating a body into total_balls on
// the no-action path (spec §9, Open Question 2).
func Dedup(total []ball.Body) []ball.Body {
	seen := make(map[identity]bool, len(total))
	out := make([]ball.Body, 0, len(total))
	for _, b := range total {
		id := idOf(b.Ball())
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, b)
	}
	return out
}

// SortMoving orders the moving set by size descending, ties broken by
// (kind, id) ascending, per spec §4.3/§9 DESIGN NOTES "Ordering": the
// source's language-native comparison is replaced with this explicit
// total order.
func SortMoving(moving []ball.Body) {
	sort.SliceStable(moving, func(i, j int) bool {
		bi, bj := moving[i].Ball(), moving[j].Ball()
		if bi.Size != bj.Size {
			return bi.Size > bj.Size
		}
		if bi.Kind != bj.Kind {
			return bi.Kind < bj.Kind
		}
		return bi.ID < bj.ID
	})
}

func sortHits(hits []ball.Body) {
	sort.Slice(hits, func(i, j int) bool {
		bi, bj := hits[i].Ball(), hits[j].Ball()
		if bi.Kind != bj.Kind {
			return bi.Kind < bj.Kind
		}
		return bi.ID < bj.ID
	})
}

// Backend resolves overlaps between a (pre-sorted) moving set and the
// full live-body set. The returned map's keys are indices into moving;
// a moving body that overlaps nothing is absent from the map, not
// mapped to an empty slice.
type Backend interface {
	Solve(moving, total []ball.Body) map[int][]ball.Body
}

// New selects the backend named by cfg.
func New(cfg config.CollisionDetectionType) Backend {
	if cfg == config.Spatial {
		return Spatial{}
	}
	return Precision{}
}
