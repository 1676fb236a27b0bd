package collision

import "github.com/arenasim/core/ball"

// Precision is the direct O(n*m) reference backend: every moving body
// is checked against every live body in total. Used for small worlds
// and as the correctness reference for Spatial.
type Precision struct{}

// Solve implements Backend.
func (Precision) Solve(moving, total []ball.Body) map[int][]ball.Body {
	total = Dedup(total)
	result := make(map[int][]ball.Body)
	for i, m := range moving {
		mb := m.Ball()
		if mb.Removed {
			continue
		}
		var hits []ball.Body
		for _, t := range total {
			tb := t.Ball()
			if tb == mb || tb.Removed {
				continue
			}
			if ball.Overlaps(mb, tb) {
				hits = append(hits, t)
			}
		}
		if len(hits) == 0 {
			continue
		}
		sortHits(hits)
		result[i] = hits
	}
	return result
}
