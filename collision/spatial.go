package collision

import "github.com/arenasim/core/ball"

// Spatial buckets the live-body set into a uniform grid sized so that
// any two overlapping discs always share or neighbor a cell, then
// queries only the 3x3 neighborhood around each moving body instead of
// scanning the whole set. Grounded on an AABB bucket-and-query shape
// (see DESIGN.md); must return the same pairs as Precision modulo
// order.
type Spatial struct {
	// CellSize overrides the automatically derived cell size (2x the
	// largest live radius). Zero means auto-derive. An override smaller
	// than twice the largest live radius can miss overlaps, since only
	// the 3x3 neighborhood is queried.
	CellSize float64
}

type cellKey struct{ x, y int }

// Solve implements Backend.
func (s Spatial) Solve(moving, total []ball.Body) map[int][]ball.Body {
	total = Dedup(total)

	cellSize := s.CellSize
	if cellSize <= 0 {
		maxRadius := 1.0
		for _, t := range total {
			if r := t.Ball().Radius; r > maxRadius {
				maxRadius = r
			}
		}
		cellSize = maxRadius * 2
	}

	grid := make(map[cellKey][]ball.Body)
	for _, t := range total {
		for _, k := range cellsFor(t.Ball(), cellSize) {
			grid[k] = append(grid[k], t)
		}
	}

	result := make(map[int][]ball.Body)
	for i, m := range moving {
		mb := m.Ball()
		if mb.Removed {
			continue
		}
		seen := make(map[identity]bool)
		var hits []ball.Body
		cx, cy := cellOf(mb.Pos.X, cellSize), cellOf(mb.Pos.Y, cellSize)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, t := range grid[cellKey{cx + dx, cy + dy}] {
					tb := t.Ball()
					if tb == mb || tb.Removed {
						continue
					}
					id := idOf(tb)
					if seen[id] {
						continue
					}
					if ball.Overlaps(mb, tb) {
						seen[id] = true
						hits = append(hits, t)
					}
				}
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

func cellOf(coord, cellSize float64) int {
	c := int(coord / cellSize)
	if coord < 0 {
		c--
	}
	return c
}

// cellsFor returns every cell a body's bounding box touches; a body's
// radius never exceeds half of cellSize (cellSize is derived from the
// largest live radius), so this spans at most a 2x2 block.
func cellsFor(b *ball.Base, cellSize float64) []cellKey {
	minX, maxX := cellOf(b.Pos.X-b.Radius, cellSize), cellOf(b.Pos.X+b.Radius, cellSize)
	minY, maxY := cellOf(b.Pos.Y-b.Radius, cellSize), cellOf(b.Pos.Y+b.Radius, cellSize)
	var keys []cellKey
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			keys = append(keys, cellKey{x, y})
		}
	}
	return keys
}
