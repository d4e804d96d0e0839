package behavior

import (
	"math"
	"slices"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
)

// minCellSize avoids tiny grids when radii are very small.
const minCellSize = 10.0

type gridKey struct {
	x, y int
}

// spatialGrid buckets body indices by cell so the influence scan only visits
// the 3x3 block of cells around a body. With a cell at least as large as the
// attraction radius, every body that can influence another is in that block.
type spatialGrid struct {
	cellSize float64
	cells    map[gridKey][]int
	scratch  []int
}

func newSpatialGrid(attractionRadius float64) *spatialGrid {
	return &spatialGrid{
		cellSize: math.Max(attractionRadius, minCellSize),
		cells:    make(map[gridKey][]int),
	}
}

func (g *spatialGrid) cellOf(p geometry.Vector2D) gridKey {
	return gridKey{
		x: int(math.Floor(p.X / g.cellSize)),
		y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// rebuild indexes bodies. Slices are truncated, not dropped, so their
// backing arrays are reused from one step to the next.
func (g *spatialGrid) rebuild(bodies []Body) {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	for i := range bodies {
		key := g.cellOf(bodies[i].Pos)
		g.cells[key] = append(g.cells[key], i)
	}
}

// nearby returns, in ascending order, the indices stored in and around the
// cell containing p. Ascending order keeps the summation order of the
// brute-force scan. The returned slice is reused by the next call.
func (g *spatialGrid) nearby(p geometry.Vector2D) []int {
	c := g.cellOf(p)
	g.scratch = g.scratch[:0]
	for i := c.x - 1; i <= c.x+1; i++ {
		for j := c.y - 1; j <= c.y+1; j++ {
			g.scratch = append(g.scratch, g.cells[gridKey{x: i, y: j}]...)
		}
	}
	slices.Sort(g.scratch)
	return g.scratch
}
