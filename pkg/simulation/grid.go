package simulation

import (
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/geometry"
)

// SpatialGrid buckets boid indices by uniform world cell so neighbor lookups
// scan a handful of cells instead of the whole population. The grid holds
// indices into the world's boid slice, never the boids themselves.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]int
}

// NewSpatialGrid creates an empty grid covering a worldWidth x worldHeight
// area. Cell size should match the largest interaction radius used by callers
// so a query only needs a small neighborhood of cells.
func NewSpatialGrid(worldWidth, worldHeight, cellSize float64) (*SpatialGrid, error) {
	if worldWidth <= 0 || worldHeight <= 0 {
		return nil, fmt.Errorf("%w: world dimensions must be positive, got %gx%g",
			ErrInvalidConfig, worldWidth, worldHeight)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size must be positive, got %g",
			ErrInvalidConfig, cellSize)
	}

	cols := int(math.Ceil(worldWidth / cellSize))
	rows := int(math.Ceil(worldHeight / cellSize))

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]int, cols*rows),
	}, nil
}

// Cols returns the number of grid columns.
func (g *SpatialGrid) Cols() int { return g.cols }

// Rows returns the number of grid rows.
func (g *SpatialGrid) Rows() int { return g.rows }

// CellSize returns the side length of one cell in world units.
func (g *SpatialGrid) CellSize() float64 { return g.cellSize }

// Clear resets every bucket to length 0 while keeping its capacity, so the
// per-tick rebuild reuses the underlying arrays instead of reallocating.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert appends a boid index to the bucket covering pos. Each axis is
// clamped independently, so a boid that drifted outside the world is still
// indexed in the nearest border cell rather than dropped.
func (g *SpatialGrid) Insert(index int, pos geometry.Vector2D) {
	cx := int(math.Floor(pos.X / g.cellSize))
	cy := int(math.Floor(pos.Y / g.cellSize))

	if cx < 0 {
		cx = 0
	} else if cx >= g.cols {
		cx = g.cols - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= g.rows {
		cy = g.rows - 1
	}

	idx := cy*g.cols + cx
	g.cells[idx] = append(g.cells[idx], index)
}

// QueryCandidates appends to out every boid index bucketed in cells that could
// hold a boid within rangeDist of pos, and returns the extended slice. This is
// an over-approximation: anyone in a scanned cell is returned regardless of
// exact distance, so callers must re-filter by true squared distance. Passing
// the previous result re-sliced to [:0] avoids allocations across queries.
func (g *SpatialGrid) QueryCandidates(pos geometry.Vector2D, rangeDist float64, out []int) []int {
	cellRadius := int(math.Ceil(rangeDist/g.cellSize)) + 1
	cx := int(math.Floor(pos.X / g.cellSize))
	cy := int(math.Floor(pos.Y / g.cellSize))

	for y := cy - cellRadius; y <= cy+cellRadius; y++ {
		if y < 0 || y >= g.rows {
			continue
		}
		for x := cx - cellRadius; x <= cx+cellRadius; x++ {
			if x < 0 || x >= g.cols {
				continue
			}
			out = append(out, g.cells[y*g.cols+x]...)
		}
	}
	return out
}
