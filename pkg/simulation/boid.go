package simulation

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/geometry"
)

// edgeDamping bleeds excess speed from an axis that just turned away from a
// wall, so boids do not oscillate indefinitely at the boundary.
const edgeDamping = 0.8

// Boid is one simulated agent. Its identity is its index in the world's boid
// slice, not its value: two boids may coincide in position and velocity and
// still be distinct agents.
// The name "boid" is Craig Reynolds' shortened "bird-oid object"; see
// https://en.wikipedia.org/wiki/Boids
type Boid struct {
	Pos   geometry.Vector2D
	Vel   geometry.Vector2D
	Color [4]float32 // RGBA in [0,1], consumed directly by the renderer
}

// NewBoid seeds a boid in the middle half of the world with a random velocity
// of up to half the speed limit per axis and a pastel half-transparent color.
func NewBoid(rng *rand.Rand, worldWidth, worldHeight, speedLimit float64) Boid {
	pastel := func() float32 {
		return float32(rng.Float64()*128+128) / 255
	}
	return Boid{
		Pos: geometry.Vector2D{
			X: rng.Float64()*worldWidth/2 + worldWidth/4,
			Y: rng.Float64()*worldHeight/2 + worldHeight/4,
		},
		Vel: geometry.Vector2D{
			X: (rng.Float64() - 0.5) * speedLimit,
			Y: (rng.Float64() - 0.5) * speedLimit,
		},
		Color: [4]float32{pastel(), pastel(), pastel(), 0.5},
	}
}

// Flock applies the three local rules against a frozen snapshot of the whole
// population, in a single pass over the candidate indices produced by the
// spatial grid. Candidates are an over-approximation, so every one is
// re-checked by squared distance here.
//
// The rules compose sequentially: separation, then cohesion, then alignment,
// with alignment reading the velocity that already carries the first two
// corrections. The order is part of the emergent dynamics.
func (b *Boid) Flock(self int, candidates []int, snapshot []Boid, cfg *Config) {
	vx, vy := b.Vel.X, b.Vel.Y

	// Force accumulators
	closeDx, closeDy := 0.0, 0.0
	xPosAvg, yPosAvg := 0.0, 0.0
	xVelAvg, yVelAvg := 0.0, 0.0
	neighbors := 0.0
	numClose := 0

	minDistSq := cfg.MinDistance * cfg.MinDistance
	visualSq := cfg.VisualRange * cfg.VisualRange

	for _, idx := range candidates {
		// Skip self by index. Comparing positions instead would wrongly
		// exclude a distinct boid sitting at the same coordinates.
		if idx == self {
			continue
		}
		other := &snapshot[idx]

		dx := b.Pos.X - other.Pos.X
		dy := b.Pos.Y - other.Pos.Y
		distSq := dx*dx + dy*dy

		// 1. Separation (close range)
		if distSq < minDistSq {
			closeDx += dx
			closeDy += dy
			numClose++
		}

		// 2. Cohesion and alignment accumulators (visual range).
		// Independent of the separation test: a boid can be both.
		if distSq < visualSq {
			xPosAvg += other.Pos.X
			yPosAvg += other.Pos.Y
			xVelAvg += other.Vel.X
			yVelAvg += other.Vel.Y
			neighbors++
		}
	}

	if numClose > 0 {
		vx += closeDx * cfg.AvoidFactor
		vy += closeDy * cfg.AvoidFactor
	}

	if neighbors > 0 {
		xPosAvg /= neighbors
		yPosAvg /= neighbors
		vx += (xPosAvg - b.Pos.X) * cfg.CenteringFactor
		vy += (yPosAvg - b.Pos.Y) * cfg.CenteringFactor

		xVelAvg /= neighbors
		yVelAvg /= neighbors
		vx += (xVelAvg - vx) * cfg.MatchingFactor
		vy += (yVelAvg - vy) * cfg.MatchingFactor
	}

	b.Vel.X, b.Vel.Y = vx, vy
}

// LimitSpeed rescales the velocity onto the speed limit, preserving heading.
// The one square root only happens when the limit is actually exceeded.
func (b *Boid) LimitSpeed(limit float64) {
	speedSq := b.Vel.LenSqr()
	if speedSq > limit*limit {
		ratio := limit / math.Sqrt(speedSq)
		b.Vel.X *= ratio
		b.Vel.Y *= ratio
	}
}

// Advance integrates the position by one tick of dt seconds.
func (b *Boid) Advance(dt float64) {
	b.Pos.X += b.Vel.X * dt
	b.Pos.Y += b.Vel.Y * dt
}

// Steer turns the boid away from world edges and pushes it off the obstacle
// point. It reads the already-integrated position for this tick. The obstacle
// impulse is the raw displacement vector, deliberately strong; it may exceed
// the speed limit until the next tick's clamp.
func (b *Boid) Steer(obstacle geometry.Vector2D, cfg *Config) {
	xBounded := true
	yBounded := true

	if b.Pos.X < cfg.EdgeBuffer {
		b.Vel.X += cfg.TurnFactor
		xBounded = false
	} else if b.Pos.X > cfg.WorldWidth-cfg.EdgeBuffer {
		b.Vel.X -= cfg.TurnFactor
		xBounded = false
	}

	if b.Pos.Y < cfg.EdgeBuffer {
		b.Vel.Y += cfg.TurnFactor
		yBounded = false
	} else if b.Pos.Y > cfg.WorldHeight-cfg.EdgeBuffer {
		b.Vel.Y -= cfg.TurnFactor
		yBounded = false
	}

	if !xBounded {
		b.Vel.X *= edgeDamping
	}
	if !yBounded {
		b.Vel.Y *= edgeDamping
	}

	dx := b.Pos.X - obstacle.X
	dy := b.Pos.Y - obstacle.Y
	if dx*dx+dy*dy < cfg.ObstacleRadius*cfg.ObstacleRadius {
		b.Vel.X += dx
		b.Vel.Y += dy
	}
}
