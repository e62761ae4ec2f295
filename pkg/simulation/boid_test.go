package simulation

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/geometry"
)

// farObstacle is well outside any test world so obstacle repulsion never fires.
var farObstacle = geometry.Vector2D{X: -1e6, Y: -1e6}

func TestFlock_SeparationPushesApart(t *testing.T) {
	cfg := DefaultConfig()

	// Two boids 8px apart, closer than MinDistance=16, both at rest.
	snapshot := []Boid{
		{Pos: geometry.Vector2D{X: 100, Y: 100}},
		{Pos: geometry.Vector2D{X: 108, Y: 100}},
	}
	candidates := []int{0, 1}

	left := snapshot[0]
	left.Flock(0, candidates, snapshot, cfg)
	right := snapshot[1]
	right.Flock(1, candidates, snapshot, cfg)

	// Separation impulses along x with opposite signs.
	if left.Vel.X >= 0 {
		t.Errorf("left boid should be pushed in -x, got vx=%f", left.Vel.X)
	}
	if right.Vel.X <= 0 {
		t.Errorf("right boid should be pushed in +x, got vx=%f", right.Vel.X)
	}

	// One tick at dt=0.1: the positions diverge rather than converge.
	left.Advance(0.1)
	right.Advance(0.1)
	gap := right.Pos.X - left.Pos.X
	if gap <= 8 {
		t.Errorf("expected the pair to diverge past 8px, gap is %f", gap)
	}
}

func TestFlock_CoincidentBoidsStillInteract(t *testing.T) {
	cfg := DefaultConfig()

	// Two distinct boids at identical coordinates. Exclusion is by index,
	// so boid 0 must still perceive boid 1 (and align with its velocity).
	snapshot := []Boid{
		{Pos: geometry.Vector2D{X: 200, Y: 200}},
		{Pos: geometry.Vector2D{X: 200, Y: 200}, Vel: geometry.Vector2D{X: 10, Y: 0}},
	}

	b := snapshot[0]
	b.Flock(0, []int{0, 1}, snapshot, cfg)

	want := 10 * cfg.MatchingFactor
	if math.Abs(b.Vel.X-want) > 1e-12 {
		t.Errorf("expected alignment toward coincident neighbor (vx=%f), got vx=%f", want, b.Vel.X)
	}
}

func TestFlock_ExcludesOwnIndex(t *testing.T) {
	cfg := DefaultConfig()

	// A lone boid whose candidate list contains itself (the grid always
	// returns the queried boid's own cell) must end up unchanged.
	snapshot := []Boid{
		{Pos: geometry.Vector2D{X: 300, Y: 300}, Vel: geometry.Vector2D{X: 5, Y: -5}},
	}

	b := snapshot[0]
	b.Flock(0, []int{0}, snapshot, cfg)

	if !b.Vel.Eq(geometry.Vector2D{X: 5, Y: -5}) {
		t.Errorf("a boid must not influence itself, velocity changed to %s", b.Vel)
	}
}

func TestFlock_AlignmentReadsUpdatedVelocity(t *testing.T) {
	// The alignment step reads the velocity that already includes the
	// separation and cohesion updates of this same pass.
	cfg := DefaultConfig()
	cfg.AvoidFactor = 1.0
	cfg.CenteringFactor = 0.0
	cfg.MatchingFactor = 0.5

	snapshot := []Boid{
		{Pos: geometry.Vector2D{X: 0, Y: 0}},
		{Pos: geometry.Vector2D{X: 10, Y: 0}}, // within MinDistance=16 and visual range
	}

	b := snapshot[0]
	b.Flock(0, []int{0, 1}, snapshot, cfg)

	// Separation first: vx = -10. Alignment then blends toward the
	// neighbor average (0) from that updated value: vx = -10 + (0-(-10))*0.5 = -5.
	if math.Abs(b.Vel.X-(-5)) > 1e-12 {
		t.Errorf("expected vx=-5 from sequential composition, got %f", b.Vel.X)
	}
}

func TestLimitSpeed(t *testing.T) {
	b := Boid{Vel: geometry.Vector2D{X: 300, Y: 400}} // speed 500

	b.LimitSpeed(400)

	speed := b.Vel.Len()
	if math.Abs(speed-400) > 1e-9 {
		t.Errorf("expected speed clamped to 400, got %f", speed)
	}
	// Heading preserved: 3-4-5 ratio intact.
	if math.Abs(b.Vel.X/b.Vel.Y-0.75) > 1e-12 {
		t.Errorf("clamping changed the heading: %s", b.Vel)
	}

	// Under the limit nothing moves.
	c := Boid{Vel: geometry.Vector2D{X: 10, Y: 0}}
	c.LimitSpeed(400)
	if !c.Vel.Eq(geometry.Vector2D{X: 10, Y: 0}) {
		t.Errorf("expected velocity untouched under the limit, got %s", c.Vel)
	}
}

func TestSteer_EdgeTurnAndDamping(t *testing.T) {
	cfg := DefaultConfig()

	// Resting boid inside the left edge buffer: the turn adds TurnFactor to
	// vx and the axis is then damped by 0.8.
	b := Boid{Pos: geometry.Vector2D{X: cfg.EdgeBuffer / 2, Y: cfg.WorldHeight / 2}}
	b.Steer(farObstacle, cfg)

	want := cfg.TurnFactor * edgeDamping
	if math.Abs(b.Vel.X-want) > 1e-12 {
		t.Errorf("expected vx=%f after left-edge turn, got %f", want, b.Vel.X)
	}
	if b.Vel.Y != 0 {
		t.Errorf("y axis is bounded, expected vy=0, got %f", b.Vel.Y)
	}

	// High edge turns the other way.
	c := Boid{Pos: geometry.Vector2D{X: cfg.WorldWidth - cfg.EdgeBuffer/2, Y: cfg.WorldHeight / 2}}
	c.Steer(farObstacle, cfg)
	if math.Abs(c.Vel.X-(-want)) > 1e-12 {
		t.Errorf("expected vx=%f after right-edge turn, got %f", -want, c.Vel.X)
	}

	// A boid clear of every buffer is untouched.
	d := Boid{
		Pos: geometry.Vector2D{X: cfg.WorldWidth / 2, Y: cfg.WorldHeight / 2},
		Vel: geometry.Vector2D{X: 7, Y: -3},
	}
	d.Steer(farObstacle, cfg)
	if !d.Vel.Eq(geometry.Vector2D{X: 7, Y: -3}) {
		t.Errorf("expected velocity untouched mid-world, got %s", d.Vel)
	}
}

func TestSteer_ObstacleImpulse(t *testing.T) {
	cfg := DefaultConfig()

	b := Boid{Pos: geometry.Vector2D{X: cfg.WorldWidth / 2, Y: cfg.WorldHeight / 2}}
	obstacle := geometry.Vector2D{X: b.Pos.X - 10, Y: b.Pos.Y} // 10px away, inside radius 20

	b.Steer(obstacle, cfg)

	// Impulse equals the raw displacement from obstacle to boid.
	if !b.Vel.Eq(geometry.Vector2D{X: 10, Y: 0}) {
		t.Errorf("expected impulse (10,0), got %s", b.Vel)
	}

	// Outside the radius there is no push.
	c := Boid{Pos: geometry.Vector2D{X: cfg.WorldWidth / 2, Y: cfg.WorldHeight / 2}}
	far := geometry.Vector2D{X: c.Pos.X - cfg.ObstacleRadius - 1, Y: c.Pos.Y}
	c.Steer(far, cfg)
	if !c.Vel.Eq(geometry.Vector2D{}) {
		t.Errorf("expected no impulse outside the radius, got %s", c.Vel)
	}
}

func TestSteer_ObstacleImpulseMayExceedSpeedLimit(t *testing.T) {
	cfg := DefaultConfig()

	// A boid already at the limit gets the full push anyway; re-clamping is
	// the next tick's job.
	b := Boid{
		Pos: geometry.Vector2D{X: cfg.WorldWidth / 2, Y: cfg.WorldHeight / 2},
		Vel: geometry.Vector2D{X: cfg.SpeedLimit, Y: 0},
	}
	obstacle := geometry.Vector2D{X: b.Pos.X - 15, Y: b.Pos.Y}

	b.Steer(obstacle, cfg)

	if b.Vel.Len() <= cfg.SpeedLimit {
		t.Errorf("expected transient speed above the limit, got %f", b.Vel.Len())
	}

	b.LimitSpeed(cfg.SpeedLimit)
	if b.Vel.Len() > cfg.SpeedLimit+1e-9 {
		t.Errorf("expected speed back under the limit after clamp, got %f", b.Vel.Len())
	}
}

func TestAdvance(t *testing.T) {
	b := Boid{
		Pos: geometry.Vector2D{X: 100, Y: 100},
		Vel: geometry.Vector2D{X: 40, Y: -20},
	}

	b.Advance(0.5)

	if !b.Pos.Eq(geometry.Vector2D{X: 120, Y: 90}) {
		t.Errorf("expected position (120,90), got %s", b.Pos)
	}
}
