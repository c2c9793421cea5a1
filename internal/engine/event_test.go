package engine

import (
	"testing"

	"github.com/san-kum/gassim/internal/particle"
)

func newParticle(t *testing.T, x, y, vx, vy float64) *particle.Particle {
	t.Helper()
	p, err := particle.New(x, y, vx, vy, 0.05, 1.0, "black")
	if err != nil {
		t.Fatalf("particle.New failed: %v", err)
	}
	return p
}

func TestEventValidity(t *testing.T) {
	a := newParticle(t, 0.3, 0.5, 0.1, 0)
	b := newParticle(t, 0.7, 0.5, -0.1, 0)

	pair := newPairEvent(2.0, a, b)
	wall := newWallEvent(3.0, a, Vertical)
	tick := newTickEvent(4.0)

	if !pair.valid() || !wall.valid() || !tick.valid() {
		t.Fatal("fresh events must be valid")
	}

	// a collision on either referenced particle retires the prediction
	a.BounceOffVerticalWall()

	if pair.valid() {
		t.Error("pair event must go stale when a collides")
	}
	if wall.valid() {
		t.Error("wall event must go stale when its particle collides")
	}
	if !tick.valid() {
		t.Error("tick events reference no particle and never go stale")
	}

	fresh := newPairEvent(5.0, a, b)
	b.BounceOffHorizontalWall()
	if fresh.valid() {
		t.Error("pair event must go stale when b collides")
	}
}
