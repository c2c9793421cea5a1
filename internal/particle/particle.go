package particle

import (
	"fmt"
	"math"
)

// Constants for the temperature observable. Temperature is derived from
// kinetic energy via the equipartition theorem in two dimensions.
const (
	Boltzmann = 1.3806503e-23
	Dimension = 2
)

// The simulation box is the unit square.
const (
	boxMin = 0.0
	boxMax = 1.0
)

// Particle is a hard disc moving at constant velocity between collisions.
// Position and velocity mutate only through Move and the BounceOff methods;
// radius and mass are fixed at construction. The collision count advances on
// every collision the particle takes part in, which lets previously queued
// predictions about it be recognized as stale.
type Particle struct {
	x, y   float64
	vx, vy float64
	radius float64
	mass   float64
	color  string
	count  uint64
}

// New validates the physical parameters and returns a particle.
func New(x, y, vx, vy, radius, mass float64, color string) (*Particle, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("particle: radius must be positive, got %g", radius)
	}
	if mass <= 0 {
		return nil, fmt.Errorf("particle: mass must be positive, got %g", mass)
	}
	return &Particle{x: x, y: y, vx: vx, vy: vy, radius: radius, mass: mass, color: color}, nil
}

func (p *Particle) Radius() float64 { return p.radius }
func (p *Particle) Mass() float64   { return p.mass }
func (p *Particle) Color() string   { return p.color }

// Count reports how many collisions this particle has resolved so far.
func (p *Particle) Count() uint64 { return p.count }

// Move advances the position by dt at the current velocity. It performs no
// collision detection; the engine guarantees dt never crosses a collision.
func (p *Particle) Move(dt float64) {
	p.x += p.vx * dt
	p.y += p.vy * dt
}

// TimeToHit returns the time until p and q touch assuming both keep their
// current velocities, or +Inf if they never do. Separating or parallel
// trajectories (non-negative dr·dv) never collide.
func (p *Particle) TimeToHit(q *Particle) float64 {
	if p == q {
		return math.Inf(1)
	}
	dx, dy := q.x-p.x, q.y-p.y
	dvx, dvy := q.vx-p.vx, q.vy-p.vy
	drdv := dx*dvx + dy*dvy
	if drdv >= 0 {
		return math.Inf(1)
	}
	drdr := dx*dx + dy*dy
	dvdv := dvx*dvx + dvy*dvy
	sigma := p.radius + q.radius
	d := drdv*drdv - dvdv*(drdr-sigma*sigma)
	if d < 0 {
		return math.Inf(1)
	}
	return -(drdv + math.Sqrt(d)) / dvdv
}

// TimeToHitVerticalWall returns the time until the particle's edge reaches
// the left or right wall, or +Inf when vx is zero.
func (p *Particle) TimeToHitVerticalWall() float64 {
	switch {
	case p.vx > 0:
		return (boxMax - p.radius - p.x) / p.vx
	case p.vx < 0:
		return (boxMin + p.radius - p.x) / p.vx
	default:
		return math.Inf(1)
	}
}

// TimeToHitHorizontalWall returns the time until the particle's edge reaches
// the bottom or top wall, or +Inf when vy is zero.
func (p *Particle) TimeToHitHorizontalWall() float64 {
	switch {
	case p.vy > 0:
		return (boxMax - p.radius - p.y) / p.vy
	case p.vy < 0:
		return (boxMin + p.radius - p.y) / p.vy
	default:
		return math.Inf(1)
	}
}

// BounceOff resolves an elastic collision between p and q along the line
// joining their centers, conserving total momentum and kinetic energy.
// Both collision counts advance. The particles must be exactly in contact;
// the engine only calls this at the predicted instant of impact.
func (p *Particle) BounceOff(q *Particle) {
	dx, dy := q.x-p.x, q.y-p.y
	dvx, dvy := q.vx-p.vx, q.vy-p.vy
	drdv := dx*dvx + dy*dvy
	dist := p.radius + q.radius

	// impulse along the center line
	magnitude := 2 * p.mass * q.mass * drdv / ((p.mass + q.mass) * dist)
	fx := magnitude * dx / dist
	fy := magnitude * dy / dist

	p.vx += fx / p.mass
	p.vy += fy / p.mass
	q.vx -= fx / q.mass
	q.vy -= fy / q.mass

	p.count++
	q.count++
}

// BounceOffVerticalWall reflects the particle off a left/right wall.
func (p *Particle) BounceOffVerticalWall() {
	p.vx = -p.vx
	p.count++
}

// BounceOffHorizontalWall reflects the particle off a top/bottom wall.
func (p *Particle) BounceOffHorizontalWall() {
	p.vy = -p.vy
	p.count++
}

// Temperature is the particle's instantaneous contribution to the system
// temperature: m|v|^2 / (d k_B).
func (p *Particle) Temperature() float64 {
	return temperature(p.mass, p.vx, p.vy)
}

func temperature(mass, vx, vy float64) float64 {
	return mass * (vx*vx + vy*vy) / (Dimension * Boltzmann)
}
