package particle

// Snapshot is the read-only public state of a particle, handed to tick
// callbacks and renderers. Mutating a snapshot has no effect on the engine.
type Snapshot struct {
	X, Y       float64
	VX, VY     float64
	Radius     float64
	Mass       float64
	Color      string
	Collisions uint64
}

// Snapshot captures the particle's current public state by value.
func (p *Particle) Snapshot() Snapshot {
	return Snapshot{
		X:          p.x,
		Y:          p.y,
		VX:         p.vx,
		VY:         p.vy,
		Radius:     p.radius,
		Mass:       p.mass,
		Color:      p.color,
		Collisions: p.count,
	}
}

// Temperature computes the same observable as [Particle.Temperature] from a
// snapshot.
func (s Snapshot) Temperature() float64 {
	return temperature(s.Mass, s.VX, s.VY)
}
