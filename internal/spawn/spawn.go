// Package spawn builds initial particle sets: a random ideal gas of light
// discs, optionally seeded with one heavy Brownian tracer.
package spawn

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/gassim/internal/config"
	"github.com/san-kum/gassim/internal/particle"
)

// Gas particle parameters. Speeds are small relative to the unit box so the
// event horizon spans many mean free paths.
const (
	GasRadius = 0.01
	GasMass   = 0.5
	maxSpeed  = 0.005
)

// Gas returns n light particles placed uniformly inside the box (kept a
// radius away from the walls) with uniform random velocities. The same seed
// reproduces the same set.
func Gas(n int, seed int64) []*particle.Particle {
	rng := rand.New(rand.NewSource(seed))
	out := make([]*particle.Particle, 0, n)
	for i := 0; i < n; i++ {
		// parameters are fixed positive constants, construction cannot fail
		p, _ := particle.New(
			uniform(rng, GasRadius, 1-GasRadius),
			uniform(rng, GasRadius, 1-GasRadius),
			uniform(rng, -maxSpeed, maxSpeed),
			uniform(rng, -maxSpeed, maxSpeed),
			GasRadius, GasMass, "black",
		)
		out = append(out, p)
	}
	return out
}

// Tracer returns a heavy disc at rest in the center of the box. Watching it
// jitter under bombardment by the light gas is the classic Brownian picture.
func Tracer(radius, mass float64) (*particle.Particle, error) {
	return particle.New(0.5, 0.5, 0, 0, radius, mass, "red")
}

// FromConfig builds the particle set a run configuration describes: the
// explicit particle list when present, otherwise a seeded random gas plus
// the optional tracer.
func FromConfig(cfg *config.Config) ([]*particle.Particle, error) {
	if len(cfg.Particles) > 0 {
		out := make([]*particle.Particle, 0, len(cfg.Particles))
		for i, pc := range cfg.Particles {
			p, err := particle.New(pc.X, pc.Y, pc.VX, pc.VY, pc.Radius, pc.Mass, pc.Color)
			if err != nil {
				return nil, fmt.Errorf("spawn: particle %d: %w", i, err)
			}
			out = append(out, p)
		}
		return out, nil
	}

	out := Gas(cfg.Count, cfg.Seed)
	if cfg.Tracer.Enabled {
		tr, err := Tracer(cfg.Tracer.Radius, cfg.Tracer.Mass)
		if err != nil {
			return nil, fmt.Errorf("spawn: tracer: %w", err)
		}
		out = append(out, tr)
	}
	return out, nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
