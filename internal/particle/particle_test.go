package particle

import (
	"math"
	"testing"
)

func mustNew(t *testing.T, x, y, vx, vy, radius, mass float64) *Particle {
	t.Helper()
	p, err := New(x, y, vx, vy, radius, mass, "black")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		mass   float64
	}{
		{"zero radius", 0, 1.0},
		{"negative radius", -0.01, 1.0},
		{"zero mass", 0.01, 0},
		{"negative mass", 0.01, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(0.5, 0.5, 0, 0, tt.radius, tt.mass, "black")
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestMove(t *testing.T) {
	p := mustNew(t, 0.2, 0.3, 0.1, -0.05, 0.01, 0.5)
	p.Move(2.0)

	s := p.Snapshot()
	if math.Abs(s.X-0.4) > 1e-15 || math.Abs(s.Y-0.2) > 1e-15 {
		t.Errorf("expected position (0.4, 0.2), got (%g, %g)", s.X, s.Y)
	}
	if s.VX != 0.1 || s.VY != -0.05 {
		t.Error("move must not change velocity")
	}
	if s.Collisions != 0 {
		t.Error("move must not advance the collision count")
	}
}

func TestTimeToHitHeadOn(t *testing.T) {
	// Separation 0.6 along x, closing speed 0.1, radii 0.05 each:
	// contact after (0.6 - 0.1) / 0.1 = 5 time units.
	a := mustNew(t, 0.2, 0.5, 0.1, 0, 0.05, 1.0)
	b := mustNew(t, 0.8, 0.5, 0, 0, 0.05, 1.0)

	dt := a.TimeToHit(b)
	if math.Abs(dt-5.0) > 1e-12 {
		t.Errorf("expected hit time 5.0, got %g", dt)
	}
}

func TestTimeToHitSymmetry(t *testing.T) {
	a := mustNew(t, 0.2, 0.3, 0.04, 0.01, 0.02, 0.5)
	b := mustNew(t, 0.7, 0.6, -0.03, -0.02, 0.03, 2.0)

	if a.TimeToHit(b) != b.TimeToHit(a) {
		t.Errorf("time to hit not symmetric: %g vs %g", a.TimeToHit(b), b.TimeToHit(a))
	}
}

func TestTimeToHitDiverging(t *testing.T) {
	tests := []struct {
		name   string
		ax, bx float64
		av, bv float64
	}{
		{"receding", 0.3, 0.5, -0.1, 0.1},
		{"parallel", 0.3, 0.5, 0.1, 0.1},
		{"both at rest", 0.3, 0.5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustNew(t, tt.ax, 0.5, tt.av, 0, 0.01, 1.0)
			b := mustNew(t, tt.bx, 0.5, tt.bv, 0, 0.01, 1.0)
			if dt := a.TimeToHit(b); !math.IsInf(dt, 1) {
				t.Errorf("expected +Inf, got %g", dt)
			}
		})
	}
}

func TestTimeToHitSelf(t *testing.T) {
	p := mustNew(t, 0.5, 0.5, 0.1, 0.1, 0.01, 1.0)
	if dt := p.TimeToHit(p); !math.IsInf(dt, 1) {
		t.Errorf("self pairing must be +Inf, got %g", dt)
	}
}

func TestTimeToHitMiss(t *testing.T) {
	// Approaching on offset tracks: dr dot dv < 0 but the discriminant is
	// negative, so the discs pass without touching.
	a := mustNew(t, 0.1, 0.40, 0.1, 0, 0.01, 1.0)
	b := mustNew(t, 0.9, 0.45, -0.1, 0, 0.01, 1.0)

	if dt := a.TimeToHit(b); !math.IsInf(dt, 1) {
		t.Errorf("expected +Inf for a near miss, got %g", dt)
	}
}

func TestTimeToHitWalls(t *testing.T) {
	tests := []struct {
		name     string
		x, vx    float64
		expected float64
	}{
		{"moving right", 0.3, 0.2, (1.0 - 0.05 - 0.3) / 0.2},
		{"moving left", 0.3, -0.2, (0.05 - 0.3) / -0.2},
		{"at rest", 0.3, 0, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustNew(t, tt.x, 0.5, tt.vx, 0, 0.05, 1.0)
			dt := p.TimeToHitVerticalWall()
			if math.IsInf(tt.expected, 1) {
				if !math.IsInf(dt, 1) {
					t.Errorf("expected +Inf, got %g", dt)
				}
				return
			}
			if math.Abs(dt-tt.expected) > 1e-12 {
				t.Errorf("expected %g, got %g", tt.expected, dt)
			}
			// the horizontal wall never comes into play with vy == 0
			if !math.IsInf(p.TimeToHitHorizontalWall(), 1) {
				t.Error("expected +Inf for the horizontal wall")
			}
		})
	}
}

func TestBounceOffConservation(t *testing.T) {
	// Two unequal discs exactly in contact (center distance = radius sum).
	a := mustNew(t, 0.4, 0.5, 0.2, 0.1, 0.05, 1.0)
	b := mustNew(t, 0.5, 0.5, -0.3, 0.05, 0.05, 2.5)

	px0 := a.Mass()*a.Snapshot().VX + b.Mass()*b.Snapshot().VX
	py0 := a.Mass()*a.Snapshot().VY + b.Mass()*b.Snapshot().VY
	ke0 := kinetic(a) + kinetic(b)

	a.BounceOff(b)

	px1 := a.Mass()*a.Snapshot().VX + b.Mass()*b.Snapshot().VX
	py1 := a.Mass()*a.Snapshot().VY + b.Mass()*b.Snapshot().VY
	ke1 := kinetic(a) + kinetic(b)

	if relErr(px0, px1) > 1e-9 || relErr(py0, py1) > 1e-9 {
		t.Errorf("momentum not conserved: (%g, %g) -> (%g, %g)", px0, py0, px1, py1)
	}
	if relErr(ke0, ke1) > 1e-9 {
		t.Errorf("kinetic energy not conserved: %g -> %g", ke0, ke1)
	}
	if a.Count() != 1 || b.Count() != 1 {
		t.Errorf("both collision counts must advance, got %d and %d", a.Count(), b.Count())
	}
}

func TestBounceOffEqualMassSwap(t *testing.T) {
	// Equal masses on a collinear approach exchange velocities along the
	// line of centers.
	a := mustNew(t, 0.3, 0.5, 0.25, 0, 0.05, 1.0)
	b := mustNew(t, 0.4, 0.5, 0, 0, 0.05, 1.0)

	a.BounceOff(b)

	sa, sb := a.Snapshot(), b.Snapshot()
	if math.Abs(sa.VX) > 1e-12 || math.Abs(sb.VX-0.25) > 1e-12 {
		t.Errorf("expected velocity swap, got vx_a=%g vx_b=%g", sa.VX, sb.VX)
	}
	if sa.VY != 0 || sb.VY != 0 {
		t.Error("collinear collision must not introduce transverse velocity")
	}
}

func TestWallReflection(t *testing.T) {
	p := mustNew(t, 0.7, 0.4, 0.3, -0.2, 0.01, 0.5)

	p.BounceOffVerticalWall()
	s := p.Snapshot()
	if s.VX != -0.3 || s.VY != -0.2 {
		t.Errorf("vertical wall must negate vx only, got (%g, %g)", s.VX, s.VY)
	}
	if s.X != 0.7 || s.Y != 0.4 {
		t.Error("wall bounce must not move the particle")
	}
	if s.Collisions != 1 {
		t.Errorf("expected collision count 1, got %d", s.Collisions)
	}

	p.BounceOffHorizontalWall()
	s = p.Snapshot()
	if s.VX != -0.3 || s.VY != 0.2 {
		t.Errorf("horizontal wall must negate vy only, got (%g, %g)", s.VX, s.VY)
	}
	if s.Collisions != 2 {
		t.Errorf("expected collision count 2, got %d", s.Collisions)
	}
}

func TestTemperature(t *testing.T) {
	p := mustNew(t, 0.5, 0.5, 0.003, 0.004, 0.01, 0.5)

	expected := 0.5 * (0.003*0.003 + 0.004*0.004) / (Dimension * Boltzmann)
	if got := p.Temperature(); got != expected {
		t.Errorf("expected temperature %g, got %g", expected, got)
	}
	if got := p.Snapshot().Temperature(); got != expected {
		t.Errorf("snapshot temperature disagrees: %g vs %g", got, expected)
	}
}

func kinetic(p *Particle) float64 {
	s := p.Snapshot()
	return 0.5 * s.Mass * (s.VX*s.VX + s.VY*s.VY)
}

func relErr(a, b float64) float64 {
	if a == 0 {
		return math.Abs(b)
	}
	return math.Abs(a-b) / math.Abs(a)
}
