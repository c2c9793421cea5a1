package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/gassim/internal/particle"
)

func snapshots(t *testing.T, specs [][4]float64, mass float64) []particle.Snapshot {
	t.Helper()
	out := make([]particle.Snapshot, 0, len(specs))
	for _, s := range specs {
		p, err := particle.New(s[0], s[1], s[2], s[3], 0.01, mass, "black")
		if err != nil {
			t.Fatalf("particle.New failed: %v", err)
		}
		out = append(out, p.Snapshot())
	}
	return out
}

func TestSystemUniformSpeed(t *testing.T) {
	// k particles of identical mass and speed, any directions: the system
	// temperature is exactly m v^2 / (2 k_B) in two dimensions.
	mass, speed := 0.5, 0.004
	snaps := snapshots(t, [][4]float64{
		{0.2, 0.2, speed, 0},
		{0.4, 0.4, 0, -speed},
		{0.6, 0.6, -speed, 0},
		{0.8, 0.8, 0, speed},
	}, mass)

	expected := mass * speed * speed / (2 * particle.Boltzmann)
	if got := System(snaps); got != expected {
		t.Errorf("expected temperature %g, got %g", expected, got)
	}
}

func TestSystemEmpty(t *testing.T) {
	if got := System(nil); got != 0 {
		t.Errorf("expected 0 for empty system, got %g", got)
	}
}

func TestTemperatureMetric(t *testing.T) {
	m := NewTemperature()
	snaps := snapshots(t, [][4]float64{{0.5, 0.5, 0.003, 0.004}}, 0.5)

	m.Observe(0, snaps)
	if m.Value() != System(snaps) {
		t.Errorf("expected %g, got %g", System(snaps), m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestTemperatureDrift(t *testing.T) {
	m := NewTemperatureDrift()
	snaps := snapshots(t, [][4]float64{{0.5, 0.5, 0.003, 0.004}}, 0.5)

	m.Observe(0, snaps)
	m.Observe(2, snaps)
	m.Observe(4, snaps)

	if m.Value() != 0 {
		t.Errorf("constant temperature must show zero drift, got %g", m.Value())
	}

	// halve the speed: temperature falls by 4x, drift 0.75
	slower := snapshots(t, [][4]float64{{0.5, 0.5, 0.0015, 0.002}}, 0.5)
	m.Observe(6, slower)

	if math.Abs(m.Value()-0.75) > 1e-12 {
		t.Errorf("expected drift 0.75, got %g", m.Value())
	}
}
