// Package metrics derives observables from tick snapshots. The headline
// observable is the system temperature, which stays constant over a run up
// to floating-point rounding because every collision conserves kinetic
// energy exactly.
package metrics

import (
	"math"

	"github.com/san-kum/gassim/internal/particle"
)

// Metric accumulates an observable over the ticks of one run.
type Metric interface {
	Name() string
	Observe(t float64, particles []particle.Snapshot)
	Value() float64
	Reset()
}

// System returns the mean per-particle temperature of a snapshot.
func System(particles []particle.Snapshot) float64 {
	if len(particles) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range particles {
		total += p.Temperature()
	}
	return total / float64(len(particles))
}

// Temperature tracks the latest system temperature seen.
type Temperature struct {
	name    string
	latest  float64
	samples int
}

func NewTemperature() *Temperature {
	return &Temperature{name: "temperature"}
}

func (m *Temperature) Name() string { return m.name }

func (m *Temperature) Observe(t float64, particles []particle.Snapshot) {
	m.latest = System(particles)
	m.samples++
}

func (m *Temperature) Value() float64 { return m.latest }

func (m *Temperature) Reset() {
	m.latest = 0
	m.samples = 0
}

// TemperatureDrift tracks the maximum relative deviation of the system
// temperature from its first observation. For an elastic system it should
// stay within floating-point noise of zero.
type TemperatureDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewTemperatureDrift() *TemperatureDrift {
	return &TemperatureDrift{name: "temperature_drift"}
}

func (m *TemperatureDrift) Name() string { return m.name }

func (m *TemperatureDrift) Observe(t float64, particles []particle.Snapshot) {
	temp := System(particles)

	if m.samples == 0 {
		m.initial = temp
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(temp-m.initial) / math.Abs(m.initial)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *TemperatureDrift) Value() float64 { return m.maxDrift }

func (m *TemperatureDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}
