package engine

import "github.com/san-kum/gassim/internal/particle"

// EventKind discriminates what an accepted event did.
type EventKind int

const (
	// KindPair is an elastic collision between two particles.
	KindPair EventKind = iota
	// KindWall is a reflection off one of the box walls.
	KindWall
	// KindTick is the periodic observation event; it touches no particle.
	KindTick
)

func (k EventKind) String() string {
	switch k {
	case KindPair:
		return "pair"
	case KindWall:
		return "wall"
	case KindTick:
		return "tick"
	default:
		return "unknown"
	}
}

// Axis names the wall pair a particle reflects off.
type Axis int

const (
	// Vertical is the left/right wall pair; reflection negates vx.
	Vertical Axis = iota
	// Horizontal is the bottom/top wall pair; reflection negates vy.
	Horizontal
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// event is one queued collision prediction. Particles are compared by
// identity, never by coordinates: two particles may transiently coincide in
// position and velocity yet remain distinct.
type event struct {
	time float64
	kind EventKind
	a, b *particle.Particle
	axis Axis

	// collision counts at prediction time
	countA uint64
	countB uint64
}

func newPairEvent(t float64, a, b *particle.Particle) *event {
	return &event{time: t, kind: KindPair, a: a, b: b, countA: a.Count(), countB: b.Count()}
}

func newWallEvent(t float64, a *particle.Particle, axis Axis) *event {
	return &event{time: t, kind: KindWall, a: a, axis: axis, countA: a.Count()}
}

func newTickEvent(t float64) *event {
	return &event{time: t, kind: KindTick}
}

// valid reports whether every particle the event references still has the
// trajectory the prediction was computed against. A collision in between
// advances the count and silently retires the event.
func (e *event) valid() bool {
	if e.a != nil && e.a.Count() != e.countA {
		return false
	}
	return e.b == nil || e.b.Count() == e.countB
}

// EventInfo is the read-only description of an accepted event, delivered to
// observers. A and B index the engine's particle list; -1 marks an absent
// side (walls reference one particle, ticks none).
type EventInfo struct {
	Time float64
	Kind EventKind
	Axis Axis
	A, B int
}
