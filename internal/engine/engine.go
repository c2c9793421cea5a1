package engine

import (
	"context"
	"fmt"

	"github.com/san-kum/gassim/internal/particle"
)

// Decision is the tick callback's verdict on whether the run continues.
type Decision int

const (
	Continue Decision = iota
	Stop
)

// TickFunc is invoked once per tick event with the current simulated time
// and a read-only snapshot of every particle. Returning Stop ends the run;
// returning an error aborts it and the error propagates out of Run.
type TickFunc func(t float64, particles []particle.Snapshot) (Decision, error)

// Observer receives every accepted event, in time order. Discarded stale
// predictions are never delivered.
type Observer interface {
	OnEvent(e EventInfo)
}

// Config holds the run parameters.
type Config struct {
	// Horizon is the maximum simulated time; no event is predicted at or
	// beyond it.
	Horizon float64
	// Frequency is the number of ticks per simulated time unit.
	Frequency float64
}

func DefaultConfig() Config {
	return Config{Horizon: 10000, Frequency: 0.5}
}

// Engine owns a fixed particle set and drives simulated time forward from
// one collision to the next.
type Engine struct {
	particles []*particle.Particle
	index     map[*particle.Particle]int
	queue     *eventQueue
	clock     float64
	cfg       Config
	onTick    TickFunc
	observers []Observer
	ran       bool
}

// New validates the configuration and returns an engine over the given
// particles. The slice is owned by the engine for the duration of Run;
// callers must not mutate the particles while it executes.
func New(particles []*particle.Particle, cfg Config) (*Engine, error) {
	if cfg.Horizon <= 0 {
		return nil, fmt.Errorf("%w, got %g", ErrBadHorizon, cfg.Horizon)
	}
	if cfg.Frequency <= 0 {
		return nil, fmt.Errorf("%w, got %g", ErrBadFrequency, cfg.Frequency)
	}
	index := make(map[*particle.Particle]int, len(particles))
	for i, p := range particles {
		if p == nil {
			return nil, fmt.Errorf("%w at index %d", ErrNilParticle, i)
		}
		index[p] = i
	}
	return &Engine{particles: particles, index: index, cfg: cfg}, nil
}

// SetTickFunc installs the periodic observation callback. Without one, every
// tick is a silent Continue.
func (e *Engine) SetTickFunc(fn TickFunc) { e.onTick = fn }

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Clock returns the current simulated time.
func (e *Engine) Clock() float64 { return e.clock }

// Snapshot copies the public state of every particle, in construction order.
func (e *Engine) Snapshot() []particle.Snapshot {
	snaps := make([]particle.Snapshot, len(e.particles))
	for i, p := range e.particles {
		snaps[i] = p.Snapshot()
	}
	return snaps
}

// predict queues the earliest collision candidates for p: one pair event per
// reachable particle and one per reachable wall, all bounded by the horizon.
// Stale predictions already in the queue are left alone.
func (e *Engine) predict(p *particle.Particle) {
	if p == nil {
		return
	}
	for _, q := range e.particles {
		if dt := p.TimeToHit(q); e.clock+dt < e.cfg.Horizon {
			e.queue.push(newPairEvent(e.clock+dt, p, q))
		}
	}
	if dt := p.TimeToHitVerticalWall(); e.clock+dt < e.cfg.Horizon {
		e.queue.push(newWallEvent(e.clock+dt, p, Vertical))
	}
	if dt := p.TimeToHitHorizontalWall(); e.clock+dt < e.cfg.Horizon {
		e.queue.push(newWallEvent(e.clock+dt, p, Horizontal))
	}
}

// Run seeds the queue with a prediction per particle plus an initial tick,
// then processes events in time order until the queue drains, the horizon is
// reached, the callback says Stop, or ctx is canceled. Cancellation is
// checked between events only; Run never interrupts a callback.
func (e *Engine) Run(ctx context.Context) error {
	if e.ran {
		return ErrAlreadyRun
	}
	e.ran = true

	e.queue = newEventQueue()
	for _, p := range e.particles {
		e.predict(p)
	}
	e.queue.push(newTickEvent(e.clock))

	for e.queue.len() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ev := e.queue.pop()
		if !ev.valid() {
			continue
		}

		dt := ev.time - e.clock
		for _, p := range e.particles {
			p.Move(dt)
		}
		e.clock = ev.time

		switch ev.kind {
		case KindPair:
			ev.a.BounceOff(ev.b)
		case KindWall:
			if ev.axis == Vertical {
				ev.a.BounceOffVerticalWall()
			} else {
				ev.a.BounceOffHorizontalWall()
			}
		case KindTick:
			d, err := e.tick()
			if err != nil {
				return fmt.Errorf("engine: tick callback: %w", err)
			}
			e.emit(ev)
			if d == Stop || e.clock >= e.cfg.Horizon {
				return nil
			}
			e.queue.push(newTickEvent(e.clock + 1.0/e.cfg.Frequency))
			continue
		}

		e.emit(ev)
		e.predict(ev.a)
		e.predict(ev.b)
	}
	return nil
}

func (e *Engine) tick() (Decision, error) {
	if e.onTick == nil {
		return Continue, nil
	}
	return e.onTick(e.clock, e.Snapshot())
}

func (e *Engine) emit(ev *event) {
	if len(e.observers) == 0 {
		return
	}
	info := EventInfo{
		Time: ev.time,
		Kind: ev.kind,
		Axis: ev.axis,
		A:    e.indexOf(ev.a),
		B:    e.indexOf(ev.b),
	}
	for _, o := range e.observers {
		o.OnEvent(info)
	}
}

func (e *Engine) indexOf(p *particle.Particle) int {
	if p == nil {
		return -1
	}
	return e.index[p]
}
