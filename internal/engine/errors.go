package engine

import "errors"

// Construction and lifecycle errors.
var (
	// ErrBadHorizon indicates a non-positive simulation horizon.
	ErrBadHorizon = errors.New("engine: horizon must be positive")

	// ErrBadFrequency indicates a non-positive tick frequency.
	ErrBadFrequency = errors.New("engine: tick frequency must be positive")

	// ErrNilParticle indicates a nil entry in the initial particle list.
	ErrNilParticle = errors.New("engine: nil particle")

	// ErrAlreadyRun indicates a second Run call on a consumed engine.
	ErrAlreadyRun = errors.New("engine: engine has already run")
)
