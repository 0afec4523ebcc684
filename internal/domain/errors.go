package domain

import "errors"

// Validation errors. Every public operation validates before mutating, so a
// rejected call leaves the simulator unchanged and the instance stays usable.
var (
	ErrInvalidZone     = errors.New("zone index out of range")
	ErrInvalidYield    = errors.New("detonation yield must be non-negative")
	ErrInvalidTimeStep = errors.New("time step must be non-negative")
)
