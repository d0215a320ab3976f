package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration matches every *ConfigurationError via errors.Is.
	ErrInvalidConfiguration = errors.New("invalid simulation configuration")

	// ErrEmptyDataset is returned when statistics are requested over zero records.
	ErrEmptyDataset = errors.New("empty dataset")
)

// ConfigurationError reports a parameter that cannot drive a trial.
// It is raised before any event is processed and aborts only that trial.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidConfiguration) match any ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// SchedulingInvariantViolation signals an engine bug: an event out of time
// order, or a release by a customer that holds no server. Not recoverable.
type SchedulingInvariantViolation struct {
	Clock      float64
	CustomerID int
	Detail     string
}

func (e *SchedulingInvariantViolation) Error() string {
	return fmt.Sprintf("scheduling invariant violated at t=%g (customer %d): %s", e.Clock, e.CustomerID, e.Detail)
}

// IsInvariantViolation reports whether err wraps a SchedulingInvariantViolation.
func IsInvariantViolation(err error) bool {
	var v *SchedulingInvariantViolation
	return errors.As(err, &v)
}
