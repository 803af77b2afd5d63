package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure categories of the propulsion model.
// Structural errors (a computation could not be performed at all) always
// belong to exactly one of these; an unmet mission constraint is never an
// error, only a false predicate.
var (
	// ErrMissingParameter indicates a required engine field is unset.
	ErrMissingParameter = errors.New("missing required parameter")
	// ErrInvalidEngineState indicates an engine field is set but physically
	// invalid, e.g. a non-positive mass flow rate.
	ErrInvalidEngineState = errors.New("invalid engine state")
	// ErrInvalidMass indicates mass ordering or positivity is violated,
	// e.g. initial mass not exceeding final mass.
	ErrInvalidMass = errors.New("invalid mass")
	// ErrMissingEngine indicates a stage has no attached propulsion system.
	ErrMissingEngine = errors.New("stage has no engine")
	// ErrInvalidParameter indicates a caller-supplied value is out of its
	// valid range, e.g. a non-positive Isp.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrShapeMismatch indicates a sweep was given a different number of
	// candidate sets than the vehicle has stages.
	ErrShapeMismatch = errors.New("candidate set shape mismatch")
)

// MissingParameterError reports every unset field an operation needed, in
// one error rather than one per field. It matches ErrMissingParameter via
// errors.Is.
type MissingParameterError struct {
	Fields []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter(s): %s", strings.Join(e.Fields, ", "))
}

func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

type namedParam struct {
	name  string
	value *float64
}

// requireParams checks the given optional fields in order and returns a
// single MissingParameterError naming all that are unset.
func requireParams(params ...namedParam) error {
	var missing []string
	for _, p := range params {
		if p.value == nil {
			missing = append(missing, p.name)
		}
	}
	if len(missing) > 0 {
		return &MissingParameterError{Fields: missing}
	}
	return nil
}
