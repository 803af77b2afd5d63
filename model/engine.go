package model

import "fmt"

// PropulsionSystem is a pure engine performance model: thrust, specific
// impulse, and effective exhaust velocity derived from flow and pressure
// parameters.
//
// Equations follow Humble, Henry & Larson, "Space Propulsion Analysis and
// Design" (McGraw-Hill, 2007).
type PropulsionSystem struct {
	// MassFlowRate is the propellant mass flow in kg/s. A pointer is used to
	// distinguish "not yet sized" (nil) from an explicit zero, which is set
	// but invalid.
	MassFlowRate *float64
	// ExitVelocity is the nozzle exit velocity in m/s; nil = not yet sized.
	ExitVelocity *float64
	// Efficiency scales the ideal thrust. 1.0 is an ideal engine.
	Efficiency float64

	// ExitPressure (Pa) and ExitArea (m²) drive the pressure-thrust term.
	// Both must be set for the term to contribute; otherwise it is exactly
	// zero, which is not an error.
	ExitPressure    *float64
	AmbientPressure float64
	ExitArea        *float64
}

// NewPropulsionSystem returns an engine with ideal efficiency and zero
// ambient pressure. Flow and nozzle parameters are left unset for the
// caller or a sweep to assign.
func NewPropulsionSystem() *PropulsionSystem {
	return &PropulsionSystem{Efficiency: 1.0}
}

// Float returns a pointer to v, for populating optional engine fields.
func Float(v float64) *float64 {
	return &v
}

// MomentumThrust returns ṁ·v_e in newtons.
func (ps *PropulsionSystem) MomentumThrust() (float64, error) {
	if err := requireParams(
		namedParam{"mass_flow_rate", ps.MassFlowRate},
		namedParam{"exit_velocity", ps.ExitVelocity},
	); err != nil {
		return 0, err
	}
	return *ps.MassFlowRate * *ps.ExitVelocity, nil
}

// PressureThrust returns (p_e − p_a)·A_e, or exactly zero when the exit
// pressure or exit area is unset.
func (ps *PropulsionSystem) PressureThrust() float64 {
	if ps.ExitPressure == nil || ps.ExitArea == nil {
		return 0.0
	}
	return (*ps.ExitPressure - ps.AmbientPressure) * *ps.ExitArea
}

// TotalThrust returns η·[ṁ·v_e + (p_e − p_a)·A_e].
func (ps *PropulsionSystem) TotalThrust() (float64, error) {
	momentum, err := ps.MomentumThrust()
	if err != nil {
		return 0, err
	}
	return ps.Efficiency * (momentum + ps.PressureThrust()), nil
}

// SpecificImpulse returns Isp = T / (ṁ·g₀) in seconds. A mass flow rate
// that is set but non-positive is surfaced as ErrInvalidEngineState rather
// than letting the division produce an infinity.
func (ps *PropulsionSystem) SpecificImpulse() (float64, error) {
	thrust, err := ps.thrustForFlowDerived()
	if err != nil {
		return 0, err
	}
	return thrust / (*ps.MassFlowRate * G0), nil
}

// EffectiveExhaustVelocity returns c_eff = T / ṁ in m/s.
func (ps *PropulsionSystem) EffectiveExhaustVelocity() (float64, error) {
	thrust, err := ps.thrustForFlowDerived()
	if err != nil {
		return 0, err
	}
	return thrust / *ps.MassFlowRate, nil
}

// thrustForFlowDerived validates the mass flow rate and returns total
// thrust for the quantities that divide by ṁ.
func (ps *PropulsionSystem) thrustForFlowDerived() (float64, error) {
	if err := requireParams(namedParam{"mass_flow_rate", ps.MassFlowRate}); err != nil {
		return 0, err
	}
	if *ps.MassFlowRate <= 0 {
		return 0, fmt.Errorf("%w: mass flow rate must be positive, got %g", ErrInvalidEngineState, *ps.MassFlowRate)
	}
	return ps.TotalThrust()
}

// Clone returns an independently owned copy. Sweeps mutate engine fields
// per candidate, so every candidate must own its engine instance.
func (ps *PropulsionSystem) Clone() *PropulsionSystem {
	if ps == nil {
		return nil
	}
	return &PropulsionSystem{
		MassFlowRate:    cloneFloat(ps.MassFlowRate),
		ExitVelocity:    cloneFloat(ps.ExitVelocity),
		Efficiency:      ps.Efficiency,
		ExitPressure:    cloneFloat(ps.ExitPressure),
		AmbientPressure: ps.AmbientPressure,
		ExitArea:        cloneFloat(ps.ExitArea),
	}
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
