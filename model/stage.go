package model

import (
	"fmt"
	"math"
)

// Stage couples one propulsion system with the masses it moves. A stage
// owns its engine exclusively; no two stages may share an engine instance.
type Stage struct {
	Engine *PropulsionSystem

	// PropellantMass and DryMass are fixed properties of the stage in kg.
	PropellantMass float64
	DryMass        float64

	// PayloadMass (kg) is everything this stage lifts that is not its own
	// propellant or structure. LaunchVehicle.StackMasses rewrites it to
	// include the full fueled mass of every stage above.
	PayloadMass float64
}

// NewStage builds a stage around an engine. The payload above the stage
// defaults to zero and can be assigned directly.
func NewStage(engine *PropulsionSystem, propellantMass, dryMass float64) *Stage {
	return &Stage{
		Engine:         engine,
		PropellantMass: propellantMass,
		DryMass:        dryMass,
	}
}

// InitialMass is the mass at ignition: propellant + structure + payload.
func (s *Stage) InitialMass() float64 {
	return s.PropellantMass + s.DryMass + s.PayloadMass
}

// FinalMass is the mass at burnout: structure + payload.
func (s *Stage) FinalMass() float64 {
	return s.DryMass + s.PayloadMass
}

// BurnTime returns m_prop / ṁ in seconds.
func (s *Stage) BurnTime() (float64, error) {
	if s.Engine == nil {
		return 0, ErrMissingEngine
	}
	if s.Engine.MassFlowRate == nil || *s.Engine.MassFlowRate <= 0 {
		return 0, fmt.Errorf("%w: burn time needs a positive mass flow rate", ErrInvalidEngineState)
	}
	return s.PropellantMass / *s.Engine.MassFlowRate, nil
}

// ThrustToWeight returns T / (m₀·g₀), dimensionless.
func (s *Stage) ThrustToWeight() (float64, error) {
	if s.Engine == nil {
		return 0, ErrMissingEngine
	}
	thrust, err := s.Engine.TotalThrust()
	if err != nil {
		return 0, fmt.Errorf("%w: engine thrust undefined: %v", ErrInvalidEngineState, err)
	}
	m0 := s.InitialMass()
	if m0 <= 0 {
		return 0, fmt.Errorf("%w: stage initial mass must be positive, got %g", ErrInvalidMass, m0)
	}
	return thrust / (m0 * G0), nil
}

// DeltaV returns the ideal velocity change this stage can impart,
// g₀·Isp·ln(m₀/m_f). The mass ratio is validated before the logarithm so a
// propellant-free or inverted stage surfaces ErrInvalidMass instead of a
// math domain failure.
func (s *Stage) DeltaV() (float64, error) {
	if s.Engine == nil {
		return 0, ErrMissingEngine
	}
	isp, err := s.Engine.SpecificImpulse()
	if err != nil {
		return 0, err
	}
	m0 := s.InitialMass()
	mf := s.FinalMass()
	if mf <= 0 || m0 <= mf {
		return 0, fmt.Errorf("%w: initial mass %g must exceed final mass %g", ErrInvalidMass, m0, mf)
	}
	return G0 * isp * math.Log(m0/mf), nil
}

// Clone returns an independently owned copy of the stage and its engine.
func (s *Stage) Clone() *Stage {
	if s == nil {
		return nil
	}
	return &Stage{
		Engine:         s.Engine.Clone(),
		PropellantMass: s.PropellantMass,
		DryMass:        s.DryMass,
		PayloadMass:    s.PayloadMass,
	}
}
