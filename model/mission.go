package model

import (
	"fmt"
	"math"
)

// Mission encodes what a flight requires, independent of any hardware:
// delta-v with losses and margin, a minimum liftoff thrust-to-weight, and
// an optional burn-time ceiling. Treat a Mission as immutable once built.
type Mission struct {
	// DeltaVRequired is the ideal mission Δv in m/s.
	DeltaVRequired float64
	// GravityLoss is the estimated Δv lost to gravity in m/s.
	GravityLoss float64
	// Margin is a Δv reserve fraction, e.g. 0.1 for 10%.
	Margin float64
	// MinThrustToWeight below or equal to zero means unconstrained.
	MinThrustToWeight float64
	// MaxBurnTime in seconds; nil means unconstrained.
	MaxBurnTime *float64
}

// NewMission returns a mission requiring the given ideal Δv, with no
// losses, margin, or thrust/burn-time constraints.
func NewMission(deltaVRequired float64) Mission {
	return Mission{DeltaVRequired: deltaVRequired}
}

// TotalDeltaVRequired is (Δv_required + gravity loss) · (1 + margin).
func (m Mission) TotalDeltaVRequired() float64 {
	return (m.DeltaVRequired + m.GravityLoss) * (1.0 + m.Margin)
}

// AchievedDeltaV evaluates the Tsiolkovsky equation g₀·Isp·ln(m₀/m_f).
// m₀ must strictly exceed m_f; equality or inversion (including zero or
// negative propellant, and reversed arguments) is ErrInvalidMass.
func (m Mission) AchievedDeltaV(isp, m0, mf float64) (float64, error) {
	if mf <= 0 || m0 <= mf {
		return 0, fmt.Errorf("%w: initial mass %g must exceed final mass %g", ErrInvalidMass, m0, mf)
	}
	return G0 * isp * math.Log(m0/mf), nil
}

// DeltaVSatisfied reports whether the achievable Δv meets the total
// requirement.
func (m Mission) DeltaVSatisfied(isp, m0, mf float64) (bool, error) {
	achieved, err := m.AchievedDeltaV(isp, m0, mf)
	if err != nil {
		return false, err
	}
	return achieved >= m.TotalDeltaVRequired(), nil
}

// ThrustToWeightSatisfied checks the liftoff T/W constraint. Always true
// when the mission does not constrain it.
func (m Mission) ThrustToWeightSatisfied(thrust, mass float64) bool {
	if m.MinThrustToWeight <= 0.0 {
		return true
	}
	return thrust/(mass*G0) >= m.MinThrustToWeight
}

// BurnTimeSatisfied checks the burn-time ceiling. Always true when the
// mission does not set one.
func (m Mission) BurnTimeSatisfied(burnTime float64) bool {
	if m.MaxBurnTime == nil {
		return true
	}
	return burnTime <= *m.MaxBurnTime
}

// PropellantForDeltaV inverts the rocket equation: the propellant mass a
// stage with the given Isp, dry mass, and payload needs to deliver deltaV,
// m_prop = (m_dry + m_payload)·(e^(Δv/(g₀·Isp)) − 1).
func (m Mission) PropellantForDeltaV(isp, dryMass, payloadMass, deltaV float64) (float64, error) {
	if isp <= 0 {
		return 0, fmt.Errorf("%w: specific impulse must be positive, got %g", ErrInvalidParameter, isp)
	}
	return (dryMass + payloadMass) * (math.Exp(deltaV/(G0*isp)) - 1.0), nil
}

// PropellantForMission is PropellantForDeltaV against the mission's own
// total Δv requirement.
func (m Mission) PropellantForMission(isp, dryMass, payloadMass float64) (float64, error) {
	return m.PropellantForDeltaV(isp, dryMass, payloadMass, m.TotalDeltaVRequired())
}
