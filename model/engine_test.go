package model

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMomentumThrust(t *testing.T) {
	ps := NewPropulsionSystem()
	ps.MassFlowRate = Float(35)
	ps.ExitVelocity = Float(4000)

	got, err := ps.MomentumThrust()
	if err != nil {
		t.Fatalf("MomentumThrust: %v", err)
	}
	if got != 35*4000 {
		t.Fatalf("MomentumThrust = %g, want %g", got, 35.0*4000)
	}
}

func TestMomentumThrust_ListsAllMissingFields(t *testing.T) {
	ps := NewPropulsionSystem()

	_, err := ps.MomentumThrust()
	if !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("expected ErrMissingParameter, got %v", err)
	}

	var mpe *MissingParameterError
	if !errors.As(err, &mpe) {
		t.Fatalf("expected *MissingParameterError, got %T", err)
	}
	if len(mpe.Fields) != 2 || mpe.Fields[0] != "mass_flow_rate" || mpe.Fields[1] != "exit_velocity" {
		t.Fatalf("missing fields = %v, want [mass_flow_rate exit_velocity]", mpe.Fields)
	}
}

func TestMissingMassFlowRate_FailsFlowDerivedQuantitiesOnly(t *testing.T) {
	ps := NewPropulsionSystem()
	ps.ExitVelocity = Float(4000)
	ps.ExitPressure = Float(54000)
	ps.ExitArea = Float(0.5)

	if _, err := ps.TotalThrust(); !errors.Is(err, ErrMissingParameter) {
		t.Errorf("TotalThrust: expected ErrMissingParameter, got %v", err)
	}
	if _, err := ps.SpecificImpulse(); !errors.Is(err, ErrMissingParameter) {
		t.Errorf("SpecificImpulse: expected ErrMissingParameter, got %v", err)
	}
	if _, err := ps.EffectiveExhaustVelocity(); !errors.Is(err, ErrMissingParameter) {
		t.Errorf("EffectiveExhaustVelocity: expected ErrMissingParameter, got %v", err)
	}

	// The pressure term does not depend on flow parameters.
	if got := ps.PressureThrust(); got != 54000*0.5 {
		t.Errorf("PressureThrust = %g, want %g", got, 54000*0.5)
	}
}

func TestPressureThrust_ZeroWhenUnset(t *testing.T) {
	ps := NewPropulsionSystem()
	ps.MassFlowRate = Float(35)
	ps.ExitVelocity = Float(4000)

	if got := ps.PressureThrust(); got != 0.0 {
		t.Fatalf("PressureThrust = %g, want exactly 0", got)
	}

	// With no pressure term, total thrust equals the momentum term exactly.
	momentum, err := ps.MomentumThrust()
	if err != nil {
		t.Fatalf("MomentumThrust: %v", err)
	}
	total, err := ps.TotalThrust()
	if err != nil {
		t.Fatalf("TotalThrust: %v", err)
	}
	if total != momentum {
		t.Fatalf("TotalThrust = %g, want exactly MomentumThrust = %g", total, momentum)
	}
}

func TestTotalThrust_AppliesEfficiencyAndPressureTerm(t *testing.T) {
	ps := &PropulsionSystem{
		MassFlowRate:    Float(35),
		ExitVelocity:    Float(4000),
		Efficiency:      0.95,
		ExitPressure:    Float(54000),
		AmbientPressure: 4000,
		ExitArea:        Float(0.5),
	}

	want := 0.95 * (35*4000 + (54000-4000)*0.5)
	got, err := ps.TotalThrust()
	if err != nil {
		t.Fatalf("TotalThrust: %v", err)
	}
	if !almostEqual(got, want, 1e-9) {
		t.Fatalf("TotalThrust = %g, want %g", got, want)
	}
}

func TestSpecificImpulse(t *testing.T) {
	ps := &PropulsionSystem{
		MassFlowRate: Float(35),
		ExitVelocity: Float(4000),
		Efficiency:   0.95,
	}

	// Without a pressure term, Isp reduces to η·v_e/g₀ ≈ 387.75 s.
	want := 0.95 * 4000 / G0
	got, err := ps.SpecificImpulse()
	if err != nil {
		t.Fatalf("SpecificImpulse: %v", err)
	}
	if !almostEqual(got, want, 1e-9) {
		t.Fatalf("SpecificImpulse = %g, want %g", got, want)
	}
	if !almostEqual(got, 387.75, 0.01) {
		t.Fatalf("SpecificImpulse = %g, want ≈ 387.75 s", got)
	}
}

func TestSpecificImpulse_NonPositiveFlowIsInvalidState(t *testing.T) {
	for _, mdot := range []float64{0, -5} {
		ps := &PropulsionSystem{
			MassFlowRate: Float(mdot),
			ExitVelocity: Float(4000),
			Efficiency:   1.0,
		}

		if _, err := ps.SpecificImpulse(); !errors.Is(err, ErrInvalidEngineState) {
			t.Errorf("SpecificImpulse(mdot=%g): expected ErrInvalidEngineState, got %v", mdot, err)
		}
		if _, err := ps.EffectiveExhaustVelocity(); !errors.Is(err, ErrInvalidEngineState) {
			t.Errorf("EffectiveExhaustVelocity(mdot=%g): expected ErrInvalidEngineState, got %v", mdot, err)
		}
	}
}

func TestEffectiveExhaustVelocity(t *testing.T) {
	ps := &PropulsionSystem{
		MassFlowRate: Float(35),
		ExitVelocity: Float(4000),
		Efficiency:   0.95,
	}

	got, err := ps.EffectiveExhaustVelocity()
	if err != nil {
		t.Fatalf("EffectiveExhaustVelocity: %v", err)
	}
	if !almostEqual(got, 0.95*4000, 1e-9) {
		t.Fatalf("EffectiveExhaustVelocity = %g, want %g", got, 0.95*4000)
	}
}

func TestPropulsionSystemClone_Independent(t *testing.T) {
	ps := &PropulsionSystem{
		MassFlowRate: Float(35),
		ExitVelocity: Float(4000),
		Efficiency:   0.95,
	}

	clone := ps.Clone()
	*clone.MassFlowRate = 99
	clone.ExitPressure = Float(1000)

	if *ps.MassFlowRate != 35 {
		t.Fatalf("mutating the clone changed the original mass flow rate: %g", *ps.MassFlowRate)
	}
	if ps.ExitPressure != nil {
		t.Fatalf("mutating the clone set the original exit pressure")
	}
}
