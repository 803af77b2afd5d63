package model

import (
	"errors"
	"math"
	"testing"
)

func TestTotalDeltaVRequired(t *testing.T) {
	m := Mission{DeltaVRequired: 6000, GravityLoss: 1200, Margin: 0.05}

	want := (6000 + 1200.0) * 1.05
	if got := m.TotalDeltaVRequired(); !almostEqual(got, want, 1e-9) {
		t.Fatalf("TotalDeltaVRequired = %g, want %g", got, want)
	}
}

func TestAchievedDeltaV_KnownValue(t *testing.T) {
	m := NewMission(0)

	got, err := m.AchievedDeltaV(300, 10000, 4000)
	if err != nil {
		t.Fatalf("AchievedDeltaV: %v", err)
	}
	want := G0 * 300 * math.Log(10000.0/4000.0)
	if !almostEqual(got, want, 1e-3) {
		t.Fatalf("AchievedDeltaV = %g, want %g", got, want)
	}
}

func TestAchievedDeltaV_InvalidMass(t *testing.T) {
	m := NewMission(0)

	cases := []struct {
		name   string
		m0, mf float64
	}{
		{"equal masses", 4000, 4000},
		{"final exceeds initial", 4000, 10000},
		{"zero final mass", 4000, 0},
		{"negative final mass", 4000, -1},
	}
	for _, tc := range cases {
		if _, err := m.AchievedDeltaV(300, tc.m0, tc.mf); !errors.Is(err, ErrInvalidMass) {
			t.Errorf("%s: expected ErrInvalidMass, got %v", tc.name, err)
		}
	}
}

func TestDeltaVSatisfied(t *testing.T) {
	m := Mission{DeltaVRequired: 2000}

	ok, err := m.DeltaVSatisfied(300, 10000, 4000)
	if err != nil {
		t.Fatalf("DeltaVSatisfied: %v", err)
	}
	if !ok {
		t.Fatalf("expected 2000 m/s to be satisfied by isp=300, m0=10000, mf=4000")
	}

	m.DeltaVRequired = 5000
	ok, err = m.DeltaVSatisfied(300, 10000, 4000)
	if err != nil {
		t.Fatalf("DeltaVSatisfied: %v", err)
	}
	if ok {
		t.Fatalf("expected 5000 m/s to be unsatisfied by isp=300, m0=10000, mf=4000")
	}
}

func TestThrustToWeightSatisfied(t *testing.T) {
	unconstrained := Mission{DeltaVRequired: 1000}
	if !unconstrained.ThrustToWeightSatisfied(1, 1e9) {
		t.Errorf("min T/W <= 0 must always be satisfied")
	}

	m := Mission{DeltaVRequired: 1000, MinThrustToWeight: 1.2}
	mass := 10000.0
	if !m.ThrustToWeightSatisfied(1.3*mass*G0, mass) {
		t.Errorf("T/W = 1.3 should satisfy min 1.2")
	}
	if m.ThrustToWeightSatisfied(1.1*mass*G0, mass) {
		t.Errorf("T/W = 1.1 should not satisfy min 1.2")
	}
}

func TestBurnTimeSatisfied(t *testing.T) {
	unconstrained := Mission{DeltaVRequired: 1000}
	if !unconstrained.BurnTimeSatisfied(1e9) {
		t.Errorf("nil max burn time must always be satisfied")
	}

	m := Mission{DeltaVRequired: 1000, MaxBurnTime: Float(450)}
	if !m.BurnTimeSatisfied(450) {
		t.Errorf("burn time equal to the ceiling should satisfy it")
	}
	if m.BurnTimeSatisfied(451) {
		t.Errorf("burn time above the ceiling should not satisfy it")
	}
}

// PropellantForDeltaV must be the exact algebraic inverse of
// AchievedDeltaV: sizing propellant for a target and evaluating the
// resulting masses reproduces the target.
func TestPropellantForDeltaV_InvertsAchievedDeltaV(t *testing.T) {
	m := NewMission(0)

	cases := []struct {
		isp, dry, payload, deltaV float64
	}{
		{300, 500, 200, 3000},
		{387.75, 900, 0, 6300},
		{250, 1500, 4000, 750},
	}
	for _, tc := range cases {
		prop, err := m.PropellantForDeltaV(tc.isp, tc.dry, tc.payload, tc.deltaV)
		if err != nil {
			t.Fatalf("PropellantForDeltaV: %v", err)
		}

		m0 := tc.dry + tc.payload + prop
		mf := tc.dry + tc.payload
		achieved, err := m.AchievedDeltaV(tc.isp, m0, mf)
		if err != nil {
			t.Fatalf("AchievedDeltaV: %v", err)
		}
		if !almostEqual(achieved, tc.deltaV, 1e-6) {
			t.Errorf("round trip: achieved %g, want %g (isp=%g)", achieved, tc.deltaV, tc.isp)
		}
	}
}

func TestPropellantForDeltaV_NonPositiveIsp(t *testing.T) {
	m := NewMission(0)

	for _, isp := range []float64{0, -100} {
		if _, err := m.PropellantForDeltaV(isp, 500, 200, 3000); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("isp=%g: expected ErrInvalidParameter, got %v", isp, err)
		}
	}
}

func TestPropellantForMission_UsesTotalRequirement(t *testing.T) {
	m := Mission{DeltaVRequired: 6000, Margin: 0.05}

	prop, err := m.PropellantForMission(387.75, 900, 0)
	if err != nil {
		t.Fatalf("PropellantForMission: %v", err)
	}

	want, err := m.PropellantForDeltaV(387.75, 900, 0, m.TotalDeltaVRequired())
	if err != nil {
		t.Fatalf("PropellantForDeltaV: %v", err)
	}
	if prop != want {
		t.Fatalf("PropellantForMission = %g, want %g", prop, want)
	}
}
