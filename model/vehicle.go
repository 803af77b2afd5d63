package model

// LaunchVehicle is an ordered stack of stages, bottom (index 0, ignites
// first) to top (index n−1, ignites last).
type LaunchVehicle struct {
	Stages []*Stage

	// originalPayloads snapshots each stage's payload before the first
	// StackMasses call, so stacking can be recomputed from scratch instead
	// of accumulating in place. This is what makes StackMasses idempotent.
	originalPayloads []float64
}

// NewLaunchVehicle builds a vehicle from stages ordered bottom to top.
func NewLaunchVehicle(stages ...*Stage) *LaunchVehicle {
	return &LaunchVehicle{Stages: stages}
}

// StackMasses rewrites each stage's payload to its original payload plus
// the full fueled mass of every stage above it, cascading top-down so each
// stage's already-updated total is what the stage below must lift. The top
// stage keeps its original payload; a single-stage vehicle is a no-op.
//
// The operation is idempotent: payloads are always derived from the
// snapshot taken on the first call, so re-stacking never double-counts.
func (v *LaunchVehicle) StackMasses() {
	if v.originalPayloads == nil {
		v.originalPayloads = make([]float64, len(v.Stages))
		for i, s := range v.Stages {
			v.originalPayloads[i] = s.PayloadMass
		}
	}

	upperMass := 0.0
	for i := len(v.Stages) - 1; i >= 0; i-- {
		s := v.Stages[i]
		s.PayloadMass = v.originalPayloads[i] + upperMass
		upperMass = s.InitialMass()
	}
}

// TotalDeltaV sums every stage's Δv, propagating the first per-stage
// failure.
func (v *LaunchVehicle) TotalDeltaV() (float64, error) {
	total := 0.0
	for _, s := range v.Stages {
		dv, err := s.DeltaV()
		if err != nil {
			return 0, err
		}
		total += dv
	}
	return total, nil
}

// StageDeltaVs returns each stage's Δv in stage order.
func (v *LaunchVehicle) StageDeltaVs() ([]float64, error) {
	dvs := make([]float64, 0, len(v.Stages))
	for _, s := range v.Stages {
		dv, err := s.DeltaV()
		if err != nil {
			return nil, err
		}
		dvs = append(dvs, dv)
	}
	return dvs, nil
}

// TotalInitialMass is the liftoff mass: the bottom stage's initial mass.
// Meaningful only after StackMasses. Zero for an empty vehicle.
func (v *LaunchVehicle) TotalInitialMass() float64 {
	if len(v.Stages) == 0 {
		return 0
	}
	return v.Stages[0].InitialMass()
}

// Clone returns an independently owned deep copy: fresh stages and fresh
// engines, with the same stacking snapshot state. Mutating a clone never
// touches the template it came from.
func (v *LaunchVehicle) Clone() *LaunchVehicle {
	if v == nil {
		return nil
	}
	out := &LaunchVehicle{
		Stages: make([]*Stage, len(v.Stages)),
	}
	for i, s := range v.Stages {
		out.Stages[i] = s.Clone()
	}
	if v.originalPayloads != nil {
		out.originalPayloads = append([]float64{}, v.originalPayloads...)
	}
	return out
}
