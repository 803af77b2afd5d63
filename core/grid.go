package core

import (
	"context"
	"math"

	"github.com/signalsfoundry/propulsion-sizer/internal/logging"
	"github.com/signalsfoundry/propulsion-sizer/model"
)

// SweepGrid holds the vectorized single-stage sweep output: same-shaped
// grids indexed [exit velocity index][mass flow rate index]. Cells whose
// candidate could not be evaluated structurally (e.g. a non-positive mass
// flow rate) carry NaN in the numeric grids and false in Feasible.
type SweepGrid struct {
	ExitVelocities []float64
	MassFlowRates  []float64

	DeltaV         [][]float64
	ThrustToWeight [][]float64
	BurnTime       [][]float64
	Feasible       [][]bool
}

// GridSweep evaluates a dense (exit velocity × mass flow rate) grid for a
// single stage flown alone against the mission. Unlike the N-stage sweep,
// a structural failure in one cell never aborts the sweep; the cell is
// simply marked not-a-number and infeasible.
//
// The stage template must carry an engine; it is cloned per cell and never
// mutated.
func (e *Evaluator) GridSweep(ctx context.Context, stage *model.Stage, mission model.Mission, exitVelocities, massFlowRates []float64) (*SweepGrid, error) {
	if stage == nil || stage.Engine == nil {
		return nil, model.ErrMissingEngine
	}

	grid := &SweepGrid{
		ExitVelocities: append([]float64{}, exitVelocities...),
		MassFlowRates:  append([]float64{}, massFlowRates...),
		DeltaV:         make([][]float64, len(exitVelocities)),
		ThrustToWeight: make([][]float64, len(exitVelocities)),
		BurnTime:       make([][]float64, len(exitVelocities)),
		Feasible:       make([][]bool, len(exitVelocities)),
	}

	feasibleCells := 0
	for i, ve := range exitVelocities {
		grid.DeltaV[i] = make([]float64, len(massFlowRates))
		grid.ThrustToWeight[i] = make([]float64, len(massFlowRates))
		grid.BurnTime[i] = make([]float64, len(massFlowRates))
		grid.Feasible[i] = make([]bool, len(massFlowRates))

		for j, mdot := range massFlowRates {
			candidate := stage.Clone()
			candidate.Engine.ExitVelocity = model.Float(ve)
			candidate.Engine.MassFlowRate = model.Float(mdot)

			dv, tw, bt, ok := evaluateCell(candidate, mission)
			grid.DeltaV[i][j] = dv
			grid.ThrustToWeight[i][j] = tw
			grid.BurnTime[i][j] = bt
			grid.Feasible[i][j] = ok
			if ok {
				feasibleCells++
			}
		}
	}

	e.logger().Debug(ctx, "grid sweep finished",
		logging.Int("cells", len(exitVelocities)*len(massFlowRates)),
		logging.Int("feasible", feasibleCells),
	)

	return grid, nil
}

// GridSweep runs a vectorized single-stage sweep with a silent,
// uninstrumented evaluator.
func GridSweep(stage *model.Stage, mission model.Mission, exitVelocities, massFlowRates []float64) (*SweepGrid, error) {
	return NewEvaluator(nil, nil).GridSweep(context.Background(), stage, mission, exitVelocities, massFlowRates)
}

// evaluateCell computes one grid cell. Any structural error yields NaNs
// and an infeasible cell.
func evaluateCell(stage *model.Stage, mission model.Mission) (dv, tw, bt float64, feasible bool) {
	nan := math.NaN()

	dv, err := stage.DeltaV()
	if err != nil {
		return nan, nan, nan, false
	}
	tw, err = stage.ThrustToWeight()
	if err != nil {
		return nan, nan, nan, false
	}
	bt, err = stage.BurnTime()
	if err != nil {
		return nan, nan, nan, false
	}
	thrust, err := stage.Engine.TotalThrust()
	if err != nil {
		return nan, nan, nan, false
	}

	feasible = dv >= mission.TotalDeltaVRequired() &&
		mission.ThrustToWeightSatisfied(thrust, stage.InitialMass()) &&
		mission.BurnTimeSatisfied(bt)
	return dv, tw, bt, feasible
}
