package core

import (
	"context"
	"fmt"
	"time"

	"github.com/signalsfoundry/propulsion-sizer/internal/logging"
	"github.com/signalsfoundry/propulsion-sizer/internal/observability"
	"github.com/signalsfoundry/propulsion-sizer/model"
)

// StageMetrics is the per-stage outcome of a mission evaluation.
type StageMetrics struct {
	// Index is the stage's position in the vehicle, 0 = bottom.
	Index            int
	AchievedDeltaV   float64
	Thrust           float64
	SpecificImpulse  float64
	BurnTime         float64
	ThrustToWeightOK bool
	BurnTimeOK       bool
}

// EvaluationResult aggregates per-stage metrics and the overall verdict.
// An unsatisfied mission is a normal result, never an error; errors are
// reserved for malformed vehicles (unset engine fields, bad masses).
type EvaluationResult struct {
	Stages           []StageMetrics
	TotalDeltaV      float64
	MissionSatisfied bool
}

// Evaluator runs mission evaluations and parameter sweeps. The logger and
// collector are optional; a zero Evaluator is usable.
type Evaluator struct {
	log     logging.Logger
	metrics *observability.SweepCollector

	// Workers bounds sweep parallelism. 0 or 1 means sequential.
	Workers int
}

// NewEvaluator constructs an evaluator. log may be nil for silence and
// metrics may be nil to skip instrumentation.
func NewEvaluator(log logging.Logger, metrics *observability.SweepCollector) *Evaluator {
	if log == nil {
		log = logging.Noop()
	}
	return &Evaluator{log: log, metrics: metrics}
}

func (e *Evaluator) logger() logging.Logger {
	if e.log == nil {
		return logging.Noop()
	}
	return e.log
}

// EvaluateMission stacks the vehicle's masses and evaluates every stage
// against the mission.
//
// Per stage it computes ignition and burnout mass, Isp, thrust, burn time,
// and achieved Δv. Thrust-to-weight is checked only for stage 0, the
// vehicle's actual liftoff T/W; every stage is held to the burn-time
// ceiling. The mission is satisfied when the summed Δv meets the total
// requirement and all checked constraints hold.
//
// The vehicle transitions unstacked → stacked → evaluated; stacking is
// idempotent, so re-evaluating the same vehicle instance is safe.
func (e *Evaluator) EvaluateMission(ctx context.Context, vehicle *model.LaunchVehicle, mission model.Mission) (*EvaluationResult, error) {
	start := time.Now()
	vehicle.StackMasses()

	result := &EvaluationResult{
		Stages: make([]StageMetrics, 0, len(vehicle.Stages)),
	}

	for i, stage := range vehicle.Stages {
		if stage.Engine == nil {
			return nil, fmt.Errorf("stage %d: %w", i, model.ErrMissingEngine)
		}

		m0 := stage.InitialMass()
		mf := stage.FinalMass()

		isp, err := stage.Engine.SpecificImpulse()
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		thrust, err := stage.Engine.TotalThrust()
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		burnTime, err := stage.BurnTime()
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		dv, err := mission.AchievedDeltaV(isp, m0, mf)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}

		twOK := true
		if i == 0 {
			twOK = mission.ThrustToWeightSatisfied(thrust, m0)
		}

		result.Stages = append(result.Stages, StageMetrics{
			Index:            i,
			AchievedDeltaV:   dv,
			Thrust:           thrust,
			SpecificImpulse:  isp,
			BurnTime:         burnTime,
			ThrustToWeightOK: twOK,
			BurnTimeOK:       mission.BurnTimeSatisfied(burnTime),
		})
		result.TotalDeltaV += dv
	}

	satisfied := result.TotalDeltaV >= mission.TotalDeltaVRequired()
	for _, sm := range result.Stages {
		if !sm.ThrustToWeightOK || !sm.BurnTimeOK {
			satisfied = false
		}
	}
	result.MissionSatisfied = satisfied

	e.metrics.ObserveEvaluation(time.Since(start))
	e.logger().Debug(ctx, "mission evaluated",
		logging.Int("stages", len(result.Stages)),
		logging.Float64("total_delta_v", result.TotalDeltaV),
		logging.Float64("required_delta_v", mission.TotalDeltaVRequired()),
		logging.Any("satisfied", result.MissionSatisfied),
	)

	return result, nil
}

// EvaluateMission evaluates a vehicle against a mission with a silent,
// uninstrumented evaluator.
func EvaluateMission(vehicle *model.LaunchVehicle, mission model.Mission) (*EvaluationResult, error) {
	return NewEvaluator(nil, nil).EvaluateMission(context.Background(), vehicle, mission)
}
