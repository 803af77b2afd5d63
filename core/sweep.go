package core

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/signalsfoundry/propulsion-sizer/internal/logging"
	"github.com/signalsfoundry/propulsion-sizer/model"
)

const tracerName = "github.com/signalsfoundry/propulsion-sizer/core"

// EnginePoint is one candidate (exhaust velocity, mass flow rate)
// assignment for a single stage's engine.
type EnginePoint struct {
	ExitVelocity float64 // m/s
	MassFlowRate float64 // kg/s
}

// CandidateSet enumerates the engine parameters considered for one stage.
// Its candidate points are the Cartesian product of the two lists, exit
// velocity varying slowest.
type CandidateSet struct {
	ExitVelocities []float64
	MassFlowRates  []float64
}

// Points expands the set into its ordered candidate points.
func (cs CandidateSet) Points() []EnginePoint {
	points := make([]EnginePoint, 0, len(cs.ExitVelocities)*len(cs.MassFlowRates))
	for _, ve := range cs.ExitVelocities {
		for _, mdot := range cs.MassFlowRates {
			points = append(points, EnginePoint{ExitVelocity: ve, MassFlowRate: mdot})
		}
	}
	return points
}

// FeasibleDesign is one sweep combination that satisfied every mission
// constraint, together with its full evaluation.
type FeasibleDesign struct {
	// EngineChoices holds the chosen point per stage, bottom to top.
	EngineChoices []EnginePoint
	Result        *EvaluationResult
}

// SweepEngineParameters evaluates every combination in the Cartesian
// product of the per-stage candidate sets against the mission and returns
// the feasible designs, unranked and undeduplicated, in the product's
// natural nested order (stage 0 varies slowest).
//
// Exactly one candidate set per stage is required (ErrShapeMismatch
// otherwise). Each combination is applied to an independently owned deep
// copy of the template; the template itself is never mutated. A structural
// error for any candidate aborts the whole sweep and is returned: the
// candidates differ only in numeric parameters, so a malformed candidate
// means the template itself is malformed.
//
// When Workers > 1 candidates are evaluated by a bounded worker pool; each
// worker owns its clone and results are collected by candidate index, so
// output order is identical to the sequential order.
func (e *Evaluator) SweepEngineParameters(ctx context.Context, template *model.LaunchVehicle, mission model.Mission, sets []CandidateSet) ([]FeasibleDesign, error) {
	if len(sets) != len(template.Stages) {
		return nil, fmt.Errorf("%w: %d candidate sets for %d stages",
			model.ErrShapeMismatch, len(sets), len(template.Stages))
	}

	stagePoints := make([][]EnginePoint, len(sets))
	total := 1
	for i, cs := range sets {
		stagePoints[i] = cs.Points()
		total *= len(stagePoints[i])
	}
	if len(sets) == 0 || total == 0 {
		return nil, nil
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "sweep_engine_parameters")
	defer span.End()
	span.SetAttributes(
		attribute.Int("sweep.stages", len(sets)),
		attribute.Int("sweep.candidates", total),
	)

	e.logger().Info(ctx, "engine parameter sweep started",
		logging.Int("stages", len(sets)),
		logging.Int("candidates", total),
	)

	results := make([]*EvaluationResult, total)
	errs := make([]error, total)

	evalOne := func(k int) {
		choices := choicesForIndex(k, stagePoints)
		vehicle := template.Clone()
		for i, pt := range choices {
			engine := vehicle.Stages[i].Engine
			if engine == nil {
				errs[k] = fmt.Errorf("stage %d: %w", i, model.ErrMissingEngine)
				return
			}
			engine.ExitVelocity = model.Float(pt.ExitVelocity)
			engine.MassFlowRate = model.Float(pt.MassFlowRate)
		}
		results[k], errs[k] = e.EvaluateMission(ctx, vehicle, mission)
	}

	if e.Workers > 1 {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < e.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for k := range jobs {
					evalOne(k)
				}
			}()
		}
		for k := 0; k < total; k++ {
			jobs <- k
		}
		close(jobs)
		wg.Wait()
	} else {
		for k := 0; k < total; k++ {
			evalOne(k)
		}
	}

	e.metrics.AddCandidates(total)

	var feasible []FeasibleDesign
	for k := 0; k < total; k++ {
		if errs[k] != nil {
			return nil, fmt.Errorf("candidate %d: %w", k, errs[k])
		}
		if results[k].MissionSatisfied {
			feasible = append(feasible, FeasibleDesign{
				EngineChoices: choicesForIndex(k, stagePoints),
				Result:        results[k],
			})
			e.metrics.IncFeasible()
		}
	}

	span.SetAttributes(attribute.Int("sweep.feasible", len(feasible)))
	e.logger().Info(ctx, "engine parameter sweep finished",
		logging.Int("candidates", total),
		logging.Int("feasible", len(feasible)),
	)

	return feasible, nil
}

// SweepEngineParameters runs a sequential sweep with a silent,
// uninstrumented evaluator.
func SweepEngineParameters(template *model.LaunchVehicle, mission model.Mission, sets []CandidateSet) ([]FeasibleDesign, error) {
	return NewEvaluator(nil, nil).SweepEngineParameters(context.Background(), template, mission, sets)
}

// choicesForIndex decodes a flat candidate index into one point per stage,
// mixed-radix with stage 0 as the most significant digit.
func choicesForIndex(k int, stagePoints [][]EnginePoint) []EnginePoint {
	choices := make([]EnginePoint, len(stagePoints))
	for i := len(stagePoints) - 1; i >= 0; i-- {
		n := len(stagePoints[i])
		choices[i] = stagePoints[i][k%n]
		k /= n
	}
	return choices
}
