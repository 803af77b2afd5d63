package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/signalsfoundry/propulsion-sizer/catalog"
	"github.com/signalsfoundry/propulsion-sizer/model"
)

// DesignStudy is a fully assembled sweep input parsed from JSON: a vehicle
// template, the mission it must fly, and the per-stage candidate sets.
type DesignStudy struct {
	VehicleName   string
	Vehicle       *model.LaunchVehicle
	MissionName   string
	Mission       model.Mission
	CandidateSets []CandidateSet

	// EngineNames lists the engine templates registered while loading,
	// mainly useful for logging from the caller.
	EngineNames []string
}

// internal JSON shapes – kept unexported so we're free to evolve them.
type designStudyJSON struct {
	Engines       []engineJSON       `json:"engines"`
	Stages        []stageJSON        `json:"stages"`
	VehicleName   string             `json:"vehicle_name"`
	Mission       missionJSON        `json:"mission"`
	CandidateSets []candidateSetJSON `json:"candidate_sets"`
}

type engineJSON struct {
	Name            string   `json:"name"`
	MassFlowRate    *float64 `json:"mass_flow_rate"`
	ExitVelocity    *float64 `json:"exit_velocity"`
	Efficiency      float64  `json:"efficiency"`       // 0 defaults to 1.0
	ExitPressure    *float64 `json:"exit_pressure"`    // optional
	AmbientPressure float64  `json:"ambient_pressure"` // defaults to 0
	ExitArea        *float64 `json:"exit_area"`        // optional
}

type stageJSON struct {
	Engine         string  `json:"engine"` // name of a declared engine
	PropellantMass float64 `json:"propellant_mass"`
	DryMass        float64 `json:"dry_mass"`
	PayloadMass    float64 `json:"payload_mass"`
}

type missionJSON struct {
	Name              string   `json:"name"`
	DeltaVRequired    float64  `json:"delta_v_required"`
	GravityLoss       float64  `json:"gravity_loss"`
	Margin            float64  `json:"margin"`
	MinThrustToWeight float64  `json:"min_thrust_to_weight"`
	MaxBurnTime       *float64 `json:"max_burn_time"` // optional
}

type candidateSetJSON struct {
	ExitVelocities []float64 `json:"exit_velocities"`
	MassFlowRates  []float64 `json:"mass_flow_rates"`
}

// LoadDesignStudy reads a JSON design study from r, registers the declared
// engines, mission, and vehicle template in the catalog, and returns the
// assembled study ready to sweep.
//
// It deliberately fails only on JSON / structural errors (empty names,
// references to undeclared engines, duplicate catalog entries). Whether
// the candidate sets fit the vehicle is the sweep's shape check, not the
// loader's.
func LoadDesignStudy(cat *catalog.Catalog, r io.Reader) (*DesignStudy, error) {
	if cat == nil {
		return nil, fmt.Errorf("LoadDesignStudy: catalog is nil")
	}

	var payload designStudyJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadDesignStudy: decode failed: %w", err)
	}

	study := &DesignStudy{
		VehicleName: payload.VehicleName,
		MissionName: payload.Mission.Name,
		EngineNames: make([]string, 0, len(payload.Engines)),
	}

	// 1) Engines
	for _, js := range payload.Engines {
		if js.Name == "" {
			return nil, fmt.Errorf("LoadDesignStudy: engine with empty name")
		}

		efficiency := js.Efficiency
		if efficiency == 0 {
			efficiency = 1.0
		}

		engine := &model.PropulsionSystem{
			MassFlowRate:    js.MassFlowRate,
			ExitVelocity:    js.ExitVelocity,
			Efficiency:      efficiency,
			ExitPressure:    js.ExitPressure,
			AmbientPressure: js.AmbientPressure,
			ExitArea:        js.ExitArea,
		}
		if err := cat.AddEngine(js.Name, engine); err != nil {
			return nil, fmt.Errorf("LoadDesignStudy: %w", err)
		}
		study.EngineNames = append(study.EngineNames, js.Name)
	}

	// 2) Stages → vehicle template. Each stage gets its own clone of the
	// named engine template; stages never share an engine instance.
	stages := make([]*model.Stage, 0, len(payload.Stages))
	for i, js := range payload.Stages {
		engine := cat.Engine(js.Engine)
		if engine == nil {
			return nil, fmt.Errorf("LoadDesignStudy: stage %d references unknown engine %q", i, js.Engine)
		}
		stage := model.NewStage(engine.Clone(), js.PropellantMass, js.DryMass)
		stage.PayloadMass = js.PayloadMass
		stages = append(stages, stage)
	}
	study.Vehicle = model.NewLaunchVehicle(stages...)

	if payload.VehicleName != "" {
		if err := cat.AddVehicle(payload.VehicleName, study.Vehicle); err != nil {
			return nil, fmt.Errorf("LoadDesignStudy: %w", err)
		}
	}

	// 3) Mission
	study.Mission = model.Mission{
		DeltaVRequired:    payload.Mission.DeltaVRequired,
		GravityLoss:       payload.Mission.GravityLoss,
		Margin:            payload.Mission.Margin,
		MinThrustToWeight: payload.Mission.MinThrustToWeight,
		MaxBurnTime:       payload.Mission.MaxBurnTime,
	}
	if payload.Mission.Name != "" {
		if err := cat.AddMission(payload.Mission.Name, study.Mission); err != nil {
			return nil, fmt.Errorf("LoadDesignStudy: %w", err)
		}
	}

	// 4) Candidate sets
	study.CandidateSets = make([]CandidateSet, 0, len(payload.CandidateSets))
	for _, js := range payload.CandidateSets {
		study.CandidateSets = append(study.CandidateSets, CandidateSet{
			ExitVelocities: js.ExitVelocities,
			MassFlowRates:  js.MassFlowRates,
		})
	}

	return study, nil
}
