package catalog

import (
	"fmt"
	"sync"

	"github.com/signalsfoundry/propulsion-sizer/model"
)

// MetricsRecorder mirrors catalog entity counts into gauges. The
// observability collector satisfies this; a nil recorder is ignored.
type MetricsRecorder interface {
	SetCatalogCounts(engines, missions, vehicles int)
}

// Catalog is an in-memory, thread-safe store of named engine models,
// missions, and vehicle templates for a design study.
type Catalog struct {
	mu sync.RWMutex

	engines  map[string]*model.PropulsionSystem
	missions map[string]model.Mission
	vehicles map[string]*model.LaunchVehicle

	recorder MetricsRecorder
}

// New constructs an empty catalog.
func New() *Catalog {
	return &Catalog{
		engines:  make(map[string]*model.PropulsionSystem),
		missions: make(map[string]model.Mission),
		vehicles: make(map[string]*model.LaunchVehicle),
	}
}

// SetMetricsRecorder attaches a recorder and pushes current counts to it.
func (c *Catalog) SetMetricsRecorder(r MetricsRecorder) {
	c.mu.Lock()
	c.recorder = r
	c.mu.Unlock()
	c.publishCounts()
}

// AddEngine stores an engine template. It returns an error if the name is
// already taken.
func (c *Catalog) AddEngine(name string, engine *model.PropulsionSystem) error {
	c.mu.Lock()
	if _, exists := c.engines[name]; exists {
		c.mu.Unlock()
		return fmt.Errorf("engine %q already exists", name)
	}
	c.engines[name] = engine
	c.mu.Unlock()

	c.publishCounts()
	return nil
}

// AddMission stores a mission. It returns an error if the name is already
// taken.
func (c *Catalog) AddMission(name string, mission model.Mission) error {
	c.mu.Lock()
	if _, exists := c.missions[name]; exists {
		c.mu.Unlock()
		return fmt.Errorf("mission %q already exists", name)
	}
	c.missions[name] = mission
	c.mu.Unlock()

	c.publishCounts()
	return nil
}

// AddVehicle stores a vehicle template. It returns an error if the name is
// already taken.
func (c *Catalog) AddVehicle(name string, vehicle *model.LaunchVehicle) error {
	c.mu.Lock()
	if _, exists := c.vehicles[name]; exists {
		c.mu.Unlock()
		return fmt.Errorf("vehicle %q already exists", name)
	}
	c.vehicles[name] = vehicle
	c.mu.Unlock()

	c.publishCounts()
	return nil
}

// Engine returns the engine template with the given name, or nil. Callers
// that mutate it (sweeps) must Clone first.
func (c *Catalog) Engine(name string) *model.PropulsionSystem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.engines[name]
}

// Mission returns the mission with the given name. The second result is
// false when absent.
func (c *Catalog) Mission(name string) (model.Mission, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.missions[name]
	return m, ok
}

// Vehicle returns the vehicle template with the given name, or nil.
// Callers that mutate it must Clone first.
func (c *Catalog) Vehicle(name string) *model.LaunchVehicle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vehicles[name]
}

// EngineNames returns a snapshot of the stored engine names.
func (c *Catalog) EngineNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.engines))
	for name := range c.engines {
		names = append(names, name)
	}
	return names
}

// Counts returns the number of stored engines, missions, and vehicles.
func (c *Catalog) Counts() (engines, missions, vehicles int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.engines), len(c.missions), len(c.vehicles)
}

func (c *Catalog) publishCounts() {
	c.mu.RLock()
	r := c.recorder
	engines, missions, vehicles := len(c.engines), len(c.missions), len(c.vehicles)
	c.mu.RUnlock()

	if r != nil {
		r.SetCatalogCounts(engines, missions, vehicles)
	}
}
