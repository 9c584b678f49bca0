// Package config loads and saves mission files: the vehicle stage
// list, the simulation step parameters, and the controller gains, as
// yaml.
package config

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rocketsim/internal/gnc"
	"github.com/san-kum/rocketsim/internal/sim"
	"github.com/san-kum/rocketsim/internal/vehicle"
)

// ErrInvalid marks a config rejected by validation.
var ErrInvalid = errors.New("config: invalid")

// Config is the full mission file.
type Config struct {
	Mission    MissionConfig    `yaml:"mission"`
	Sim        SimConfig        `yaml:"sim"`
	Controller ControllerConfig `yaml:"controller"`
}

type MissionConfig struct {
	Name   string        `yaml:"name"`
	Stages []StageConfig `yaml:"stages"`
}

type StageConfig struct {
	Name           string    `yaml:"name"`
	DryMass        float64   `yaml:"dry_mass"`
	PropellantMass float64   `yaml:"propellant_mass"`
	Thrust         float64   `yaml:"thrust"`
	Isp            float64   `yaml:"isp"`
	Cd             float64   `yaml:"cd"`
	Area           float64   `yaml:"area"`
	Inertia        []float64 `yaml:"inertia"` // [Ixx, Iyy, Izz]
	NozzleOffset   float64   `yaml:"nozzle_offset"`
	CPOffset       float64   `yaml:"cp_offset"`
	TVCMax         float64   `yaml:"tvc_max"`
}

type SimConfig struct {
	Dt      float64 `yaml:"dt"`
	MaxTime float64 `yaml:"max_time"`
}

type ControllerConfig struct {
	Kind string  `yaml:"kind"` // tvc, bangbang, zero
	Kp   float64 `yaml:"kp"`
	Ki   float64 `yaml:"ki"`
	Kd   float64 `yaml:"kd"`
}

// Default returns a config flying the Pathfinder preset with the stock
// step and controller parameters.
func Default() *Config {
	return FromMission(vehicle.Pathfinder())
}

// FromMission turns an assembled mission into a config with default
// sim and controller sections.
func FromMission(m vehicle.Mission) *Config {
	stages := make([]StageConfig, len(m.Stages))
	for i, s := range m.Stages {
		stages[i] = StageConfig{
			Name:           s.Name,
			DryMass:        s.DryMass,
			PropellantMass: s.PropellantMass,
			Thrust:         s.Thrust,
			Isp:            s.Isp,
			Cd:             s.Cd,
			Area:           s.Area,
			Inertia:        []float64{s.Inertia.X, s.Inertia.Y, s.Inertia.Z},
			NozzleOffset:   s.NozzleOffset,
			CPOffset:       s.CPOffset,
			TVCMax:         s.TVCMax,
		}
	}
	return &Config{
		Mission: MissionConfig{Name: m.Name, Stages: stages},
		Sim:     SimConfig{Dt: 0.005, MaxTime: 600},
		Controller: ControllerConfig{
			Kind: "tvc",
			Kp:   2.0,
			Ki:   0.1,
			Kd:   0.5,
		},
	}
}

// Load reads, parses and validates a mission file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as yaml.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate fails fast on degenerate configurations instead of letting
// the integrator diverge.
func (c *Config) Validate() error {
	if c.Sim.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, c.Sim.Dt)
	}
	if c.Sim.MaxTime <= 0 {
		return fmt.Errorf("%w: max_time must be positive, got %g", ErrInvalid, c.Sim.MaxTime)
	}
	mission, err := c.ToMission()
	if err != nil {
		return err
	}
	if err := mission.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.ToController(); err != nil {
		return err
	}
	return nil
}

// ToMission assembles the vehicle.Mission described by the config.
func (c *Config) ToMission() (vehicle.Mission, error) {
	b := vehicle.NewMissionBuilder(c.Mission.Name)
	for i, sc := range c.Mission.Stages {
		if len(sc.Inertia) != 0 && len(sc.Inertia) != 3 {
			return vehicle.Mission{}, fmt.Errorf("%w: stage %d inertia needs 3 components", ErrInvalid, i)
		}
		sb := vehicle.NewStageBuilder(sc.Name).
			DryMass(sc.DryMass).
			PropellantMass(sc.PropellantMass).
			Thrust(sc.Thrust).
			Isp(sc.Isp).
			Cd(sc.Cd).
			Area(sc.Area).
			NozzleOffset(sc.NozzleOffset).
			CPOffset(sc.CPOffset).
			TVCMax(sc.TVCMax)
		if len(sc.Inertia) == 3 {
			sb.Inertia(r3.Vec{X: sc.Inertia[0], Y: sc.Inertia[1], Z: sc.Inertia[2]})
		}
		b.Stage(sb.Build())
	}
	return b.Build(), nil
}

// ToSim returns the runner configuration.
func (c *Config) ToSim() sim.Config {
	return sim.Config{Dt: c.Sim.Dt, MaxTime: c.Sim.MaxTime}
}

// ToController constructs the configured controller. Each call returns
// a fresh instance so concurrent runs never share PID state.
func (c *Config) ToController() (gnc.Controller, error) {
	switch c.Controller.Kind {
	case "", "tvc":
		ctrl := gnc.NewTVC()
		ctrl.PitchPID = gnc.NewPID(c.Controller.Kp, c.Controller.Ki, c.Controller.Kd)
		ctrl.YawPID = gnc.NewPID(c.Controller.Kp, c.Controller.Ki, c.Controller.Kd)
		return ctrl, nil
	case "bangbang":
		return &gnc.BangBang{PitchoverStart: 3, PitchoverEnd: 8, GimbalKick: 0.08}, nil
	case "zero":
		return gnc.Zero{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown controller %q", ErrInvalid, c.Controller.Kind)
	}
}
