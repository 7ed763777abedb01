package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/outbreak-sim/outbreak-sim/sim"
)

// BaseConfig holds the shared parameters every scenario in a batch file
// starts from.
type BaseConfig struct {
	Population       float64 `yaml:"population"`
	InitialInfected  float64 `yaml:"initial_infected"`
	InitialRecovered float64 `yaml:"initial_recovered"`
	Beta             float64 `yaml:"beta"`
	Gamma            float64 `yaml:"gamma"`
	Capacity         float64 `yaml:"capacity"`
	DT               float64 `yaml:"dt"`
	Days             int     `yaml:"days"`
}

// ScenarioOverride names one scenario and the parameters it changes relative
// to the base. Scale fields multiply the base value; absolute fields replace
// it. An absolute field wins over its scale counterpart.
type ScenarioOverride struct {
	Label           string   `yaml:"label"`
	Beta            *float64 `yaml:"beta,omitempty"`
	BetaScale       *float64 `yaml:"beta_scale,omitempty"`
	Gamma           *float64 `yaml:"gamma,omitempty"`
	Capacity        *float64 `yaml:"capacity,omitempty"`
	CapacityScale   *float64 `yaml:"capacity_scale,omitempty"`
	InitialInfected *float64 `yaml:"initial_infected,omitempty"`
	Days            *int     `yaml:"days,omitempty"`
	Saturation      string   `yaml:"saturation,omitempty"`
}

// BatchConfig represents the full scenario batch file structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type BatchConfig struct {
	Version   string             `yaml:"version"`
	Base      BaseConfig         `yaml:"base"`
	Scenarios []ScenarioOverride `yaml:"scenarios"`
}

// LoadBatchConfig reads and strictly decodes a scenario batch file. Unknown
// YAML keys are an error, not silently dropped.
func LoadBatchConfig(path string) (*BatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg BatchConfig
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse batch config %s: %w", path, err)
	}
	if len(cfg.Scenarios) == 0 {
		return nil, fmt.Errorf("batch config %s declares no scenarios", path)
	}
	return &cfg, nil
}

// BuildScenarios resolves every override against the base parameters and
// returns ready-to-run scenarios in file order.
func (cfg *BatchConfig) BuildScenarios() ([]sim.Scenario, error) {
	scenarios := make([]sim.Scenario, 0, len(cfg.Scenarios))
	for i, ov := range cfg.Scenarios {
		label := ov.Label
		if label == "" {
			label = fmt.Sprintf("scenario_%d", i+1)
		}

		beta := cfg.Base.Beta
		if ov.BetaScale != nil {
			beta *= *ov.BetaScale
		}
		if ov.Beta != nil {
			beta = *ov.Beta
		}

		capacity := cfg.Base.Capacity
		if ov.CapacityScale != nil {
			capacity *= *ov.CapacityScale
		}
		if ov.Capacity != nil {
			capacity = *ov.Capacity
		}

		gamma := cfg.Base.Gamma
		if ov.Gamma != nil {
			gamma = *ov.Gamma
		}

		i0 := cfg.Base.InitialInfected
		if ov.InitialInfected != nil {
			i0 = *ov.InitialInfected
		}

		days := cfg.Base.Days
		if ov.Days != nil {
			days = *ov.Days
		}

		policyName := ov.Saturation
		if policyName == "" {
			policyName = "throughput-capped"
		}
		policy, ok := saturationPolicy(policyName)
		if !ok {
			return nil, fmt.Errorf("scenario %q: unknown saturation policy %q", label, policyName)
		}

		dt := cfg.Base.DT
		if dt == 0 {
			dt = 1
		}

		p := sim.Params{
			N:          cfg.Base.Population,
			Beta:       beta,
			Gamma0:     gamma,
			Capacity:   capacity,
			DT:         dt,
			Steps:      days,
			S0:         cfg.Base.Population - i0 - cfg.Base.InitialRecovered,
			I0:         i0,
			R0:         cfg.Base.InitialRecovered,
			Saturation: policy,
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", label, err)
		}
		scenarios = append(scenarios, sim.Scenario{Label: label, Params: p})
	}
	return scenarios, nil
}
