package config

import (
	"fmt"
	"os"

	"pawledger/internal/domain/pet"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr            string  `env:"PAWLEDGER_ADDR" envDefault:":8080"`
	DBDSN           string  `env:"PAWLEDGER_DB_DSN"`
	TuningFile      string  `env:"PAWLEDGER_TUNING_FILE"`
	DemoMultiplier  float64 `env:"PAWLEDGER_DEMO_MULTIPLIER" envDefault:"24"`
	MaxPayloadBytes int     `env:"PAWLEDGER_MAX_PAYLOAD_BYTES" envDefault:"0"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadTuning returns the default decay tuning, with per-field overrides
// from an optional YAML file. Unset fields keep their defaults.
func LoadTuning(path string) (pet.Tuning, error) {
	tuning := pet.DefaultTuning()
	if path == "" {
		return tuning, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return pet.Tuning{}, fmt.Errorf("read tuning file: %w", err)
	}
	var overrides tuningOverrides
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return pet.Tuning{}, fmt.Errorf("parse tuning file: %w", err)
	}
	overrides.apply(&tuning)
	return tuning, nil
}

type tuningOverrides struct {
	HungerPerUnit      *int `yaml:"hunger_per_unit"`
	EnergyPerUnit      *int `yaml:"energy_per_unit"`
	CleanlinessPerUnit *int `yaml:"cleanliness_per_unit"`
	HappinessPerUnit   *int `yaml:"happiness_per_unit"`
	HealthPerUnit      *int `yaml:"health_per_unit"`

	HungerNeglectBelow      *int `yaml:"hunger_neglect_below"`
	CleanlinessNeglectBelow *int `yaml:"cleanliness_neglect_below"`
	EnergyNeglectBelow      *int `yaml:"energy_neglect_below"`
}

func (o tuningOverrides) apply(t *pet.Tuning) {
	if o.HungerPerUnit != nil {
		t.HungerPerUnit = *o.HungerPerUnit
	}
	if o.EnergyPerUnit != nil {
		t.EnergyPerUnit = *o.EnergyPerUnit
	}
	if o.CleanlinessPerUnit != nil {
		t.CleanlinessPerUnit = *o.CleanlinessPerUnit
	}
	if o.HappinessPerUnit != nil {
		t.HappinessPerUnit = *o.HappinessPerUnit
	}
	if o.HealthPerUnit != nil {
		t.HealthPerUnit = *o.HealthPerUnit
	}
	if o.HungerNeglectBelow != nil {
		t.HungerNeglectBelow = *o.HungerNeglectBelow
	}
	if o.CleanlinessNeglectBelow != nil {
		t.CleanlinessNeglectBelow = *o.CleanlinessNeglectBelow
	}
	if o.EnergyNeglectBelow != nil {
		t.EnergyNeglectBelow = *o.EnergyNeglectBelow
	}
}
