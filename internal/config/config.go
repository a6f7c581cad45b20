package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPellets  = 500
	DefaultTickRate = 60
	DefaultSeconds  = 20.0
	DefaultDataDir  = ".shakerbed"
	DefaultTheme    = "amber"
	DefaultGesture  = "scramble"
)

// Dryer defaults mirror a small single-hopper desiccant dryer.
const (
	DefaultPetTempC        = 140.0
	DefaultCartridgeTempC  = 180.0
	DefaultAirflowM3PerMin = 3.5
	DefaultInitialMoisture = 0.4
	DefaultTargetMoisture  = 0.1
	DefaultPetMassKg       = 1.0
	DefaultSilicaMassG     = 800.0
	DefaultInitialSilica   = 2.0
	DefaultMaxSilica       = 25.0
	DefaultSwitchingMin    = 60
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Pellets  int         `yaml:"pellets"`
	Seed     int64       `yaml:"seed"`
	TickRate int         `yaml:"tick_rate"`
	DataDir  string      `yaml:"data_dir"`
	Theme    string      `yaml:"theme"`
	Run      RunConfig   `yaml:"run"`
	Dryer    DryerConfig `yaml:"dryer"`
}

type RunConfig struct {
	Gesture string  `yaml:"gesture"`
	Seconds float64 `yaml:"seconds"`
	Loop    bool    `yaml:"loop"`
}

type DryerConfig struct {
	PetTempC         float64 `yaml:"pet_temp_c"`
	CartridgeTempC   float64 `yaml:"cartridge_temp_c"`
	AirflowM3PerMin  float64 `yaml:"airflow_m3_per_min"`
	InitialMoisture  float64 `yaml:"initial_moisture_pct"`
	TargetMoisture   float64 `yaml:"target_moisture_pct"`
	PetMassKg        float64 `yaml:"pet_mass_kg"`
	SilicaMassG      float64 `yaml:"silica_mass_g"`
	InitialSilicaPct float64 `yaml:"initial_silica_pct"`
	MaxSilicaPct     float64 `yaml:"max_silica_pct"`
	SwitchingMin     int     `yaml:"switching_min"`
}

func DefaultConfig() *Config {
	return &Config{
		Pellets:  DefaultPellets,
		TickRate: DefaultTickRate,
		DataDir:  DefaultDataDir,
		Theme:    DefaultTheme,
		Run: RunConfig{
			Gesture: DefaultGesture,
			Seconds: DefaultSeconds,
		},
		Dryer: DryerConfig{
			PetTempC:         DefaultPetTempC,
			CartridgeTempC:   DefaultCartridgeTempC,
			AirflowM3PerMin:  DefaultAirflowM3PerMin,
			InitialMoisture:  DefaultInitialMoisture,
			TargetMoisture:   DefaultTargetMoisture,
			PetMassKg:        DefaultPetMassKg,
			SilicaMassG:      DefaultSilicaMassG,
			InitialSilicaPct: DefaultInitialSilica,
			MaxSilicaPct:     DefaultMaxSilica,
			SwitchingMin:     DefaultSwitchingMin,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Dt returns the physics timestep implied by the tick rate.
func (c *Config) Dt() float64 {
	return 1.0 / float64(c.TickRate)
}

func (c *Config) Validate() error {
	if c.Pellets <= 0 {
		return fmt.Errorf("%w: pellets must be positive, got %d", ErrInvalid, c.Pellets)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalid, c.TickRate)
	}
	if c.Run.Seconds < 0 {
		return fmt.Errorf("%w: run.seconds must not be negative, got %f", ErrInvalid, c.Run.Seconds)
	}
	if c.Dryer.PetMassKg <= 0 {
		return fmt.Errorf("%w: dryer.pet_mass_kg must be positive, got %f", ErrInvalid, c.Dryer.PetMassKg)
	}
	if c.Dryer.SilicaMassG <= 0 {
		return fmt.Errorf("%w: dryer.silica_mass_g must be positive, got %f", ErrInvalid, c.Dryer.SilicaMassG)
	}
	if c.Dryer.TargetMoisture >= c.Dryer.InitialMoisture {
		return fmt.Errorf("%w: dryer target moisture %f must be below initial %f",
			ErrInvalid, c.Dryer.TargetMoisture, c.Dryer.InitialMoisture)
	}
	if c.Dryer.SwitchingMin <= 0 {
		return fmt.Errorf("%w: dryer.switching_min must be positive, got %d", ErrInvalid, c.Dryer.SwitchingMin)
	}
	return nil
}
