// pkg/config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/opd-ai/go-glide/pkg/boost"
	"github.com/opd-ai/go-glide/pkg/camera"
	"github.com/opd-ai/go-glide/pkg/curve"
	"github.com/opd-ai/go-glide/pkg/flight"
	"github.com/opd-ai/go-glide/pkg/input"
	"github.com/opd-ai/go-glide/pkg/proximity"
)

// EnvPrefix prefixes every environment override, e.g. GLIDE_BOOST_CAPACITY
const EnvPrefix = "GLIDE"

// Config contains the full configuration of a glide simulation
type Config struct {
	LogLevel   string           `json:"log_level" mapstructure:"log_level"`
	Flight     FlightConfig     `json:"flight" mapstructure:"flight"`
	Boost      BoostConfig      `json:"boost" mapstructure:"boost"`
	Camera     camera.Settings  `json:"camera" mapstructure:"camera"`
	Input      InputConfig      `json:"input" mapstructure:"input"`
	Proximity  proximity.Radii  `json:"proximity" mapstructure:"proximity"`
	Simulation SimulationConfig `json:"simulation" mapstructure:"simulation"`
}

// FlightConfig contains the flight tuning
type FlightConfig struct {
	BaseSpeed           float64         `json:"base_speed" mapstructure:"base_speed"`
	MaxSpeed            float64         `json:"max_speed" mapstructure:"max_speed"`
	MinSpeed            float64         `json:"min_speed" mapstructure:"min_speed"`
	LiftStrength        float64         `json:"lift_strength" mapstructure:"lift_strength"`
	ThrustFactor        float64         `json:"thrust_factor" mapstructure:"thrust_factor"`
	DragCurve           curve.Keyframes `json:"drag_curve" mapstructure:"drag_curve"`
	VelocitySmoothing   float64         `json:"velocity_smoothing" mapstructure:"velocity_smoothing"`
	SpeedUpMultiplier   float64         `json:"speed_up_multiplier" mapstructure:"speed_up_multiplier"`
	SlowDownMultiplier  float64         `json:"slow_down_multiplier" mapstructure:"slow_down_multiplier"`
	Acceleration        float64         `json:"acceleration" mapstructure:"acceleration"`
	Deceleration        float64         `json:"deceleration" mapstructure:"deceleration"`
	RotationSpeed       float64         `json:"rotation_speed" mapstructure:"rotation_speed"`
	BankStrength        float64         `json:"bank_strength" mapstructure:"bank_strength"`
	BankSteerRate       float64         `json:"bank_steer_rate" mapstructure:"bank_steer_rate"`
	BankReturnSpeed     float64         `json:"bank_return_speed" mapstructure:"bank_return_speed"`
	ControlHardnessFast float64         `json:"control_hardness_fast" mapstructure:"control_hardness_fast"`
	ControlSoftnessSlow float64         `json:"control_softness_slow" mapstructure:"control_softness_slow"`
}

// BoostConfig contains the boost resource settings
type BoostConfig struct {
	Capacity   float64         `json:"capacity" mapstructure:"capacity"`
	DrainRate  float64         `json:"drain_rate" mapstructure:"drain_rate"`
	RegenRate  float64         `json:"regen_rate" mapstructure:"regen_rate"`
	RegenDelay float64         `json:"regen_delay" mapstructure:"regen_delay"`
	RegenCurve curve.Keyframes `json:"regen_curve" mapstructure:"regen_curve"`
}

// InputConfig selects hold or toggle behaviour for the speed actions
type InputConfig struct {
	SpeedUpToggle  bool `json:"speed_up_toggle" mapstructure:"speed_up_toggle"`
	SlowDownToggle bool `json:"slow_down_toggle" mapstructure:"slow_down_toggle"`
}

// SimulationConfig contains loop timing and the spawn point
type SimulationConfig struct {
	TickRate         int        `json:"tick_rate" mapstructure:"tick_rate"`
	MaxStepsPerFrame int        `json:"max_steps_per_frame" mapstructure:"max_steps_per_frame"`
	MaxFrameDelta    float64    `json:"max_frame_delta" mapstructure:"max_frame_delta"`
	Gravity          float64    `json:"gravity" mapstructure:"gravity"`
	SpawnPosition    [3]float64 `json:"spawn_position" mapstructure:"spawn_position"`
}

// DefaultConfig returns the stock configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "INFO",
		Flight: FlightConfig{
			BaseSpeed:         3,
			MaxSpeed:          45,
			MinSpeed:          1.5,
			LiftStrength:      12,
			ThrustFactor:      18,
			VelocitySmoothing: 0.15,
			DragCurve: curve.Keyframes{
				{Time: 0, Value: 0},
				{Time: 0.5, Value: 0.05},
				{Time: 1, Value: 0.2},
			},
			SpeedUpMultiplier:   1.8,
			SlowDownMultiplier:  0.65,
			Acceleration:        12,
			Deceleration:        8,
			RotationSpeed:       5.5,
			BankStrength:        20,
			BankSteerRate:       4,
			BankReturnSpeed:     1,
			ControlHardnessFast: 0.55,
			ControlSoftnessSlow: 1.35,
		},
		Boost: BoostConfig{
			Capacity:   100,
			DrainRate:  20,
			RegenRate:  10,
			RegenDelay: 0.75,
			RegenCurve: curve.Keyframes{
				{Time: 0, Value: 0.5},
				{Time: 1, Value: 1},
			},
		},
		Camera:    camera.DefaultSettings(),
		Proximity: proximity.DefaultRadii(),
		Simulation: SimulationConfig{
			TickRate:         50,
			MaxStepsPerFrame: 5,
			MaxFrameDelta:    0.25,
			Gravity:          9.81,
			SpawnPosition:    [3]float64{0, 50, 0},
		},
	}
}

// Load builds a configuration from the defaults, an optional JSON file and GLIDE_*
// environment overrides, in increasing order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	defaults, err := json.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to encode defaults: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports every problem with the configuration at once
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	f := c.Flight
	check(f.BaseSpeed > 0, "flight.base_speed must be positive, got %v", f.BaseSpeed)
	check(f.MinSpeed >= 0, "flight.min_speed must not be negative, got %v", f.MinSpeed)
	check(f.MinSpeed <= f.MaxSpeed, "flight.min_speed %v exceeds flight.max_speed %v", f.MinSpeed, f.MaxSpeed)
	check(f.VelocitySmoothing >= 0, "flight.velocity_smoothing must not be negative")
	check(f.Acceleration >= 0 && f.Deceleration >= 0, "flight acceleration and deceleration must not be negative")
	check(f.RotationSpeed >= 0, "flight.rotation_speed must not be negative")
	check(f.BankSteerRate >= 0 && f.BankReturnSpeed >= 0, "flight bank rates must not be negative")
	if err := f.DragCurve.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("flight.drag_curve: %w", err))
	} else {
		check(f.DragCurve.Monotone(), "flight.drag_curve must not decrease")
	}

	b := c.Boost
	check(b.Capacity > 0, "boost.capacity must be positive, got %v", b.Capacity)
	check(b.DrainRate >= 0, "boost.drain_rate must not be negative")
	check(b.RegenRate >= 0, "boost.regen_rate must not be negative")
	check(b.RegenDelay >= 0, "boost.regen_delay must not be negative")
	if err := b.RegenCurve.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("boost.regen_curve: %w", err))
	} else {
		check(b.RegenCurve.Monotone(), "boost.regen_curve must not decrease")
	}

	s := c.Simulation
	check(s.TickRate > 0, "simulation.tick_rate must be positive, got %d", s.TickRate)
	check(s.MaxStepsPerFrame > 0, "simulation.max_steps_per_frame must be positive")
	check(s.MaxFrameDelta > 0, "simulation.max_frame_delta must be positive")
	check(s.Gravity >= 0, "simulation.gravity must not be negative")

	p := c.Proximity
	check(p.Close <= p.Mid && p.Mid <= p.Far, "proximity radii must satisfy close <= mid <= far")

	return errors.Join(errs...)
}

// Tuning converts the flight section into controller tuning
func (f FlightConfig) Tuning() flight.Tuning {
	return flight.Tuning{
		BaseSpeed:           f.BaseSpeed,
		MaxSpeed:            f.MaxSpeed,
		MinSpeed:            f.MinSpeed,
		LiftStrength:        f.LiftStrength,
		ThrustFactor:        f.ThrustFactor,
		DragCurve:           curve.NewKeyframes(f.DragCurve...),
		VelocitySmoothing:   f.VelocitySmoothing,
		SpeedUpMultiplier:   f.SpeedUpMultiplier,
		SlowDownMultiplier:  f.SlowDownMultiplier,
		Acceleration:        f.Acceleration,
		Deceleration:        f.Deceleration,
		RotationSpeed:       f.RotationSpeed,
		BankStrength:        f.BankStrength,
		BankSteerRate:       f.BankSteerRate,
		BankReturnSpeed:     f.BankReturnSpeed,
		ControlHardnessFast: f.ControlHardnessFast,
		ControlSoftnessSlow: f.ControlSoftnessSlow,
	}
}

// Settings converts the boost section into resource settings
func (b BoostConfig) Settings() boost.Settings {
	return boost.Settings{
		Capacity:   b.Capacity,
		DrainRate:  b.DrainRate,
		RegenRate:  b.RegenRate,
		RegenDelay: b.RegenDelay,
		RegenCurve: curve.NewKeyframes(b.RegenCurve...),
	}
}

// Options converts the input section into adapter options
func (i InputConfig) Options() input.Options {
	return input.Options{
		SpeedUpToggle:  i.SpeedUpToggle,
		SlowDownToggle: i.SlowDownToggle,
	}
}

// FixedStep returns the fixed tick duration in seconds
func (s SimulationConfig) FixedStep() float64 {
	if s.TickRate <= 0 {
		return 0
	}
	return 1 / float64(s.TickRate)
}
