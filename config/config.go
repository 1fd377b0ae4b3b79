// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Noise     NoiseConfig     `yaml:"noise"`
	Particles ParticlesConfig `yaml:"particles"`
	Vortex    VortexConfig    `yaml:"vortex"`
	Pointer   PointerConfig   `yaml:"pointer"`
	Stroke    StrokeConfig    `yaml:"stroke"`
	Ink       InkConfig       `yaml:"ink"`
	Fade      FadeConfig      `yaml:"fade"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	ReducedFPS int `yaml:"reduced_fps"` // frame rate in reduced-workload mode
}

// NoiseConfig holds ambient flow field parameters.
type NoiseConfig struct {
	FlowScale float64 `yaml:"flow_scale"` // spatial noise frequency
	TimeScale float64 `yaml:"time_scale"` // temporal noise frequency
	Turns     float64 `yaml:"turns"`      // full rotations mapped over [0,1) noise
}

// ParticlesConfig holds flow particle pool parameters.
type ParticlesConfig struct {
	Count        int     `yaml:"count"`
	ReducedCount int     `yaml:"reduced_count"` // pool size in reduced-workload mode
	BaseForce    float64 `yaml:"base_force"`    // ambient field force magnitude
	Momentum     float64 `yaml:"momentum"`      // velocity smoothing factor per tick
	SpeedScale   float64 `yaml:"speed_scale"`   // force-to-velocity scale
	BoundsMargin float64 `yaml:"bounds_margin"` // out-of-bounds reset margin
	MinAge       int     `yaml:"min_age"`       // lifetime range in ticks
	MaxAge       int     `yaml:"max_age"`
	FadeInTicks  int     `yaml:"fade_in_ticks"`  // alpha ramp-in window
	FadeOutTicks int     `yaml:"fade_out_ticks"` // alpha ramp-out window
	GlowSpeed    float64 `yaml:"glow_speed"`     // speed above which a highlight point is drawn
}

// VortexConfig holds transient vortex parameters.
type VortexConfig struct {
	MaxCount         int     `yaml:"max_count"`
	Decay            float64 `yaml:"decay"`   // strength multiplier per tick
	Epsilon          float64 `yaml:"epsilon"` // removal threshold on |strength|
	MinRadius        float64 `yaml:"min_radius"`
	MaxRadius        float64 `yaml:"max_radius"`
	MinMagnitude     float64 `yaml:"min_magnitude"`
	MaxMagnitude     float64 `yaml:"max_magnitude"`
	MinSpawnInterval int     `yaml:"min_spawn_interval"` // ticks between ambient spawns
	MaxSpawnInterval int     `yaml:"max_spawn_interval"`
	PullScale        float64 `yaml:"pull_scale"` // inward pull relative to tangential force
}

// PointerConfig holds pointer repulsion parameters.
type PointerConfig struct {
	RepulseRadius float64 `yaml:"repulse_radius"` // 0 disables pointer forces
	Strength      float64 `yaml:"strength"`
}

// StrokeConfig holds calligraphic stroke generation parameters.
type StrokeConfig struct {
	MaxCount    int     `yaml:"max_count"`
	MinInterval int     `yaml:"min_interval"` // ticks between stroke spawns
	MaxInterval int     `yaml:"max_interval"`
	MinPoints   int     `yaml:"min_points"`
	MaxPoints   int     `yaml:"max_points"`
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	TurnRate    float64 `yaml:"turn_rate"`  // heading perturbation scale
	StepScale   float64 `yaml:"step_scale"` // walk step length multiplier
	EdgeBias    float64 `yaml:"edge_bias"`  // probability of starting on a canvas edge
	EdgeMargin  float64 `yaml:"edge_margin"`
	MinAlpha    float64 `yaml:"min_alpha"`
	MaxAlpha    float64 `yaml:"max_alpha"`
	MinWeight   float64 `yaml:"min_weight"`
	MaxWeight   float64 `yaml:"max_weight"`
	MinDensity  float64 `yaml:"min_density"`
	MaxDensity  float64 `yaml:"max_density"`
	DensityFade float64 `yaml:"density_fade"` // attenuation of older strokes per new stroke
	FlickChance float64 `yaml:"flick_chance"` // release-phase pressure spike probability
}

// InkConfig holds ink diffusion particle parameters.
type InkConfig struct {
	TargetCount   int     `yaml:"target_count"` // soft cap is 2x this
	MinSpawn      int     `yaml:"min_spawn"`    // particles per stroke spawn event
	MaxSpawn      int     `yaml:"max_spawn"`
	DiffusionRate float64 `yaml:"diffusion_rate"`
	Drift         float64 `yaml:"drift"`   // constant downward drift
	Damping       float64 `yaml:"damping"` // velocity multiplier per tick
	Shrink        float64 `yaml:"shrink"`  // size multiplier per tick
	SizeFloor     float64 `yaml:"size_floor"`
	MinLife       int     `yaml:"min_life"`
	MaxLife       int     `yaml:"max_life"`
	HaloScale     float64 `yaml:"halo_scale"` // halo radius relative to core
}

// FadeConfig holds the per-frame trail fade.
type FadeConfig struct {
	Alpha float64 `yaml:"alpha"` // background alpha blended over the surface each tick
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	SoftCap   int     // Ink.TargetCount * 2
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.SoftCap = c.Ink.TargetCount * 2
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
