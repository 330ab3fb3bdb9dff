package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/geom"
	"github.com/san-kum/efield/internal/scene"
	"github.com/san-kum/efield/internal/trace"
)

const (
	DefaultViewWidth      = 800.0
	DefaultViewHeight     = 600.0
	DefaultGridSpacing    = 40.0
	DefaultEraseRadius    = 20.0
	DefaultDielectricEpsR = 10.0
)

type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Trace   TraceConfig   `yaml:"trace"`
	View    ViewConfig    `yaml:"view"`
	Scene   SceneConfig   `yaml:"scene"`
}

type PhysicsConfig struct {
	CoulombConstant float64 `yaml:"coulomb_constant"`
	ShieldEpsilonR  float64 `yaml:"shield_epsilon_r"`
}

type TraceConfig struct {
	LinesPerCharge int     `yaml:"lines_per_charge"`
	SeedRadius     float64 `yaml:"seed_radius"`
	StepLength     float64 `yaml:"step_length"`
	MaxSteps       int     `yaml:"max_steps"`
	ArrowInterval  int     `yaml:"arrow_interval"`
	MinField       float64 `yaml:"min_field"`
	Method         string  `yaml:"method"`
}

// ViewConfig describes the visible world rectangle and editing defaults.
type ViewConfig struct {
	MinX           float64 `yaml:"min_x"`
	MinY           float64 `yaml:"min_y"`
	MaxX           float64 `yaml:"max_x"`
	MaxY           float64 `yaml:"max_y"`
	GridSpacing    float64 `yaml:"grid_spacing"`
	EraseRadius    float64 `yaml:"erase_radius"`
	DielectricEpsR float64 `yaml:"dielectric_epsilon_r"`
}

type ChargeConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Q float64 `yaml:"q"`
}

type RegionConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	EpsilonR float64 `yaml:"epsilon_r,omitempty"`
}

// SceneConfig is the starting scene. Region order is kept: earlier regions
// win where regions overlap.
type SceneConfig struct {
	Charges     []ChargeConfig `yaml:"charges"`
	Dielectrics []RegionConfig `yaml:"dielectrics"`
	Shields     []RegionConfig `yaml:"shields"`
}

func DefaultConfig() *Config {
	td := trace.DefaultConfig()
	return &Config{
		Physics: PhysicsConfig{
			CoulombConstant: field.CoulombConstant,
			ShieldEpsilonR:  field.ShieldEpsilonR,
		},
		Trace: TraceConfig{
			LinesPerCharge: td.LinesPerCharge,
			SeedRadius:     td.SeedRadius,
			StepLength:     td.StepLength,
			MaxSteps:       td.MaxSteps,
			ArrowInterval:  td.ArrowInterval,
			Method:         string(td.Method),
		},
		View: ViewConfig{
			MinX:           -DefaultViewWidth / 2,
			MinY:           -DefaultViewHeight / 2,
			MaxX:           DefaultViewWidth / 2,
			MaxY:           DefaultViewHeight / 2,
			GridSpacing:    DefaultGridSpacing,
			EraseRadius:    DefaultEraseRadius,
			DielectricEpsR: DefaultDielectricEpsR,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings. Scene contents are validated separately by
// BuildScene.
func (c *Config) Validate() error {
	var errs []error
	if !positive(c.Physics.CoulombConstant) {
		errs = append(errs, fmt.Errorf("physics.coulomb_constant must be > 0, got %v", c.Physics.CoulombConstant))
	}
	if !positive(c.Physics.ShieldEpsilonR) {
		errs = append(errs, fmt.Errorf("physics.shield_epsilon_r must be > 0, got %v", c.Physics.ShieldEpsilonR))
	}
	if c.Trace.LinesPerCharge <= 0 {
		errs = append(errs, fmt.Errorf("trace.lines_per_charge must be > 0, got %d", c.Trace.LinesPerCharge))
	}
	if c.Trace.MaxSteps <= 0 {
		errs = append(errs, fmt.Errorf("trace.max_steps must be > 0, got %d", c.Trace.MaxSteps))
	}
	if !positive(c.Trace.StepLength) || !positive(c.Trace.SeedRadius) {
		errs = append(errs, fmt.Errorf("trace.step_length and trace.seed_radius must be > 0"))
	}
	if _, err := trace.NewStepper(trace.Method(c.Trace.Method)); err != nil {
		errs = append(errs, err)
	}
	if !(c.View.MaxX > c.View.MinX) || !(c.View.MaxY > c.View.MinY) {
		errs = append(errs, fmt.Errorf("view bounds are empty: x [%v, %v] y [%v, %v]",
			c.View.MinX, c.View.MaxX, c.View.MinY, c.View.MaxY))
	}
	if !positive(c.View.GridSpacing) {
		errs = append(errs, fmt.Errorf("view.grid_spacing must be > 0, got %v", c.View.GridSpacing))
	}
	if !positive(c.View.EraseRadius) {
		errs = append(errs, fmt.Errorf("view.erase_radius must be > 0, got %v", c.View.EraseRadius))
	}
	if !positive(c.View.DielectricEpsR) {
		errs = append(errs, fmt.Errorf("view.dielectric_epsilon_r must be > 0, got %v", c.View.DielectricEpsR))
	}
	return errors.Join(errs...)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func (c *Config) Evaluator() *field.Evaluator {
	return &field.Evaluator{K: c.Physics.CoulombConstant, ShieldEpsilonR: c.Physics.ShieldEpsilonR}
}

func (c *Config) TracerConfig() trace.Config {
	return trace.Config{
		LinesPerCharge: c.Trace.LinesPerCharge,
		SeedRadius:     c.Trace.SeedRadius,
		StepLength:     c.Trace.StepLength,
		MaxSteps:       c.Trace.MaxSteps,
		ArrowInterval:  c.Trace.ArrowInterval,
		MinField:       c.Trace.MinField,
		Method:         trace.Method(c.Trace.Method),
	}
}

func (c *Config) Tracer() (*trace.Tracer, error) {
	return trace.New(c.Evaluator(), c.TracerConfig())
}

func (c *Config) Viewport() trace.Viewport {
	return trace.NewViewport(geom.V(c.View.MinX, c.View.MinY), geom.V(c.View.MaxX, c.View.MaxY))
}

// BuildScene replays the configured scene through the scene's validating
// edit operations.
func (c *Config) BuildScene() (*scene.Scene, error) {
	return c.Scene.Build()
}

func (sc SceneConfig) Build() (*scene.Scene, error) {
	s := scene.New()
	for i, ch := range sc.Charges {
		if err := s.AddCharge(geom.V(ch.X, ch.Y), ch.Q); err != nil {
			return nil, fmt.Errorf("scene.charges[%d]: %w", i, err)
		}
	}
	for i, d := range sc.Dielectrics {
		if err := s.AddDielectric(geom.V(d.X, d.Y), geom.V(d.X+d.Width, d.Y+d.Height), d.EpsilonR); err != nil {
			return nil, fmt.Errorf("scene.dielectrics[%d]: %w", i, err)
		}
	}
	for i, sh := range sc.Shields {
		if err := s.AddShield(geom.V(sh.X, sh.Y), geom.V(sh.X+sh.Width, sh.Y+sh.Height)); err != nil {
			return nil, fmt.Errorf("scene.shields[%d]: %w", i, err)
		}
	}
	return s, nil
}
