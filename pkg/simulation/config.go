package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/behavior"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

//go:embed config.schema.json
var configSchema string

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("config.schema.json", configSchema)
})

// Config is the on-disk form of the simulation parameters plus the frontend
// options. Keys are the same in JSON and TOML files.
type Config struct {
	// World Dimensions
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`

	// Population
	BodyRadius     float64 `json:"bodyRadius" toml:"bodyRadius"`
	PopulationSize int     `json:"populationSize" toml:"populationSize"`
	MaxSpeed       float64 `json:"maxSpeed" toml:"maxSpeed"`
	Dt             float64 `json:"dt" toml:"dt"`

	// Interaction Radii
	RepulsionRadius   float64 `json:"repulsionRadius" toml:"repulsionRadius"`
	OrientationRadius float64 `json:"orientationRadius" toml:"orientationRadius"`
	AttractionRadius  float64 `json:"attractionRadius" toml:"attractionRadius"`

	// Steering
	PerceptionAngle float64 `json:"perceptionAngle" toml:"perceptionAngle"` // degrees, full cone width
	MaxTurningRate  float64 `json:"maxTurningRate" toml:"maxTurningRate"`   // degrees per time unit
	NoiseStdDev     float64 `json:"noiseStdDev" toml:"noiseStdDev"`         // degrees

	Boundary     string `json:"boundary" toml:"boundary"`
	SpatialIndex bool   `json:"spatialIndex" toml:"spatialIndex"`
	Seed         uint64 `json:"seed" toml:"seed"`

	// Frontend
	FrameDelayMs  int  `json:"frameDelayMs" toml:"frameDelayMs"`
	StepTimeoutMs int  `json:"stepTimeoutMs" toml:"stepTimeoutMs"`
	ShowZones     bool `json:"showZones" toml:"showZones"`
	ShowHUD       bool `json:"showHud" toml:"showHud"`
}

func DefaultConfig() *Config {
	s := behavior.DefaultSettings()
	return &Config{
		Width:             s.Width,
		Height:            s.Height,
		BodyRadius:        s.BodyRadius,
		PopulationSize:    s.PopulationSize,
		MaxSpeed:          s.MaxSpeed,
		Dt:                s.Dt,
		RepulsionRadius:   s.RepulsionRadius,
		OrientationRadius: s.OrientationRadius,
		AttractionRadius:  s.AttractionRadius,
		PerceptionAngle:   s.PerceptionAngle,
		MaxTurningRate:    s.MaxTurningRate,
		NoiseStdDev:       s.NoiseStdDev,
		Boundary:          string(s.Boundary),
		SpatialIndex:      s.SpatialIndex,
		Seed:              s.Seed,
		FrameDelayMs:      0,
		StepTimeoutMs:     1000,
		ShowZones:         false,
		ShowHUD:           true,
	}
}

// LoadConfig reads a .json or .toml file, validates it against the embedded
// schema and overlays it onto DefaultConfig. Keys missing from the file keep
// their default value.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = decodeJSON(data, cfg)
	case ".toml":
		err = decodeTOML(data, cfg)
	default:
		err = fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeJSON(data []byte, cfg *Config) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

func decodeTOML(data []byte, cfg *Config) error {
	var table map[string]any
	if err := toml.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("failed to decode config toml: %w", err)
	}
	// The schema validator works on JSON values: go through a JSON round trip
	// so TOML integers and floats reach it as plain numbers.
	raw, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to convert config toml: %w", err)
	}
	doc, err := decodeDocument(raw)
	if err != nil {
		return fmt.Errorf("failed to convert config toml: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return err
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// decodeDocument keeps numbers as json.Number so the schema sees integers
// exactly as written.
func decodeDocument(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func validateDocument(doc any) error {
	sch, err := compileSchema()
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks the cross-field rules the schema cannot express.
func (c *Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.FrameDelayMs < 0 {
		return fmt.Errorf("%w: frame delay %dms is negative", ErrInvalidConfig, c.FrameDelayMs)
	}
	if c.StepTimeoutMs <= 0 {
		return fmt.Errorf("%w: step timeout %dms must be positive", ErrInvalidConfig, c.StepTimeoutMs)
	}
	return nil
}

// Settings converts the simulation part of the config for the flock engine.
func (c *Config) Settings() behavior.Settings {
	return behavior.Settings{
		Width:             c.Width,
		Height:            c.Height,
		BodyRadius:        c.BodyRadius,
		PopulationSize:    c.PopulationSize,
		MaxSpeed:          c.MaxSpeed,
		Dt:                c.Dt,
		RepulsionRadius:   c.RepulsionRadius,
		OrientationRadius: c.OrientationRadius,
		AttractionRadius:  c.AttractionRadius,
		PerceptionAngle:   c.PerceptionAngle,
		MaxTurningRate:    c.MaxTurningRate,
		NoiseStdDev:       c.NoiseStdDev,
		Boundary:          behavior.BoundaryMode(c.Boundary),
		SpatialIndex:      c.SpatialIndex,
		Seed:              c.Seed,
	}
}

// FrameDelay is the pause inserted after each rendered frame.
func (c *Config) FrameDelay() time.Duration {
	return time.Duration(c.FrameDelayMs) * time.Millisecond
}

// StepTimeout bounds how long a frame waits for the flock actor.
func (c *Config) StepTimeout() time.Duration {
	return time.Duration(c.StepTimeoutMs) * time.Millisecond
}
