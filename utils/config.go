package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth          = 20
	DefaultHeight         = 10
	InitialSpawnTolerance = 0.4
	DefaultFrameDelay     = 500 * time.Millisecond
	DefaultMaxSteps       = 100
	DefaultLogLevel       = "info"

	// ClearCommand clears the screen by running the clear command
	ClearCommand = "command"
	// ClearANSI clears the screen with escape sequences
	ClearANSI = "ansi"
)

// Config holds the configuration for the game
type Config struct {
	Width            int      `json:"width" yaml:"width"`
	Height           int      `json:"height" yaml:"height"`
	SpawnProbability float64  `json:"spawn_probability" yaml:"spawn_probability"`
	FrameDelay       Duration `json:"frame_delay" yaml:"frame_delay"`
	// MaxSteps caps the number of generations; 0 runs until interrupted
	MaxSteps int `json:"max_steps" yaml:"max_steps"`
	// Seed for the initial grid; 0 seeds from the clock
	Seed     uint64 `json:"seed" yaml:"seed"`
	LogLevel string `json:"log_level" yaml:"log_level"`
	// ClearMode selects how frames are cleared: "command" or "ansi"
	ClearMode string `json:"clear_mode" yaml:"clear_mode"`
	// ShowStatus prints a status line under every frame
	ShowStatus bool `json:"show_status" yaml:"show_status"`
}

// DefaultConfig returns the classic 20x10 board capped at 100 generations
func DefaultConfig() Config {
	return Config{
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		SpawnProbability: InitialSpawnTolerance,
		FrameDelay:       Duration(DefaultFrameDelay),
		MaxSteps:         DefaultMaxSteps,
		LogLevel:         DefaultLogLevel,
		ClearMode:        ClearCommand,
	}
}

// Unbounded reports whether the simulation runs until interrupted
func (c Config) Unbounded() bool {
	return c.MaxSteps == 0
}

// Validate rejects values the simulation cannot run with
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("[Validate] grid dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SpawnProbability < 0 || c.SpawnProbability > 1 {
		return errors.Errorf("[Validate] spawn probability must be within [0,1], got %v", c.SpawnProbability)
	}
	if c.MaxSteps < 0 {
		return errors.Errorf("[Validate] max steps must not be negative, got %d", c.MaxSteps)
	}
	if c.FrameDelay < 0 {
		return errors.Errorf("[Validate] frame delay must not be negative, got %v", c.FrameDelay)
	}
	if c.ClearMode != ClearCommand && c.ClearMode != ClearANSI {
		return errors.Errorf("[Validate] clear mode must be %q or %q, got %q", ClearCommand, ClearANSI, c.ClearMode)
	}
	return nil
}

// LoadConfig loads configuration from a JSON or YAML file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Duration is a time.Duration that reads "500ms" style strings from config
// files as well as plain nanosecond counts
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return d.set(raw)
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return d.set(raw)
}

func (d *Duration) set(raw any) error {
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "[Duration] invalid duration %q", v)
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(time.Duration(v))
	case int:
		*d = Duration(time.Duration(v))
	default:
		return errors.Errorf("[Duration] unsupported value %v", raw)
	}
	return nil
}
