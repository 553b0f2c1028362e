package multifinder

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigError reports an invalid search option. It is always fatal.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

const (
	// Longest output directory that still leaves room for "/seeds-NN.txt".
	MaxOutputDirLen = 255 - 13
	MaxPathLen      = 255

	// World border. Larger radii would overflow block coordinates.
	MaxRadius = 30_000_000
)

// HumanInt is an integer that accepts a K, M, B/G or T suffix (binary
// multipliers) when parsed from text.
type HumanInt int64

// ParseHuman parses a decimal integer with an optional magnitude suffix.
func ParseHuman(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty integer")
	}
	mult := int64(1)
	switch s[len(s)-1] {
	case 'K':
		mult = 1 << 10
	case 'M':
		mult = 1 << 20
	case 'B', 'G':
		mult = 1 << 30
	case 'T':
		mult = 1 << 40
	}
	if mult != 1 {
		s = s[:len(s)-1]
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt64/mult || v < math.MinInt64/mult {
		return 0, fmt.Errorf("%s: value out of range", s)
	}
	return v * mult, nil
}

func (h HumanInt) String() string {
	return strconv.FormatInt(int64(h), 10)
}

// Set and Type let HumanInt act as a command line flag value.
func (h *HumanInt) Set(s string) error {
	v, err := ParseHuman(s)
	if err != nil {
		return err
	}
	*h = HumanInt(v)
	return nil
}

func (h *HumanInt) Type() string { return "int" }

func (h *HumanInt) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected an integer", node.Line)
	}
	if err := h.Set(node.Value); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}

// Options describes one search run. After Validate succeeds it must not be
// modified; workers share it without locking.
type Options struct {
	Radius           int      `yaml:"radius"`
	StartSeed        HumanInt `yaml:"start_seed"`
	EndSeed          HumanInt `yaml:"end_seed"`
	Threads          int      `yaml:"threads"`
	OutputDir        string   `yaml:"output_dir"`
	BaseSeedsFile    string   `yaml:"base_seeds_file"`
	BaseQuality      int      `yaml:"base_quality"`
	SpawnBiomes      string   `yaml:"spawn_biomes"`
	MonumentDistance int      `yaml:"monument_distance"`
	WoodlandMansions int      `yaml:"woodland_mansions"`

	// Derived by Validate.
	HutRadius     int          `yaml:"-"`
	MansionRadius int          `yaml:"-"`
	Biomes        *BiomeConfig `yaml:"-"`
}

func DefaultOptions() Options {
	return Options{
		Radius:        2048,
		StartSeed:     0,
		EndSeed:       1 << 48,
		Threads:       1,
		BaseSeedsFile: "./seeds/quadbases_Q1.txt",
		BaseQuality:   1,
	}
}

// LoadOptions reads a YAML options file on top of the defaults.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parse options: %w", err)
	}
	return &opts, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Validate checks the options and fills in the derived fields.
func (o *Options) Validate() error {
	if o.Radius < 0 {
		return &ConfigError{"radius", "must not be negative"}
	}
	if o.Radius > MaxRadius {
		return &ConfigError{"radius", fmt.Sprintf("must not exceed the world border at %d", MaxRadius)}
	}
	o.HutRadius = ceilDiv(o.Radius, HutRegionSize)
	o.MansionRadius = ceilDiv(o.Radius, mansionRegion*16)

	if o.StartSeed < 0 {
		return &ConfigError{"start_seed", "must not be negative"}
	}
	if o.EndSeed < 0 {
		return &ConfigError{"end_seed", "must not be negative"}
	}
	if o.StartSeed > o.EndSeed {
		return &ConfigError{"start_seed", fmt.Sprintf("%d is past end_seed %d", o.StartSeed, o.EndSeed)}
	}
	if o.Threads < 1 {
		return &ConfigError{"threads", "must be at least 1"}
	}

	o.OutputDir = strings.TrimSuffix(o.OutputDir, "/")
	if len(o.OutputDir) > MaxOutputDirLen {
		return &ConfigError{"output_dir", "output path too long"}
	}
	if o.Threads > 1 && o.OutputDir == "" {
		return &ConfigError{"output_dir", "must be set when using more than one thread"}
	}
	if o.BaseSeedsFile == "" {
		return &ConfigError{"base_seeds_file", "must be set"}
	}
	if len(o.BaseSeedsFile) > MaxPathLen {
		return &ConfigError{"base_seeds_file", "base seeds filename too long"}
	}
	if o.BaseQuality < 0 || o.BaseQuality > 11 {
		return &ConfigError{"base_quality", "must be between 0 and 11"}
	}

	if o.MonumentDistance < 0 || o.MonumentDistance > 23 {
		return &ConfigError{"monument_distance", "must be between 0 and 23"}
	}
	if o.WoodlandMansions < 0 {
		return &ConfigError{"woodland_mansions", "must not be negative"}
	}

	o.Biomes = nil
	if o.SpawnBiomes != "" {
		cfg, err := LookupBiomeConfig(o.SpawnBiomes)
		if err != nil {
			return err
		}
		o.Biomes = cfg
	}
	return nil
}

func (o *Options) MonumentsEnabled() bool { return o.MonumentDistance > 0 }
func (o *Options) MansionsEnabled() bool  { return o.WoodlandMansions > 0 }
func (o *Options) SpawnEnabled() bool     { return o.Biomes != nil }
