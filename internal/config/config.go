// Package config resolves game settings from defaults, a YAML file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"lionhunt/internal/world"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix is prepended to upper-cased flag names to form environment keys,
// e.g. LIONHUNT_GRID_SIZE for --grid-size.
const EnvPrefix = "LIONHUNT_"

// Config represents every tunable of a game session.
type Config struct {
	Variant        string        `yaml:"variant"`
	GridSize       int           `yaml:"grid_size"`
	HunterCount    int           `yaml:"hunter_count"`
	TokenCount     int           `yaml:"token_count"`
	ProximityRange int           `yaml:"proximity_range"`
	SheepRange     int           `yaml:"sheep_range"`
	TickRate       int           `yaml:"tick_rate_hz"`
	Duration       time.Duration `yaml:"game_duration"`
	MaxTicks       int           `yaml:"max_ticks"`
	Seed           int64         `yaml:"seed"`
	Scale          int           `yaml:"scale"`
	DBPath         string        `yaml:"db_path"`
	SpectateAddr   string        `yaml:"spectate_addr"`
	LogLevel       string        `yaml:"log_level"`

	File string `yaml:"-"`
}

// NewConfig returns a Config populated with the classic game defaults.
func NewConfig() *Config {
	return &Config{
		Variant:        "classic",
		GridSize:       10,
		HunterCount:    1,
		TokenCount:     5,
		ProximityRange: 1,
		SheepRange:     2,
		TickRate:       5,
		Scale:          50,
		DBPath:         "data/lionhunt.db",
		LogLevel:       "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Variant, "variant", c.Variant, "game variant (classic, pack, sheep)")
	fs.IntVar(&c.GridSize, "grid-size", c.GridSize, "cells per side of the square grid")
	fs.IntVar(&c.HunterCount, "hunters", c.HunterCount, "number of hunters")
	fs.IntVar(&c.TokenCount, "tokens", c.TokenCount, "number of food or sheep tokens")
	fs.IntVar(&c.ProximityRange, "proximity", c.ProximityRange, "hunter capture radius")
	fs.IntVar(&c.SheepRange, "sheep-range", c.SheepRange, "distance at which sheep notice the lion")
	fs.IntVar(&c.TickRate, "tps", c.TickRate, "game ticks per second (0 runs unpaced)")
	fs.DurationVar(&c.Duration, "duration", c.Duration, "wall-clock game budget, e.g. 20s (0 = untimed)")
	fs.IntVar(&c.MaxTicks, "max-ticks", c.MaxTicks, "tick budget (0 = unlimited)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for token placement and agents (0 = time based)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per grid cell")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "SQLite results ledger path (empty disables recording)")
	fs.StringVar(&c.SpectateAddr, "spectate", c.SpectateAddr, "serve websocket spectators on this address")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.File, "config", c.File, "YAML config file")
}

// LoadFile overlays values present in a YAML file onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	c.File = path
	return nil
}

// LoadDotEnv loads the first readable .env file among paths into the process
// environment without overriding variables that are already set. It returns
// the path that was loaded, or "" when none was found.
func LoadDotEnv(paths ...string) string {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			return p
		}
	}
	return ""
}

// Overrides maps flag names to values given explicitly by the user.
type Overrides map[string]string

// FromFlagSet collects the flags that were actually set on fs.
func FromFlagSet(fs *flag.FlagSet) Overrides {
	o := Overrides{}
	fs.Visit(func(f *flag.Flag) { o[f.Name] = f.Value.String() })
	return o
}

// ApplyOverrides sets each named flag on c.
func (c *Config) ApplyOverrides(o Overrides) error {
	fs := c.flagSet()
	for name, value := range o {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, name, value, err)
		}
	}
	return nil
}

// ApplyEnv reads LIONHUNT_* variables through lookup. A nil lookup uses
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	fs := c.flagSet()
	var err error
	fs.VisitAll(func(f *flag.Flag) {
		if err != nil || f.Name == "config" {
			return
		}
		key := EnvKey(f.Name)
		value, ok := lookup(key)
		if !ok {
			return
		}
		// An empty value clears a string setting and is ignored elsewhere.
		if value == "" && !isStringFlag(f) {
			return
		}
		if setErr := fs.Set(f.Name, value); setErr != nil {
			err = fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, value, setErr)
		}
	})
	return err
}

func isStringFlag(f *flag.Flag) bool {
	g, ok := f.Value.(flag.Getter)
	if !ok {
		return false
	}
	_, ok = g.Get().(string)
	return ok
}

// EnvKey returns the environment variable consulted for a flag name.
func EnvKey(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

func (c *Config) flagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c.Bind(fs)
	return fs
}

// Load resolves a Config: defaults, then the YAML file at path (if any), then
// the environment, then explicit flag overrides.
func Load(path string, lookup func(string) (string, bool), flags Overrides) (*Config, error) {
	c := NewConfig()
	if p, ok := flags["config"]; ok && p != "" {
		path = p
	}
	if path != "" {
		if err := c.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := c.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if err := c.ApplyOverrides(flags); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks ranges that do not depend on the chosen variant.
func (c *Config) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	switch {
	case c.Variant == "":
		return bad("variant must be set")
	case c.GridSize <= 0:
		return bad("grid_size %d must be positive", c.GridSize)
	case c.GridSize > world.MaxGridSize:
		return bad("grid_size %d exceeds %d", c.GridSize, world.MaxGridSize)
	case c.HunterCount < 1:
		return bad("hunter_count %d must be at least 1", c.HunterCount)
	case c.TokenCount < 0:
		return bad("token_count %d must not be negative", c.TokenCount)
	case c.ProximityRange < 0:
		return bad("proximity_range %d must not be negative", c.ProximityRange)
	case c.SheepRange < 0:
		return bad("sheep_range %d must not be negative", c.SheepRange)
	case c.TickRate < 0:
		return bad("tick_rate_hz %d must not be negative", c.TickRate)
	case c.Duration < 0:
		return bad("game_duration %s must not be negative", c.Duration)
	case c.MaxTicks < 0:
		return bad("max_ticks %d must not be negative", c.MaxTicks)
	case c.Scale <= 0:
		return bad("scale %d must be positive", c.Scale)
	}
	return nil
}

// EffectiveSeed returns Seed, or a time-based seed when Seed is zero.
func (c *Config) EffectiveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// TickBudget converts the wall-clock budget into ticks at the configured
// rate, rounding up, and combines it with MaxTicks, returning the tighter
// non-zero limit. Only an untimed game without MaxTicks gets 0.
func (c *Config) TickBudget() int {
	budget := c.MaxTicks
	if c.Duration > 0 && c.TickRate > 0 {
		fromDuration := max(1, int(math.Ceil(c.Duration.Seconds()*float64(c.TickRate))))
		if budget == 0 || fromDuration < budget {
			budget = fromDuration
		}
	}
	return budget
}
