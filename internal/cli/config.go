package cli

import (
	"github.com/BurntSushi/toml"

	"github.com/matzehuels/polypath/pkg/errors"
	"github.com/matzehuels/polypath/pkg/pipeline"
	"github.com/matzehuels/polypath/pkg/render"
)

const (
	configFileName = "config.toml"

	defaultSize       = 7
	defaultServeAddr  = "localhost:8080"
	defaultServeLimit = 10
)

// Config holds the defaults read from config.toml. Flags override them.
//
//	scale = 50
//	formats = ["svg", "json"]
//	style = "simple"
//	workers = 4
//	output_dir = "out"
//	cache = true
//
//	[serve]
//	addr = "localhost:8080"
//	max_size = 10
//
//	[redis]
//	addr = "localhost:6379"
type Config struct {
	Scale     int      `toml:"scale"`
	Formats   []string `toml:"formats"`
	Style     string   `toml:"style"`
	Workers   int      `toml:"workers"`
	OutputDir string   `toml:"output_dir"`
	Cache     *bool    `toml:"cache"`

	Serve ServeConfig `toml:"serve"`
	Redis RedisConfig `toml:"redis"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr    string `toml:"addr"`
	MaxSize int    `toml:"max_size"`
}

// RedisConfig selects a shared Redis cache instead of the local file cache.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Scale:   render.DefaultScale,
		Formats: []string{pipeline.FormatSVG},
		Style:   pipeline.DefaultStyle,
		Workers: 1,
		Serve: ServeConfig{
			Addr:    defaultServeAddr,
			MaxSize: defaultServeLimit,
		},
	}
}

// LoadConfig decodes the TOML file at path over [DefaultConfig] and
// validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Scale <= 0 {
		return errors.New(errors.ErrCodeOutOfRange, "scale must be positive, got %d", c.Scale)
	}
	if c.Workers < 1 {
		return errors.New(errors.ErrCodeOutOfRange, "workers must be at least 1, got %d", c.Workers)
	}
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return err
	}
	if err := pipeline.ValidateStyle(c.Style); err != nil {
		return err
	}
	if c.Serve.MaxSize != 0 {
		if err := errors.ValidateSize(c.Serve.MaxSize); err != nil {
			return err
		}
	}
	return nil
}

// cacheEnabled reports whether caching is on. It defaults to true.
func (c Config) cacheEnabled() bool {
	return c.Cache == nil || *c.Cache
}
