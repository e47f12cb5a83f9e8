// Package config loads synthgraph configuration and plan files.
//
// A configuration file sets run defaults, the sink and the cache. It is
// searched in priority order:
//
//  1. the --config flag
//  2. $SYNTHGRAPH_CONFIG
//  3. ./synthgraph.toml, ./synthgraph.yaml, ./synthgraph.yml
//  4. $XDG_CONFIG_HOME/synthgraph/config.toml
//
// Files ending in .yaml or .yml are decoded with yaml.v3, everything else
// as TOML. Unknown keys are rejected in both formats.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/synthgraph/pkg/cache"
	"github.com/matzehuels/synthgraph/pkg/errors"
	"github.com/matzehuels/synthgraph/pkg/pipeline"
	"github.com/matzehuels/synthgraph/pkg/sink"
)

// EnvConfig names the environment variable holding a config file path.
const EnvConfig = "SYNTHGRAPH_CONFIG"

// Config is the content of a configuration file.
type Config struct {
	Defaults Defaults     `toml:"defaults" yaml:"defaults"`
	Sink     sink.Options `toml:"sink" yaml:"sink"`
	Cache    Cache        `toml:"cache" yaml:"cache"`
	Serve    Serve        `toml:"serve" yaml:"serve"`
}

// Defaults overrides the built-in run defaults.
type Defaults struct {
	Label     string `toml:"label" yaml:"label"`
	RelType   string `toml:"rel_type" yaml:"rel_type"`
	BatchSize int    `toml:"batch_size" yaml:"batch_size"`
	Seed      uint64 `toml:"seed" yaml:"seed"`
}

// Cache configures edge-list caching.
type Cache struct {
	// Enabled defaults to true when unset.
	Enabled *bool  `toml:"enabled" yaml:"enabled"`
	Dir     string `toml:"dir" yaml:"dir"`
	// TTL is a Go duration string such as "72h".
	TTL string `toml:"ttl" yaml:"ttl"`
	// RedisURL selects a shared Redis cache instead of the file cache.
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
}

// Serve configures the HTTP API.
type Serve struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// DefaultAddr is the listen address of the HTTP API.
const DefaultAddr = "127.0.0.1:8080"

// Default returns the configuration used when no file is found.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Sink.Kind == "" {
		c.Sink.Kind = sink.KindMemory
	}
	if c.Cache.Enabled == nil {
		enabled := true
		c.Cache.Enabled = &enabled
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultAddr
	}
}

// Validate checks the sink kind and the cache TTL.
func (c *Config) Validate() error {
	if _, err := sink.ParseKind(string(c.Sink.Kind)); err != nil {
		return err
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}
	urls := []struct {
		key     string
		value   string
		schemes []string
	}{
		{"sink.redis_url", c.Sink.RedisURL, redisSchemes},
		{"sink.mongo_uri", c.Sink.MongoURI, []string{"mongodb", "mongodb+srv"}},
		{"cache.redis_url", c.Cache.RedisURL, redisSchemes},
	}
	for _, u := range urls {
		if u.value == "" {
			continue
		}
		if err := errors.ValidateURL(u.value, u.schemes...); err != nil {
			return fmt.Errorf("%s: %w", u.key, err)
		}
	}
	return nil
}

var redisSchemes = []string{"redis", "rediss", "unix"}

// CacheEnabled reports whether caching is on.
func (c *Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

// TTLDuration parses TTL. An empty TTL means cache.TTLEdges.
func (c Cache) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return cache.TTLEdges, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid cache ttl %q", c.TTL)
	}
	return d, nil
}

// Apply fills the unset sink pass-through options of opts from the file
// defaults. Built-in defaults still apply afterwards.
func (c *Config) Apply(opts *pipeline.Options) {
	if opts.Label == "" {
		opts.Label = c.Defaults.Label
	}
	if opts.RelType == "" {
		opts.RelType = c.Defaults.RelType
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = c.Defaults.BatchSize
	}
	if opts.Seed == 0 {
		opts.Seed = c.Defaults.Seed
	}
}

// =============================================================================
// Loading
// =============================================================================

// Load resolves the config path and loads it. An empty explicit path
// falls back to the search order; finding nothing yields Default().
// The returned path is empty when no file was used.
func Load(explicit string) (*Config, string, error) {
	path := explicit
	if path == "" {
		path = FindPath()
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := LoadFile(path)
	return cfg, path, err
}

// FindPath returns the first existing config file in the search order.
func FindPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	candidates := []string{"synthgraph.toml", "synthgraph.yaml", "synthgraph.yml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "synthgraph", "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadFile reads and validates a config file.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// decodeFile decodes path into v by extension.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", path)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
		}
		return nil
	}
	md, err := toml.Decode(string(data), v)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
