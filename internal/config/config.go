package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"

	TracingNone   = "none"
	TracingStdout = "stdout"
)

type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	BFF     BFFConfig     `json:"bff" yaml:"bff"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	Chart   ChartConfig   `json:"chart" yaml:"chart"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
}

type ServerConfig struct {
	Listen string   `json:"listen" yaml:"listen"`
	Poll   Duration `json:"poll" yaml:"poll"`
}

type BFFConfig struct {
	URL       string   `json:"url" yaml:"url"`
	Timeout   Duration `json:"timeout" yaml:"timeout"`
	Attempts  int      `json:"attempts" yaml:"attempts"`
	Delay     Duration `json:"delay" yaml:"delay"`
	Failures  uint32   `json:"failures" yaml:"failures"`
	OpenDelay Duration `json:"open_delay" yaml:"open_delay"`
}

type CacheConfig struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Addr     string   `json:"addr,omitempty" yaml:"addr,omitempty"`
	Password string   `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int      `json:"db,omitempty" yaml:"db,omitempty"`
	Prefix   string   `json:"prefix" yaml:"prefix"`
	TTL      Duration `json:"ttl" yaml:"ttl"`
}

type ChartConfig struct {
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Positive string  `json:"positive" yaml:"positive"`
	Negative string  `json:"negative" yaml:"negative"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

type TracingConfig struct {
	Exporter string  `json:"exporter" yaml:"exporter"`
	Sample   float64 `json:"sample" yaml:"sample"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen: ":4000",
			Poll:   Duration(15 * time.Second),
		},
		BFF: BFFConfig{
			URL:       "http://bff-java:8080",
			Timeout:   Duration(5 * time.Second),
			Attempts:  3,
			Delay:     Duration(200 * time.Millisecond),
			Failures:  5,
			OpenDelay: Duration(30 * time.Second),
		},
		Cache: CacheConfig{
			Kind:   CacheMemory,
			Prefix: "dashboard:",
			TTL:    Duration(time.Minute),
		},
		Chart: ChartConfig{
			Width:    600,
			Height:   400,
			Positive: "#4caf50",
			Negative: "#f44336",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Tracing: TracingConfig{
			Exporter: TracingNone,
			Sample:   1,
		},
	}
}

// LoadFromFile reads a YAML or JSON file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("%w: server.listen is required", ErrInvalid)
	}
	if c.Server.Poll < 0 {
		return fmt.Errorf("%w: server.poll must not be negative", ErrInvalid)
	}
	u, err := url.Parse(c.BFF.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: bff.url %q is not an absolute url", ErrInvalid, c.BFF.URL)
	}
	if c.BFF.Attempts < 1 {
		return fmt.Errorf("%w: bff.attempts must be at least 1", ErrInvalid)
	}
	switch c.Cache.Kind {
	case CacheMemory:
	case CacheRedis:
		if c.Cache.Addr == "" {
			return fmt.Errorf("%w: cache.addr is required for redis", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown cache kind %q", ErrInvalid, c.Cache.Kind)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("%w: chart dimensions must be positive", ErrInvalid)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Log.Format)
	}
	switch c.Tracing.Exporter {
	case TracingNone, TracingStdout:
	default:
		return fmt.Errorf("%w: unknown tracing exporter %q", ErrInvalid, c.Tracing.Exporter)
	}
	if c.Tracing.Sample < 0 || c.Tracing.Sample > 1 {
		return fmt.Errorf("%w: tracing.sample must be within [0, 1]", ErrInvalid)
	}
	return nil
}

type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.parse(node.Value)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	return d.parse(str)
}

func (d *Duration) parse(str string) error {
	if str == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(str)
	if err != nil {
		return fmt.Errorf("duration %q: %w", str, err)
	}
	*d = Duration(v)
	return nil
}
