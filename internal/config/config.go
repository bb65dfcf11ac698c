// Package config loads engine configuration with github.com/spf13/viper,
// replacing the teacher's flag-populated Config struct (spec treats
// configuration as an out-of-scope collaborator — §1 — but a complete
// repository still needs one).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is everything cmd/server needs to stand up an Engine plus its
// collaborators.
type Config struct {
	QueueCapacity int      `mapstructure:"queue_capacity"`
	Symbols       []string `mapstructure:"symbols"`

	Sink struct {
		Type string `mapstructure:"type"` // "file" or "websocket"
		Path string `mapstructure:"path"` // file sink destination
	} `mapstructure:"sink"`

	Risk struct {
		MaxOrderQty    uint64 `mapstructure:"max_order_qty"`
		MaxOrderValue  int64  `mapstructure:"max_order_value"`
		MaxPositionQty uint64 `mapstructure:"max_position_qty"`
	} `mapstructure:"risk"`

	Log struct {
		Level  string `mapstructure:"level"`  // "debug", "info", "warn", "error"
		Format string `mapstructure:"format"` // "console" or "json"
	} `mapstructure:"log"`

	Metrics struct {
		Addr string `mapstructure:"addr"` // e.g. ":9090"
	} `mapstructure:"metrics"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("queue_capacity", 8192)
	v.SetDefault("symbols", []string{})
	v.SetDefault("sink.type", "file")
	v.SetDefault("sink.path", "records.bin")
	v.SetDefault("risk.max_order_qty", 1_000_000)
	v.SetDefault("risk.max_order_value", 1_000_000_000)
	v.SetDefault("risk.max_position_qty", 5_000_000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("metrics.addr", ":9090")
}

// Load reads configuration from path (if non-empty) plus any
// ENGINE_-prefixed environment variable overrides, falling back to the
// defaults above when neither is set.
func Load(path string) (*Config, error) {
	v := viper.New()
	defaults(v)

	v.SetEnvPrefix("ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}
