// Package config loads basen service settings from an optional YAML file and
// BASEN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/paraglidehq/basen"
	"github.com/paraglidehq/basen/shortid"
)

type Config struct {
	Codec    CodecConfig
	IDs      IDsConfig `mapstructure:"ids"`
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
}

type CodecConfig struct {
	Alphabet string `mapstructure:"alphabet"`
}

// IDsConfig configures the ID issuer. A zero Key disables obfuscation.
type IDsConfig struct {
	Format string `mapstructure:"format"`
	Start  int64  `mapstructure:"start"`
	Key    int64  `mapstructure:"key"`
}

// Codec returns the shortid codec described by c.
func (c IDsConfig) Codec() shortid.Codec {
	codec := shortid.Codec{Format: shortid.Format(c.Format)}
	if c.Key != 0 {
		codec.Obfuscator = shortid.NewObfuscator(c.Key)
	}
	return codec
}

type ServerConfig struct {
	Host string
	Port int
}

// Addr returns host:port for net.Listen.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration. path names a config file; when empty, basen.yaml
// is looked up in the working directory and ./config, and a missing file is
// not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("basen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("BASEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("codec.alphabet", basen.DefaultAlphabet)
	v.SetDefault("ids.format", string(shortid.DefaultFormat))
	v.SetDefault("ids.start", 1)
	v.SetDefault("ids.key", 0)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.dsn", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if _, err := basen.NewAlphabet(c.Codec.Alphabet); err != nil {
		return fmt.Errorf("codec.alphabet: %w", err)
	}
	if !shortid.Format(c.IDs.Format).Valid() {
		return fmt.Errorf("ids.format: unknown format %q", c.IDs.Format)
	}
	if c.IDs.Start < 0 {
		return fmt.Errorf("ids.start must not be negative, got %d", c.IDs.Start)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}
