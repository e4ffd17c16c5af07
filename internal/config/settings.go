package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read into Settings.
const EnvPrefix = "SEVPV"

// Settings are the runtime knobs of the CLI and server, as opposed to the
// actuarial assumptions of a run
type Settings struct {
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	Workers     int    `mapstructure:"workers"`
	Output      string `mapstructure:"output"`
	ArchivePath string `mapstructure:"archive"`
	Listen      string `mapstructure:"listen"`
	Assumptions string `mapstructure:"assumptions"`
	Mortality   string `mapstructure:"mortality"`
	// AsOf overrides the assumptions file's evaluation date
	AsOf string `mapstructure:"as_of"`
}

// NewViper returns a viper instance with the settings defaults and the
// SEVPV_ environment binding in place.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("workers", 0)
	v.SetDefault("output", "console")
	v.SetDefault("archive", "")
	v.SetDefault("listen", ":8080")
	v.SetDefault("assumptions", "")
	v.SetDefault("mortality", "")
	v.SetDefault("as_of", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads the optional settings file into v and decodes the result.
func LoadSettings(v *viper.Viper, settingsFile string) (*Settings, error) {
	if settingsFile != "" {
		v.SetConfigFile(settingsFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", settingsFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the enumerated settings.
func (s *Settings) Validate() error {
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", s.LogLevel)
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json; got %q", s.LogFormat)
	}
	if s.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	return nil
}
