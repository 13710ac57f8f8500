package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "DBEXPORT"

// Settings are the command line options, overridable with DBEXPORT_* environment variables.
type Settings struct {
	EnvFile   string `mapstructure:"env-file"`
	OutputDir string `mapstructure:"output-dir"`
	Days      int    `mapstructure:"days"`
	LogLevel  string `mapstructure:"log-level"`
	LogDev    bool   `mapstructure:"log-dev"`
	// Preview is the number of exported rows echoed to stdout.
	Preview int `mapstructure:"preview"`
}

// LoadSettings resolves flags and environment into Settings.
func LoadSettings(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("config: bind flags: %w", err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("config: decode settings: %w", err)
	}

	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// ApplyDefaults expects the env file one directory above the working directory.
func (s *Settings) ApplyDefaults() {
	if s.EnvFile == "" {
		s.EnvFile = filepath.Join("..", ".env")
	}
	if s.OutputDir == "" {
		s.OutputDir = "."
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
}

func (s *Settings) Validate() error {
	if s.Days < 0 {
		return fmt.Errorf("config: days must not be negative, got %d", s.Days)
	}
	if s.Preview < 0 {
		return fmt.Errorf("config: preview must not be negative, got %d", s.Preview)
	}
	return nil
}
