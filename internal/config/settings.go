package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings are the runtime knobs of the engine that are not part of any
// regulatory rule table: radar timing, the evaluation deadline, and logging.
type Settings struct {
	DebounceWindow    time.Duration `mapstructure:"debounce_window"`
	EvaluationTimeout time.Duration `mapstructure:"evaluation_timeout"`
	AlertBuffer       int           `mapstructure:"alert_buffer"`
	LogLevel          string        `mapstructure:"log_level"`
	LogFormat         string        `mapstructure:"log_format"`
}

// LoadSettings resolves runtime settings from an optional cliffscope.yaml in
// the working directory and CLIFFSCOPE_* environment variables, with sane
// defaults for everything.
func LoadSettings() (*Settings, error) {
	v := viper.New()
	v.SetConfigName("cliffscope")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CLIFFSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("debounce_window", 500*time.Millisecond)
	v.SetDefault("evaluation_timeout", 2*time.Second)
	v.SetDefault("alert_buffer", 64)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading settings file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if s.DebounceWindow <= 0 {
		return nil, fmt.Errorf("debounce_window must be positive")
	}
	if s.EvaluationTimeout <= 0 {
		return nil, fmt.Errorf("evaluation_timeout must be positive")
	}
	if s.AlertBuffer <= 0 {
		s.AlertBuffer = 64
	}

	return &s, nil
}
