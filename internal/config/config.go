// Package config handles objtool configuration loading and management.
package config

import "time"

// Config holds all objtool settings.
type Config struct {
	Loader  LoaderConfig  `yaml:"loader" toml:"loader"`
	Watch   WatchConfig   `yaml:"watch" toml:"watch"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// LoaderConfig holds mesh loading settings.
type LoaderConfig struct {
	Encoding string `yaml:"encoding" toml:"encoding"` // Text encoding of .obj/.mtl files
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Debounce Duration `yaml:"debounce" toml:"debounce"` // Quiet period before reloading
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Duration is a time.Duration written as a string ("250ms") in config files.
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Loader: LoaderConfig{
			Encoding: "utf-8",
		},
		Watch: WatchConfig{
			Debounce: Duration(250 * time.Millisecond),
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
