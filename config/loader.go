// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// Config.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults and
// validates the result.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}

	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = LogInfo
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = OutputJSON
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if cfg.HTTP.Timeout < 0 {
		errs = append(errs, fmt.Errorf("http.timeout must not be negative, got %s", cfg.HTTP.Timeout))
	}
	if cfg.HTTP.MaxBodyBytes < 0 {
		errs = append(errs, fmt.Errorf("http.max_body_bytes must not be negative, got %d", cfg.HTTP.MaxBodyBytes))
	}
	for i, z := range cfg.ZoomLevels {
		if z <= 0 {
			errs = append(errs, fmt.Errorf("zoom_levels[%d] must be positive, got %d", i, z))
		}
	}
	if !cfg.Output.Format.IsValid() {
		errs = append(errs, fmt.Errorf("output.format %q is invalid; valid values: json, binary", cfg.Output.Format))
	}

	errs = append(errs, validateSource(&cfg.Source)...)

	return errors.Join(errs...)
}

func validateSource(src *SourceConfig) []error {
	var errs []error

	n := 0
	if src.Remote != nil {
		n++
		if src.Remote.BinaryURL == "" && src.Remote.JSONURL == "" {
			errs = append(errs, errors.New("source.remote needs binary_url or json_url"))
		}
	}
	if src.Local != nil {
		n++
		if src.Local.JSONFile == "" && src.Local.BinaryFile == "" {
			errs = append(errs, errors.New("source.local needs json_file or binary_file"))
		}
	}
	if src.Audio != nil {
		n++
		if (src.Audio.URL == "") == (src.Audio.File == "") {
			errs = append(errs, errors.New("source.audio needs exactly one of url or file"))
		}
		if src.Audio.Scale < 0 {
			errs = append(errs, fmt.Errorf("source.audio.scale must not be negative, got %d", src.Audio.Scale))
		}
		if src.Audio.SampleRate < 0 {
			errs = append(errs, fmt.Errorf("source.audio.sample_rate must not be negative, got %d", src.Audio.SampleRate))
		}
	}

	if n != 1 {
		errs = append(errs, fmt.Errorf("source must have exactly one of remote, local or audio, got %d", n))
	}

	return errs
}
