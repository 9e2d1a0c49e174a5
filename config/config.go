// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML file driving the audwave command.
package config

import "time"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// OutputFormat selects how the waveform is written.
type OutputFormat string

const (
	OutputJSON   OutputFormat = "json"
	OutputBinary OutputFormat = "binary"
)

func (f OutputFormat) IsValid() bool {
	return f == OutputJSON || f == OutputBinary
}

// Config is the top-level configuration.
type Config struct {
	LogLevel LogLevel `yaml:"log_level"`

	// Capabilities lists the remote formats that may be requested. Both are
	// allowed when the section is absent.
	Capabilities *CapabilitiesConfig `yaml:"capabilities"`

	HTTP HTTPConfig `yaml:"http"`

	WithCredentials bool  `yaml:"with_credentials"`
	ZoomLevels      []int `yaml:"zoom_levels"`

	Source SourceConfig `yaml:"source"`
	Output OutputConfig `yaml:"output"`
}

type CapabilitiesConfig struct {
	Binary bool `yaml:"binary"`
	JSON   bool `yaml:"json"`
}

// HTTPConfig tunes the transport.
type HTTPConfig struct {
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`

	UserAgent string `yaml:"user_agent"`

	// Cookies keeps a cookie jar for credentialed requests.
	Cookies bool `yaml:"cookies"`

	// AuthToken is sent as a bearer token on credentialed requests.
	AuthToken string `yaml:"auth_token"`

	// MaxBodyBytes caps response sizes. Zero means no limit.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// SourceConfig names where the waveform comes from. Exactly one section
// must be present.
type SourceConfig struct {
	Remote *RemoteConfig `yaml:"remote"`
	Local  *LocalConfig  `yaml:"local"`
	Audio  *AudioConfig  `yaml:"audio"`
}

type RemoteConfig struct {
	BinaryURL string `yaml:"binary_url"`
	JSONURL   string `yaml:"json_url"`
}

// LocalConfig points at precomputed waveform files.
type LocalConfig struct {
	JSONFile   string `yaml:"json_file"`
	BinaryFile string `yaml:"binary_file"`
}

// AudioConfig generates the waveform from audio, either fetched from URL or
// read from File.
type AudioConfig struct {
	URL          string `yaml:"url"`
	File         string `yaml:"file"`
	MultiChannel bool   `yaml:"multi_channel"`
	Scale        int    `yaml:"scale"`
	SampleRate   int    `yaml:"sample_rate"`
}

type OutputConfig struct {
	// Path of the output file; "-" or empty writes to stdout.
	Path   string       `yaml:"path"`
	Format OutputFormat `yaml:"format"`
}
