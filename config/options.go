// SPDX-License-Identifier: EPL-2.0

package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"os"

	"github.com/ik5/audwave/builder"
	"github.com/ik5/audwave/formats"
	"github.com/ik5/audwave/transport"
)

// MediaURL is a media element whose source is fixed.
type MediaURL string

func (u MediaURL) CurrentSrc() string { return string(u) }

// SlogLevel maps the configured level onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// BuilderCapabilities returns the remote formats the builder may request.
func (c *Config) BuilderCapabilities() builder.Capabilities {
	if c.Capabilities == nil {
		return builder.Capabilities{Binary: true, JSON: true}
	}

	return builder.Capabilities{Binary: c.Capabilities.Binary, JSON: c.Capabilities.JSON}
}

// TransportOptions translates the http section.
func (c *Config) TransportOptions() ([]transport.Option, error) {
	opts := []transport.Option{
		transport.WithTimeout(c.HTTP.Timeout),
		transport.WithMaxBodySize(c.HTTP.MaxBodyBytes),
	}

	if c.HTTP.UserAgent != "" {
		opts = append(opts, transport.WithUserAgent(c.HTTP.UserAgent))
	}
	if c.HTTP.Cookies {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("config: cookie jar: %w", err)
		}
		opts = append(opts, transport.WithCookieJar(jar))
	}
	if token := c.HTTP.AuthToken; token != "" {
		opts = append(opts, transport.WithAuthorizer(func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		}))
	}

	return opts, nil
}

// Options builds the acquisition options for the configured source. Local
// files are read and audio files decoded here.
func (c *Config) Options() (builder.Options, error) {
	opts := builder.Options{
		WithCredentials: c.WithCredentials,
		ZoomLevels:      c.ZoomLevels,
	}

	switch src := c.Source; {
	case src.Remote != nil:
		opts.Remote = &builder.RemoteSource{
			BinaryURL: src.Remote.BinaryURL,
			JSONURL:   src.Remote.JSONURL,
		}
	case src.Local != nil:
		local, err := readLocal(src.Local)
		if err != nil {
			return builder.Options{}, err
		}
		opts.Local = local
	case src.Audio != nil:
		audio, err := audioSource(src.Audio)
		if err != nil {
			return builder.Options{}, err
		}
		opts.Audio = audio
	}

	return opts, nil
}

func readLocal(cfg *LocalConfig) (*builder.LocalSource, error) {
	local := &builder.LocalSource{}

	if cfg.JSONFile != "" {
		data, err := os.ReadFile(cfg.JSONFile)
		if err != nil {
			return nil, fmt.Errorf("config: read json_file: %w", err)
		}
		local.JSON = data
	}
	if cfg.BinaryFile != "" {
		data, err := os.ReadFile(cfg.BinaryFile)
		if err != nil {
			return nil, fmt.Errorf("config: read binary_file: %w", err)
		}
		local.Binary = data
	}

	return local, nil
}

func audioSource(cfg *AudioConfig) (*builder.AudioSource, error) {
	src := &builder.AudioSource{
		MultiChannel: cfg.MultiChannel,
		Scale:        cfg.Scale,
		SampleRate:   cfg.SampleRate,
	}

	registry := formats.NewRegistry()

	if cfg.URL != "" {
		src.Decoders = registry
		src.Media = MediaURL(cfg.URL)
		return src, nil
	}

	data, err := os.ReadFile(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("config: read audio file: %w", err)
	}

	dec, format, err := registry.Detect(data)
	if err != nil {
		return nil, fmt.Errorf("config: audio file %q: %w", cfg.File, err)
	}

	buf, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config: decode %s file %q: %w", format, cfg.File, err)
	}
	src.Buffer = buf

	return src, nil
}
