// SPDX-License-Identifier: EPL-2.0

// Command audwave acquires waveform data for one audio asset, as described
// by a YAML file, and writes it in the audiowaveform JSON or binary format.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/audwave"
	"github.com/ik5/audwave/builder"
	"github.com/ik5/audwave/config"
	"github.com/ik5/audwave/observe"
	"github.com/ik5/audwave/transport"
	"github.com/ik5/audwave/waveform"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "audwave.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audwave: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	metrics := observe.InitProvider()
	defer func() {
		if err := metrics.LogSummary(context.Background(), logger.With("component", "metrics")); err != nil {
			slog.Warn("metrics summary failed", "err", err)
		}
		_ = metrics.Shutdown(context.Background())
	}()

	m, err := observe.NewMetrics(metrics.MeterProvider())
	if err != nil {
		slog.Error("failed to create metrics", "err", err)
		return 1
	}

	topts, err := cfg.TransportOptions()
	if err != nil {
		slog.Error("failed to configure transport", "err", err)
		return 1
	}

	b := builder.New(
		builder.WithTransport(transport.NewClient(append(topts, transport.WithLogger(logger))...)),
		builder.WithCapabilities(cfg.BuilderCapabilities()),
		builder.WithLogger(logger),
		builder.WithMetrics(m),
	)

	opts, err := cfg.Options()
	if err != nil {
		slog.Error("failed to prepare source", "err", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	data, err := audwave.Acquire(ctx, b, opts)
	if err != nil {
		if errors.Is(err, builder.ErrTransportAborted) {
			slog.Warn("acquisition cancelled")
		} else {
			slog.Error("acquisition failed", "err", err)
		}
		return 1
	}

	slog.Info("waveform acquired",
		"channels", data.Channels,
		"length", data.Length,
		"samples_per_pixel", data.SamplesPerPixel,
		"duration", data.Duration(),
	)

	if err := write(cfg.Output, data); err != nil {
		slog.Error("failed to write waveform", "err", err)
		return 1
	}

	return 0
}

func write(out config.OutputConfig, data *waveform.Data) error {
	if out.Path == "" || out.Path == "-" {
		return encode(os.Stdout, out.Format, data)
	}

	f, err := os.Create(out.Path)
	if err != nil {
		return fmt.Errorf("create %q: %w", out.Path, err)
	}

	return encodeAndClose(f, out.Format, data)
}

// encodeAndClose encodes data into wc and closes it. A Close error is
// joined with any encode error.
func encodeAndClose(wc io.WriteCloser, format config.OutputFormat, data *waveform.Data) error {
	err := encode(wc, format, data)
	if cerr := wc.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("close output: %w", cerr))
	}

	return err
}

func encode(w io.Writer, format config.OutputFormat, data *waveform.Data) error {
	if format == config.OutputBinary {
		return waveform.EncodeBinary(w, data)
	}

	return waveform.EncodeJSON(w, data)
}
