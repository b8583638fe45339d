// Package telemetry exports search progress as OpenTelemetry metrics.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

const (
	meterName      = "github.com/Amr-9/VanityHunter"
	exportInterval = 10 * time.Second
)

// StatsFunc returns the current progress snapshot.
type StatsFunc func() generator.Stats

// Shutdown flushes and stops the exporter.
type Shutdown func(context.Context) error

func noop(context.Context) error { return nil }

// Init pushes metrics to the OTLP/gRPC collector at endpoint. An empty
// endpoint disables export and returns a no-op shutdown.
func Init(ctx context.Context, endpoint, service string, network generator.Network, stats StatsFunc) (Shutdown, error) {
	if endpoint == "" {
		return noop, nil
	}
	res, err := sdkresource.Merge(sdkresource.Default(), sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(service),
	))
	if err != nil {
		return noop, fmt.Errorf("metrics resource: %w", err)
	}

	ctxInit, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	exp, err := otlpmetricgrpc.New(ctxInit,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return noop, fmt.Errorf("metrics exporter: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(exportInterval))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res))
	otel.SetMeterProvider(mp)

	if err := Register(mp, network, stats); err != nil {
		_ = mp.Shutdown(ctx)
		return noop, err
	}
	slog.Info("metrics initialized", "endpoint", endpoint, "interval", exportInterval)
	return mp.Shutdown, nil
}

// Register creates the search instruments on mp, observed from stats on
// every collection.
func Register(mp metric.MeterProvider, network generator.Network, stats StatsFunc) error {
	meter := mp.Meter(meterName)

	attempts, err := meter.Int64ObservableCounter("vanity_attempts_total",
		metric.WithDescription("Keypairs generated and tested"))
	if err != nil {
		return err
	}
	matches, err := meter.Int64ObservableCounter("vanity_matches_total",
		metric.WithDescription("Keypairs whose address matched the pattern"))
	if err != nil {
		return err
	}
	rate, err := meter.Float64ObservableGauge("vanity_hash_rate",
		metric.WithDescription("Keypairs per second over the recent window"),
		metric.WithUnit("{keypair}/s"))
	if err != nil {
		return err
	}

	attrs := metric.WithAttributes(attribute.String("network", network.String()))
	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := stats()
		o.ObserveInt64(attempts, int64(s.Attempts), attrs)
		o.ObserveInt64(matches, int64(s.Matches), attrs)
		o.ObserveFloat64(rate, s.RecentRate, attrs)
		return nil
	}, attempts, matches, rate)
	return err
}
