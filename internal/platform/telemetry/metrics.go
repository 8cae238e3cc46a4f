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
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/phrazzld/stride-risk/internal/config"
)

// MeterName is the instrumentation scope used for all service instruments.
const MeterName = "github.com/phrazzld/stride-risk"

const (
	exportInterval = 10 * time.Second
	initTimeout    = 5 * time.Second
)

// ShutdownFunc flushes and stops the meter provider.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs a global OTLP metrics exporter (push) when metrics are
// enabled. When disabled the global no-op provider stays in place and the
// returned shutdown does nothing.
func Setup(ctx context.Context, cfg config.MetricsConfig, logger *slog.Logger) (ShutdownFunc, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "telemetry"))

	if !cfg.Enabled {
		log.Info("metrics export disabled")
		return noopShutdown, nil
	}

	res, err := sdkresource.New(ctx,
		sdkresource.WithFromEnv(),
		sdkresource.WithTelemetrySDK(),
		sdkresource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build metrics resource: %w", err)
	}

	ctxInit, cancel := context.WithTimeout(ctx, initTimeout)
	defer cancel()

	exp, err := otlpmetricgrpc.New(ctxInit,
		otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(exportInterval))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res))
	otel.SetMeterProvider(mp)

	log.Info("metrics initialized",
		slog.String("endpoint", cfg.OTLPEndpoint),
		slog.String("service_name", cfg.ServiceName))

	return mp.Shutdown, nil
}

// Instruments holds the counters and histograms recorded by the service.
type Instruments struct {
	samplesIngested metric.Int64Counter
	samplesRejected metric.Int64Counter
	samplesEvicted  metric.Int64Counter
	assessments     metric.Int64Counter
	riskScore       metric.Int64Histogram
}

// NewInstruments creates the service instruments on the given meter.
func NewInstruments(meter metric.Meter) (*Instruments, error) {
	ingested, err := meter.Int64Counter("stride_samples_ingested_total",
		metric.WithDescription("Daily samples accepted for storage"))
	if err != nil {
		return nil, err
	}
	rejected, err := meter.Int64Counter("stride_samples_rejected_total",
		metric.WithDescription("Daily samples rejected by validation"))
	if err != nil {
		return nil, err
	}
	evicted, err := meter.Int64Counter("stride_samples_evicted_total",
		metric.WithDescription("Samples dropped by the retention window"))
	if err != nil {
		return nil, err
	}
	assessments, err := meter.Int64Counter("stride_assessments_total",
		metric.WithDescription("Completed risk assessments by overall risk"))
	if err != nil {
		return nil, err
	}
	score, err := meter.Int64Histogram("stride_risk_score",
		metric.WithDescription("Distribution of assessment risk scores"),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90, 100))
	if err != nil {
		return nil, err
	}

	return &Instruments{
		samplesIngested: ingested,
		samplesRejected: rejected,
		samplesEvicted:  evicted,
		assessments:     assessments,
		riskScore:       score,
	}, nil
}

// DefaultInstruments creates instruments on the global meter provider.
func DefaultInstruments() (*Instruments, error) {
	return NewInstruments(otel.Meter(MeterName))
}

// RecordIngest counts an accepted sample and the evictions it caused.
func (i *Instruments) RecordIngest(ctx context.Context, evicted int) {
	i.samplesIngested.Add(ctx, 1)
	if evicted > 0 {
		i.samplesEvicted.Add(ctx, int64(evicted))
	}
}

// RecordRejected counts a sample that failed validation.
func (i *Instruments) RecordRejected(ctx context.Context) {
	i.samplesRejected.Add(ctx, 1)
}

// RecordAssessment counts a completed assessment and records its score.
func (i *Instruments) RecordAssessment(ctx context.Context, overallRisk string, score int) {
	attrs := metric.WithAttributes(attribute.String("overall_risk", overallRisk))
	i.assessments.Add(ctx, 1, attrs)
	i.riskScore.Record(ctx, int64(score), attrs)
}
