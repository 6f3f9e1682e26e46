// Package telemetry инициализирует OpenTelemetry: трейсы и метрики через OTLP gRPC.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"gotodo/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogTelemetryDisabled = "telemetry disabled: no OTLP endpoint configured"
	LogTelemetryEnabled  = "telemetry exporters initialized"

	errCreateConn           = "failed to create gRPC connection"
	errCreateTraceExporter  = "failed to create trace exporter"
	errCreateMetricExporter = "failed to create metric exporter"
	errCreateResource       = "failed to create resource"
)

// Settings описывает параметры экспорта.
type Settings struct {
	ServiceName    string
	Environment    string
	OTLPEndpoint   string
	ExportInterval time.Duration
}

// Providers хранит созданные провайдеры для последующего завершения.
type Providers struct {
	tracer *sdktrace.TracerProvider
	meter  *sdkmetric.MeterProvider
	conn   *grpc.ClientConn
}

// Init настраивает глобальные провайдеры трейсов и метрик.
// При пустом OTLPEndpoint глобальные провайдеры остаются no-op.
func Init(ctx context.Context, s Settings) (*Providers, error) {
	log := logger.Log(ctx).With(zap.String("endpoint", s.OTLPEndpoint))

	if s.OTLPEndpoint == "" {
		log.Info(ctx, LogTelemetryDisabled)
		return &Providers{}, nil
	}

	conn, err := grpc.NewClient(s.OTLPEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCreateConn, err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(s.ServiceName),
			semconv.DeploymentEnvironment(s.Environment),
		),
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", errCreateResource, err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", errCreateTraceExporter, err)
	}

	metricExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", errCreateMetricExporter, err)
	}

	interval := s.ExportInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(interval),
		)),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info(ctx, LogTelemetryEnabled)
	return &Providers{tracer: tp, meter: mp, conn: conn}, nil
}

// Shutdown сбрасывает буферы экспортеров и закрывает соединение.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.tracer != nil {
		errs = append(errs, p.tracer.Shutdown(ctx))
	}
	if p.meter != nil {
		errs = append(errs, p.meter.Shutdown(ctx))
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("telemetry shutdown: %w", err)
	}
	return nil
}
