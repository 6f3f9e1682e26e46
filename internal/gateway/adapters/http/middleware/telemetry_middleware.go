package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"gotodo/pkg/telemetry"
)

// TracerName - имя трассировщика HTTP-слоя.
const TracerName = "gotodo/http"

// NewTelemetryMiddleware открывает серверный span на каждый запрос и пишет
// счетчик и длительность запросов в metrics. При metrics == nil пишутся только span.
func NewTelemetryMiddleware(tp trace.TracerProvider, metrics *telemetry.Metrics) fiber.Handler {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(TracerName)

	return func(ctx fiber.Ctx) error {
		start := time.Now()
		propagator := otel.GetTextMapPropagator()

		carrier := propagation.MapCarrier{}
		for _, field := range propagator.Fields() {
			if value := ctx.Get(field); value != "" {
				carrier.Set(field, value)
			}
		}
		parent := propagator.Extract(RequestContext(ctx), carrier)

		spanCtx, span := tracer.Start(parent, ctx.Method()+" "+ctx.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", ctx.Method()),
				attribute.String("url.path", ctx.Path()),
			),
		)
		defer span.End()

		SetRequestContext(ctx, spanCtx)

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		route := ctx.Route().Path
		span.SetName(ctx.Method() + " " + route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", status),
		)
		if err != nil {
			span.RecordError(err)
		}
		if status >= fiber.StatusInternalServerError || err != nil {
			span.SetStatus(codes.Error, "server error")
		}

		if metrics != nil {
			attrs := metric.WithAttributes(
				attribute.String("method", ctx.Method()),
				attribute.String("route", route),
				attribute.Int("status", status),
			)
			metrics.RequestCounter.Add(spanCtx, 1, attrs)
			metrics.RequestDuration.Record(spanCtx, time.Since(start).Seconds(), attrs)
		}

		return err
	}
}
