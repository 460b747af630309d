package telemetry

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/cbti-tools/sleep-diary/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// InitTracer sets the global OpenTelemetry tracer provider, exporting
// spans to Langfuse over OTLP/HTTP. When Langfuse is not configured the
// default noop provider stays in place and the returned shutdown does
// nothing, so callers never need to branch.
func InitTracer(ctx context.Context, cfg *config.Config, serviceName string) (ShutdownFunc, error) {
	if cfg.LangfuseBaseURL == "" || cfg.LangfusePublicKey == "" || cfg.LangfuseSecretKey == "" {
		log.Println("Langfuse not configured, tracing disabled")
		return func(context.Context) error { return nil }, nil
	}

	// Langfuse authenticates OTLP with Basic auth over its key pair.
	creds := cfg.LangfusePublicKey + ":" + cfg.LangfuseSecretKey
	auth := base64.StdEncoding.EncodeToString([]byte(creds))

	exporter, err := otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpointURL(fmt.Sprintf("%s/api/public/otel/v1/traces", cfg.LangfuseBaseURL)),
		otlptracehttp.WithHeaders(map[string]string{
			"Authorization": "Basic " + auth,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create OTLP exporter: %w", err)
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("langfuse.environment", cfg.LangfuseEnv),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	log.Printf("Tracing enabled, exporting to %s", cfg.LangfuseBaseURL)

	return tp.Shutdown, nil
}
