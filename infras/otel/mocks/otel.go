package mocks

import (
	"context"
	"vista/infras/otel"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type otelImpl struct {
	tracer oteltrace.Tracer
}

// NewScope starts a span that is never recorded or exported.
func (o *otelImpl) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	ctx, span := o.tracer.Start(ctx, spanName)

	return ctx, otel.NewScope(span)
}

func (o *otelImpl) Shutdown(_ context.Context) error {
	return nil
}

// NewOtel returns an otel.Otel for tests that need tracing wired but not observed.
func NewOtel() otel.Otel {
	return &otelImpl{tracer: noop.NewTracerProvider().Tracer("test")}
}
