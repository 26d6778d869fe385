package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies this module's spans in whatever otel SDK the
// host process configures (or doesn't — otel.Tracer falls back to a
// no-op tracer when no SDK is registered, which is the common case for
// a library used outside a traced service).
const tracerName = "github.com/gitrdm/eqsat"

// StartSpan starts a span named name as a child of ctx, returning the
// derived context and the span. Callers end the span with span.End(),
// typically via defer. This thin wrapper exists so pkg/eqsat never
// imports otel directly, keeping the core algorithm package's
// dependency graph small the way the design's collaborator boundary
// intends.
func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name)
}
