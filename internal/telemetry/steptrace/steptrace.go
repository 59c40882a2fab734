// Package steptrace wraps one router step in a span, mirroring the
// teacher's per-RPC lookup span but for the routing engine's own unit of
// work: a timestep.
package steptrace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "leoroute/steptrace"

var tracer = otel.Tracer(tracerName)

// StartStep opens a span for processing timestep t under algorithm, with
// the configured look-ahead window size as an attribute. The caller sets
// entries_written on the returned span once the step completes.
func StartStep(ctx context.Context, t int64, algorithm string, lookaheadSteps int) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, "router.step",
		trace.WithAttributes(
			attribute.Int64("timestep", t),
			attribute.String("algorithm", algorithm),
			attribute.Int("lookahead_steps", lookaheadSteps),
		),
	)
	return ctx, span
}

// SetEntriesWritten stamps the final entries_written count onto span once
// the step's delta file has been written.
func SetEntriesWritten(span trace.Span, n int) {
	span.SetAttributes(attribute.Int("entries_written", n))
}
