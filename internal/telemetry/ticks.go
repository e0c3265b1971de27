package telemetry

import (
	"context"

	"github.com/l1jgo/ticksim/internal/core/tick"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/l1jgo/ticksim"

// TracePasses wraps every tick pass of clock in a span. tracer nil uses
// the global provider, which is a no-op unless Setup registered one.
func TracePasses(clock *tick.Clock, tracer trace.Tracer) {
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	clock.SetPassWrapper(func(t tick.Tick, pass func()) {
		_, span := tracer.Start(context.Background(), "tick",
			trace.WithAttributes(
				attribute.Int64("tick.number", int64(t)),
				attribute.Int("tick.listeners", clock.Listeners()),
				attribute.Int("tick.scheduled", clock.Scheduler().Pending()),
			))
		defer span.End()
		pass()
	})
}
