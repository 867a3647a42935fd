package engine

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/SeyhmusGuler/SCIRun/internal/logger"
)

// Option configures an Executor.
type Option func(*Executor)

// WithMaxWorkers bounds how many modules of one group run at once. Values
// below 1 are ignored.
func WithMaxWorkers(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.maxWorkers = n
		}
	}
}

// WithLogger sets the logger used for run and module events.
func WithLogger(log *logger.Logger) Option {
	return func(e *Executor) {
		e.log = log
	}
}

// WithTracer overrides the tracer obtained from the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Executor) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}
