package migration

import (
	"context"
	"time"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/events"
	"github.com/frahmantamala/safety-lms/pkg/logger"
)

const (
	TargetNext   = "next"
	TargetLegacy = "legacy"
)

// Call is one implementation of a facade operation.
type Call[T any] func(ctx context.Context) internal.Result[T]

// Route runs op on the implementation selected by the current configuration.
// When the next implementation fails, or panics, and fallback is enabled for the
// failure code, the legacy result is returned instead.
func Route[T any](ctx context.Context, m *Manager, op string, next, legacy Call[T]) internal.Result[T] {
	cfg := m.snapshot()
	if !cfg.UseNewService {
		return run(ctx, m, op, TargetLegacy, legacy)
	}

	res := run(ctx, m, op, TargetNext, next)
	if res.Success || !cfg.fallsBackOn(res.Code) {
		return res
	}

	fallback := run(ctx, m, op, TargetLegacy, legacy)
	m.metrics.recordFallback(op, res.Code)
	if cfg.EnableLogging {
		m.logger.Warn("next implementation failed, served by legacy",
			"operation", op,
			"trace_id", logger.TraceID(ctx),
			"code", res.Code,
			"error", res.Error,
			"legacy_success", fallback.Success,
			"legacy_code", fallback.Code)
		event := events.NewMigrationFallbackEvent(op, string(res.Code), res.Error, fallback.Success)
		if err := m.publisher.Publish(ctx, event); err != nil {
			m.logger.Warn("failed to publish fallback event", "operation", op, "error", err)
		}
	}
	return fallback
}

func run[T any](ctx context.Context, m *Manager, op, target string, call Call[T]) (res internal.Result[T]) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("data layer panicked", "operation", op, "target", target, "panic", r)
			res = internal.Recovered[T](r)
		}
		m.metrics.recordCall(op, target, res.Success, time.Since(start))
	}()
	return call(ctx)
}
