package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/rotator/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that log every event.
// Transitions log at Info, rejections at Warn (invalid index) or Debug
// (autoplay tick while paused), autoplay toggles at Info.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.InfoContext(ctx, "transition",
				"carousel", e.Carousel,
				"from", e.From,
				"index", e.Index,
				"direction", e.Direction.String(),
				"source", e.Source,
				"epoch", e.Epoch,
			)
		},
		OnReject: func(ctx context.Context, e *domain.RejectEvent) {
			level := slog.LevelWarn
			if e.Reason == domain.ReasonAutoplayDisabled {
				level = slog.LevelDebug
			}
			attrs := []any{"carousel", e.Carousel, "intent", e.Intent.String(), "source", e.Source, "reason", e.Reason}
			if e.Err != nil {
				attrs = append(attrs, "err", e.Err)
			}
			logger.Log(ctx, level, "intent rejected", attrs...)
		},
		OnAutoplay: func(ctx context.Context, e *domain.AutoplayEvent) {
			logger.InfoContext(ctx, "autoplay toggled",
				"carousel", e.Carousel,
				"enabled", e.Enabled,
				"source", e.Source,
			)
		},
	}
}
