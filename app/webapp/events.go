package webapp

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/webdemo/core/logger"
)

// CustomCategory names the category logger used by the redirect stage.
const CustomCategory = "CustomCategory"

const (
	eventViewRequested        = "ViewRequested"
	eventViewRequestedOptions = "ViewRequestedOptions"
)

func logViewRequested(ctx context.Context, log *slog.Logger) {
	log.LogAttrs(ctx, slog.LevelInfo, "View requested",
		logger.Event(eventViewRequested),
		slog.Int("event_id", 1),
	)
}

func logViewRequestedOptions(ctx context.Context, log *slog.Logger, options string, count int) {
	log.LogAttrs(ctx, slog.LevelInfo, "View requested with options",
		logger.Event(eventViewRequestedOptions),
		slog.Int("event_id", 2),
		slog.String("options", options),
		slog.Int("count", count),
	)
}
