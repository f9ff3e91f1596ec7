package app

import (
	"catalogconsole/pkg/events"
	"context"

	"go.uber.org/zap"
)

const eventService = "catalog-console"

func publishEvent(ctx context.Context, publisher events.Publisher, name string, payload any) {
	if publisher == nil {
		return
	}

	headers := events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: events.CorrelationID(ctx),
		Service:       eventService,
	}

	event := events.NewEvent(name, events.EventVersionV1, payload, headers)

	if err := publisher.Publish(ctx, events.CatalogExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish catalog event",
			zap.String("event", name),
			zap.String("traceId", headers.TraceID),
			zap.Error(err),
		)
	}
}
