package consumers

import (
	"catalogconsole/domain"
	"catalogconsole/pkg/events"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var ErrMalformedPayload = errors.New("malformed payload")

const saveAttempts = 3

type ActivityStore interface {
	SaveActivity(ctx context.Context, activity domain.Activity) error
}

// ActivityEventHandler records every catalog event as one activity row.
type ActivityEventHandler struct {
	store ActivityStore
}

func NewActivityEventHandler(store ActivityStore) *ActivityEventHandler {
	return &ActivityEventHandler{
		store: store,
	}
}

func (h *ActivityEventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	zap.L().Info("Catalog event received",
		zap.String("event", event.Event),
		zap.String("version", event.Version),
		zap.String("traceId", event.TraceID),
	)

	activity, known, err := toActivity(event)
	if err != nil {
		return err
	}
	if !known {
		zap.L().Warn("Unknown catalog event, skipping", zap.String("event", event.Event))
		return nil
	}

	return h.save(ctx, activity)
}

func (h *ActivityEventHandler) save(ctx context.Context, activity domain.Activity) error {
	var err error
	for attempt := 1; attempt <= saveAttempts; attempt++ {
		if err = h.store.SaveActivity(ctx, activity); err == nil {
			return nil
		}
		if attempt < saveAttempts {
			zap.L().Warn("Failed to save activity, retrying",
				zap.String("traceId", activity.TraceID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			time.Sleep(time.Duration(10*attempt) * time.Millisecond)
		}
	}
	return fmt.Errorf("failed to save activity after %d attempts: %w", saveAttempts, err)
}

// toActivity reports known=false for events this handler does not record.
func toActivity(event *events.Event) (domain.Activity, bool, error) {
	if event.TraceID == "" {
		return domain.Activity{}, false, fmt.Errorf("%w: trace id missing", ErrMalformedPayload)
	}

	activity := domain.Activity{
		ID:         event.TraceID,
		Event:      event.Event,
		TraceID:    event.TraceID,
		OccurredAt: event.Timestamp,
	}
	if activity.OccurredAt.IsZero() {
		activity.OccurredAt = time.Now().UTC()
	}

	switch event.Event {
	case events.CategoryCreatedEvent:
		var p events.CategoryCreatedPayload
		if err := decode(event, &p); err != nil {
			return activity, true, err
		}
		if p.Name == "" {
			return activity, true, fmt.Errorf("%w: category name missing", ErrMalformedPayload)
		}
		activity.ResourceID = p.ID
		activity.Actor = p.Actor
		activity.Summary = fmt.Sprintf("Added category %q", p.Name)

	case events.CategoryDeletedEvent:
		var p events.CategoryDeletedPayload
		if err := decode(event, &p); err != nil {
			return activity, true, err
		}
		if p.ID == "" {
			return activity, true, fmt.Errorf("%w: category id missing", ErrMalformedPayload)
		}
		activity.ResourceID = p.ID
		activity.Actor = p.Actor
		activity.Summary = "Deleted category " + p.ID

	case events.ProductCreatedEvent, events.ProductUpdatedEvent:
		var p events.ProductChangedPayload
		if err := decode(event, &p); err != nil {
			return activity, true, err
		}
		if p.Name == "" {
			return activity, true, fmt.Errorf("%w: product name missing", ErrMalformedPayload)
		}
		verb := "Added"
		if event.Event == events.ProductUpdatedEvent {
			verb = "Updated"
		}
		activity.ResourceID = p.ID
		activity.Actor = p.Actor
		activity.Summary = fmt.Sprintf("%s product %q (price %s, stock %d)", verb, p.Name, p.Price.String(), p.Stock)

	case events.ProductDeletedEvent:
		var p events.ProductDeletedPayload
		if err := decode(event, &p); err != nil {
			return activity, true, err
		}
		if p.ID == "" {
			return activity, true, fmt.Errorf("%w: product id missing", ErrMalformedPayload)
		}
		activity.ResourceID = p.ID
		activity.Actor = p.Actor
		activity.Summary = "Deleted product " + p.ID

	case events.ProductImportedEvent:
		var p events.ProductImportedPayload
		if err := decode(event, &p); err != nil {
			return activity, true, err
		}
		activity.Actor = p.Actor
		activity.Summary = fmt.Sprintf("Imported %d products, %d failed", p.Imported, p.Failed)

	default:
		return activity, false, nil
	}

	return activity, true, nil
}

func decode(event *events.Event, out any) error {
	if event.Payload == nil {
		return fmt.Errorf("%w: %s has no payload", ErrMalformedPayload, event.Event)
	}
	if err := event.DecodePayload(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedPayload, event.Event, err)
	}
	return nil
}
