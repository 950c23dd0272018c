package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/plandesk/admin-api/internal/events"
)

func publishWithDefaults(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}
