package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/daily-pulse/internal/domain"
	"github.com/spec-kit/daily-pulse/internal/events"
)

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_ = dispatcher.Publish(ctx, event)
}

func actorOf(principal *domain.Principal) events.Actor {
	if principal == nil {
		return events.Actor{}
	}
	return events.Actor{Email: principal.Email}
}
