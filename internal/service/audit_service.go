package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/daily-pulse/internal/events"
)

// AuditService writes administrative and editorial actions to the log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger.Named("audit")}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, t := range []events.EventType{
		events.EventArticleCreated,
		events.EventArticleModerated,
		events.EventArticleDeleted,
		events.EventUserPromoted,
		events.EventUserDeleted,
	} {
		a.dispatcher.Subscribe(t, a.record)
	}
}

func (a *AuditService) record(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("document_id", event.DocumentID.Hex()),
		zap.String("actor", event.Actor.Email),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload))
	return nil
}
