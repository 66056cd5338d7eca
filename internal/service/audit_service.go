package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/user-notification-service/internal/events"
)

// BrokerPublisher forwards events to an external broker.
type BrokerPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// AuditService records every domain event and forwards it when a broker is configured.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	broker     BrokerPublisher
}

// NewAuditService creates the service. broker may be nil.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, broker BrokerPublisher) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		broker:     broker,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

func (a *AuditService) handle(ctx context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("subject_id", event.SubjectID),
		zap.Any("payload", event.Payload))

	if a.broker == nil {
		return nil
	}
	if err := a.broker.Publish(ctx, string(event.Type), event); err != nil {
		a.logger.Warn("forward event", zap.String("event_type", string(event.Type)), zap.Error(err))
		return err
	}
	return nil
}
