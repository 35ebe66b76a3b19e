package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/config"
	"github.com/spec-kit/users-service/internal/events"
)

// Notifier is told about every successfully created user so that the
// credentials can be delivered out of band. accountID is the persisted id.
type Notifier interface {
	NotifyAccountCreated(ctx context.Context, accountID int64, email, displayName, plaintextPassword string) error
}

// NotificationService hands account events to the message bus.
type NotificationService struct {
	dispatcher events.Dispatcher
	publisher  events.Publisher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service. A nil publisher turns delivery
// into a logged stub.
func NewNotificationService(dispatcher events.Dispatcher, publisher events.Publisher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventPassengerCreated, n.handlePassengerCreated)
}

// NotifyAccountCreated implements Notifier.
func (n *NotificationService) NotifyAccountCreated(ctx context.Context, accountID int64, email, displayName, plaintextPassword string) error {
	event := events.NewEvent(events.EventUserCreated, events.AccountKindUser, accountID, events.UserCreatedPayload{
		Email:    email,
		Username: displayName,
		Password: plaintextPassword,
	})
	return n.deliver(ctx, event)
}

func (n *NotificationService) handlePassengerCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("PassengerCreated",
		zap.String("event_id", event.ID),
		zap.Int64("passenger_id", event.AccountID),
		zap.Any("payload", event.Payload))
	return n.deliver(ctx, event)
}

// deliver publishes the event within the configured timeout. Payloads are never
// logged here because user_created carries credentials.
func (n *NotificationService) deliver(ctx context.Context, event events.Event) error {
	if !n.cfg.Enabled || n.publisher == nil {
		n.logger.Debug("deliverNotificationStub",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout())
	defer cancel()

	if err := n.publisher.Publish(ctx, event); err != nil {
		return err
	}
	n.logger.Debug("notification published",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
	return nil
}
