package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/nueltech/catalog-service/internal/config"
	"github.com/nueltech/catalog-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventProductCreated, n.handleProductChanged)
	n.dispatcher.Subscribe(events.EventProductUpdated, n.handleProductChanged)
	n.dispatcher.Subscribe(events.EventProductDeleted, n.handleProductChanged)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("user_id", event.EntityID))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleProductChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ProductChanged",
		zap.String("type", string(event.Type)),
		zap.String("product_id", event.EntityID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload),
	)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

// sendEmailNotificationStub logs instead of delivering mail. A real sender
// would read n.cfg.EmailFrom and hand off to a provider.
func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	n.logger.Debug("email notification stub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_id", event.ID),
	)
}

// sendWebhookNotificationStub logs instead of POSTing to the webhook.
func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if n.cfg.WebhookURL == "" {
		return
	}
	n.logger.Debug("webhook notification stub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_id", event.ID),
	)
}
