package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/orca-works/orca-crm/internal/config"
	"github.com/orca-works/orca-crm/internal/events"
	"github.com/orca-works/orca-crm/internal/persistence"
)

// NotificationService logs domain events and mirrors them onto a Redis
// pub/sub channel when one is configured.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	redis      *persistence.Redis
	cfg        config.EventsConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, redis *persistence.Redis, cfg config.EventsConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		redis:      redis,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventCustomerCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTaskCompleted, n.handleEvent)
	n.dispatcher.Subscribe(events.EventDeviceCustodyChanged, n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	n.mirrorToRedis(ctx, event)
	return nil
}

func (n *NotificationService) mirrorToRedis(ctx context.Context, event events.Event) {
	if n.cfg.RedisChannel == "" || n.redis == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("marshal event for redis mirror", zap.Error(err))
		return
	}
	if err := n.redis.Publish(ctx, n.cfg.RedisChannel, payload); err != nil {
		n.logger.Warn("publish event to redis", zap.String("channel", n.cfg.RedisChannel), zap.Error(err))
	}
}
