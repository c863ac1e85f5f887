package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

func (l *CacheHitListener) processAllMessage(ctx context.Context, key CacheMessageRoutingKey, msg amqp.Delivery) error {
	if key.ResourceType != CacheHitResourceTypeAll {
		return nil
	}

	l.useCase.InvalidateAll(ctx)
	l.logger.Info("_all_.message.invalidated", nil)

	return nil
}
