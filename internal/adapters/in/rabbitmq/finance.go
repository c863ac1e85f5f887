package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

// Payment and payer announcements both land here. Finance mirrors are cheap
// to rebuild, so any hit drops them rather than patching entries in place.
func (l *CacheHitListener) processFinanceMessage(ctx context.Context, key CacheMessageRoutingKey, msg amqp.Delivery) error {
	if key.ResourceType != CacheHitResourceTypePayment && key.ResourceType != CacheHitResourceTypePayer {
		return nil
	}

	l.useCase.InvalidateFinance(ctx)
	l.logger.Info("finance.message.invalidated", out.LogFields{
		"resource": string(key.ResourceType),
	})

	return nil
}
