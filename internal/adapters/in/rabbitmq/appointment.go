package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

type CacheAppointmentMessage struct {
	Appointment out.AppointmentDTO `json:"appointment"`
}

func (l *CacheHitListener) processAppointmentMessage(ctx context.Context, key CacheMessageRoutingKey, msg amqp.Delivery) error {
	if key.ResourceType != CacheHitResourceTypeAppointment {
		return nil
	}

	switch key.CacheHitType {
	case CacheHitTypeStore:
		var message CacheAppointmentMessage
		if err := json.Unmarshal(msg.Body, &message); err != nil {
			return err
		}

		l.useCase.StoreAppointment(ctx, message.Appointment)
		l.logger.Info("appointment.message.stored", out.LogFields{
			"appointmentId": message.Appointment.ID,
		})

	case CacheHitTypeInvalidate:
		l.useCase.InvalidateAppointments(ctx)
		l.logger.Info("appointment.message.invalidated", nil)
	}

	return nil
}
