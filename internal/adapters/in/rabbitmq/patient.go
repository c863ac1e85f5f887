package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

type CachePatientMessage struct {
	Patient out.PatientDTO `json:"patient"`
}

func (l *CacheHitListener) processPatientMessage(ctx context.Context, key CacheMessageRoutingKey, msg amqp.Delivery) error {
	if key.ResourceType != CacheHitResourceTypePatient {
		return nil
	}

	switch key.CacheHitType {
	case CacheHitTypeStore:
		var message CachePatientMessage
		if err := json.Unmarshal(msg.Body, &message); err != nil {
			return err
		}

		l.useCase.StorePatient(ctx, message.Patient)
		l.logger.Info("patient.message.stored", out.LogFields{
			"patientId": message.Patient.ID,
		})

	case CacheHitTypeInvalidate:
		l.useCase.InvalidatePatients(ctx)
		l.logger.Info("patient.message.invalidated", nil)
	}

	return nil
}
