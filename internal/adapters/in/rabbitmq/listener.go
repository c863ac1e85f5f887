package rabbitmq

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ampliar/clinic-data-gateway/internal/config"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

// CacheHitListener keeps the resource mirrors coherent with changes the
// clinic API makes outside this process. Each resource gets its own queue;
// messages either carry the changed entity (store) or just name the resource
// (invalidate).
type CacheHitListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.CacheCoherencyUseCase
	cfg     *config.Config
	logger  out.LoggerPort

	// Redeliveries are deduplicated by message id over a bounded window.
	seen *lru.Cache[string, struct{}]
}

type (
	CacheHitType         string
	CacheHitResourceType string
)

type CacheMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType CacheHitResourceType
	CacheHitType CacheHitType
}

const (
	CacheHitResourceTypeAll         CacheHitResourceType = "_all_"
	CacheHitResourceTypeAppointment CacheHitResourceType = "appointment"
	CacheHitResourceTypePatient     CacheHitResourceType = "patient"
	CacheHitResourceTypePayment     CacheHitResourceType = "payment"
	CacheHitResourceTypePayer       CacheHitResourceType = "payer"
)

const (
	CacheHitTypeStore      CacheHitType = "store"
	CacheHitTypeInvalidate CacheHitType = "invalidate"
)

func NewCacheHitListener(useCase in.CacheCoherencyUseCase, cfg *config.Config, logger out.LoggerPort) (*CacheHitListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.AmqpUri)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	seen, err := lru.New[string, struct{}](cfg.RabbitMQ.DedupSize)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &CacheHitListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger.WithModule("CacheHitListener"),
		seen:    seen,
	}, nil
}

func (l *CacheHitListener) Start(ctx context.Context) error {
	queues := l.cfg.RabbitMQ.QueueConfig

	if err := l.startQueue(ctx, queues.AppointmentQueueName, []string{queues.AppointmentQueueBind}, l.processAppointmentMessage); err != nil {
		return err
	}
	l.logger.Info("appointment.queue.started", out.LogFields{
		"queue": queues.AppointmentQueueName,
	})

	if err := l.startQueue(ctx, queues.PatientQueueName, []string{queues.PatientQueueBind}, l.processPatientMessage); err != nil {
		return err
	}
	l.logger.Info("patient.queue.started", out.LogFields{
		"queue": queues.PatientQueueName,
	})

	// Payment and payer announcements share one queue; either one stales
	// the finance mirrors.
	if err := l.startQueue(ctx, queues.FinanceQueueName, []string{queues.FinanceQueueBind, queues.PayerQueueBind}, l.processFinanceMessage); err != nil {
		return err
	}
	l.logger.Info("finance.queue.started", out.LogFields{
		"queue": queues.FinanceQueueName,
	})

	if err := l.startQueue(ctx, queues.AllQueueName, []string{queues.AllQueueBind}, l.processAllMessage); err != nil {
		return err
	}
	l.logger.Info("_all_.queue.started", out.LogFields{
		"queue": queues.AllQueueName,
	})

	return nil
}

func (l *CacheHitListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

func (l *CacheHitListener) startQueue(ctx context.Context, name string, bindings []string, process func(ctx context.Context, key CacheMessageRoutingKey, msg amqp.Delivery) error) error {
	queue, err := l.channel.QueueDeclare(
		name,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	for _, binding := range bindings {
		err = l.channel.QueueBind(
			queue.Name,
			binding,
			l.cfg.RabbitMQ.QueueConfig.Exchange,
			false,
			nil,
		)
		if err != nil {
			return err
		}
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		uuid.NewString(), // consumer tag
		false,            // auto-ack
		false,            // exclusive
		false,            // no-local
		false,            // no-wait
		nil,              // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				// A malformed key can never succeed on retry.
				key, err := parseCacheMessageRoutingKey(msg)
				if err != nil {
					l.logger.Warn("message.routing_key.invalid", out.LogFields{
						"queue":      name,
						"routingKey": msg.RoutingKey,
					})
					msg.Ack(false)
					continue
				}

				if l.isDuplicate(msg) {
					msg.Ack(false)
					continue
				}
				if err := process(ctx, key, msg); err != nil {
					l.logger.Warn("message.process.failed", out.LogFields{
						"queue":      name,
						"routingKey": msg.RoutingKey,
						"error":      err.Error(),
					})
					msg.Nack(false, true) // requeue message
					continue
				}
				l.markProcessed(msg)
				msg.Ack(false)
			}
		}
	}()

	return nil
}

func (l *CacheHitListener) isDuplicate(msg amqp.Delivery) bool {
	if msg.MessageId == "" {
		return false
	}
	if l.seen.Contains(msg.MessageId) {
		l.logger.Debug("message.duplicate.skipped", out.LogFields{
			"messageId": msg.MessageId,
		})
		return true
	}
	return false
}

// markProcessed records the id only after the handler succeeded, so a
// requeued redelivery of a failed message is retried instead of skipped.
func (l *CacheHitListener) markProcessed(msg amqp.Delivery) {
	if msg.MessageId == "" {
		return
	}
	l.seen.Add(msg.MessageId, struct{}{})
}

// Example routing keys:
// clinic-api.data-gateway.appointment.store
// clinic-api.data-gateway.patient.invalidate
// clinic-api.data-gateway._all_.invalidate
func parseCacheMessageRoutingKey(msg amqp.Delivery) (CacheMessageRoutingKey, error) {
	parts := strings.Split(msg.RoutingKey, ".")
	if len(parts) != 4 {
		return CacheMessageRoutingKey{}, fmt.Errorf("invalid routing key: %s", msg.RoutingKey)
	}

	return CacheMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: CacheHitResourceType(parts[2]),
		CacheHitType: CacheHitType(parts[3]),
	}, nil
}
