package queue

import (
	"context"
	"encoding/json"

	"github.com/rabbitmq/amqp091-go"

	"github.com/lattice-kg/lattice/pkg/logger"
	"github.com/lattice-kg/lattice/pkg/store"
)

// ConsumeReloads binds an exclusive queue to the reload exchange and applies
// every incoming reload request to the registry. The queue is anonymous and
// auto-deleted, so each replica sees every broadcast and nothing lingers
// after shutdown.
//
// ConsumeReloads blocks until the context is canceled or the channel closes.
func ConsumeReloads(ctx context.Context, ch *amqp091.Channel, registry *store.Registry) error {
	if err := SetupExchange(ch); err != nil {
		return err
	}

	q, err := ch.QueueDeclare(
		"",    // broker-assigned name
		false, // durable
		true,  // autoDelete
		true,  // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return err
	}

	if err := ch.QueueBind(q.Name, "", ReloadExchange, false, nil); err != nil {
		return err
	}

	deliveries, err := ch.Consume(
		q.Name,
		"",    // consumer tag
		true,  // autoAck
		true,  // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return err
	}

	logger.Info("[Queue] listening for reload requests", "queue", q.Name)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case delivery, ok := <-deliveries:
			if !ok {
				return nil
			}

			var msg ReloadMsg
			if err := json.Unmarshal(delivery.Body, &msg); err != nil {
				logger.Warn("[Queue] discarding malformed reload request", "err", err)
				continue
			}

			logger.Info("[Queue] reload requested", "id", msg.CorrelationID, "by", msg.RequestedBy, "message", msg.Message)
			if err := registry.Reload(ctx); err != nil {
				logger.Error("[Queue] reload failed, keeping current graphs", "err", err)
			}
		}
	}
}
