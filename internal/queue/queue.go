package queue

import (
	"encoding/json"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rabbitmq/amqp091-go"

	"github.com/lattice-kg/lattice/internal/util"
	"github.com/lattice-kg/lattice/pkg/logger"
)

// ReloadExchange is the fanout exchange reload requests are broadcast on.
// Every server replica binds its own exclusive queue, so a single reload
// request swaps the graphs on all replicas.
const ReloadExchange = "graph_reload"

// ReloadMsg is the payload broadcast when a reload is requested. The
// correlation id ties the log lines of all replicas acting on one request
// together.
type ReloadMsg struct {
	CorrelationID string    `json:"correlation_id"`
	Message       string    `json:"message"`
	RequestedBy   string    `json:"requested_by,omitempty"`
	RequestedAt   time.Time `json:"requested_at"`
}

func Init() *amqp091.Connection {
	user := util.GetEnv("RABBITMQ_USER")
	pass := util.GetEnv("RABBITMQ_PASSWORD")
	host := util.GetEnv("RABBITMQ_HOST")
	port := util.GetEnv("RABBITMQ_PORT")

	connURL := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		user,
		pass,
		host,
		port,
	)

	conn, err := amqp091.Dial(connURL)
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", "err", err)
	}

	return conn
}

// SetupExchange declares the reload fanout exchange on the given channel.
func SetupExchange(ch *amqp091.Channel) error {
	return ch.ExchangeDeclare(
		ReloadExchange,
		"fanout",
		false, // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
}

// PublishReload broadcasts a reload request to all server replicas.
func PublishReload(ch *amqp091.Channel, msg ReloadMsg) error {
	if msg.CorrelationID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return err
		}
		msg.CorrelationID = id
	}
	if msg.RequestedAt.IsZero() {
		msg.RequestedAt = time.Now()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return ch.Publish(
		ReloadExchange,
		"",    // fanout ignores the routing key
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         data,
			DeliveryMode: amqp091.Transient,
			Timestamp:    time.Now(),
		},
	)
}
