package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/Comercio-api/internal/application/events"
	"github.com/jhoicas/Comercio-api/pkg/logger"
)

var _ events.Publisher = (*Publisher)(nil)

// Publisher publica eventos de negocio en un topic de Kafka. El Writer
// balancea por hash de la key (tipo de evento), de modo que los eventos del
// mismo tipo conservan el orden de partición.
type Publisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewPublisher construye el publicador sobre los brokers dados.
func NewPublisher(brokers []string, topic string, log *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Publisher{writer: writer, log: log.Component("kafka")}
}

// Publish serializa el evento a JSON y lo escribe en el topic.
func (p *Publisher) Publish(event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Type),
		Value: payload,
		Time:  event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	p.log.Debug().Str("type", event.Type).Msg("evento publicado")
	return nil
}

// Close cierra el writer (espera los batches pendientes).
func (p *Publisher) Close() error {
	return p.writer.Close()
}
