// Package events publica los movimientos confirmados del libro en Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Electrotienda-api/internal/application/inventory"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	"github.com/jhoicas/Electrotienda-api/pkg/logger"
)

var _ inventory.EventPublisher = (*KafkaPublisher)(nil)

// EventTypeMovementAppended tipo de evento por cada fila nueva del libro.
const EventTypeMovementAppended = "inventory.movement.appended"

const source = "electrotienda-api"

// Event sobre estándar de los mensajes.
type Event struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	Version     int             `json:"version"`
	Timestamp   time.Time       `json:"timestamp"`
	Source      string          `json:"source"`
	Data        json.RawMessage `json:"data"`
}

// MovementData payload de inventory.movement.appended.
type MovementData struct {
	MovementID     string          `json:"movement_id"`
	ProductID      string          `json:"product_id"`
	Type           string          `json:"type"`
	Quantity       int64           `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	ReferenceTable string          `json:"reference_table"`
	ReferenceID    string          `json:"reference_id"`
	ReversalOf     string          `json:"reversal_of,omitempty"`
	UserID         string          `json:"user_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// messageWriter lo que usamos de *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher implementa inventory.EventPublisher con segmentio/kafka-go.
// Clave del mensaje = product_id, así los eventos de un producto conservan el orden.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	log    *logger.Logger
}

// NewKafkaPublisher construye el publicador sobre los brokers dados.
func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
	}
	return newPublisher(w, topic, log)
}

func newPublisher(w messageWriter, topic string, log *logger.Logger) *KafkaPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &KafkaPublisher{writer: w, topic: topic, log: log.Component("kafka")}
}

// PublishMovements envía un evento por movimiento en una sola escritura.
func (p *KafkaPublisher) PublishMovements(ctx context.Context, movements []*entity.MovementLog) error {
	if len(movements) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(movements))
	for _, m := range movements {
		value, err := marshalMovement(m)
		if err != nil {
			return fmt.Errorf("marshal movement %s: %w", m.ID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(m.ProductID),
			Value: value,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(EventTypeMovementAppended)},
				{Key: "source", Value: []byte(source)},
			},
		})
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}
	p.log.Debug().Str("topic", p.topic).Int("count", len(msgs)).Msg("movimientos publicados")
	return nil
}

// Close vacía el buffer y cierra las conexiones.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func marshalMovement(m *entity.MovementLog) ([]byte, error) {
	data, err := json.Marshal(MovementData{
		MovementID:     m.ID,
		ProductID:      m.ProductID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		UnitCost:       m.UnitCost,
		ReferenceTable: m.ReferenceTable,
		ReferenceID:    m.ReferenceID,
		ReversalOf:     m.ReversalOf,
		UserID:         m.UserID,
		CreatedAt:      m.CreatedAt,
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{
		EventID:     uuid.NewString(),
		EventType:   EventTypeMovementAppended,
		AggregateID: m.ProductID,
		Version:     1,
		Timestamp:   time.Now().UTC(),
		Source:      source,
		Data:        data,
	})
}
