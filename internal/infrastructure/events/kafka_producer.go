// Package events publica en Kafka los eventos de corridas de pagos.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/backoffice-api/internal/application/providerpayments"
)

var jsonMarshal = json.Marshal

// EventPaymentsGrouped tipo de evento en el header "event_type".
const EventPaymentsGrouped = "payments_grouped"

const queueSize = 1000

// KafkaWriter lo que se usa de *kafka.Writer.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var _ providerpayments.EventPublisher = (*Producer)(nil)

// Producer publicación asíncrona: los eventos se encolan y un goroutine los escribe.
// Con la cola llena el evento se descarta con un warning; nunca bloquea la petición.
type Producer struct {
	writer    KafkaWriter
	events    chan providerpayments.PaymentsGroupedEvent
	logger    zerolog.Logger
	closeChan chan struct{}
	done      sync.WaitGroup
	timeout   time.Duration
}

// NewProducer crea el writer para el topic y arranca el loop de envío.
func NewProducer(brokers []string, topic string, logger zerolog.Logger) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
	}
	p := newProducer(w, logger, queueSize)
	p.start()
	return p
}

func newProducer(w KafkaWriter, logger zerolog.Logger, size int) *Producer {
	return &Producer{
		writer:    w,
		events:    make(chan providerpayments.PaymentsGroupedEvent, size),
		logger:    logger.With().Str("component", "kafka_producer").Logger(),
		closeChan: make(chan struct{}),
		timeout:   10 * time.Second,
	}
}

func (p *Producer) start() {
	p.done.Add(1)
	go p.eventLoop()
}

// PublishPaymentsGrouped encola el evento.
func (p *Producer) PublishPaymentsGrouped(evt providerpayments.PaymentsGroupedEvent) {
	select {
	case p.events <- evt:
	default:
		p.logger.Warn().
			Str("event_type", EventPaymentsGrouped).
			Str("layout_folio", evt.LayoutFolio).
			Msg("kafka producer queue full, dropping event")
	}
}

func (p *Producer) eventLoop() {
	defer p.done.Done()
	for {
		select {
		case evt := <-p.events:
			p.sendEvent(evt)
		case <-p.closeChan:
			// vaciar lo encolado antes de salir
			for {
				select {
				case evt := <-p.events:
					p.sendEvent(evt)
				default:
					return
				}
			}
		}
	}
}

func (p *Producer) sendEvent(evt providerpayments.PaymentsGroupedEvent) {
	value, err := jsonMarshal(evt)
	if err != nil {
		p.logger.Error().Err(err).Str("layout_id", evt.LayoutID).Msg("failed to serialize event")
		return
	}
	key := evt.LayoutID
	if key == "" {
		key = evt.CompanyID
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventPaymentsGrouped)},
			{Key: "tipo_layout", Value: []byte(evt.TipoLayout)},
		},
	})
	if err != nil {
		p.logger.Error().Err(err).
			Str("event_type", EventPaymentsGrouped).
			Str("layout_folio", evt.LayoutFolio).
			Msg("failed to produce event")
	}
}

// Close detiene el loop tras enviar lo pendiente y cierra el writer.
func (p *Producer) Close() {
	close(p.closeChan)
	p.done.Wait()
	if err := p.writer.Close(); err != nil {
		p.logger.Error().Err(err).Msg("failed to close kafka writer")
	}
}
