package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// ErrBufferFull el buzón del productor está lleno; el evento se descarta.
var ErrBufferFull = errors.New("kafka: buffer de publicación lleno")

// ErrClosed el productor ya fue cerrado.
var ErrClosed = errors.New("kafka: productor cerrado")

// messageWriter lo que el productor necesita de kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Producer publica eventos del libro de stock en un topic. Una goroutine drena el buzón.
type Producer struct {
	w        messageWriter
	producer string
	log      *logger.Logger

	mu     sync.RWMutex
	closed bool
	inbox  chan kafkago.Message
	done   chan struct{}
}

// NewProducer crea el productor; la partición se elige por hash de la key (productId).
func NewProducer(brokers []string, topic string, buf int, producer string, log *logger.Logger) *Producer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
	return newProducer(w, buf, producer, log)
}

func newProducer(w messageWriter, buf int, producer string, log *logger.Logger) *Producer {
	if buf <= 0 {
		buf = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Producer{
		w:        w,
		producer: producer,
		log:      log.Named("kafka"),
		inbox:    make(chan kafkago.Message, buf),
		done:     make(chan struct{}),
	}
}

// Start lanza la goroutine que escribe los mensajes encolados.
func (p *Producer) Start() {
	go func() {
		defer close(p.done)
		for m := range p.inbox {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := p.w.WriteMessages(ctx, m); err != nil {
				p.log.Error().Err(err).Str("key", string(m.Key)).Msg("no se pudo publicar evento")
			}
			cancel()
		}
		if err := p.w.Close(); err != nil {
			p.log.Warn().Err(err).Msg("cerrando writer")
		}
	}()
}

// PublishStockAdjusted implementa inventory.EventPublisher. No bloquea: si el buzón está lleno devuelve ErrBufferFull.
func (p *Producer) PublishStockAdjusted(_ context.Context, ev inventory.StockAdjustedEvent) error {
	msg, err := p.encode(ev)
	if err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.inbox <- msg:
		return nil
	default:
		return ErrBufferFull
	}
}

func (p *Producer) encode(ev inventory.StockAdjustedEvent) (kafkago.Message, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("kafka: payload: %w", err)
	}
	env := Envelope{
		EventID:      uuid.New().String(),
		EventType:    EventStockAdjusted,
		EventVersion: 1,
		OccurredAt:   ev.OccurredAt.UTC(),
		Producer:     p.producer,
		Payload:      payload,
	}
	value, err := json.Marshal(env)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("kafka: envelope: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(ev.ProductID),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event-type", Value: []byte(EventStockAdjusted)},
		},
	}, nil
}

// Close deja de aceptar eventos, vacía el buzón y espera a la goroutine (o a ctx).
func (p *Producer) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
