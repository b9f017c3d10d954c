package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafkago.Message
	closed bool
	block  chan struct{}
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func sampleEvent() inventory.StockAdjustedEvent {
	return inventory.StockAdjustedEvent{
		EntryID:    "e-1",
		ProductID:  "p-1",
		OwnerID:    "u-1",
		Type:       "add",
		Quantity:   5,
		Reason:     "purchase",
		StockAfter: 15,
		OccurredAt: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestProducer_PublicaSobreConKeyDeProducto(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, 4, "inventario-stock", nil)
	p.Start()

	require.NoError(t, p.PublishStockAdjusted(context.Background(), sampleEvent()))
	require.NoError(t, p.Close(context.Background()))

	require.Len(t, w.msgs, 1)
	assert.True(t, w.closed)
	assert.Equal(t, "p-1", string(w.msgs[0].Key))

	var env Envelope
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &env))
	assert.Equal(t, EventStockAdjusted, env.EventType)
	assert.Equal(t, "inventario-stock", env.Producer)
	assert.NotEmpty(t, env.EventID)

	ev, err := UnwrapPayload[inventory.StockAdjustedEvent](env)
	require.NoError(t, err)
	assert.Equal(t, int64(15), ev.StockAfter)
	assert.Equal(t, "purchase", ev.Reason)
}

func TestProducer_BufferLlenoNoBloquea(t *testing.T) {
	w := &fakeWriter{block: make(chan struct{})}
	p := newProducer(w, 1, "test", nil)
	// sin Start: nadie drena el buzón
	require.NoError(t, p.PublishStockAdjusted(context.Background(), sampleEvent()))
	assert.ErrorIs(t, p.PublishStockAdjusted(context.Background(), sampleEvent()), ErrBufferFull)

	close(w.block)
	p.Start()
	require.NoError(t, p.Close(context.Background()))
	assert.Len(t, w.msgs, 1)
}

func TestProducer_CerradoRechaza(t *testing.T) {
	p := newProducer(&fakeWriter{}, 2, "test", nil)
	p.Start()
	require.NoError(t, p.Close(context.Background()))
	assert.ErrorIs(t, p.PublishStockAdjusted(context.Background(), sampleEvent()), ErrClosed)
	// segundo Close es inocuo
	require.NoError(t, p.Close(context.Background()))
}
