package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newQueueOnlyHandler builds a MongoHandler with no live connection so the
// enqueue path can be exercised without a MongoDB server. drainLoop is not
// started; documents stay in the queue for inspection.
func newQueueOnlyHandler(queueSize int) *MongoHandler {
	return &MongoHandler{
		queue: make(chan LogDocument, queueSize),
		done:  make(chan struct{}),
	}
}

func TestMongoHandlerEnqueuesRecord(t *testing.T) {
	h := newQueueOnlyHandler(4)

	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "order created", 0)
	rec.AddAttrs(slog.String("order_id", "ORD-TEST-1"))

	require.NoError(t, h.Handle(context.Background(), rec))

	select {
	case doc := <-h.queue:
		assert.Equal(t, "INFO", doc.Level)
		assert.Equal(t, "order created", doc.Msg)
		assert.Equal(t, "ORD-TEST-1", doc.Attrs["order_id"])
	default:
		t.Fatal("record was not enqueued")
	}
}

func TestMongoHandlerDropsWhenQueueFull(t *testing.T) {
	h := newQueueOnlyHandler(1)
	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)

	require.NoError(t, h.Handle(context.Background(), rec))
	// Queue is full now; Handle must neither block nor error.
	require.NoError(t, h.Handle(context.Background(), rec))
	assert.Len(t, h.queue, 1)
}

func TestMongoHandlerWithAttrsCarriesBaseAttrs(t *testing.T) {
	h := newQueueOnlyHandler(4)
	tagged := h.WithAttrs([]slog.Attr{slog.String("request_id", "abc123")})

	rec := slog.NewRecord(time.Now(), slog.LevelWarn, "slow query", 0)
	require.NoError(t, tagged.Handle(context.Background(), rec))

	doc := <-h.queue
	assert.Equal(t, "abc123", doc.Attrs["request_id"])
}

func TestSetHandlerFansOutToAllSinks(t *testing.T) {
	prev := L
	t.Cleanup(func() { SetHandler(prev.Handler()) })

	var primary, secondary bytes.Buffer
	SetHandler(NewMultiHandler(
		slog.NewTextHandler(&primary, nil),
		slog.NewTextHandler(&secondary, nil),
	))

	Info("fan out", "order_id", "ORD-TEST-2")

	assert.Contains(t, primary.String(), "fan out")
	assert.Contains(t, primary.String(), "ORD-TEST-2")
	assert.Contains(t, secondary.String(), "fan out")
	assert.Contains(t, secondary.String(), "ORD-TEST-2")
}

func TestMultiHandlerSkipsDisabledSinks(t *testing.T) {
	var buf bytes.Buffer
	quiet := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError})
	queue := newQueueOnlyHandler(4)

	m := NewMultiHandler(quiet, queue)
	log := slog.New(m)
	log.Info("below threshold")

	assert.Empty(t, buf.String())
	assert.Len(t, queue.queue, 1)
}
