package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func sampleEvent() TyphoonEvent {
	return TyphoonEvent{
		Type:       TyphoonEnded,
		TyphoonID:  42,
		Name:       "Kristine",
		Status:     "ended",
		ActorID:    "3f1c2f0e-0000-4000-8000-000000000001",
		ReportPath: "reports/kristine_20241025_080000.pdf",
		OccurredAt: time.Date(2024, 10, 25, 8, 0, 0, 0, time.UTC),
	}
}

func TestSerializeToMessage(t *testing.T) {
	msg, err := serializeToMessage(sampleEvent())
	require.NoError(t, err)

	assert.Equal(t, "42", string(msg.Key))

	var decoded TyphoonEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, sampleEvent(), decoded)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, TyphoonEnded, headers["event_type"])
	assert.Equal(t, "2024-10-25T08:00:00Z", headers["occurred_at"])
}

func TestKafkaPublisher_Publish(t *testing.T) {
	fw := &fakeWriter{}
	p := &KafkaPublisher{writer: fw, logger: zap.NewNop()}

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	require.Len(t, fw.msgs, 1)

	require.NoError(t, p.Close())
	assert.True(t, fw.closed)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	fw := &fakeWriter{err: errors.New("broker down")}
	p := &KafkaPublisher{writer: fw, logger: zap.NewNop()}

	err := p.Publish(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typhoon.ended")
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), sampleEvent()))
	assert.NoError(t, p.Close())
}
