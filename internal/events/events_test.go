package events

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func TestBrokerDeliversOnlyToOrderSubscribers(t *testing.T) {
	b := NewBroker()
	mine, cancelMine := b.Subscribe(100001)
	defer cancelMine()
	other, cancelOther := b.Subscribe(100002)
	defer cancelOther()

	b.Publish(context.Background(), New(OrderStatusChanged, 100001))

	select {
	case e := <-mine:
		if e.OrderID != 100001 || e.Type != OrderStatusChanged {
			t.Fatalf("unexpected event %+v", e)
		}
	default:
		t.Fatalf("subscriber got nothing")
	}

	select {
	case e := <-other:
		t.Fatalf("wrong order received %+v", e)
	default:
	}
}

func TestBrokerDropsWhenSubscriberIsFull(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Subscribe(1)
	defer cancel()

	for i := 0; i < subscriberBuffer*2; i++ {
		if err := b.Publish(context.Background(), New(OrderCountdown, 1)); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	if len(ch) != subscriberBuffer {
		t.Fatalf("expected %d buffered, got %d", subscriberBuffer, len(ch))
	}
}

func TestBrokerCancelClosesChannel(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Subscribe(7)
	cancel()

	if _, ok := <-ch; ok {
		t.Fatalf("channel still open")
	}
	if b.Subscribers(7) != 0 {
		t.Fatalf("subscription not removed")
	}
	b.Publish(context.Background(), New(OrderCreated, 7))
}

func TestKafkaPublisherKeysByOrder(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w)

	e := New(OrderCreated, 123456)
	e.Status = "received"
	if err := p.Publish(context.Background(), e); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(w.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(w.messages))
	}
	if string(w.messages[0].Key) != "123456" {
		t.Fatalf("unexpected key %q", w.messages[0].Key)
	}

	decoded, err := DecodeMessage(w.messages[0])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ID != e.ID || decoded.Status != "received" || decoded.Type != OrderCreated {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestKafkaPublisherWithoutWriter(t *testing.T) {
	var p *KafkaPublisher
	if err := p.Publish(context.Background(), New(OrderCreated, 1)); !errors.Is(err, ErrKafkaDisabled) {
		t.Fatalf("expected ErrKafkaDisabled, got %v", err)
	}
}

func TestNewKafkaClientParsesBrokers(t *testing.T) {
	c := NewKafkaClient(" localhost:9092, ,kafka:9092 ")
	if len(c.Brokers) != 2 || c.Brokers[1] != "kafka:9092" {
		t.Fatalf("unexpected brokers %v", c.Brokers)
	}
	if NewKafkaClient("").Enabled() {
		t.Fatalf("empty broker list should be disabled")
	}
}

func TestMultiJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	ok := &fakeWriter{}
	m := Multi{NewKafkaPublisher(ok), nil, NewKafkaPublisher(&fakeWriter{err: boom})}

	err := m.Publish(context.Background(), New(OrderCreated, 1))
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined boom, got %v", err)
	}
	if len(ok.messages) != 1 {
		t.Fatalf("healthy publisher skipped")
	}
}

func TestStreamSendsSnapshotThenUpdates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	b := NewBroker()

	calls := 0
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		Stream(c, b, 42, func() (any, error) {
			calls++
			return map[string]int{"calls": calls}, nil
		})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first StreamMessage
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if first.Event != nil {
		t.Fatalf("first frame should carry no event")
	}

	deadline := time.Now().Add(time.Second)
	for b.Subscribers(42) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	b.Publish(context.Background(), New(OrderStatusChanged, 42))

	var second StreamMessage
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("read update: %v", err)
	}
	if second.Event == nil || second.Event.Type != OrderStatusChanged {
		t.Fatalf("unexpected update %+v", second)
	}
}
