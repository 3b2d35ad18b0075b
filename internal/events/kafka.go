package events

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

var ErrKafkaDisabled = errors.New("kafka disabled")

type KafkaClient struct {
	Brokers []string
}

func NewKafkaClient(brokersCSV string) *KafkaClient {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return &KafkaClient{Brokers: brokers}
}

func (c *KafkaClient) Enabled() bool {
	return len(c.Brokers) > 0
}

// NewWriter is async: order timers publish from the scheduler thread and
// must not wait on the broker.
func (c *KafkaClient) NewWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(c.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Printf("[KAFKA] failed to deliver %d message(s): %v", len(messages), err)
			}
		},
	}
}

func (c *KafkaClient) NewReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  c.Brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher keys messages by order id so one order's events stay on
// one partition, in order.
type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	if p == nil || p.writer == nil {
		return ErrKafkaDisabled
	}
	return PublishJSON(ctx, p.writer, strconv.Itoa(e.OrderID), e)
}

func PublishJSON(ctx context.Context, writer MessageWriter, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: data, Time: time.Now().UTC()})
}

// DecodeMessage is used by the kitchen feed consumer.
func DecodeMessage(msg kafka.Message) (Event, error) {
	var e Event
	if err := json.Unmarshal(msg.Value, &e); err != nil {
		return Event{}, err
	}
	return e, nil
}
