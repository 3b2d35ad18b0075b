package events

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

// Broker is the in-process publisher behind the websocket stream.
// Slow subscribers lose events instead of stalling the publisher.
type Broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]map[int]chan Event
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]map[int]chan Event)}
}

// Subscribe returns the events of one order. The returned func closes the
// channel and must be called exactly once.
func (b *Broker) Subscribe(orderID int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	b.nextID++
	id := b.nextID
	if b.subs[orderID] == nil {
		b.subs[orderID] = make(map[int]chan Event)
	}
	b.subs[orderID][id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if subs, ok := b.subs[orderID]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(b.subs, orderID)
			}
		}
		close(ch)
	}
}

func (b *Broker) Publish(ctx context.Context, e Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs[e.OrderID] {
		select {
		case ch <- e:
		default:
		}
	}
	return nil
}

// Subscribers counts live subscriptions for an order.
func (b *Broker) Subscribers(orderID int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[orderID])
}
