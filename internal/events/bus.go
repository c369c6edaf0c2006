package events

import "sync"

// Event is a generic type placeholder for any event type
type Event any

// Subscriber is a channel that transports events of type T
type Subscriber[T Event] chan T

// DefaultBuffer is the channel capacity given to each subscriber
const DefaultBuffer = 100

// EventBus fans events out to every subscriber without blocking the publisher.
// A subscriber whose buffer is full misses the event.
type EventBus[T Event] struct {
	subscribers map[Subscriber[T]]struct{}
	buffer      int
	mutex       sync.RWMutex
}

func NewEventBus[T Event]() *EventBus[T] {
	return NewEventBusWithBuffer[T](DefaultBuffer)
}

func NewEventBusWithBuffer[T Event](buffer int) *EventBus[T] {
	return &EventBus[T]{
		subscribers: make(map[Subscriber[T]]struct{}),
		buffer:      buffer,
	}
}

func (bus *EventBus[T]) Subscribe() Subscriber[T] {
	ch := make(Subscriber[T], bus.buffer)
	bus.mutex.Lock()
	bus.subscribers[ch] = struct{}{}
	bus.mutex.Unlock()
	return ch
}

// Unsubscribe removes ch and closes it. Unknown channels are ignored.
func (bus *EventBus[T]) Unsubscribe(ch Subscriber[T]) {
	bus.mutex.Lock()
	defer bus.mutex.Unlock()
	if _, ok := bus.subscribers[ch]; !ok {
		return
	}
	delete(bus.subscribers, ch)
	close(ch)
}

// Publish broadcasts an event of type T to all registered subscribers and
// returns how many of them received it
func (bus *EventBus[T]) Publish(event T) int {
	bus.mutex.RLock()
	defer bus.mutex.RUnlock()
	delivered := 0
	for subscriber := range bus.subscribers {
		select {
		case subscriber <- event:
			delivered++
		default:
		}
	}
	return delivered
}

// Publisher is the write side of the bus handed to the stores
type Publisher interface {
	Publish(event any) int
}

// Discard is a Publisher that drops every event
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(any) int { return 0 }
