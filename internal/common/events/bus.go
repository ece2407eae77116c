// Package events is the in-process UI event channel.
package events

import (
	"fmt"
	"sync"
)

// TopicOpenCollege asks the UI to open the detail view of a college by name.
const TopicOpenCollege = "open-college"

// Event is a fire-and-forget notification.
type Event struct {
	Topic   string
	Payload map[string]interface{}
}

// OpenCollege builds the open-college event for name.
func OpenCollege(name string) Event {
	return Event{Topic: TopicOpenCollege, Payload: map[string]interface{}{"name": name}}
}

// Name returns the payload's name field, or "".
func (e Event) Name() string {
	name, _ := e.Payload["name"].(string)
	return name
}

type Handler func(Event)

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// Bus delivers events synchronously to subscribers in subscription order.
// A panicking subscriber is logged and does not affect the others or the publisher.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      Logger
}

func NewBus(log Logger) *Bus {
	return &Bus{handlers: make(map[string][]Handler), log: log}
}

func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// Publish returns the number of subscribers that ran without panicking.
func (b *Bus) Publish(e Event) int {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[e.Topic]...)
	b.mu.RUnlock()

	delivered := 0
	for _, h := range handlers {
		if b.deliver(h, e) {
			delivered++
		}
	}
	return delivered
}

func (b *Bus) deliver(h Handler, e Event) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			if b.log != nil {
				b.log.Error("event subscriber panicked", map[string]interface{}{
					"topic": e.Topic,
					"panic": fmt.Sprint(r),
				})
			}
		}
	}()
	h(e)
	return true
}
