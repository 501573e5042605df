package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"skynet/config"
	"skynet/internal/database"
	"skynet/internal/logger"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

const busChannel = "skynet:events"

type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	Action    string         `json:"action,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type Handler func(Event)

type subscriber struct {
	id      string
	channel string
	handler Handler
}

// EventBus fans committed state transitions out to in-process subscribers
// (websocket push, analytics) and mirrors them over Valkey pub/sub so other
// instances see them too. Handlers run on their own goroutines; a slow or
// failing subscriber can never affect the publishing flow.
type EventBus struct {
	client   database.CacheClient
	log      logger.Logger
	originID string

	mu          sync.RWMutex
	subscribers []subscriber

	cancel context.CancelFunc
	done   chan struct{}
}

type envelope struct {
	Origin string `json:"origin"`
	Event  Event  `json:"event"`
}

func New(client database.CacheClient, config config.Config) *EventBus {
	bus := &EventBus{
		client:   client,
		log:      logger.New("events"),
		originID: uuid.New().String(),
		done:     make(chan struct{}),
	}

	if client != nil {
		ctx, cancel := context.WithCancel(context.Background())
		bus.cancel = cancel
		go bus.receive(ctx)
	} else {
		close(bus.done)
	}

	return bus
}

// NewLocal builds a bus without the Valkey mirror, for single-process use and
// tests.
func NewLocal() *EventBus {
	return New(nil, config.Config{})
}

func (b *EventBus) Publish(channel string, event Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Channel = channel

	b.dispatch(event)

	if b.client == nil {
		return nil
	}

	raw, err := json.Marshal(envelope{Origin: b.originID, Event: event})
	if err != nil {
		return b.log.Err("failed to marshal event", err, "event", event)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.client.Do(ctx, b.client.B().Publish().Channel(busChannel).
		Message(string(raw)).Build()).Error(); err != nil {
		return b.log.Err("failed to publish event", err, "channel", channel)
	}

	return nil
}

// Subscribe registers a handler for one channel and returns its unsubscribe.
func (b *EventBus) Subscribe(channel string, handler Handler) func() {
	sub := subscriber{
		id:      uuid.New().String(),
		channel: channel,
		handler: handler,
	}

	b.mu.Lock()
	b.subscribers = append(b.subscribers, sub)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subscribers {
			if s.id == sub.id {
				b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (b *EventBus) dispatch(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		if sub.channel != event.Channel {
			continue
		}
		go sub.handler(event)
	}
}

func (b *EventBus) receive(ctx context.Context) {
	defer close(b.done)
	log := b.log.Function("receive")

	err := b.client.Receive(ctx, b.client.B().Subscribe().Channel(busChannel).Build(),
		func(msg valkey.PubSubMessage) {
			var env envelope
			if err := json.Unmarshal([]byte(msg.Message), &env); err != nil {
				log.Er("failed to unmarshal event", err)
				return
			}
			if env.Origin == b.originID {
				return
			}
			b.dispatch(env.Event)
		})
	if err != nil && ctx.Err() == nil {
		log.Er("event subscription ended", err)
	}
}

func (b *EventBus) Close() error {
	if b.cancel != nil {
		b.cancel()
		<-b.done
	}
	return nil
}
