package websockets

import (
	"encoding/json"
	"sync"
	"time"

	"skynet/config"
	"skynet/internal/database"
	"skynet/internal/events"
	"skynet/internal/logger"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const flushInterval = 250 * time.Millisecond

type clientMessage struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
}

type pushMessage struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
}

type connection struct {
	id       string
	conn     *websocket.Conn
	writeMu  sync.Mutex
	channels map[string]bool
	pending  map[string]bool
}

// Manager relays committed change events to subscribed sockets. Pushes are
// collapsed per connection and channel: a burst of mutations between two
// flush ticks produces a single refresh signal, and the consumer refetches.
type Manager struct {
	eventBus *events.EventBus
	log      logger.Logger

	mu          sync.RWMutex
	connections map[string]*connection

	unsubscribe func()
	stop        chan struct{}
	stopped     sync.Once
}

func New(db database.DB, eventBus *events.EventBus, config config.Config) (*Manager, error) {
	m := &Manager{
		eventBus:    eventBus,
		log:         logger.New("websockets"),
		connections: make(map[string]*connection),
		stop:        make(chan struct{}),
	}

	m.unsubscribe = eventBus.Subscribe(visitsChannel, m.handleEvent)

	go m.flushLoop()

	return m, nil
}

// The one realtime channel the dashboards use today.
const visitsChannel = "visitas"

// HandleWebSocket owns a socket for its lifetime: register, serve subscribe
// and unsubscribe messages, deregister on teardown.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	conn := &connection{
		id:       uuid.New().String(),
		conn:     c,
		channels: make(map[string]bool),
		pending:  make(map[string]bool),
	}

	m.mu.Lock()
	m.connections[conn.id] = conn
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.connections, conn.id)
		m.mu.Unlock()
		_ = c.Close()
	}()

	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			m.log.Warn("ignoring malformed websocket message", "error", err)
			continue
		}

		m.mu.Lock()
		switch msg.Type {
		case "subscribe":
			conn.channels[msg.Channel] = true
		case "unsubscribe":
			delete(conn.channels, msg.Channel)
			delete(conn.pending, msg.Channel)
		}
		m.mu.Unlock()
	}
}

// handleEvent marks the channel dirty on every subscribed connection; the
// flush loop turns dirty into exactly one push.
func (m *Manager) handleEvent(event events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, conn := range m.connections {
		if conn.channels[event.Channel] {
			conn.pending[event.Channel] = true
		}
	}
}

func (m *Manager) flushLoop() {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.flush()
		}
	}
}

func (m *Manager) flush() {
	m.mu.Lock()
	type pendingPush struct {
		conn    *connection
		channel string
	}
	var pushes []pendingPush
	for _, conn := range m.connections {
		for channel := range conn.pending {
			pushes = append(pushes, pendingPush{conn: conn, channel: channel})
		}
		conn.pending = make(map[string]bool)
	}
	m.mu.Unlock()

	for _, push := range pushes {
		raw, err := json.Marshal(pushMessage{Type: "refresh", Channel: push.channel})
		if err != nil {
			continue
		}

		push.conn.writeMu.Lock()
		err = push.conn.conn.WriteMessage(websocket.TextMessage, raw)
		push.conn.writeMu.Unlock()
		if err != nil {
			m.log.Warn("failed to push refresh", "channel", push.channel, "error", err)
		}
	}
}

func (m *Manager) Close() {
	m.stopped.Do(func() {
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
		close(m.stop)
	})
}
