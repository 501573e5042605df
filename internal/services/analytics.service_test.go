package services

import (
	"testing"
	"time"

	"skynet/config"
	"skynet/internal/events"

	"github.com/stretchr/testify/assert"
)

func TestTrackEvent_PublishesToAnalyticsChannel(t *testing.T) {
	bus := events.NewLocal()
	defer bus.Close()

	received := make(chan events.Event, 1)
	bus.Subscribe("analytics", func(event events.Event) {
		received <- event
	})

	TrackEvent(bus, "enviar_reporte", "user-1", map[string]any{"visita_id": "v-1"})

	select {
	case event := <-received:
		assert.Equal(t, "analytics", event.Type)
		assert.Equal(t, "enviar_reporte", event.Action)
		assert.Equal(t, "user-1", event.UserID)
		assert.Equal(t, "v-1", event.Data["visita_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for analytics event")
	}
}

func TestAnalyticsService_UnconfiguredIsInert(t *testing.T) {
	bus := events.NewLocal()
	defer bus.Close()

	service := NewAnalyticsService(bus, config.Config{})
	defer service.Close()

	// Without credentials handle drops events on the floor; publishing must
	// not block or panic.
	TrackEvent(bus, "login", "user-1", nil)
	time.Sleep(50 * time.Millisecond)
}
