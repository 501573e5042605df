package services

import (
	"context"
	"time"

	"skynet/config"
	"skynet/internal/events"
	"skynet/internal/logger"

	"github.com/go-resty/resty/v2"
)

const analyticsChannel = "analytics"

// AnalyticsService forwards committed business transitions to the GA4
// Measurement Protocol. It hangs off the event bus as a side-channel observer:
// nothing awaits it and a dead endpoint only ever produces a warning.
type AnalyticsService struct {
	client        *resty.Client
	measurementID string
	apiSecret     string
	log           logger.Logger
	unsubscribe   func()
}

type analyticsEvent struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

type analyticsPayload struct {
	ClientID string           `json:"client_id"`
	Events   []analyticsEvent `json:"events"`
}

func NewAnalyticsService(bus *events.EventBus, config config.Config) *AnalyticsService {
	client := resty.New().
		SetBaseURL("https://www.google-analytics.com").
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")

	service := &AnalyticsService{
		client:        client,
		measurementID: config.AnalyticsMeasurementID,
		apiSecret:     config.AnalyticsAPISecret,
		log:           logger.New("AnalyticsService"),
	}

	service.unsubscribe = bus.Subscribe(analyticsChannel, service.handle)

	return service
}

// TrackEvent publishes a named event to the analytics channel; the bus hands
// it back to handle on another goroutine.
func TrackEvent(bus *events.EventBus, action, userID string, params map[string]any) {
	_ = bus.Publish(analyticsChannel, events.Event{
		Type:   "analytics",
		Action: action,
		UserID: userID,
		Data:   params,
	})
}

func (s *AnalyticsService) handle(event events.Event) {
	if s.measurementID == "" || s.apiSecret == "" {
		return
	}

	log := s.log.Function("handle")

	clientID := event.UserID
	if clientID == "" {
		clientID = "server"
	}

	payload := analyticsPayload{
		ClientID: clientID,
		Events:   []analyticsEvent{{Name: event.Action, Params: event.Data}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("measurement_id", s.measurementID).
		SetQueryParam("api_secret", s.apiSecret).
		SetBody(payload).
		Post("/mp/collect")
	if err != nil {
		log.Warn("failed to send analytics event", "action", event.Action, "error", err)
		return
	}

	if resp.IsError() {
		log.Warn("analytics endpoint rejected event",
			"action", event.Action, "status", resp.StatusCode())
	}
}

func (s *AnalyticsService) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
