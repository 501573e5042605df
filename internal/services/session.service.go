package services

import (
	"context"
	"errors"
	"time"

	"skynet/config"
	"skynet/internal/database"
	"skynet/internal/logger"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionStore interface {
	Create(ctx context.Context, profileID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Destroy(ctx context.Context, token string) error
}

type sessionRecord struct {
	ProfileID string    `json:"profileId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionService keeps opaque bearer tokens in the session cache. The token
// carries nothing; the role is re-derived from the profile row on every
// protected request, so a server-side role change takes effect immediately.
type SessionService struct {
	cache database.CacheClient
	ttl   time.Duration
	log   logger.Logger
}

func NewSessionService(db database.DB, config config.Config) *SessionService {
	return &SessionService{
		cache: db.Cache.Session,
		ttl:   time.Duration(config.SessionTTLMinutes) * time.Minute,
		log:   logger.New("SessionService"),
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *SessionService) Create(ctx context.Context, profileID string) (string, error) {
	log := s.log.Function("Create")

	token := uuid.New().String()
	record := sessionRecord{ProfileID: profileID, CreatedAt: time.Now()}

	builder := database.NewCacheBuilder(s.cache, sessionKey(token)).WithTTL(s.ttl)
	if err := builder.Set(ctx, record); err != nil {
		return "", log.Err("failed to store session", err, "profileID", profileID)
	}

	return token, nil
}

// Resolve maps a token back to its profile ID. Any cache failure reads the
// same as an absent session; the guard treats both as "not logged in".
func (s *SessionService) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrSessionNotFound
	}

	var record sessionRecord
	found, err := database.NewCacheBuilder(s.cache, sessionKey(token)).Get(ctx, &record)
	if err != nil {
		s.log.Function("Resolve").Er("failed to read session", err)
		return "", ErrSessionNotFound
	}
	if !found {
		return "", ErrSessionNotFound
	}

	return record.ProfileID, nil
}

func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := database.NewCacheBuilder(s.cache, sessionKey(token)).Delete(); err != nil {
		return s.log.Function("Destroy").Err("failed to delete session", err)
	}

	return nil
}
