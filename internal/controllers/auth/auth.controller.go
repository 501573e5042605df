package authController

import (
	"context"
	"errors"
	"strings"

	"skynet/internal/events"
	"skynet/internal/logger"
	. "skynet/internal/models"
	"skynet/internal/repositories"
	"skynet/internal/services"
)

// ErrInvalidCredentials covers both unknown account and wrong password; the
// login response never says which.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrValidation = errors.New("validation failed")

type AuthController struct {
	profileRepo repositories.ProfileRepository
	sessions    services.SessionStore
	eventBus    *events.EventBus
	log         logger.Logger
}

func New(
	profileRepo repositories.ProfileRepository,
	sessions services.SessionStore,
	eventBus *events.EventBus,
) *AuthController {
	return &AuthController{
		profileRepo: profileRepo,
		sessions:    sessions,
		eventBus:    eventBus,
		log:         logger.New("AuthController"),
	}
}

// Login checks the password and opens a session. The returned token is the
// opaque bearer credential for every protected route.
func (ac *AuthController) Login(ctx context.Context, request LoginRequest) (*Profile, string, error) {
	log := ac.log.Function("Login")

	if request.Correo == "" || request.Password == "" {
		return nil, "", ErrInvalidCredentials
	}

	profile, err := ac.profileRepo.GetByCorreo(ctx, request.Correo)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", log.Err("failed to look up profile", err, "correo", request.Correo)
	}

	if !profile.CheckPassword(request.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := ac.sessions.Create(ctx, profile.ID)
	if err != nil {
		return nil, "", log.Err("failed to create session", err, "profileID", profile.ID)
	}

	services.TrackEvent(ac.eventBus, "login", profile.ID, map[string]any{
		"rol": string(profile.Role()),
	})

	return profile, token, nil
}

func (ac *AuthController) Logout(ctx context.Context, token string) error {
	return ac.sessions.Destroy(ctx, token)
}

// Register creates a self-service admin account, mirroring the public
// registration screen which always provisioned rol_id 1.
func (ac *AuthController) Register(ctx context.Context, request RegisterRequest) (*Profile, error) {
	log := ac.log.Function("Register")

	if strings.TrimSpace(request.Nombre) == "" ||
		strings.TrimSpace(request.Correo) == "" ||
		request.Password == "" {
		return nil, ErrValidation
	}

	profile := &Profile{
		Nombre:   strings.TrimSpace(request.Nombre),
		Correo:   strings.TrimSpace(request.Correo),
		RolID:    RoleAdmin.Code(),
		Password: request.Password,
	}

	if err := ac.profileRepo.Create(ctx, profile); err != nil {
		return nil, log.Err("failed to register profile", err, "correo", request.Correo)
	}

	return profile, nil
}
