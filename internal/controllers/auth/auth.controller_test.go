package authController

import (
	"context"
	"fmt"
	"testing"

	"skynet/internal/database"
	"skynet/internal/events"
	. "skynet/internal/models"
	"skynet/internal/repositories"
	"skynet/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type memorySessions struct {
	next     int
	profiles map[string]string
}

func newMemorySessions() *memorySessions {
	return &memorySessions{profiles: map[string]string{}}
}

func (m *memorySessions) Create(_ context.Context, profileID string) (string, error) {
	m.next++
	token := fmt.Sprintf("token-%d", m.next)
	m.profiles[token] = profileID
	return token, nil
}

func (m *memorySessions) Resolve(_ context.Context, token string) (string, error) {
	profileID, ok := m.profiles[token]
	if !ok {
		return "", services.ErrSessionNotFound
	}
	return profileID, nil
}

func (m *memorySessions) Destroy(_ context.Context, token string) error {
	delete(m.profiles, token)
	return nil
}

func setup(t *testing.T) (*AuthController, *memorySessions, repositories.ProfileRepository) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&Profile{}))

	repo := repositories.NewProfile(database.DB{SQL: gormDB})
	sessions := newMemorySessions()
	bus := events.NewLocal()
	t.Cleanup(func() { bus.Close() })

	return New(repo, sessions, bus), sessions, repo
}

func TestLogin(t *testing.T) {
	controller, sessions, repo := setup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Profile{
		Nombre:   "Carla Sosa",
		Correo:   "carla@example.com",
		RolID:    RoleSupervisor.Code(),
		Password: "correcthorse",
	}))

	profile, token, err := controller.Login(ctx, LoginRequest{
		Correo:   "carla@example.com",
		Password: "correcthorse",
	})
	require.NoError(t, err)
	assert.Equal(t, "Carla Sosa", profile.Nombre)
	assert.NotEmpty(t, token)

	profileID, err := sessions.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, profileID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	controller, _, repo := setup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Profile{
		Nombre:   "Carla Sosa",
		Correo:   "carla@example.com",
		RolID:    RoleSupervisor.Code(),
		Password: "correcthorse",
	}))

	tests := []struct {
		name    string
		request LoginRequest
	}{
		{name: "unknown account", request: LoginRequest{Correo: "nadie@example.com", Password: "x"}},
		{name: "wrong password", request: LoginRequest{Correo: "carla@example.com", Password: "wrong"}},
		{name: "empty correo", request: LoginRequest{Password: "correcthorse"}},
		{name: "empty password", request: LoginRequest{Correo: "carla@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, token, err := controller.Login(ctx, tt.request)
			assert.ErrorIs(t, err, ErrInvalidCredentials, "every failure maps to the same error")
			assert.Empty(t, token)
		})
	}
}

func TestLogout(t *testing.T) {
	controller, sessions, repo := setup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Profile{
		Nombre:   "Carla Sosa",
		Correo:   "carla@example.com",
		RolID:    RoleSupervisor.Code(),
		Password: "correcthorse",
	}))

	_, token, err := controller.Login(ctx, LoginRequest{
		Correo:   "carla@example.com",
		Password: "correcthorse",
	})
	require.NoError(t, err)

	require.NoError(t, controller.Logout(ctx, token))

	_, err = sessions.Resolve(ctx, token)
	assert.ErrorIs(t, err, services.ErrSessionNotFound)
}

func TestRegister(t *testing.T) {
	controller, _, _ := setup(t)
	ctx := context.Background()

	profile, err := controller.Register(ctx, RegisterRequest{
		Nombre:   "  Nuevo Admin  ",
		Correo:   " nuevo@example.com ",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "Nuevo Admin", profile.Nombre)
	assert.Equal(t, "nuevo@example.com", profile.Correo)
	assert.Equal(t, RoleAdmin, profile.Role(), "self registration always provisions an admin")
	assert.True(t, profile.CheckPassword("secret123"))
}

func TestRegister_Validation(t *testing.T) {
	controller, _, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		request RegisterRequest
	}{
		{name: "missing nombre", request: RegisterRequest{Correo: "a@example.com", Password: "x"}},
		{name: "blank nombre", request: RegisterRequest{Nombre: "   ", Correo: "a@example.com", Password: "x"}},
		{name: "missing correo", request: RegisterRequest{Nombre: "A", Password: "x"}},
		{name: "missing password", request: RegisterRequest{Nombre: "A", Correo: "a@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.Register(ctx, tt.request)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
