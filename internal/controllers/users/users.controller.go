package userController

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skynet/internal/logger"
	. "skynet/internal/models"
	"skynet/internal/repositories"
	"skynet/internal/utils"
)

var ErrValidation = errors.New("validation failed")

type UserController struct {
	profileRepo repositories.ProfileRepository
	log         logger.Logger
}

func New(profileRepo repositories.ProfileRepository) *UserController {
	return &UserController{
		profileRepo: profileRepo,
		log:         logger.New("UserController"),
	}
}

// CreateUser is the admin provisioning operation. The request carries the
// legacy numeric role code; it is translated to the Role enum here at the
// boundary and rejected when outside the closed set. A missing password gets
// a generated one, returned so the admin can hand it over.
func (uc *UserController) CreateUser(ctx context.Context, request CreateUserRequest) (*Profile, string, error) {
	log := uc.log.Function("CreateUser")

	if strings.TrimSpace(request.Email) == "" || strings.TrimSpace(request.Nombre) == "" {
		return nil, "", fmt.Errorf("%w: email y nombre son obligatorios", ErrValidation)
	}

	role, ok := RoleFromCode(request.RolID)
	if !ok {
		return nil, "", fmt.Errorf("%w: rol_id %d no reconocido", ErrValidation, request.RolID)
	}

	password := request.Password
	if password == "" {
		password = utils.GeneratePassword(10)
	}

	profile := &Profile{
		Nombre:   strings.TrimSpace(request.Nombre),
		Correo:   strings.TrimSpace(request.Email),
		RolID:    role.Code(),
		Password: password,
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, "", log.Err("failed to create user", err, "correo", request.Email)
	}

	return profile, password, nil
}

func (uc *UserController) ListUsers(ctx context.Context) ([]Profile, error) {
	log := uc.log.Function("ListUsers")

	profiles, err := uc.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, log.Err("failed to list users", err)
	}

	return profiles, nil
}

func (uc *UserController) ListTechnicians(ctx context.Context) ([]Profile, error) {
	log := uc.log.Function("ListTechnicians")

	technicians, err := uc.profileRepo.GetTechnicians(ctx)
	if err != nil {
		return nil, log.Err("failed to list technicians", err)
	}

	return technicians, nil
}

func (uc *UserController) DeleteUser(ctx context.Context, id string) error {
	log := uc.log.Function("DeleteUser")

	if err := uc.profileRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		return log.Err("failed to delete user", err, "id", id)
	}

	return nil
}
