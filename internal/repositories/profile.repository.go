package repositories

import (
	"context"
	"errors"

	"skynet/internal/database"
	"skynet/internal/logger"
	. "skynet/internal/models"
	"skynet/internal/services"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByCorreo(ctx context.Context, correo string) (*Profile, error)
	GetAll(ctx context.Context) ([]Profile, error)
	GetTechnicians(ctx context.Context) ([]Profile, error)
	Create(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, id string) error
}

type profileRepository struct {
	db  database.DB
	log logger.Logger
}

func NewProfile(db database.DB) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: logger.New("profileRepository"),
	}
}

func (r *profileRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*Profile, error) {
	log := r.log.Function("GetByID")

	var profile Profile
	if err := r.getDB(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get profile", err, "id", id)
	}

	return &profile, nil
}

func (r *profileRepository) GetByCorreo(ctx context.Context, correo string) (*Profile, error) {
	log := r.log.Function("GetByCorreo")

	var profile Profile
	if err := r.getDB(ctx).First(&profile, "correo = ?", correo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get profile by correo", err, "correo", correo)
	}

	return &profile, nil
}

func (r *profileRepository) GetAll(ctx context.Context) ([]Profile, error) {
	log := r.log.Function("GetAll")

	var profiles []Profile
	if err := r.getDB(ctx).Order("nombre ASC").Find(&profiles).Error; err != nil {
		return nil, log.Err("failed to get profiles", err)
	}

	return profiles, nil
}

func (r *profileRepository) GetTechnicians(ctx context.Context) ([]Profile, error) {
	log := r.log.Function("GetTechnicians")

	var technicians []Profile
	if err := r.getDB(ctx).
		Where("rol_id = ?", RoleTechnician.Code()).
		Order("nombre ASC").
		Find(&technicians).Error; err != nil {
		return nil, log.Err("failed to get technicians", err)
	}

	return technicians, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *Profile) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(profile).Error; err != nil {
		return log.Err("failed to create profile", err, "correo", profile.Correo)
	}

	return nil
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&Profile{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete profile", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
