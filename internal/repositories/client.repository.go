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

type ClientRepository interface {
	GetByID(ctx context.Context, id string) (*Client, error)
	GetByIDs(ctx context.Context, ids []string) ([]Client, error)
	GetBySupervisor(ctx context.Context, supervisorID string) ([]Client, error)
	GetAll(ctx context.Context) ([]Client, error)
	Create(ctx context.Context, client *Client) error
	DeleteOwned(ctx context.Context, id, supervisorID string) error
}

type clientRepository struct {
	db  database.DB
	log logger.Logger
}

func NewClient(db database.DB) ClientRepository {
	return &clientRepository{
		db:  db,
		log: logger.New("clientRepository"),
	}
}

func (r *clientRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	log := r.log.Function("GetByID")

	var client Client
	if err := r.getDB(ctx).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get client", err, "id", id)
	}

	return &client, nil
}

func (r *clientRepository) GetByIDs(ctx context.Context, ids []string) ([]Client, error) {
	log := r.log.Function("GetByIDs")

	if len(ids) == 0 {
		return nil, nil
	}

	var clients []Client
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&clients).Error; err != nil {
		return nil, log.Err("failed to get clients by ids", err, "count", len(ids))
	}

	return clients, nil
}

func (r *clientRepository) GetBySupervisor(ctx context.Context, supervisorID string) ([]Client, error) {
	log := r.log.Function("GetBySupervisor")

	var clients []Client
	if err := r.getDB(ctx).
		Where("supervisor_id = ?", supervisorID).
		Order("nombre ASC").
		Find(&clients).Error; err != nil {
		return nil, log.Err("failed to get clients", err, "supervisorID", supervisorID)
	}

	return clients, nil
}

func (r *clientRepository) GetAll(ctx context.Context) ([]Client, error) {
	log := r.log.Function("GetAll")

	var clients []Client
	if err := r.getDB(ctx).Order("nombre ASC").Find(&clients).Error; err != nil {
		return nil, log.Err("failed to get all clients", err)
	}

	return clients, nil
}

func (r *clientRepository) Create(ctx context.Context, client *Client) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(client).Error; err != nil {
		return log.Err("failed to create client", err, "nombre", client.Nombre)
	}

	return nil
}

// DeleteOwned removes a client only when the caller owns the row; any other
// identity gets the policy error and the row is untouched.
func (r *clientRepository) DeleteOwned(ctx context.Context, id, supervisorID string) error {
	log := r.log.Function("DeleteOwned")

	result := r.getDB(ctx).
		Where("id = ? AND supervisor_id = ?", id, supervisorID).
		Delete(&Client{})
	if result.Error != nil {
		return log.Err("failed to delete client", result.Error, "id", id)
	}

	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrRowPolicy
	}

	return nil
}
