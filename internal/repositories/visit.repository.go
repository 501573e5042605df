package repositories

import (
	"context"
	"errors"
	"time"

	"skynet/internal/database"
	"skynet/internal/logger"
	. "skynet/internal/models"
	"skynet/internal/services"

	"gorm.io/gorm"
)

const visitCacheTTL = 10 * time.Minute

type VisitRepository interface {
	GetByID(ctx context.Context, id string) (*Visit, error)
	GetAll(ctx context.Context) ([]Visit, error)
	GetForTechnicianOnDay(ctx context.Context, tecnicoID string, day time.Time) ([]Visit, error)
	GetForDay(ctx context.Context, day time.Time) ([]Visit, error)
	Create(ctx context.Context, visit *Visit) error
	Start(ctx context.Context, id, tecnicoID string) error
	Cancel(ctx context.Context, id string) error
	Finalize(ctx context.Context, id string) error
}

type visitRepository struct {
	db  database.DB
	log logger.Logger
}

func NewVisit(db database.DB) VisitRepository {
	return &visitRepository{
		db:  db,
		log: logger.New("visitRepository"),
	}
}

func (r *visitRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func visitCacheKey(id string) string {
	return "visit:" + id
}

func (r *visitRepository) GetByID(ctx context.Context, id string) (*Visit, error) {
	log := r.log.Function("GetByID")

	var visit Visit
	if r.db.Cache.Visit != nil {
		found, err := database.NewCacheBuilder(r.db.Cache.Visit, visitCacheKey(id)).
			Get(ctx, &visit)
		if err == nil && found {
			return &visit, nil
		}
	}

	if err := r.getDB(ctx).First(&visit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get visit", err, "id", id)
	}

	r.warmCache(ctx, &visit)

	return &visit, nil
}

func (r *visitRepository) GetAll(ctx context.Context) ([]Visit, error) {
	log := r.log.Function("GetAll")

	var visits []Visit
	if err := r.getDB(ctx).Order("fecha DESC").Find(&visits).Error; err != nil {
		return nil, log.Err("failed to get visits", err)
	}

	return visits, nil
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.Add(24*time.Hour - time.Nanosecond)
}

func (r *visitRepository) GetForTechnicianOnDay(
	ctx context.Context,
	tecnicoID string,
	day time.Time,
) ([]Visit, error) {
	log := r.log.Function("GetForTechnicianOnDay")

	start, end := dayBounds(day)

	var visits []Visit
	if err := r.getDB(ctx).
		Where("tecnico_id = ? AND fecha >= ? AND fecha <= ?", tecnicoID, start, end).
		Order("fecha ASC").
		Find(&visits).Error; err != nil {
		return nil, log.Err("failed to get technician visits", err, "tecnicoID", tecnicoID)
	}

	return visits, nil
}

func (r *visitRepository) GetForDay(ctx context.Context, day time.Time) ([]Visit, error) {
	log := r.log.Function("GetForDay")

	start, end := dayBounds(day)

	var visits []Visit
	if err := r.getDB(ctx).
		Where("fecha >= ? AND fecha <= ?", start, end).
		Order("fecha ASC").
		Find(&visits).Error; err != nil {
		return nil, log.Err("failed to get visits for day", err)
	}

	return visits, nil
}

func (r *visitRepository) Create(ctx context.Context, visit *Visit) error {
	log := r.log.Function("Create")

	if visit.Estado == "" {
		visit.Estado = VisitStatusPending
	}

	if err := r.getDB(ctx).Create(visit).Error; err != nil {
		return log.Err("failed to create visit", err, "clienteID", visit.ClienteID)
	}

	r.warmCache(ctx, visit)

	return nil
}

// Start moves pendiente to en curso. The WHERE predicate carries the access
// policy: only the assigned technician on a still-pending row matches, so a
// mismatched caller changes nothing and gets ErrRowPolicy.
func (r *visitRepository) Start(ctx context.Context, id, tecnicoID string) error {
	log := r.log.Function("Start")

	result := r.getDB(ctx).Model(&Visit{}).
		Where("id = ? AND tecnico_id = ? AND estado = ?", id, tecnicoID, VisitStatusPending).
		Update("estado", VisitStatusInProgress)
	if result.Error != nil {
		return log.Err("failed to start visit", result.Error, "id", id)
	}

	return r.settleUpdate(ctx, id, result.RowsAffected)
}

// Cancel is reachable from pendiente or en curso.
func (r *visitRepository) Cancel(ctx context.Context, id string) error {
	log := r.log.Function("Cancel")

	result := r.getDB(ctx).Model(&Visit{}).
		Where("id = ? AND estado IN ?", id,
			[]VisitStatus{VisitStatusPending, VisitStatusInProgress}).
		Update("estado", VisitStatusCancelled)
	if result.Error != nil {
		return log.Err("failed to cancel visit", result.Error, "id", id)
	}

	return r.settleUpdate(ctx, id, result.RowsAffected)
}

// Finalize is only called from the report submission flow; no handler maps a
// status-only update onto it.
func (r *visitRepository) Finalize(ctx context.Context, id string) error {
	log := r.log.Function("Finalize")

	result := r.getDB(ctx).Model(&Visit{}).
		Where("id = ? AND estado IN ?", id,
			[]VisitStatus{VisitStatusPending, VisitStatusInProgress}).
		Update("estado", VisitStatusFinalized)
	if result.Error != nil {
		return log.Err("failed to finalize visit", result.Error, "id", id)
	}

	return r.settleUpdate(ctx, id, result.RowsAffected)
}

// settleUpdate decides between not-found and policy rejection after a guarded
// UPDATE matched nothing, and drops the stale cache entry otherwise.
func (r *visitRepository) settleUpdate(ctx context.Context, id string, rows int64) error {
	if rows == 0 {
		var count int64
		if err := r.getDB(ctx).Model(&Visit{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return r.log.Err("failed to check visit existence", err, "id", id)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrRowPolicy
	}

	if r.db.Cache.Visit != nil {
		if err := database.NewCacheBuilder(r.db.Cache.Visit, visitCacheKey(id)).Delete(); err != nil {
			r.log.Warn("failed to drop visit from cache", "visitID", id, "error", err)
		}
	}

	return nil
}

func (r *visitRepository) warmCache(ctx context.Context, visit *Visit) {
	if r.db.Cache.Visit == nil {
		return
	}

	if err := database.NewCacheBuilder(r.db.Cache.Visit, visitCacheKey(visit.ID)).
		WithTTL(visitCacheTTL).
		Set(ctx, visit); err != nil {
		r.log.Warn("failed to add visit to cache", "visitID", visit.ID, "error", err)
	}
}
