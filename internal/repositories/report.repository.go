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

type ReportRepository interface {
	GetByVisitID(ctx context.Context, visitaID string) (*VisitReport, error)
	Create(ctx context.Context, report *VisitReport) error
}

type reportRepository struct {
	db  database.DB
	log logger.Logger
}

func NewReport(db database.DB) ReportRepository {
	return &reportRepository{
		db:  db,
		log: logger.New("reportRepository"),
	}
}

func (r *reportRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// GetByVisitID expects at most one row per visit.
func (r *reportRepository) GetByVisitID(ctx context.Context, visitaID string) (*VisitReport, error) {
	log := r.log.Function("GetByVisitID")

	var report VisitReport
	if err := r.getDB(ctx).First(&report, "visita_id = ?", visitaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get visit report", err, "visitaID", visitaID)
	}

	return &report, nil
}

func (r *reportRepository) Create(ctx context.Context, report *VisitReport) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(report).Error; err != nil {
		return log.Err("failed to create visit report", err, "visitaID", report.VisitaID)
	}

	return nil
}
