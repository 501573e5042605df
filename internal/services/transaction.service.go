package services

import (
	"context"

	"skynet/internal/database"
	"skynet/internal/logger"

	"gorm.io/gorm"
)

type transactionKey struct{}

// GetTransaction pulls the GORM transaction carried by ctx, if any.
// Repositories use it so a controller can span several repository calls with
// one transaction without the repositories knowing.
func GetTransaction(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(transactionKey{}).(*gorm.DB)
	return tx, ok
}

type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

// Execute runs fn inside a transaction carried on the derived context.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *TransactionService) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	return s.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, transactionKey{}, tx)
		return fn(txCtx)
	})
}
