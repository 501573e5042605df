package initialize

import (
	"skynet/config"
	"skynet/internal/logger"
	. "skynet/internal/models"

	"gorm.io/gorm"
)

// InitializeTables brings the schema up for development. Production schema
// changes go through the embedded sql-migrate files; AutoMigrate here keeps
// local databases in step with the models between migrations.
func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing tables")

	if err := db.AutoMigrate(
		&Profile{},
		&Client{},
		&Visit{},
		&VisitReport{},
	); err != nil {
		return log.Err("failed to migrate tables", err)
	}

	log.Info("Table initialization complete")
	return nil
}
