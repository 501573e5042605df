package database

import (
	"embed"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func (s *DB) runMigrations() error {
	log := s.log.Function("runMigrations")

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return log.Err("failed to get sql database for migrations", err)
	}

	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}

	applied, err := migrate.Exec(sqlDB, "sqlite3", source, migrate.Up)
	if err != nil {
		return log.Err("failed to apply migrations", err)
	}

	if applied > 0 {
		log.Info("Applied migrations", "count", applied)
	}

	return nil
}
