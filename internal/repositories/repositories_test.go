package repositories

import (
	"testing"

	"skynet/internal/database"
	. "skynet/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a throwaway in-memory database with the full schema and no
// cache clients, so each test runs isolated and cache paths are skipped.
func setupTestDB(t *testing.T) database.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gormDB.AutoMigrate(&Profile{}, &Client{}, &Visit{}, &VisitReport{}))

	return database.DB{SQL: gormDB}
}

func createProfile(t *testing.T, db database.DB, nombre, correo string, role Role) *Profile {
	t.Helper()

	profile := &Profile{
		Nombre:   nombre,
		Correo:   correo,
		RolID:    role.Code(),
		Password: "password",
	}
	require.NoError(t, db.SQL.Create(profile).Error)
	return profile
}

func createClient(t *testing.T, db database.DB, nombre, supervisorID string) *Client {
	t.Helper()

	client := &Client{
		Nombre:       nombre,
		Correo:       nombre + "@example.com",
		Direccion:    "Zona 1, Ciudad",
		Telefono:     "5555-0000",
		SupervisorID: supervisorID,
	}
	require.NoError(t, db.SQL.Create(client).Error)
	return client
}
