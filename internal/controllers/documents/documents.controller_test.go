package documentController

import (
	"context"
	"testing"
	"time"

	"skynet/internal/database"
	. "skynet/internal/models"
	"skynet/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db         database.DB
	controller *DocumentController
}

func setup(t *testing.T) *fixture {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&Profile{}, &Client{}, &Visit{}, &VisitReport{}))

	db := database.DB{SQL: gormDB}
	return &fixture{
		db: db,
		controller: New(
			repositories.NewVisit(db),
			repositories.NewReport(db),
			repositories.NewClient(db),
			repositories.NewProfile(db),
		),
	}
}

func (f *fixture) seedVisit(t *testing.T, withReport bool) *Visit {
	t.Helper()

	technician := &Profile{
		Nombre: "José García", Correo: "jose@example.com",
		RolID: RoleTechnician.Code(), Password: "password",
	}
	require.NoError(t, f.db.SQL.Create(technician).Error)

	client := &Client{
		Nombre: "Comercial El Trébol", Correo: "contacto@eltrebol.example",
		Direccion: "Zona 10", Telefono: "5555-1234", SupervisorID: "sup-1",
	}
	require.NoError(t, f.db.SQL.Create(client).Error)

	visit := &Visit{
		ClienteID:    client.ID,
		TecnicoID:    technician.ID,
		SupervisorID: "sup-1",
		Fecha:        time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		Estado:       VisitStatusFinalized,
	}
	require.NoError(t, f.db.SQL.Create(visit).Error)

	if withReport {
		observaciones := "Cliente pide seguimiento"
		require.NoError(t, f.db.SQL.Create(&VisitReport{
			VisitaID:         visit.ID,
			TrabajoRealizado: "Cambio de antena",
			Observaciones:    &observaciones,
		}).Error)
	}

	return visit
}

func TestBuildVisitPDF(t *testing.T) {
	f := setup(t)

	visit := f.seedVisit(t, true)

	raw, filename, err := f.controller.BuildVisitPDF(context.Background(), visit.ID)
	require.NoError(t, err)

	assert.Equal(t, "Reporte-Comercial El Trébol.pdf", filename)
	require.NotEmpty(t, raw)
	assert.Equal(t, "%PDF", string(raw[:4]))
}

func TestBuildVisitPDF_WithoutReportRendersPlaceholder(t *testing.T) {
	f := setup(t)

	visit := f.seedVisit(t, false)

	raw, filename, err := f.controller.BuildVisitPDF(context.Background(), visit.ID)
	require.NoError(t, err, "a missing report row must not fail the download")
	assert.NotEmpty(t, raw)
	assert.Equal(t, "Reporte-Comercial El Trébol.pdf", filename)
}

func TestBuildVisitPDF_OrphanVisitStillRenders(t *testing.T) {
	f := setup(t)

	visit := &Visit{
		ClienteID:    "missing-client",
		TecnicoID:    "missing-tech",
		SupervisorID: "sup-1",
		Fecha:        time.Now(),
		Estado:       VisitStatusFinalized,
	}
	require.NoError(t, f.db.SQL.Create(visit).Error)

	raw, filename, err := f.controller.BuildVisitPDF(context.Background(), visit.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.Equal(t, "Reporte-Desconocido.pdf", filename)
}

func TestBuildVisitPDF_VisitNotFound(t *testing.T) {
	f := setup(t)

	_, _, err := f.controller.BuildVisitPDF(context.Background(), "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
