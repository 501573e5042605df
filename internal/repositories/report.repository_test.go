package repositories

import (
	"context"
	"testing"

	. "skynet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRepository_CreateAndGetByVisitID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReport(db)
	ctx := context.Background()

	observaciones := "Cliente solicita seguimiento"
	report := &VisitReport{
		VisitaID:         "visita-1",
		TrabajoRealizado: "Cambio de antena y prueba de señal",
		Observaciones:    &observaciones,
	}
	require.NoError(t, repo.Create(ctx, report))
	assert.NotEmpty(t, report.ID)

	fetched, err := repo.GetByVisitID(ctx, "visita-1")
	require.NoError(t, err)
	assert.Equal(t, report.ID, fetched.ID)
	assert.Equal(t, "Cambio de antena y prueba de señal", fetched.TrabajoRealizado)
	require.NotNil(t, fetched.Observaciones)
	assert.Equal(t, observaciones, *fetched.Observaciones)
}

func TestReportRepository_GetByVisitID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReport(db)

	_, err := repo.GetByVisitID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportRepository_OneReportPerVisit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReport(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &VisitReport{
		VisitaID:         "visita-1",
		TrabajoRealizado: "Primera intervención",
	}))

	err := repo.Create(ctx, &VisitReport{
		VisitaID:         "visita-1",
		TrabajoRealizado: "Segunda intervención",
	})
	assert.Error(t, err, "visita_id carries a unique index")
}
