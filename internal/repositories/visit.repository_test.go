package repositories

import (
	"context"
	"testing"
	"time"

	"skynet/internal/database"
	. "skynet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createVisit(t *testing.T, db database.DB, repo VisitRepository, tecnicoID string, fecha time.Time) *Visit {
	t.Helper()

	supervisor := createProfile(t, db, "Supervisora", "sup-"+fecha.Format("150405.000000000")+"@example.com", RoleSupervisor)
	client := createClient(t, db, "cliente-"+fecha.Format("150405.000000000"), supervisor.ID)

	visit := &Visit{
		ClienteID:    client.ID,
		TecnicoID:    tecnicoID,
		SupervisorID: supervisor.ID,
		Fecha:        fecha,
	}
	require.NoError(t, repo.Create(context.Background(), visit))
	return visit
}

func TestVisitRepository_CreateDefaultsToPending(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVisit(db)

	visit := createVisit(t, db, repo, "tec-1", time.Now())

	assert.NotEmpty(t, visit.ID)
	assert.Equal(t, VisitStatusPending, visit.Estado)

	fetched, err := repo.GetByID(context.Background(), visit.ID)
	require.NoError(t, err)
	assert.Equal(t, VisitStatusPending, fetched.Estado)
}

func TestVisitRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVisit(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVisitRepository_Start(t *testing.T) {
	tests := []struct {
		name        string
		tecnicoID   string
		startAs     string
		preState    VisitStatus
		expectedErr error
		finalState  VisitStatus
	}{
		{
			name:       "assigned technician starts a pending visit",
			tecnicoID:  "tec-1",
			startAs:    "tec-1",
			preState:   VisitStatusPending,
			finalState: VisitStatusInProgress,
		},
		{
			name:        "another technician is rejected and state stays put",
			tecnicoID:   "tec-1",
			startAs:     "tec-2",
			preState:    VisitStatusPending,
			expectedErr: ErrRowPolicy,
			finalState:  VisitStatusPending,
		},
		{
			name:        "already in progress cannot be started again",
			tecnicoID:   "tec-1",
			startAs:     "tec-1",
			preState:    VisitStatusInProgress,
			expectedErr: ErrRowPolicy,
			finalState:  VisitStatusInProgress,
		},
		{
			name:        "cancelled visit stays cancelled",
			tecnicoID:   "tec-1",
			startAs:     "tec-1",
			preState:    VisitStatusCancelled,
			expectedErr: ErrRowPolicy,
			finalState:  VisitStatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewVisit(db)

			visit := createVisit(t, db, repo, tt.tecnicoID, time.Now())
			if tt.preState != VisitStatusPending {
				require.NoError(t, db.SQL.Model(&Visit{}).
					Where("id = ?", visit.ID).
					Update("estado", tt.preState).Error)
			}

			err := repo.Start(context.Background(), visit.ID, tt.startAs)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}

			var stored Visit
			require.NoError(t, db.SQL.First(&stored, "id = ?", visit.ID).Error)
			assert.Equal(t, tt.finalState, stored.Estado)
		})
	}
}

func TestVisitRepository_Start_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVisit(db)

	err := repo.Start(context.Background(), "missing", "tec-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVisitRepository_CancelAndFinalize(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVisit(db)
	ctx := context.Background()

	toCancel := createVisit(t, db, repo, "tec-1", time.Now())
	require.NoError(t, repo.Cancel(ctx, toCancel.ID))

	var stored Visit
	require.NoError(t, db.SQL.First(&stored, "id = ?", toCancel.ID).Error)
	assert.Equal(t, VisitStatusCancelled, stored.Estado)

	// Terminal rows never transition again.
	assert.ErrorIs(t, repo.Finalize(ctx, toCancel.ID), ErrRowPolicy)
	assert.ErrorIs(t, repo.Cancel(ctx, toCancel.ID), ErrRowPolicy)

	toFinish := createVisit(t, db, repo, "tec-1", time.Now().Add(time.Minute))
	require.NoError(t, repo.Start(ctx, toFinish.ID, "tec-1"))
	require.NoError(t, repo.Finalize(ctx, toFinish.ID))

	stored = Visit{}
	require.NoError(t, db.SQL.First(&stored, "id = ?", toFinish.ID).Error)
	assert.Equal(t, VisitStatusFinalized, stored.Estado)
}

func TestVisitRepository_GetForTechnicianOnDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVisit(db)
	ctx := context.Background()

	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	early := createVisit(t, db, repo, "tec-1", today.Add(8*time.Hour))
	late := createVisit(t, db, repo, "tec-1", today.Add(16*time.Hour))
	createVisit(t, db, repo, "tec-1", today.Add(30*time.Hour))
	createVisit(t, db, repo, "tec-2", today.Add(10*time.Hour))

	visits, err := repo.GetForTechnicianOnDay(ctx, "tec-1", today)
	require.NoError(t, err)
	require.Len(t, visits, 2)
	assert.Equal(t, early.ID, visits[0].ID, "results should be ordered by fecha ascending")
	assert.Equal(t, late.ID, visits[1].ID)

	all, err := repo.GetForDay(ctx, today)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
