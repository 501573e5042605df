package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitStatus_LabelAndCategory(t *testing.T) {
	tests := []struct {
		name     string
		status   VisitStatus
		label    string
		category string
	}{
		{
			name:     "pending",
			status:   VisitStatusPending,
			label:    "Pendiente",
			category: "warning",
		},
		{
			name:     "in progress",
			status:   VisitStatusInProgress,
			label:    "En Proceso",
			category: "info",
		},
		{
			name:     "finalized",
			status:   VisitStatusFinalized,
			label:    "Completada",
			category: "success",
		},
		{
			name:     "cancelled",
			status:   VisitStatusCancelled,
			label:    "Cancelada",
			category: "danger",
		},
		{
			name:     "unknown value renders literally",
			status:   VisitStatus("archivada"),
			label:    "archivada",
			category: "neutral",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.label, tt.status.Label())
			assert.Equal(t, tt.category, tt.status.Category())
		})
	}
}

func TestVisitStatus_Terminal(t *testing.T) {
	assert.False(t, VisitStatusPending.Terminal())
	assert.False(t, VisitStatusInProgress.Terminal())
	assert.True(t, VisitStatusFinalized.Terminal())
	assert.True(t, VisitStatusCancelled.Terminal())
}
