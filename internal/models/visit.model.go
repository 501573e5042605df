package models

import "time"

// VisitStatus holds the stored estado value. The stored strings are the legacy
// Spanish ones; anything else read back from the table renders literally.
type VisitStatus string

const (
	VisitStatusPending    VisitStatus = "pendiente"
	VisitStatusInProgress VisitStatus = "en curso"
	VisitStatusFinalized  VisitStatus = "finalizada"
	VisitStatusCancelled  VisitStatus = "cancelado"
)

// Label maps a status to its human form. Unrecognized values come back as
// themselves rather than failing.
func (s VisitStatus) Label() string {
	switch s {
	case VisitStatusPending:
		return "Pendiente"
	case VisitStatusInProgress:
		return "En Proceso"
	case VisitStatusFinalized:
		return "Completada"
	case VisitStatusCancelled:
		return "Cancelada"
	default:
		return string(s)
	}
}

// Category is the visual bucket consumers color by.
func (s VisitStatus) Category() string {
	switch s {
	case VisitStatusPending:
		return "warning"
	case VisitStatusInProgress:
		return "info"
	case VisitStatusFinalized:
		return "success"
	case VisitStatusCancelled:
		return "danger"
	default:
		return "neutral"
	}
}

func (s VisitStatus) Terminal() bool {
	return s == VisitStatusFinalized || s == VisitStatusCancelled
}

type Visit struct {
	BaseUUIDModel
	ClienteID    string      `gorm:"column:cliente_id;type:varchar(64);not null;index"    json:"clienteId"`
	TecnicoID    string      `gorm:"column:tecnico_id;type:varchar(64);not null;index"    json:"tecnicoId"`
	SupervisorID string      `gorm:"column:supervisor_id;type:varchar(64);not null;index" json:"supervisorId"`
	Fecha        time.Time   `gorm:"not null;index"                                       json:"fecha"`
	Estado       VisitStatus `gorm:"type:varchar(20);not null;default:pendiente"          json:"estado"`
	Descripcion  *string     `gorm:"type:text"                                            json:"descripcion"`
}

func (Visit) TableName() string {
	return "visitas"
}

// VisitWithNames is the list shape the dashboards consume: the visit joined
// with its client and technician display data plus the rendering contract.
type VisitWithNames struct {
	Visit
	ClienteNombre    string `json:"clienteNombre"`
	ClienteDireccion string `json:"clienteDireccion"`
	ClienteTelefono  string `json:"clienteTelefono"`
	ClienteCorreo    string `json:"clienteCorreo"`
	TecnicoNombre    string `json:"tecnicoNombre"`
	EstadoLabel      string `json:"estadoLabel"`
	EstadoCategory   string `json:"estadoCategory"`
	DirectionsURL    string `json:"directionsUrl,omitempty"`
	MapURL           string `json:"mapUrl,omitempty"`
}

// VisitSummary is the supervisor's same-day count board.
type VisitSummary struct {
	Total       int `json:"total"`
	Pendientes  int `json:"pendientes"`
	EnProceso   int `json:"enProceso"`
	Completadas int `json:"completadas"`
	Canceladas  int `json:"canceladas"`
}
