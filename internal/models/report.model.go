package models

// VisitReport is a row in the legacy reportes_visitas table: exactly one per
// finalized visit, created during report submission and never edited after.
type VisitReport struct {
	BaseUUIDModel
	VisitaID         string  `gorm:"column:visita_id;type:varchar(64);not null;uniqueIndex" json:"visitaId"`
	TrabajoRealizado string  `gorm:"type:text;not null"                                     json:"trabajoRealizado"`
	Observaciones    *string `gorm:"type:text"                                              json:"observaciones"`
}

func (VisitReport) TableName() string {
	return "reportes_visitas"
}
